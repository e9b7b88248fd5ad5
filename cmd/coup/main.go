package main

import (
	goflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	coup "github.com/elsid/coup"
)

func main() {
	root := &cobra.Command{
		Use:           "coup",
		Short:         "Coup engine: self-play, replay, tracking and fuzzing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	root.AddCommand(
		newSimulateCmd(),
		newReplayCmd(),
		newStatsCmd(),
		newTrackCmd(),
		newSuggestCmd(),
		newFuzzCmd(),
		newInteractiveCmd(),
	)
	if err := root.Execute(); err != nil {
		glog.Errorf("%v", err)
		os.Exit(1)
	}
}

type gameFlags struct {
	playersNumber int
	cardsPerType  int
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.playersNumber, "players-number", 6, "number of seats")
	cmd.Flags().IntVar(&f.cardsPerType, "cards-per-type", 3, "copies of each card kind")
}

func (f *gameFlags) settings() coup.Settings {
	return coup.Settings{PlayersNumber: f.playersNumber, CardsPerType: f.cardsPerType}
}

func parseBotTypes(names []string) ([]coup.BotType, error) {
	if len(names) == 0 {
		return []coup.BotType{coup.BotRandom}, nil
	}
	result := make([]coup.BotType, len(names))
	for i, name := range names {
		botType, err := coup.ParseBotType(name)
		if err != nil {
			return nil, err
		}
		result[i] = botType
	}
	return result, nil
}

func newSimulateCmd() *cobra.Command {
	var game gameFlags
	var seed uint64
	var botTypes []string
	var writePlayer int
	var verbose bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a self-play game between bots",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := parseBotTypes(botTypes)
			if err != nil {
				return err
			}
			options := coup.RunOptions{WritePlayer: writePlayer, Out: os.Stdout}
			if verbose {
				options.Render = os.Stderr
			}
			result, err := coup.RunGameWithBots(seed, types, game.settings(), options)
			if err != nil {
				return err
			}
			if winner, ok := result.End.Winner(); ok {
				fmt.Fprintf(os.Stderr, "winner: %d after %d steps\n", winner, result.End.Step())
			}
			return nil
		},
	}
	game.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 42, "deal seed")
	cmd.Flags().StringSliceVar(&botTypes, "bot-types", nil, "bot type per seat, cycled")
	cmd.Flags().IntVar(&writePlayer, "write-player", -1, "seat whose view is written as JSON lines")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "render every position")
	return cmd
}

func newReplayCmd() *cobra.Command {
	var writePlayer int
	var verbose bool
	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Re-apply a recorded game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInput(args, func(r io.Reader) error {
				options := coup.ReplayOptions{WritePlayer: writePlayer, Out: os.Stdout}
				if verbose {
					options.Render = os.Stderr
				}
				_, err := coup.Replay(r, options)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&writePlayer, "write-player", -1, "seat whose view is written as JSON lines")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "render every position")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var game gameFlags
	var seed uint64
	var games, workers int
	var botTypes []string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Play many games and print outcome distributions",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := parseBotTypes(botTypes)
			if err != nil {
				return err
			}
			stats, err := coup.CollectRandomGamesStats(seed, games, workers, types, game.settings())
			if err != nil {
				return err
			}
			stats.Write(os.Stdout)
			return nil
		},
	}
	game.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 42, "seed for the per-game seed stream")
	cmd.Flags().IntVar(&games, "games", 100000, "number of games to play")
	cmd.Flags().IntVar(&workers, "workers", 1, "number of concurrent workers")
	cmd.Flags().StringSliceVar(&botTypes, "bot-types", nil, "bot type per seat, cycled")
	return cmd
}

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track [file]",
		Short: "Feed a recorded view stream to the belief tracker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInput(args, func(r io.Reader) error {
				return coup.Track(r, os.Stdout)
			})
		},
	}
}

func newSuggestCmd() *cobra.Command {
	var botType string
	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "Replay a view stream through a bot and print its suggestions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := coup.ParseBotType(botType)
			if err != nil {
				return err
			}
			return withInput(args, func(r io.Reader) error {
				return coup.Suggest(r, os.Stdout, parsed)
			})
		},
	}
	cmd.Flags().StringVar(&botType, "bot-type", "honest_careful_random", "bot type to consult")
	return cmd
}

func newFuzzCmd() *cobra.Command {
	var game gameFlags
	var seed uint64
	var games int
	cmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Play random games checking the machine against the enumerator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return coup.RunFuzz(seed, games, game.settings())
		},
	}
	game.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 42, "seed for the per-game seed stream")
	cmd.Flags().IntVar(&games, "games", 100, "number of games to play")
	return cmd
}

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Play one seat against bots",
		RunE: func(cmd *cobra.Command, args []string) error {
			coup.NewInteractive(os.Stdin, os.Stdout).Run()
			return nil
		},
	}
}

func withInput(args []string, f func(io.Reader) error) error {
	if len(args) == 0 {
		return f(os.Stdin)
	}
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()
	return f(file)
}
