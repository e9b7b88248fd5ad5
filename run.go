package coup

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// BotType selects a bot implementation for one seat.
type BotType uint8

const (
	BotRandom BotType = iota
	BotHonestCarefulRandom
)

var botTypeStr = [...]string{
	"random",
	"honest_careful_random",
}

// AllBotTypes lists every selectable bot type.
var AllBotTypes = [...]BotType{BotRandom, BotHonestCarefulRandom}

// String implements Stringer.
func (t BotType) String() string {
	return botTypeStr[t]
}

// ParseBotType returns the BotType named by s.
func ParseBotType(s string) (BotType, error) {
	for i, name := range botTypeStr {
		if name == s {
			return BotType(i), nil
		}
	}
	return 0, errors.Errorf("invalid bot type: %q", s)
}

// NewBot builds a bot of the given type for the seat the view belongs to.
func NewBot(botType BotType, view PlayerView, settings Settings) Bot {
	switch botType {
	case BotHonestCarefulRandom:
		return NewHonestCarefulRandomBot(view, settings)
	default:
		return NewRandomBot(view)
	}
}

// RunResult carries the game as dealt and as finished.
type RunResult struct {
	Begin *Game
	End   *Game
}

// RunOptions controls self-play output. WritePlayer selects a seat whose
// view is written as a JSON line after the deal and after every step; a
// negative value disables it. Render, when non-nil, receives a
// human-readable rendering of every position.
type RunOptions struct {
	WritePlayer int
	Out         io.Writer
	Render      io.Writer
}

// RunGameWithBots deals a game from the seed and plays it to completion
// with one bot per seat.
func RunGameWithBots(seed uint64, botTypes []BotType, settings Settings, options RunOptions) (RunResult, error) {
	rng := rand.New(rand.NewSource(int64(seed)))
	game := NewGame(settings, rng)
	begin := game.Clone()
	bots := make([]Bot, settings.PlayersNumber)
	for player := range bots {
		bots[player] = NewBot(botTypes[player%len(botTypes)], game.PlayerView(player), settings)
	}
	if err := RunGame(bots, game, rng, options); err != nil {
		return RunResult{}, err
	}
	return RunResult{Begin: begin, End: game}, nil
}

// RunGame plays an already-constructed game to completion. Bots observe
// every applied action through their After*Action hooks.
func RunGame(bots []Bot, game *Game, rng *rand.Rand, options RunOptions) error {
	if options.Out != nil && options.WritePlayer >= 0 {
		if err := writeViewLine(options.Out, game.PlayerView(options.WritePlayer)); err != nil {
			return err
		}
	}
	if options.Render != nil {
		RenderGame(options.Render, game)
	}
	for !game.IsDone() {
		view := game.AnonymousView()
		available := AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands)
		action := chooseAction(available, bots, game)
		glog.V(1).Infof("play %v", action)
		if err := game.Play(action, rng); err != nil {
			return errors.Wrap(err, "bot chose an unplayable action")
		}
		if options.Render != nil {
			fmt.Fprintf(options.Render, "play %v\n", action)
			RenderGame(options.Render, game)
		}
		if options.Out != nil && options.WritePlayer >= 0 {
			if err := writeActionLine(options.Out, action); err != nil {
				return err
			}
			if err := writeViewLine(options.Out, game.PlayerView(options.WritePlayer)); err != nil {
				return err
			}
		}
		for player := range bots {
			if !game.IsPlayerActive(player) {
				continue
			}
			playerView := game.PlayerView(player)
			if player == action.Player {
				bots[player].AfterPlayerAction(playerView, action)
			} else {
				bots[player].AfterOpponentAction(playerView, NewActionView(action))
			}
		}
	}
	return nil
}

// chooseAction collects the decision from the players the current window
// belongs to: every player except the last is offered the chance to
// decline, the last one must answer.
func chooseAction(available []Action, bots []Bot, game *Game) Action {
	var players []int
	for _, action := range available {
		seen := false
		for _, player := range players {
			if player == action.Player {
				seen = true
				break
			}
		}
		if !seen {
			players = append(players, action.Player)
		}
	}
	if len(players) > 1 {
		for _, player := range players[:len(players)-1] {
			playerAvailable := filterActionsByPlayer(available, player)
			if action, ok := bots[player].GetOptionalAction(game.PlayerView(player), playerAvailable); ok {
				return action
			}
		}
		last := players[len(players)-1]
		return bots[last].GetAction(game.PlayerView(last), filterActionsByPlayer(available, last))
	}
	player := players[0]
	return bots[player].GetAction(game.PlayerView(player), available)
}

func filterActionsByPlayer(actions []Action, player int) []Action {
	var result []Action
	for _, action := range actions {
		if action.Player == player {
			result = append(result, action)
		}
	}
	return result
}

func writeViewLine(w io.Writer, view PlayerView) error {
	return writeJSONLine(w, view)
}

func writeActionLine(w io.Writer, action Action) error {
	return writeJSONLine(w, action)
}

func writeJSONLine(w io.Writer, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshal output line")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return errors.Wrap(err, "write output line")
}
