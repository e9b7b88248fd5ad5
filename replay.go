package coup

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"

	"github.com/pkg/errors"
)

// GameParams is the header line of a recorded game: the seed the deck was
// shuffled from and the table settings.
type GameParams struct {
	Seed     uint64   `json:"seed"`
	Settings Settings `json:"settings"`
}

// ReplayOptions controls replay output. Out receives the JSON stream when
// WritePlayer is non-negative: the header, that player's view after the
// deal, and an action/view line pair per step. Render, when non-nil,
// receives a human-readable rendering of every position.
type ReplayOptions struct {
	WritePlayer int
	Out         io.Writer
	Render      io.Writer
}

// Replay reads a header line and a sequence of action lines and re-applies
// them to a freshly dealt game.
func Replay(r io.Reader, options ReplayOptions) (*Game, error) {
	scanner := newLineScanner(r)
	params, err := readHeader(scanner)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(int64(params.Seed)))
	game := NewGame(params.Settings, rng)
	if options.Out != nil && options.WritePlayer >= 0 {
		if err := writeJSONLine(options.Out, params); err != nil {
			return nil, err
		}
		if err := writeViewLine(options.Out, game.PlayerView(options.WritePlayer)); err != nil {
			return nil, err
		}
	}
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			break
		}
		var action Action
		if err := json.Unmarshal(line, &action); err != nil {
			return nil, errors.Wrapf(err, "parse action at step %d", game.Step())
		}
		if options.Render != nil {
			RenderGame(options.Render, game)
			fmt.Fprintf(options.Render, "[%d] play %v\n", game.Step(), action)
		}
		if err := game.Play(action, rng); err != nil {
			return nil, errors.Wrapf(err, "replay step %d", game.Step())
		}
		if options.Out != nil && options.WritePlayer >= 0 {
			if err := writeActionLine(options.Out, action); err != nil {
				return nil, err
			}
			if err := writeViewLine(options.Out, game.PlayerView(options.WritePlayer)); err != nil {
				return nil, err
			}
		}
	}
	if options.Render != nil {
		RenderGame(options.Render, game)
	}
	return game, errors.Wrap(scanner.Err(), "read replay input")
}

// Track reads the stream produced by Replay with a write player (header,
// initial view, then action/view pairs), feeds it to a belief tracker and
// writes the belief count after every observation.
func Track(r io.Reader, w io.Writer) error {
	scanner := newLineScanner(r)
	params, err := readHeader(scanner)
	if err != nil {
		return err
	}
	view, err := readView(scanner)
	if err != nil {
		return err
	}
	tracker := NewTracker(view.Player, view.Cards, params.Settings)
	fmt.Fprintf(w, "%d %d\n", 0, tracker.Len())
	step := 1
	for {
		action, ok, err := readAction(scanner)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		view, err := readView(scanner)
		if err != nil {
			return err
		}
		if view.Player == action.Player {
			tracker.AfterPlayerAction(view, action)
		} else {
			tracker.AfterOpponentAction(view, NewActionView(action))
		}
		fmt.Fprintf(w, "%d %d\n", step, tracker.Len())
		step++
	}
}

// Suggest reads the same stream as Track, replays it through a bot of the
// given type and writes the actions the bot would consider next, one JSON
// line each.
func Suggest(r io.Reader, w io.Writer, botType BotType) error {
	scanner := newLineScanner(r)
	params, err := readHeader(scanner)
	if err != nil {
		return err
	}
	view, err := readView(scanner)
	if err != nil {
		return err
	}
	bot := NewBot(botType, view, params.Settings)
	last := view
	for {
		action, ok, err := readAction(scanner)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		view, err := readView(scanner)
		if err != nil {
			return err
		}
		if view.Player == action.Player {
			bot.AfterPlayerAction(view, action)
		} else {
			bot.AfterOpponentAction(view, NewActionView(action))
		}
		last = view
	}
	available := AvailableActions(last.StateType, last.PlayerCoins, last.PlayerHands)
	for _, action := range bot.SuggestActions(last, available) {
		if err := writeActionLine(w, action); err != nil {
			return err
		}
	}
	return nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

func readHeader(scanner *bufio.Scanner) (GameParams, error) {
	if !scanner.Scan() {
		return GameParams{}, errors.New("missing header line")
	}
	var params GameParams
	if err := json.Unmarshal(scanner.Bytes(), &params); err != nil {
		return GameParams{}, errors.Wrap(err, "parse header")
	}
	return params, nil
}

func readAction(scanner *bufio.Scanner) (Action, bool, error) {
	if !scanner.Scan() || len(scanner.Bytes()) == 0 {
		return Action{}, false, errors.Wrap(scanner.Err(), "read action line")
	}
	var action Action
	if err := json.Unmarshal(scanner.Bytes(), &action); err != nil {
		return Action{}, false, errors.Wrap(err, "parse action")
	}
	return action, true, nil
}

func readView(scanner *bufio.Scanner) (PlayerView, error) {
	if !scanner.Scan() || len(scanner.Bytes()) == 0 {
		return PlayerView{}, errors.New("missing view line")
	}
	var view PlayerView
	if err := json.Unmarshal(scanner.Bytes(), &view); err != nil {
		return PlayerView{}, errors.Wrap(err, "parse view")
	}
	return view, nil
}
