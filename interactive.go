package coup

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/elsid/coup/cards"
)

const interactiveHelp = `commands:
  help                          show this help
  quit                          leave the shell
  set players <n>               number of seats (before start)
  set cards <n>                 copies of each card kind (before start)
  set bot <type>                bot type for the other seats
  set seat <i>                  the seat you play
  set seed <n>                  deal seed
  start                         deal a new game
  state                         render your view of the game
  available                     list the actions the machine accepts next
  play <action>                 make a move, e.g. "play steal 2", "play show Duke"
  skip                          decline an optional response window
  suggest                       ask the bot what it would play for you
  undo                          take back the last applied action
actions: income, foreign_aid, tax, exchange, coup <seat>,
  assassinate <seat>, steal <seat>, block_foreign_aid,
  block_assassination, block_steal <card>, challenge, pass_challenge,
  pass_block, show <card>, reveal <card>, drop <card>, take, shuffle`

// Interactive is a line-oriented shell for playing one seat against bots.
type Interactive struct {
	in  *bufio.Scanner
	out io.Writer

	settings Settings
	botType  BotType
	seat     int
	seed     uint64

	rng       *rand.Rand
	begin     *Game
	game      *Game
	bots      []Bot
	actionLog []Action
	suggester Bot
}

// NewInteractive builds a shell reading commands from in and writing to
// out.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{
		in:       bufio.NewScanner(in),
		out:      out,
		settings: Settings{PlayersNumber: 6, CardsPerType: 2},
		botType:  BotHonestCarefulRandom,
		seed:     42,
	}
}

// Run processes commands until quit or end of input.
func (s *Interactive) Run() {
	fmt.Fprintf(s.out, "players: %d, cards per type: %d, seat: %d, bot: %v, seed: %d\n",
		s.settings.PlayersNumber, s.settings.CardsPerType, s.seat, s.botType, s.seed)
	fmt.Fprintln(s.out, `type "help" for commands`)
	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			return
		}
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" {
			return
		}
		if err := s.dispatch(fields); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *Interactive) dispatch(fields []string) error {
	switch fields[0] {
	case "help":
		fmt.Fprintln(s.out, interactiveHelp)
		return nil
	case "set":
		return s.setOption(fields[1:])
	case "start":
		return s.start()
	case "state":
		return s.requireGame(func() error {
			RenderPlayerView(s.out, s.game.PlayerView(s.seat))
			return nil
		})
	case "available":
		return s.requireGame(func() error {
			view := s.game.AnonymousView()
			for _, action := range AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands) {
				fmt.Fprintf(s.out, "  %v\n", action)
			}
			return nil
		})
	case "play":
		return s.requireGame(func() error { return s.playHuman(fields[1:]) })
	case "skip":
		return s.requireGame(s.skipWindow)
	case "suggest":
		return s.requireGame(s.suggest)
	case "undo":
		return s.requireGame(s.undo)
	}
	return errors.Errorf("unknown command: %q", fields[0])
}

func (s *Interactive) setOption(fields []string) error {
	if len(fields) != 2 {
		return errors.New("set takes an option and a value")
	}
	switch fields[0] {
	case "players":
		return parseInt(fields[1], &s.settings.PlayersNumber)
	case "cards":
		return parseInt(fields[1], &s.settings.CardsPerType)
	case "seat":
		return parseInt(fields[1], &s.seat)
	case "seed":
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return errors.Wrap(err, "parse seed")
		}
		s.seed = value
		return nil
	case "bot":
		botType, err := ParseBotType(fields[1])
		if err != nil {
			return err
		}
		s.botType = botType
		return nil
	}
	return errors.Errorf("unknown option: %q", fields[0])
}

func (s *Interactive) requireGame(f func() error) error {
	if s.game == nil {
		return errors.New(`no game in progress; use "start"`)
	}
	return f()
}

func (s *Interactive) start() error {
	if s.seat < 0 || s.seat >= s.settings.PlayersNumber {
		return errors.Errorf("seat %d is out of range", s.seat)
	}
	s.rng = rand.New(rand.NewSource(int64(s.seed)))
	s.game = NewGame(s.settings, s.rng)
	s.begin = s.game.Clone()
	s.actionLog = nil
	s.bots = make([]Bot, s.settings.PlayersNumber)
	for player := range s.bots {
		if player != s.seat {
			s.bots[player] = NewBot(s.botType, s.game.PlayerView(player), s.settings)
		}
	}
	s.suggester = NewBot(s.botType, s.game.PlayerView(s.seat), s.settings)
	RenderPlayerView(s.out, s.game.PlayerView(s.seat))
	return s.advance(false)
}

// advance lets the bots move until the human seat is involved in the
// pending decision window. skipHuman resolves the current window without
// the human, honoring their decline.
func (s *Interactive) advance(skipHuman bool) error {
	for !s.game.IsDone() {
		view := s.game.AnonymousView()
		available := AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands)
		players := windowPlayers(available)
		humanInvolved := false
		for _, player := range players {
			if player == s.seat {
				humanInvolved = true
			}
		}
		if humanInvolved && !skipHuman {
			fmt.Fprintf(s.out, "your move (state: %v)\n", view.StateType)
			return nil
		}
		action, ok := s.chooseBotAction(available, players)
		if !ok {
			// Every bot declined and the mandatory seat is the human.
			fmt.Fprintf(s.out, "your move (state: %v)\n", view.StateType)
			return nil
		}
		if err := s.apply(action); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "player %d plays %v\n", action.Player, NewActionView(action))
		skipHuman = false
	}
	return s.finish()
}

func (s *Interactive) chooseBotAction(available []Action, players []int) (Action, bool) {
	botPlayers := make([]int, 0, len(players))
	for _, player := range players {
		if player != s.seat {
			botPlayers = append(botPlayers, player)
		}
	}
	if len(botPlayers) == 0 {
		return Action{}, false
	}
	mandatory := players[len(players)-1]
	for _, player := range botPlayers {
		playerAvailable := filterActionsByPlayer(available, player)
		if player == mandatory {
			return s.bots[player].GetAction(s.game.PlayerView(player), playerAvailable), true
		}
		if action, ok := s.bots[player].GetOptionalAction(s.game.PlayerView(player), playerAvailable); ok {
			return action, true
		}
	}
	return Action{}, false
}

func (s *Interactive) playHuman(fields []string) error {
	actionType, err := parseActionType(fields)
	if err != nil {
		return err
	}
	if err := s.apply(Action{Player: s.seat, ActionType: actionType}); err != nil {
		return err
	}
	if s.game.IsDone() {
		return s.finish()
	}
	RenderPlayerView(s.out, s.game.PlayerView(s.seat))
	return s.advance(false)
}

func (s *Interactive) skipWindow() error {
	return s.advance(true)
}

func (s *Interactive) suggest() error {
	view := s.game.PlayerView(s.seat)
	available := filterActionsByPlayer(
		AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands), s.seat)
	if len(available) == 0 {
		fmt.Fprintln(s.out, "no action expected from you")
		return nil
	}
	for _, action := range s.suggester.SuggestActions(view, available) {
		fmt.Fprintf(s.out, "  %v\n", action.ActionType)
	}
	return nil
}

func (s *Interactive) apply(action Action) error {
	if err := s.game.Play(action, s.rng); err != nil {
		return err
	}
	s.actionLog = append(s.actionLog, action)
	for player, bot := range s.bots {
		if bot == nil || !s.game.IsPlayerActive(player) {
			continue
		}
		playerView := s.game.PlayerView(player)
		if player == action.Player {
			bot.AfterPlayerAction(playerView, action)
		} else {
			bot.AfterOpponentAction(playerView, NewActionView(action))
		}
	}
	if s.game.IsPlayerActive(s.seat) {
		suggesterView := s.game.PlayerView(s.seat)
		if action.Player == s.seat {
			s.suggester.AfterPlayerAction(suggesterView, action)
		} else {
			s.suggester.AfterOpponentAction(suggesterView, NewActionView(action))
		}
	}
	return nil
}

// undo restores the position before the last action. Bots carry belief
// state, so they are rebuilt by replaying the shortened log against the
// original deal.
func (s *Interactive) undo() error {
	if len(s.actionLog) == 0 {
		return errors.New("nothing to undo")
	}
	log := s.actionLog[:len(s.actionLog)-1]
	s.rng = rand.New(rand.NewSource(int64(s.seed)))
	s.game = s.begin.Clone()
	s.actionLog = nil
	for player := range s.bots {
		if player != s.seat {
			s.bots[player] = NewBot(s.botType, s.game.PlayerView(player), s.settings)
		}
	}
	s.suggester = NewBot(s.botType, s.game.PlayerView(s.seat), s.settings)
	for _, action := range log {
		if err := s.apply(action); err != nil {
			return errors.Wrap(err, "replay while undoing")
		}
	}
	RenderPlayerView(s.out, s.game.PlayerView(s.seat))
	return nil
}

func (s *Interactive) finish() error {
	RenderGame(s.out, s.game)
	if winner, ok := s.game.Winner(); ok {
		fmt.Fprintf(s.out, "player %d wins\n", winner)
	}
	s.game = nil
	return nil
}

func windowPlayers(available []Action) []int {
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
	return players
}

func parseActionType(fields []string) (ActionType, error) {
	if len(fields) == 0 {
		return ActionType{}, errors.New("missing action")
	}
	name := fields[0]
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}
	switch name {
	case "income":
		return ActionType{Kind: Income}, nil
	case "foreign_aid":
		return ActionType{Kind: ForeignAid}, nil
	case "tax":
		return ActionType{Kind: Tax}, nil
	case "exchange":
		return ActionType{Kind: Exchange}, nil
	case "coup", "assassinate", "steal":
		target, err := strconv.Atoi(arg)
		if err != nil {
			return ActionType{}, errors.Errorf("%s takes a seat number", name)
		}
		kind := map[string]ActionKind{"coup": Coup, "assassinate": Assassinate, "steal": Steal}[name]
		return ActionType{Kind: kind, Target: target}, nil
	case "block_foreign_aid":
		return ActionType{Kind: BlockForeignAid}, nil
	case "block_assassination":
		return ActionType{Kind: BlockAssassination}, nil
	case "challenge":
		return ActionType{Kind: Challenge}, nil
	case "pass_challenge":
		return ActionType{Kind: PassChallenge}, nil
	case "pass_block":
		return ActionType{Kind: PassBlock}, nil
	case "take":
		return ActionType{Kind: TakeCard}, nil
	case "shuffle":
		return ActionType{Kind: ShuffleDeck}, nil
	case "block_steal", "show", "reveal", "drop":
		card, err := cards.Parse(arg)
		if err != nil {
			return ActionType{}, err
		}
		kind := map[string]ActionKind{
			"block_steal": BlockSteal, "show": ShowCard, "reveal": RevealCard, "drop": DropCard,
		}[name]
		return ActionType{Kind: kind, Card: card}, nil
	}
	return ActionType{}, errors.Errorf("unknown action: %q", name)
}

func parseInt(s string, out *int) error {
	value, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrapf(err, "parse %q", s)
	}
	*out = value
	return nil
}
