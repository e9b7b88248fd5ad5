package coup

import (
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/elsid/coup/cards"
)

// Settings configures a game.
type Settings struct {
	PlayersNumber int `json:"players_number"`
	CardsPerType  int `json:"cards_per_type"`
}

// PlayerView is the game as seen by one player: their own hand plus
// everything public.
type PlayerView struct {
	Step          int          `json:"step"`
	Turn          int          `json:"turn"`
	Round         int          `json:"round"`
	Player        int          `json:"player"`
	Coins         int          `json:"coins"`
	Cards         []cards.Card `json:"cards"`
	StateType     StateType    `json:"state_type"`
	PlayerCoins   []int        `json:"player_coins"`
	PlayerHands   []int        `json:"player_hands"`
	PlayerCards   []int        `json:"player_cards"`
	RevealedCards []cards.Card `json:"revealed_cards"`
	Deck          int          `json:"deck"`
}

// AnonymousView is the public game state, with no hand attached.
type AnonymousView struct {
	Step          int          `json:"step"`
	Turn          int          `json:"turn"`
	Round         int          `json:"round"`
	StateType     StateType    `json:"state_type"`
	PlayerCoins   []int        `json:"player_coins"`
	PlayerHands   []int        `json:"player_hands"`
	PlayerCards   []int        `json:"player_cards"`
	RevealedCards []cards.Card `json:"revealed_cards"`
	Deck          int          `json:"deck"`
}

// Game owns the authoritative state of one game and wraps the state
// machine for real play.
type Game struct {
	step               int
	turn               int
	round              int
	player             int
	stateType          StateType
	playerCoins        []int
	playerHands        []int
	playerCardsCounter []int
	playerCards        []cards.Hand
	revealedCards      []cards.Card
	deck               cards.StackDeck
}

// NewGame builds a game with a freshly shuffled deck and the standard
// deal: every seat gets two cards and the starting coins.
func NewGame(settings Settings, rng *rand.Rand) *Game {
	deck := cards.NewDeck(settings.CardsPerType)
	deck.Shuffle(rng)
	playerCards := make([]cards.Hand, settings.PlayersNumber)
	for i := 0; i < CardsPerPlayer; i++ {
		for player := range playerCards {
			playerCards[player] = append(playerCards[player], deck.PopCard())
		}
	}
	for player := range playerCards {
		var hand cards.Hand
		for _, card := range playerCards[player] {
			hand.AddCard(card)
		}
		playerCards[player] = hand
	}
	return newGame(playerCards, deck, settings.PlayersNumber)
}

// NewCustomGame builds a game from an explicit deal: one hand per seat
// and the remaining deck, bottom card first. It serves tests and the
// deal enumeration of the game-tree adapter.
func NewCustomGame(playerCards [][]cards.Card, deck []cards.Card) *Game {
	hands := make([]cards.Hand, len(playerCards))
	for player, dealt := range playerCards {
		for _, card := range dealt {
			hands[player].AddCard(card)
		}
	}
	return newGame(hands, cards.StackDeck(deck).Clone(), len(playerCards))
}

func newGame(playerCards []cards.Hand, deck cards.StackDeck, playersNumber int) *Game {
	game := &Game{
		stateType:          StateType{Kind: StateTurn, Player: 0},
		playerCoins:        make([]int, playersNumber),
		playerHands:        make([]int, playersNumber),
		playerCardsCounter: make([]int, playersNumber),
		playerCards:        playerCards,
		deck:               deck,
	}
	for player := 0; player < playersNumber; player++ {
		game.playerCoins[player] = InitialCoins
		game.playerHands[player] = CardsPerPlayer
		game.playerCardsCounter[player] = CardsPerPlayer
	}
	return game
}

// Step returns the number of successfully applied actions.
func (g *Game) Step() int {
	return g.step
}

// Turn returns the number of completed turns.
func (g *Game) Turn() int {
	return g.turn
}

// Round returns the number of completed table rounds.
func (g *Game) Round() int {
	return g.round
}

// Settings reconstructs the settings the game was built with.
func (g *Game) Settings() Settings {
	total := len(g.deck) + len(g.revealedCards)
	for player := range g.playerCards {
		total += g.playerCardsCounter[player]
	}
	return Settings{
		PlayersNumber: len(g.playerHands),
		CardsPerType:  total / cards.NumKinds,
	}
}

// StateType returns the current expected-move descriptor.
func (g *Game) StateType() StateType {
	return g.stateType
}

// AnonymousView builds the public view of the game.
func (g *Game) AnonymousView() AnonymousView {
	return AnonymousView{
		Step:          g.step,
		Turn:          g.turn,
		Round:         g.round,
		StateType:     g.stateType,
		PlayerCoins:   append([]int(nil), g.playerCoins...),
		PlayerHands:   append([]int(nil), g.playerHands...),
		PlayerCards:   append([]int(nil), g.playerCardsCounter...),
		RevealedCards: append([]cards.Card(nil), g.revealedCards...),
		Deck:          len(g.deck),
	}
}

// PlayerView builds the view of the game as seen by player.
func (g *Game) PlayerView(player int) PlayerView {
	return PlayerView{
		Step:          g.step,
		Turn:          g.turn,
		Round:         g.round,
		Player:        player,
		Coins:         g.playerCoins[player],
		Cards:         append([]cards.Card(nil), g.playerCards[player]...),
		StateType:     g.stateType,
		PlayerCoins:   append([]int(nil), g.playerCoins...),
		PlayerHands:   append([]int(nil), g.playerHands...),
		PlayerCards:   append([]int(nil), g.playerCardsCounter...),
		RevealedCards: append([]cards.Card(nil), g.revealedCards...),
		Deck:          len(g.deck),
	}
}

// IsPlayerActive reports whether the player still has hidden influence.
func (g *Game) IsPlayerActive(player int) bool {
	return g.playerHands[player] > 0
}

// IsDone reports whether at most one player remains.
func (g *Game) IsDone() bool {
	active := 0
	for _, hand := range g.playerHands {
		if hand > 0 {
			active++
		}
	}
	return active <= 1
}

// Winner returns the last player with hidden influence once the game is
// done.
func (g *Game) Winner() (int, bool) {
	if !g.IsDone() {
		return 0, false
	}
	for player, hand := range g.playerHands {
		if hand > 0 {
			return player, true
		}
	}
	return 0, false
}

// Play applies one action through the state machine, advancing the
// step/turn/round bookkeeping on success.
func (g *Game) Play(action Action, rng *rand.Rand) error {
	playerCards := make([]cards.PlayerCards, len(g.playerCards))
	for player := range g.playerCards {
		playerCards[player] = &g.playerCards[player]
	}
	state := State{
		StateType:          &g.stateType,
		PlayerCoins:        g.playerCoins,
		PlayerHands:        g.playerHands,
		PlayerCardsCounter: g.playerCardsCounter,
		PlayerCards:        playerCards,
		Deck:               &g.deck,
		RevealedCards:      &g.revealedCards,
	}
	if err := PlayAction(action, &state, rng); err != nil {
		return errors.Wrapf(err, "state machine rejected %v", action)
	}
	g.step++
	if g.stateType.Kind == StateTurn {
		g.turn++
		if g.player >= g.stateType.Player {
			g.round++
		}
		g.player = g.stateType.Player
	}
	glog.V(2).Infof("step %d: %v -> %v", g.step, action, g.stateType)
	return nil
}

// Clone returns an independent snapshot of the game, usable for undo.
func (g *Game) Clone() *Game {
	result := &Game{
		step:               g.step,
		turn:               g.turn,
		round:              g.round,
		player:             g.player,
		stateType:          g.stateType,
		playerCoins:        append([]int(nil), g.playerCoins...),
		playerHands:        append([]int(nil), g.playerHands...),
		playerCardsCounter: append([]int(nil), g.playerCardsCounter...),
		playerCards:        make([]cards.Hand, len(g.playerCards)),
		revealedCards:      append([]cards.Card(nil), g.revealedCards...),
		deck:               g.deck.Clone(),
	}
	for player := range g.playerCards {
		result.playerCards[player] = g.playerCards[player].Clone()
	}
	return result
}

// PlayerHand returns a copy of the player's current hand.
func (g *Game) PlayerHand(player int) []cards.Card {
	return append([]cards.Card(nil), g.playerCards[player]...)
}

// DeckSize returns the number of cards left in the deck.
func (g *Game) DeckSize() int {
	return len(g.deck)
}
