package coup

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/elsid/coup/cards"
)

// Bot decides which action to take given a player view and the actions
// the state machine will accept. GetOptionalAction is asked in response
// windows where declining is possible; returning false declines.
type Bot interface {
	SuggestActions(view PlayerView, available []Action) []Action
	SuggestOptionalActions(view PlayerView, available []Action) []Action
	GetAction(view PlayerView, available []Action) Action
	GetOptionalAction(view PlayerView, available []Action) (Action, bool)
	AfterPlayerAction(view PlayerView, action Action)
	AfterOpponentAction(view PlayerView, action ActionView)
}

// rngFromHand seeds a deterministic stream from the player's starting
// hand, so that bot decisions are reproducible per deal.
func rngFromHand(hand []cards.Card) *rand.Rand {
	h := fnv.New64a()
	for _, card := range hand {
		h.Write([]byte{byte(card)})
	}
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// RandomBot plays a uniformly random action among those it can actually
// perform, and flips a coin before answering optional windows.
type RandomBot struct {
	rng *rand.Rand
}

var _ Bot = (*RandomBot)(nil)

// NewRandomBot builds a RandomBot seeded from the view's hand.
func NewRandomBot(view PlayerView) *RandomBot {
	return &RandomBot{rng: rngFromHand(view.Cards)}
}

// SuggestActions filters the available actions to those the player can
// actually perform with the cards they hold.
func (b *RandomBot) SuggestActions(view PlayerView, available []Action) []Action {
	var result []Action
	for _, action := range available {
		if isAllowedActionType(action.ActionType, view.Cards) {
			result = append(result, action)
		}
	}
	return result
}

// SuggestOptionalActions is the same filter applied to optional windows.
func (b *RandomBot) SuggestOptionalActions(view PlayerView, available []Action) []Action {
	return b.SuggestActions(view, available)
}

// GetAction picks one suggested action at random.
func (b *RandomBot) GetAction(view PlayerView, available []Action) Action {
	suggested := b.SuggestActions(view, available)
	if len(suggested) == 0 {
		panic(fmt.Errorf("no action to suggest for %v among %v", view.StateType, available))
	}
	return suggested[b.rng.Intn(len(suggested))]
}

// GetOptionalAction flips a coin and either declines or answers with a
// random suggested action.
func (b *RandomBot) GetOptionalAction(view PlayerView, available []Action) (Action, bool) {
	if b.rng.Intn(2) == 0 {
		return Action{}, false
	}
	return b.GetAction(view, available), true
}

// AfterPlayerAction implements Bot; a RandomBot keeps no state.
func (b *RandomBot) AfterPlayerAction(PlayerView, Action) {}

// AfterOpponentAction implements Bot.
func (b *RandomBot) AfterOpponentAction(PlayerView, ActionView) {}

// HonestCarefulRandomBot plays only honest actions (it holds every card
// its claims imply) that the belief tracker declares safe, picking one
// pseudo-randomly. In optional windows it declines when nothing honest
// and safe is available.
type HonestCarefulRandomBot struct {
	tracker *Tracker
	rng     *rand.Rand
}

var _ Bot = (*HonestCarefulRandomBot)(nil)

// NewHonestCarefulRandomBot builds the bot and its tracker from the
// initial view.
func NewHonestCarefulRandomBot(view PlayerView, settings Settings) *HonestCarefulRandomBot {
	return &HonestCarefulRandomBot{
		tracker: NewTracker(view.Player, view.Cards, settings),
		rng:     rngFromHand(view.Cards),
	}
}

// Tracker exposes the bot's belief tracker.
func (b *HonestCarefulRandomBot) Tracker() *Tracker {
	return b.tracker
}

// SuggestActions filters the available actions to honest ones the
// tracker considers safe.
func (b *HonestCarefulRandomBot) SuggestActions(view PlayerView, available []Action) []Action {
	var result []Action
	for _, action := range available {
		if isHonestActionType(action.ActionType, view.Cards) &&
			b.tracker.IsSafeActionType(view.Player, action.ActionType) {
			result = append(result, action)
		}
	}
	return result
}

// SuggestOptionalActions is the same filter applied to optional windows.
func (b *HonestCarefulRandomBot) SuggestOptionalActions(view PlayerView, available []Action) []Action {
	return b.SuggestActions(view, available)
}

// GetAction picks one suggested action at random. Mandatory windows
// always contain at least one honest, safe action.
func (b *HonestCarefulRandomBot) GetAction(view PlayerView, available []Action) Action {
	suggested := b.SuggestActions(view, available)
	if len(suggested) == 0 {
		panic(fmt.Errorf("no action to suggest for %v among %v", view.StateType, available))
	}
	return suggested[b.rng.Intn(len(suggested))]
}

// GetOptionalAction answers with a random suggested action, declining
// when there is none.
func (b *HonestCarefulRandomBot) GetOptionalAction(view PlayerView, available []Action) (Action, bool) {
	suggested := b.SuggestOptionalActions(view, available)
	if len(suggested) == 0 {
		return Action{}, false
	}
	return suggested[b.rng.Intn(len(suggested))], true
}

// AfterPlayerAction feeds the bot's own action to the tracker.
func (b *HonestCarefulRandomBot) AfterPlayerAction(view PlayerView, action Action) {
	b.tracker.AfterPlayerAction(view, action)
}

// AfterOpponentAction feeds an observed opponent action to the tracker.
func (b *HonestCarefulRandomBot) AfterOpponentAction(view PlayerView, action ActionView) {
	b.tracker.AfterOpponentAction(view, action)
}

// isAllowedActionType reports whether the player holds the card the
// action would show, reveal or drop.
func isAllowedActionType(actionType ActionType, hand []cards.Card) bool {
	switch actionType.Kind {
	case ShowCard, RevealCard, DropCard:
		return handContains(hand, actionType.Card)
	}
	return true
}

// isHonestActionType reports whether the player holds every card the
// action's claim implies.
func isHonestActionType(actionType ActionType, hand []cards.Card) bool {
	switch actionType.Kind {
	case Tax, BlockForeignAid:
		return handContains(hand, cards.Duke)
	case Assassinate:
		return handContains(hand, cards.Assassin)
	case Exchange:
		return handContains(hand, cards.Ambassador)
	case Steal:
		return handContains(hand, cards.Captain)
	case BlockAssassination:
		return handContains(hand, cards.Contessa)
	case BlockSteal, ShowCard, RevealCard, DropCard:
		return handContains(hand, actionType.Card)
	}
	return true
}

func handContains(hand []cards.Card, card cards.Card) bool {
	for _, held := range hand {
		if held == card {
			return true
		}
	}
	return false
}
