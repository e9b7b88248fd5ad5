package coup

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/elsid/coup/cards"
)

// ActionView is an action as observed by another player: card identities
// that are not publicly visible are blanked to Unknown. ShowCard and
// RevealCard expose their card; a DropCard returns a card face down.
type ActionView struct {
	Player     int
	ActionType ActionType
}

// NewActionView builds the public view of an action.
func NewActionView(action Action) ActionView {
	actionType := action.ActionType
	if actionType.Kind == DropCard {
		actionType.Card = cards.Unknown
	}
	return ActionView{Player: action.Player, ActionType: actionType}
}

// String implements Stringer.
func (v ActionView) String() string {
	return fmt.Sprintf("%d:%v", v.Player, v.ActionType)
}

// replayRand is the deterministic stream handed to the state machine
// during counterfactual replay. Belief decks are unordered partitions, so
// their shuffle never consumes it.
var replayRand = rand.New(rand.NewSource(0))

// BeliefState is one fully-specified game state consistent with the
// public history: the tracking player's own hand is fully known, every
// opponent hand and the deck are known/unknown partitions, and the
// machine-visible bookkeeping is carried along so that candidate actions
// can be replayed through the real transition function.
type BeliefState struct {
	stateType          StateType
	playerCoins        []int
	playerHands        []int
	playerCardsCounter []int
	hands              []*cards.BeliefHand
	deck               *cards.BeliefDeck
	revealed           []cards.Card
}

// Hand returns the belief about the given player's hand.
func (b *BeliefState) Hand(player int) *cards.BeliefHand {
	return b.hands[player]
}

// Deck returns the belief about the deck.
func (b *BeliefState) Deck() *cards.BeliefDeck {
	return b.deck
}

// Revealed returns the revealed-cards log.
func (b *BeliefState) Revealed() []cards.Card {
	return b.revealed
}

// StateType returns the machine state carried by this belief.
func (b *BeliefState) StateType() StateType {
	return b.stateType
}

// Clone returns an independent deep copy. The challenge source chain is
// shared: it is immutable once captured.
func (b *BeliefState) Clone() *BeliefState {
	result := &BeliefState{
		stateType:          b.stateType,
		playerCoins:        append([]int(nil), b.playerCoins...),
		playerHands:        append([]int(nil), b.playerHands...),
		playerCardsCounter: append([]int(nil), b.playerCardsCounter...),
		hands:              make([]*cards.BeliefHand, len(b.hands)),
		deck:               b.deck.Clone(),
		revealed:           append([]cards.Card(nil), b.revealed...),
	}
	for player := range b.hands {
		result.hands[player] = b.hands[player].Clone()
	}
	return result
}

// play replays one action against this belief through the state machine.
// A non-nil deck overrides the belief's own (used to wrap draws).
func (b *BeliefState) play(action Action, deck cards.Deck) error {
	if deck == nil {
		deck = b.deck
	}
	hands := make([]cards.PlayerCards, len(b.hands))
	for player := range b.hands {
		hands[player] = b.hands[player]
	}
	state := State{
		StateType:          &b.stateType,
		PlayerCoins:        b.playerCoins,
		PlayerHands:        b.playerHands,
		PlayerCardsCounter: b.playerCardsCounter,
		PlayerCards:        hands,
		Deck:               deck,
		RevealedCards:      &b.revealed,
	}
	return PlayAction(action, &state, replayRand)
}

// isValid reports whether no card identity is over-represented among the
// known positions: hands, deck and the revealed log together may hold at
// most cardsPerType copies of each.
func (b *BeliefState) isValid(cardsPerType int) bool {
	for _, card := range cards.All {
		if b.placedCount(card) > cardsPerType {
			return false
		}
	}
	return true
}

// placedCount counts the copies of card in provably known positions:
// known hand cards, known deck cards and the revealed log.
func (b *BeliefState) placedCount(card cards.Card) int {
	count := b.deck.CountKnown(card)
	for _, hand := range b.hands {
		count += hand.CountKnown(card)
	}
	for _, revealed := range b.revealed {
		if revealed == card {
			count++
		}
	}
	return count
}

func (b *BeliefState) opponentHoldsKnown(player int, card cards.Card) bool {
	for opponent, hand := range b.hands {
		if opponent != player && hand.ContainsKnown(card) {
			return true
		}
	}
	return false
}

func (b *BeliefState) isSafeActionType(player int, actionType ActionType, lastAction *ActionView, cardsPerType int) bool {
	switch actionType.Kind {
	case ForeignAid:
		return b.placedCount(cards.Duke) == cardsPerType &&
			!b.opponentHoldsKnown(player, cards.Duke)
	case Assassinate:
		return b.placedCount(cards.Duke) == cardsPerType &&
			!b.opponentHoldsKnown(player, cards.Contessa)
	case Steal:
		return b.placedCount(cards.Ambassador) == cardsPerType &&
			b.opponentHoldsKnown(player, cards.Ambassador) &&
			b.placedCount(cards.Captain) == cardsPerType &&
			b.opponentHoldsKnown(player, cards.Captain)
	case Challenge:
		if lastAction == nil {
			return true
		}
		claimed, ok := lastAction.ActionType.ClaimedCard()
		if !ok {
			return true
		}
		return !b.hands[lastAction.Player].ContainsKnown(claimed) &&
			b.placedCount(claimed) == cardsPerType
	}
	return true
}

func (b *BeliefState) key() string {
	var sb strings.Builder
	for _, hand := range b.hands {
		sb.WriteString(hand.String())
	}
	sb.WriteByte('|')
	sb.WriteString(b.deck.String())
	sb.WriteByte('|')
	for _, card := range b.revealed {
		sb.WriteString(card.String())
	}
	sb.WriteByte('|')
	sb.WriteString(b.stateType.String())
	return sb.String()
}

// String implements Stringer.
func (b *BeliefState) String() string {
	var sb strings.Builder
	for player, hand := range b.hands {
		fmt.Fprintf(&sb, " %d=%v", player, hand)
	}
	fmt.Fprintf(&sb, " deck=%v revealed=%v", b.deck, b.revealed)
	return sb.String()
}

// Tracker maintains the set of all game states consistent with the public
// history from one player's perspective, refining it on every observed
// action by replaying candidates through the state machine.
type Tracker struct {
	player       int
	cardsPerType int
	states       []*BeliefState
	lastAction   *ActionView
}

// NewTracker builds the initial belief set for the player holding the
// given two cards under the given settings.
func NewTracker(player int, hand []cards.Card, settings Settings) *Tracker {
	return &Tracker{
		player:       player,
		cardsPerType: settings.CardsPerType,
		states:       initialBeliefStates(player, hand, settings),
	}
}

// Len returns the number of belief states currently consistent.
func (t *Tracker) Len() int {
	return len(t.states)
}

// States returns the current belief set. It must not be mutated.
func (t *Tracker) States() []*BeliefState {
	return t.states
}

// AfterPlayerAction refines the belief set after the tracking player's
// own action. If the action drew from the deck, the drawn identity is
// recovered by comparing the new hand against the belief's recorded one
// and injected into the replay.
func (t *Tracker) AfterPlayerAction(view PlayerView, action Action) {
	playerHand := append([]cards.Card(nil), view.Cards...)
	sort.Slice(playerHand, func(i, j int) bool { return playerHand[i] < playerHand[j] })
	next := make([]*BeliefState, 0, len(t.states))
	for _, belief := range t.states {
		child := belief.Clone()
		var deck cards.Deck
		if action.ActionType.Kind == TakeCard {
			added := addedCards(playerHand, belief.hands[t.player].Known())
			if len(added) != 1 {
				glog.V(2).Infof("belief %v cannot explain drawn cards %v", belief, added)
				continue
			}
			inject := &cards.InjectDeck{Deck: child.deck, Card: added[0]}
			if !inject.CanPop() {
				glog.V(2).Infof("belief %v has no %v left in the deck", belief, added[0])
				continue
			}
			deck = inject
		}
		if err := child.play(action, deck); err != nil {
			glog.V(2).Infof("belief %v rejected own action %v: %v", belief, action, err)
			continue
		}
		next = append(next, child)
	}
	observed := NewActionView(action)
	t.lastAction = &observed
	t.finalize(next)
}

// AfterOpponentAction refines the belief set after an opponent's action,
// fanning each belief out over the hidden-card identities the observation
// is consistent with.
func (t *Tracker) AfterOpponentAction(view PlayerView, action ActionView) {
	next := make([]*BeliefState, 0, len(t.states))
	for _, belief := range t.states {
		next = t.expandOpponentAction(belief, action, next)
	}
	actionCopy := action
	t.lastAction = &actionCopy
	t.finalize(next)
}

func (t *Tracker) expandOpponentAction(belief *BeliefState, action ActionView, next []*BeliefState) []*BeliefState {
	player := action.Player
	base := Action{Player: player, ActionType: action.ActionType}
	switch action.ActionType.Kind {
	case ShowCard, RevealCard:
		card := action.ActionType.Card
		if belief.hands[player].ContainsKnown(card) {
			next = t.playChild(belief.Clone(), base, nil, next)
		}
		if belief.hands[player].HasUnknown() {
			child := belief.Clone()
			child.hands[player].ReplaceUnknown(card)
			next = t.playChild(child, base, nil, next)
		}
	case DropCard:
		for _, card := range distinctCards(belief.hands[player].Known()) {
			dropped := base
			dropped.ActionType.Card = card
			next = t.playChild(belief.Clone(), dropped, nil, next)
		}
		if belief.hands[player].HasUnknown() {
			dropped := base
			dropped.ActionType.Card = cards.Unknown
			next = t.playChild(belief.Clone(), dropped, nil, next)
		}
	case TakeCard:
		for _, card := range belief.deck.DistinctKnown() {
			child := belief.Clone()
			next = t.playChild(child, base, &cards.InjectDeck{Deck: child.deck, Card: card}, next)
		}
		if belief.deck.HasUnknown() {
			child := belief.Clone()
			next = t.playChild(child, base, &cards.UnknownDeck{Deck: child.deck}, next)
		}
	default:
		next = t.playChild(belief.Clone(), base, nil, next)
	}
	return next
}

func (t *Tracker) playChild(child *BeliefState, action Action, deck cards.Deck, next []*BeliefState) []*BeliefState {
	if err := child.play(action, deck); err != nil {
		glog.V(2).Infof("belief %v rejected opponent action %v: %v", child, action, err)
		return next
	}
	return append(next, child)
}

// IsSafeActionType reports whether no consistent game state can respond
// to the action in a way that strictly harms the actor.
func (t *Tracker) IsSafeActionType(player int, actionType ActionType) bool {
	for _, belief := range t.states {
		if !belief.isSafeActionType(player, actionType, t.lastAction, t.cardsPerType) {
			return false
		}
	}
	return true
}

func (t *Tracker) finalize(states []*BeliefState) {
	valid := states[:0]
	for _, belief := range states {
		if belief.isValid(t.cardsPerType) {
			valid = append(valid, belief)
		}
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].key() < valid[j].key() })
	deduped := valid[:0]
	for _, belief := range valid {
		if len(deduped) == 0 || deduped[len(deduped)-1].key() != belief.key() {
			deduped = append(deduped, belief)
		}
	}
	t.states = deduped
	glog.V(1).Infof("player %d belief set now has %d states", t.player, len(t.states))
}

// String implements Stringer.
func (t *Tracker) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "player=%d: %d", t.player, len(t.states))
	for i, belief := range t.states {
		fmt.Fprintf(&sb, "\n  [%d]%v", i, belief)
	}
	return sb.String()
}

// initialBeliefStates enumerates every placement of the remaining copies
// of the tracking player's own card values across the opponents' hands
// and the deck. The player's own seat index doubles as the deck slot in
// the placement targets.
func initialBeliefStates(player int, hand []cards.Card, settings Settings) []*BeliefState {
	ordered := append([]cards.Card(nil), hand...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
	unique := distinctCards(ordered)
	deckLen := settings.CardsPerType*cards.NumKinds - settings.PlayersNumber*CardsPerPlayer
	base := newBaseBeliefState(player, ordered, settings, deckLen)
	var targets []int
	for index := 0; index < settings.PlayersNumber; index++ {
		if index != player || deckLen > 0 {
			targets = append(targets, index)
		}
	}
	var result []*BeliefState
	switch len(unique) {
	case 1:
		if settings.CardsPerType > 2 {
			for _, placement := range combinationsWithReplacement(targets, settings.CardsPerType-2) {
				if state, ok := base.placeCopies(player, unique[0], placement); ok {
					result = append(result, state)
				}
			}
		}
	case 2:
		if settings.CardsPerType > 1 {
			for _, first := range combinationsWithReplacement(targets, settings.CardsPerType-1) {
				for _, second := range combinationsWithReplacement(targets, settings.CardsPerType-1) {
					state, ok := base.placeCopies(player, unique[0], first)
					if !ok {
						continue
					}
					if state, ok = state.placeCopiesInto(player, unique[1], second); ok {
						result = append(result, state)
					}
				}
			}
		}
	default:
		panic(fmt.Errorf("unsupported number of unique cards in hand: %v", unique))
	}
	if len(result) == 0 {
		result = append(result, base)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].key() < result[j].key() })
	deduped := result[:0]
	for _, state := range result {
		if len(deduped) == 0 || deduped[len(deduped)-1].key() != state.key() {
			deduped = append(deduped, state)
		}
	}
	return deduped
}

func newBaseBeliefState(player int, ordered []cards.Card, settings Settings, deckLen int) *BeliefState {
	state := &BeliefState{
		stateType:          StateType{Kind: StateTurn, Player: 0},
		playerCoins:        make([]int, settings.PlayersNumber),
		playerHands:        make([]int, settings.PlayersNumber),
		playerCardsCounter: make([]int, settings.PlayersNumber),
		hands:              make([]*cards.BeliefHand, settings.PlayersNumber),
		deck:               cards.NewBeliefDeck(nil, deckLen),
	}
	for index := 0; index < settings.PlayersNumber; index++ {
		state.playerCoins[index] = InitialCoins
		state.playerHands[index] = CardsPerPlayer
		state.playerCardsCounter[index] = CardsPerPlayer
		if index == player {
			state.hands[index] = cards.NewBeliefHand(ordered, CardsPerPlayer)
		} else {
			state.hands[index] = cards.NewBeliefHand(nil, CardsPerPlayer)
		}
	}
	return state
}

// placeCopies clones the state and places one copy of card per placement
// slot; a slot equal to the tracking player's index means the deck.
func (b *BeliefState) placeCopies(player int, card cards.Card, placement []int) (*BeliefState, bool) {
	return b.Clone().placeCopiesInto(player, card, placement)
}

func (b *BeliefState) placeCopiesInto(player int, card cards.Card, placement []int) (*BeliefState, bool) {
	for _, slot := range placement {
		if slot == player {
			if !b.deck.HasUnknown() {
				return nil, false
			}
			b.deck.ReplaceUnknown(card)
		} else {
			if !b.hands[slot].HasUnknown() {
				return nil, false
			}
			b.hands[slot].ReplaceUnknown(card)
		}
	}
	return b, true
}

// combinationsWithReplacement enumerates all non-decreasing selections of
// k items.
func combinationsWithReplacement(items []int, k int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	var result [][]int
	var current []int
	var recurse func(start int)
	recurse = func(start int) {
		if len(current) == k {
			result = append(result, append([]int(nil), current...))
			return
		}
		for i := start; i < len(items); i++ {
			current = append(current, items[i])
			recurse(i)
			current = current[:len(current)-1]
		}
	}
	recurse(0)
	return result
}

// addedCards returns the cards present in newHand but not matched in
// known. Both slices must be sorted.
func addedCards(newHand, known []cards.Card) []cards.Card {
	var added []cards.Card
	j := 0
	for _, card := range newHand {
		if j < len(known) && card == known[j] {
			j++
		} else {
			added = append(added, card)
		}
	}
	return added
}

func distinctCards(sorted []cards.Card) []cards.Card {
	var result []cards.Card
	for _, card := range sorted {
		if len(result) == 0 || result[len(result)-1] != card {
			result = append(result, card)
		}
	}
	return result
}
