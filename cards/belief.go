package cards

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// BeliefHand is a partially-known hand: a sorted multiset of cards that
// are provably of a certain identity, plus a count of unknown cards.
type BeliefHand struct {
	known   []Card
	unknown int
}

var _ PlayerCards = (*BeliefHand)(nil)

// NewBeliefHand builds a hand of size total in which the given cards are
// known and the rest are unknown.
func NewBeliefHand(known []Card, total int) *BeliefHand {
	if len(known) > total {
		panic(fmt.Errorf("%d known cards exceed hand size %d", len(known), total))
	}
	h := &BeliefHand{known: append([]Card(nil), known...), unknown: total - len(known)}
	h.sort()
	return h
}

// HasCard reports whether the hand could hold card: true if any unknown
// card exists or the known multiset contains it.
func (h *BeliefHand) HasCard(card Card) bool {
	if card == Unknown {
		return h.unknown > 0
	}
	return h.unknown > 0 || h.ContainsKnown(card)
}

// Count returns the total number of cards, known and unknown.
func (h *BeliefHand) Count() int {
	return len(h.known) + h.unknown
}

// AddCard adds a card; adding Unknown increments the unknown count.
func (h *BeliefHand) AddCard(card Card) {
	if card == Unknown {
		h.unknown++
		return
	}
	h.known = append(h.known, card)
	h.sort()
}

// DropCard removes a known copy of card if one is present, otherwise it
// consumes an unknown card. Dropping Unknown always consumes an unknown.
func (h *BeliefHand) DropCard(card Card) {
	if card != Unknown {
		for i, c := range h.known {
			if c == card {
				h.known = append(h.known[:i], h.known[i+1:]...)
				return
			}
		}
	}
	if h.unknown == 0 {
		panic(fmt.Errorf("drop %v from belief hand %v with no unknown cards", card, h))
	}
	h.unknown--
}

// ContainsKnown reports whether the known multiset contains card.
func (h *BeliefHand) ContainsKnown(card Card) bool {
	for _, c := range h.known {
		if c == card {
			return true
		}
	}
	return false
}

// CountKnown returns the number of known copies of card.
func (h *BeliefHand) CountKnown(card Card) int {
	result := 0
	for _, c := range h.known {
		if c == card {
			result++
		}
	}
	return result
}

// Known returns the known cards, sorted. The slice must not be mutated.
func (h *BeliefHand) Known() []Card {
	return h.known
}

// UnknownCount returns the number of unknown cards.
func (h *BeliefHand) UnknownCount() int {
	return h.unknown
}

// HasUnknown reports whether any card in the hand is still unknown.
func (h *BeliefHand) HasUnknown() bool {
	return h.unknown > 0
}

// ReplaceUnknown refines the hand by fixing the identity of one unknown
// card. It panics if no unknown card remains.
func (h *BeliefHand) ReplaceUnknown(card Card) {
	if h.unknown == 0 {
		panic(fmt.Errorf("replace unknown in fully-known belief hand %v", h))
	}
	h.unknown--
	h.known = append(h.known, card)
	h.sort()
}

// Clone returns an independent copy.
func (h *BeliefHand) Clone() *BeliefHand {
	return &BeliefHand{known: append([]Card(nil), h.known...), unknown: h.unknown}
}

func (h *BeliefHand) sort() {
	sort.Slice(h.known, func(i, j int) bool { return h.known[i] < h.known[j] })
}

// String implements Stringer.
func (h *BeliefHand) String() string {
	parts := make([]string, 0, len(h.known)+1)
	for _, c := range h.known {
		parts = append(parts, c.String())
	}
	if h.unknown > 0 {
		parts = append(parts, fmt.Sprintf("?x%d", h.unknown))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BeliefDeck is a partially-known draw pile: a sorted multiset of cards
// known to be in the pile, plus a count of unknown cards. The pile has no
// order; shuffling it is a no-op.
type BeliefDeck struct {
	known   []Card
	unknown int
}

var _ Deck = (*BeliefDeck)(nil)

// NewBeliefDeck builds a pile of size total in which the given cards are
// known and the rest are unknown.
func NewBeliefDeck(known []Card, total int) *BeliefDeck {
	if len(known) > total {
		panic(fmt.Errorf("%d known cards exceed deck size %d", len(known), total))
	}
	d := &BeliefDeck{known: append([]Card(nil), known...), unknown: total - len(known)}
	d.sort()
	return d
}

// Count returns the total number of cards, known and unknown.
func (d *BeliefDeck) Count() int {
	return len(d.known) + d.unknown
}

// PopCard removes an unknown card when one exists, otherwise the last
// known card. Tracker replay wraps the deck in an InjectDeck or an
// UnknownDeck for every draw, so it does not use this default.
func (d *BeliefDeck) PopCard() Card {
	if d.unknown > 0 {
		d.unknown--
		return Unknown
	}
	if len(d.known) == 0 {
		panic("pop from empty belief deck")
	}
	card := d.known[len(d.known)-1]
	d.known = d.known[:len(d.known)-1]
	return card
}

// PushCard adds a card; pushing Unknown increments the unknown count.
func (d *BeliefDeck) PushCard(card Card) {
	if card == Unknown {
		d.unknown++
		return
	}
	d.known = append(d.known, card)
	d.sort()
}

// Shuffle is a no-op: the pile is an unordered partition already.
func (d *BeliefDeck) Shuffle(*rand.Rand) {}

// ContainsKnown reports whether the known multiset contains card.
func (d *BeliefDeck) ContainsKnown(card Card) bool {
	for _, c := range d.known {
		if c == card {
			return true
		}
	}
	return false
}

// CountKnown returns the number of known copies of card.
func (d *BeliefDeck) CountKnown(card Card) int {
	result := 0
	for _, c := range d.known {
		if c == card {
			result++
		}
	}
	return result
}

// Known returns the known cards, sorted. The slice must not be mutated.
func (d *BeliefDeck) Known() []Card {
	return d.known
}

// UnknownCount returns the number of unknown cards.
func (d *BeliefDeck) UnknownCount() int {
	return d.unknown
}

// HasUnknown reports whether any card in the pile is still unknown.
func (d *BeliefDeck) HasUnknown() bool {
	return d.unknown > 0
}

// DistinctKnown returns the distinct known card identities.
func (d *BeliefDeck) DistinctKnown() []Card {
	var result []Card
	for _, c := range d.known {
		if len(result) == 0 || result[len(result)-1] != c {
			result = append(result, c)
		}
	}
	return result
}

// ReplaceUnknown refines the pile by fixing the identity of one unknown
// card. It panics if no unknown card remains.
func (d *BeliefDeck) ReplaceUnknown(card Card) {
	if d.unknown == 0 {
		panic(fmt.Errorf("replace unknown in fully-known belief deck %v", d))
	}
	d.unknown--
	d.known = append(d.known, card)
	d.sort()
}

// Clone returns an independent copy.
func (d *BeliefDeck) Clone() *BeliefDeck {
	return &BeliefDeck{known: append([]Card(nil), d.known...), unknown: d.unknown}
}

func (d *BeliefDeck) sort() {
	sort.Slice(d.known, func(i, j int) bool { return d.known[i] < d.known[j] })
}

// String implements Stringer.
func (d *BeliefDeck) String() string {
	parts := make([]string, 0, len(d.known)+1)
	for _, c := range d.known {
		parts = append(parts, c.String())
	}
	if d.unknown > 0 {
		parts = append(parts, fmt.Sprintf("?x%d", d.unknown))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// InjectDeck wraps a BeliefDeck so that popping yields a specific card:
// a known copy is consumed when present, otherwise an unknown one. It is
// used when the tracker knows which card a draw produced.
type InjectDeck struct {
	Deck *BeliefDeck
	Card Card
}

var _ Deck = (*InjectDeck)(nil)

func (d *InjectDeck) Count() int { return d.Deck.Count() }

func (d *InjectDeck) PopCard() Card {
	if d.Deck.ContainsKnown(d.Card) {
		for i, c := range d.Deck.known {
			if c == d.Card {
				d.Deck.known = append(d.Deck.known[:i], d.Deck.known[i+1:]...)
				break
			}
		}
		return d.Card
	}
	if d.Deck.unknown == 0 {
		panic(fmt.Errorf("inject %v into pop from deck %v that cannot contain it", d.Card, d.Deck))
	}
	d.Deck.unknown--
	return d.Card
}

func (d *InjectDeck) PushCard(card Card) { d.Deck.PushCard(card) }
func (d *InjectDeck) Shuffle(rng *rand.Rand) { d.Deck.Shuffle(rng) }

// CanPop reports whether the wrapped pop could possibly yield the card.
func (d *InjectDeck) CanPop() bool {
	return d.Deck.ContainsKnown(d.Card) || d.Deck.HasUnknown()
}

// UnknownDeck wraps a BeliefDeck so that popping always consumes an
// unknown card. It is used when the identity of a drawn card is not
// observable and the belief keeps it unknown.
type UnknownDeck struct {
	Deck *BeliefDeck
}

var _ Deck = (*UnknownDeck)(nil)

func (d *UnknownDeck) Count() int { return d.Deck.Count() }

func (d *UnknownDeck) PopCard() Card {
	if d.Deck.unknown == 0 {
		panic(fmt.Errorf("pop unknown from deck %v with no unknown cards", d.Deck))
	}
	d.Deck.unknown--
	return Unknown
}

func (d *UnknownDeck) PushCard(card Card) { d.Deck.PushCard(card) }
func (d *UnknownDeck) Shuffle(rng *rand.Rand) { d.Deck.Shuffle(rng) }
