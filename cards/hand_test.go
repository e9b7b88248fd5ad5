package cards

import (
	"math/rand"
	"testing"
)

func TestHandAddKeepsSorted(t *testing.T) {
	var hand Hand
	hand.AddCard(Duke)
	hand.AddCard(Assassin)
	hand.AddCard(Captain)
	expected := Hand{Assassin, Captain, Duke}
	if len(hand) != len(expected) {
		t.Fatalf("got %v, expected %v", hand, expected)
	}
	for i := range expected {
		if hand[i] != expected[i] {
			t.Fatalf("got %v, expected %v", hand, expected)
		}
	}
}

func TestHandDropRemovesOneCopy(t *testing.T) {
	hand := Hand{Captain, Captain, Duke}
	hand.DropCard(Captain)
	if hand.Count() != 2 {
		t.Errorf("hand has %d cards, expected 2", hand.Count())
	}
	if !hand.HasCard(Captain) {
		t.Error("hand lost both Captain copies")
	}
}

func TestHandDropPanicsOnMissingCard(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic dropping a missing card")
		}
	}()
	hand := Hand{Duke}
	hand.DropCard(Contessa)
}

func TestStackDeckPopReturnsTop(t *testing.T) {
	deck := StackDeck{Assassin, Duke}
	if card := deck.PopCard(); card != Duke {
		t.Errorf("popped %v, expected Duke", card)
	}
	deck.PushCard(Contessa)
	if card := deck.PopCard(); card != Contessa {
		t.Errorf("popped %v, expected Contessa", card)
	}
	if deck.Count() != 1 {
		t.Errorf("deck has %d cards, expected 1", deck.Count())
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck(3)
	if deck.Count() != 3*NumKinds {
		t.Errorf("deck has %d cards, expected %d", deck.Count(), 3*NumKinds)
	}
	set := NewSet(deck)
	for _, card := range All {
		if set.CountOf(card) != 3 {
			t.Errorf("deck has %d of %v, expected 3", set.CountOf(card), card)
		}
	}
}

func TestStackDeckShufflePreservesCards(t *testing.T) {
	deck := NewDeck(2)
	before := NewSet(deck)
	deck.Shuffle(rand.New(rand.NewSource(42)))
	after := NewSet(deck)
	if before != after {
		t.Errorf("shuffle changed the card population: %v != %v", before, after)
	}
}
