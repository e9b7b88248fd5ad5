package cards

import "testing"

func TestBeliefHandHasCard(t *testing.T) {
	hand := NewBeliefHand([]Card{Duke}, 2)
	if !hand.HasCard(Duke) {
		t.Error("hand must have the known Duke")
	}
	if !hand.HasCard(Contessa) {
		t.Error("hand with an unknown card can hold any identity")
	}
	full := NewBeliefHand([]Card{Duke, Duke}, 2)
	if full.HasCard(Contessa) {
		t.Error("fully-known hand without a Contessa cannot hold one")
	}
	if full.HasCard(Unknown) {
		t.Error("fully-known hand has no unknown cards")
	}
}

func TestBeliefHandDropPrefersKnown(t *testing.T) {
	hand := NewBeliefHand([]Card{Duke}, 2)
	hand.DropCard(Duke)
	if hand.ContainsKnown(Duke) {
		t.Error("known Duke must be consumed first")
	}
	if hand.UnknownCount() != 1 {
		t.Errorf("hand has %d unknown cards, expected 1", hand.UnknownCount())
	}
	hand.DropCard(Contessa)
	if hand.UnknownCount() != 0 {
		t.Errorf("dropping an unheld identity must consume an unknown, have %d left", hand.UnknownCount())
	}
}

func TestBeliefHandAddUnknown(t *testing.T) {
	hand := NewBeliefHand(nil, 0)
	hand.AddCard(Unknown)
	if hand.Count() != 1 || hand.UnknownCount() != 1 {
		t.Errorf("hand %v, expected one unknown card", hand)
	}
}

func TestBeliefHandReplaceUnknown(t *testing.T) {
	hand := NewBeliefHand(nil, 2)
	hand.ReplaceUnknown(Captain)
	if !hand.ContainsKnown(Captain) || hand.UnknownCount() != 1 {
		t.Errorf("hand %v, expected one known Captain and one unknown", hand)
	}
	if hand.Count() != 2 {
		t.Errorf("refinement changed the hand size to %d", hand.Count())
	}
}

func TestBeliefDeckPushPop(t *testing.T) {
	deck := NewBeliefDeck(nil, 2)
	deck.PushCard(Duke)
	if !deck.ContainsKnown(Duke) || deck.Count() != 3 {
		t.Errorf("deck %v, expected a known Duke among 3 cards", deck)
	}
	if card := deck.PopCard(); card != Unknown {
		t.Errorf("popped %v, expected the unknown cards to go first", card)
	}
}

func TestInjectDeckPopConsumesKnownCopy(t *testing.T) {
	deck := NewBeliefDeck([]Card{Duke}, 3)
	inject := &InjectDeck{Deck: deck, Card: Duke}
	if card := inject.PopCard(); card != Duke {
		t.Errorf("popped %v, expected Duke", card)
	}
	if deck.ContainsKnown(Duke) {
		t.Error("the known Duke copy must be consumed")
	}
	if deck.UnknownCount() != 2 {
		t.Errorf("deck has %d unknown cards, expected 2", deck.UnknownCount())
	}
}

func TestInjectDeckPopConsumesUnknown(t *testing.T) {
	deck := NewBeliefDeck(nil, 2)
	inject := &InjectDeck{Deck: deck, Card: Captain}
	if card := inject.PopCard(); card != Captain {
		t.Errorf("popped %v, expected Captain", card)
	}
	if deck.UnknownCount() != 1 {
		t.Errorf("deck has %d unknown cards, expected 1", deck.UnknownCount())
	}
}

func TestUnknownDeckPop(t *testing.T) {
	deck := NewBeliefDeck([]Card{Duke}, 3)
	wrapped := &UnknownDeck{Deck: deck}
	if card := wrapped.PopCard(); card != Unknown {
		t.Errorf("popped %v, expected Unknown", card)
	}
	if !deck.ContainsKnown(Duke) || deck.UnknownCount() != 1 {
		t.Errorf("deck %v, expected the known Duke untouched and 1 unknown", deck)
	}
}
