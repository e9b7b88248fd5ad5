package cards

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	for _, card := range All {
		parsed, err := Parse(card.String())
		if err != nil {
			t.Fatalf("failed to parse %v: %v", card, err)
		}
		if parsed != card {
			t.Errorf("parsed %v, expected %v", parsed, card)
		}
	}
	if _, err := Parse("Printer"); err == nil {
		t.Error("expected an error for an unknown card name")
	}
}

func TestCardJSON(t *testing.T) {
	data, err := json.Marshal(Duke)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Duke"` {
		t.Errorf("got %s, expected %q", data, "Duke")
	}
	var card Card
	if err := json.Unmarshal(data, &card); err != nil {
		t.Fatal(err)
	}
	if card != Duke {
		t.Errorf("got %v, expected Duke", card)
	}
}

func TestNewSet(t *testing.T) {
	set := NewSet([]Card{Duke, Duke, Captain})
	if set.CountOf(Duke) != 2 {
		t.Errorf("set has %d Dukes, expected 2", set.CountOf(Duke))
	}
	if set.CountOf(Captain) != 1 {
		t.Errorf("set has %d Captains, expected 1", set.CountOf(Captain))
	}
	if set.Len() != 3 {
		t.Errorf("set has len %d, expected 3", set.Len())
	}
}

func TestSetRemovePanicsOnMissingCard(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic removing a missing card")
		}
	}()
	NewSet(nil).Remove(Duke)
}

func TestSetAsSlice(t *testing.T) {
	set := NewSet([]Card{Contessa, Assassin, Contessa})
	slice := set.AsSlice()
	expected := []Card{Assassin, Contessa, Contessa}
	if len(slice) != len(expected) {
		t.Fatalf("got %v, expected %v", slice, expected)
	}
	for i := range expected {
		if slice[i] != expected[i] {
			t.Errorf("got %v, expected %v", slice, expected)
			break
		}
	}
}
