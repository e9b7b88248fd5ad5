package coup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/elsid/coup/cards"
)

// ActionKind identifies one of the closed set of moves a player can make.
type ActionKind uint8

const (
	Income ActionKind = iota
	ForeignAid
	Coup
	Tax
	Assassinate
	Exchange
	Steal
	BlockForeignAid
	BlockAssassination
	BlockSteal
	PassChallenge
	PassBlock
	Challenge
	ShowCard
	RevealCard
	TakeCard
	ShuffleDeck
	DropCard
)

var actionKindStr = [...]string{
	"Income",
	"ForeignAid",
	"Coup",
	"Tax",
	"Assassinate",
	"Exchange",
	"Steal",
	"BlockForeignAid",
	"BlockAssassination",
	"BlockSteal",
	"PassChallenge",
	"PassBlock",
	"Challenge",
	"ShowCard",
	"RevealCard",
	"TakeCard",
	"ShuffleDeck",
	"DropCard",
]

// String implements Stringer.
func (k ActionKind) String() string {
	return actionKindStr[k]
}

// HasTarget reports whether the kind carries a target player index.
func (k ActionKind) HasTarget() bool {
	return k == Coup || k == Assassinate || k == Steal
}

// HasCard reports whether the kind carries a card identity.
func (k ActionKind) HasCard() bool {
	switch k {
	case BlockSteal, ShowCard, RevealCard, DropCard:
		return true
	}
	return false
}

// ActionType is an action kind together with its parameter, if any:
// a target player for Coup/Assassinate/Steal, a card for
// BlockSteal/ShowCard/RevealCard/DropCard.
type ActionType struct {
	Kind   ActionKind
	Target int
	Card   cards.Card
}

// Action carries the acting player index and what they did.
type Action struct {
	Player     int        `json:"player"`
	ActionType ActionType `json:"action_type"`
}

// String implements Stringer.
func (t ActionType) String() string {
	switch {
	case t.Kind.HasTarget():
		return fmt.Sprintf("%v(%d)", t.Kind, t.Target)
	case t.Kind.HasCard():
		return fmt.Sprintf("%v(%v)", t.Kind, t.Card)
	}
	return t.Kind.String()
}

// String implements Stringer.
func (a Action) String() string {
	return fmt.Sprintf("%d:%v", a.Player, a.ActionType)
}

// MarshalJSON encodes the ActionType in externally tagged form: a bare
// string for parameterless kinds, {"Coup": 2} for targeted kinds and
// {"ShowCard": "Duke"} for card-carrying kinds.
func (t ActionType) MarshalJSON() ([]byte, error) {
	switch {
	case t.Kind.HasTarget():
		return json.Marshal(map[string]int{t.Kind.String(): t.Target})
	case t.Kind.HasCard():
		return json.Marshal(map[string]cards.Card{t.Kind.String(): t.Card})
	}
	return json.Marshal(t.Kind.String())
}

// UnmarshalJSON decodes the externally tagged form produced by MarshalJSON.
func (t *ActionType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		kind, err := parseActionKind(name)
		if err != nil {
			return err
		}
		if kind.HasTarget() || kind.HasCard() {
			return errors.Errorf("action type %v requires a parameter", kind)
		}
		*t = ActionType{Kind: kind}
		return nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return errors.Errorf("action type must have exactly one tag: %s", data)
	}
	for name, raw := range tagged {
		kind, err := parseActionKind(name)
		if err != nil {
			return err
		}
		result := ActionType{Kind: kind}
		switch {
		case kind.HasTarget():
			if err := json.Unmarshal(raw, &result.Target); err != nil {
				return err
			}
		case kind.HasCard():
			if err := json.Unmarshal(raw, &result.Card); err != nil {
				return err
			}
		default:
			return errors.Errorf("action type %v does not take a parameter", kind)
		}
		*t = result
	}
	return nil
}

func parseActionKind(name string) (ActionKind, error) {
	for i, s := range actionKindStr {
		if s == name {
			return ActionKind(i), nil
		}
	}
	return 0, errors.Errorf("invalid action type: %q", name)
}

// ClaimedCard returns the card identity a kind implicitly claims, and
// whether it claims one at all.
func (t ActionType) ClaimedCard() (cards.Card, bool) {
	switch t.Kind {
	case Tax, BlockForeignAid:
		return cards.Duke, true
	case Assassinate:
		return cards.Assassin, true
	case Exchange:
		return cards.Ambassador, true
	case Steal:
		return cards.Captain, true
	case BlockAssassination:
		return cards.Contessa, true
	case BlockSteal:
		return t.Card, true
	}
	return cards.Unknown, false
}
