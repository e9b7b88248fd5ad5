package cards

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Card represents one character card from the Coup deck.
type Card int

const (
	Unknown Card = iota
	Assassin
	Ambassador
	Captain
	Contessa
	Duke
)

// All lists every real card identity, in sort order. Unknown is excluded:
// it is a placeholder used only by partial-information containers.
var All = [...]Card{Assassin, Ambassador, Captain, Contessa, Duke}

// NumKinds is the number of distinct real card identities.
const NumKinds = len(All)

var cardStr = [...]string{
	"Unknown",
	"Assassin",
	"Ambassador",
	"Captain",
	"Contessa",
	"Duke",
}

// String implements Stringer.
func (c Card) String() string {
	return cardStr[c]
}

// Parse returns the Card named by s.
func Parse(s string) (Card, error) {
	for i, name := range cardStr {
		if name == s {
			return Card(i), nil
		}
	}
	return Unknown, errors.Errorf("invalid card: %q", s)
}

// MarshalJSON encodes the Card as its name.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a Card from its name.
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
