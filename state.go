package coup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/elsid/coup/cards"
)

// StateKind identifies which move the state machine expects next.
type StateKind uint8

const (
	StateTurn StateKind = iota
	StateForeignAid
	StateTax
	StateExchange
	StateAssassination
	StateSteal
	StateChallenge
	StateBlockForeignAid
	StateNeedCards
	StateTookCards
	StateDroppedCard
	StateBlockAssassination
	StateBlockSteal
	StateLostInfluence
)

var stateKindStr = [...]string{
	"Turn",
	"ForeignAid",
	"Tax",
	"Exchange",
	"Assassination",
	"Steal",
	"Challenge",
	"BlockForeignAid",
	"NeedCards",
	"TookCards",
	"DroppedCard",
	"BlockAssassination",
	"BlockSteal",
	"LostInfluence",
}

// String implements Stringer.
func (k StateKind) String() string {
	return stateKindStr[k]
}

// StateType is a tagged variant describing the expected next move.
// Which fields are meaningful depends on Kind:
//
//	Turn               Player
//	ForeignAid         Player
//	Tax                Player
//	Exchange           Player
//	Assassination      Player, Target, CanChallenge
//	Steal              Player, Target, CanChallenge
//	Challenge          CurrentPlayer, Source, Challenge
//	BlockForeignAid    Player, Target
//	NeedCards          Player, Count
//	TookCards          Player, Count
//	DroppedCard        Player, Count (cards left to drop)
//	BlockAssassination Player, Target
//	BlockSteal         Player, Target, Card
//	LostInfluence      Player, CurrentPlayer
//
// Source is the parent state a nested challenge was raised against; it is
// shared by reference and never mutated, so the challenge's outcome can
// resume it.
type StateType struct {
	Kind          StateKind
	Player        int
	Target        int
	CanChallenge  bool
	Card          cards.Card
	Count         int
	CurrentPlayer int
	Source        *StateType
	Challenge     ChallengeState
}

// ChallengeKind identifies a step of the challenge sub-machine.
type ChallengeKind uint8

const (
	ChallengeInitial ChallengeKind = iota
	ChallengeShownCard
	ChallengeInitiatorRevealedCard
	ChallengeDeckShuffled
	ChallengeTookCard
	ChallengeTargetRevealedCard
)

var challengeKindStr = [...]string{
	"Initial",
	"ShownCard",
	"InitiatorRevealedCard",
	"DeckShuffled",
	"TookCard",
	"TargetRevealedCard",
}

// String implements Stringer.
func (k ChallengeKind) String() string {
	return challengeKindStr[k]
}

// ChallengeState is the state of a nested challenge. Initiator is the
// challenging player, Target the claimant who must prove, Card the card
// the claim implies. TookCard and TargetRevealedCard are terminal.
type ChallengeState struct {
	Kind      ChallengeKind
	Initiator int
	Target    int
	Card      cards.Card
}

// String implements Stringer.
func (s ChallengeState) String() string {
	switch s.Kind {
	case ChallengeInitial:
		return fmt.Sprintf("Initial{initiator: %d, target: %d, card: %v}", s.Initiator, s.Target, s.Card)
	case ChallengeShownCard:
		return fmt.Sprintf("ShownCard{initiator: %d, target: %d}", s.Initiator, s.Target)
	case ChallengeInitiatorRevealedCard:
		return fmt.Sprintf("InitiatorRevealedCard{target: %d}", s.Target)
	case ChallengeDeckShuffled:
		return fmt.Sprintf("DeckShuffled{target: %d}", s.Target)
	}
	return s.Kind.String()
}

// String implements Stringer.
func (t StateType) String() string {
	switch t.Kind {
	case StateTurn, StateForeignAid, StateTax, StateExchange:
		return fmt.Sprintf("%v{player: %d}", t.Kind, t.Player)
	case StateAssassination, StateSteal:
		return fmt.Sprintf("%v{player: %d, target: %d, can_challenge: %v}", t.Kind, t.Player, t.Target, t.CanChallenge)
	case StateChallenge:
		return fmt.Sprintf("Challenge{current_player: %d, source: %v, state: %v}", t.CurrentPlayer, t.Source, t.Challenge)
	case StateBlockForeignAid, StateBlockAssassination:
		return fmt.Sprintf("%v{player: %d, target: %d}", t.Kind, t.Player, t.Target)
	case StateBlockSteal:
		return fmt.Sprintf("BlockSteal{player: %d, target: %d, card: %v}", t.Player, t.Target, t.Card)
	case StateNeedCards, StateTookCards:
		return fmt.Sprintf("%v{player: %d, count: %d}", t.Kind, t.Player, t.Count)
	case StateDroppedCard:
		return fmt.Sprintf("DroppedCard{player: %d, left: %d}", t.Player, t.Count)
	case StateLostInfluence:
		return fmt.Sprintf("LostInfluence{player: %d, current_player: %d}", t.Player, t.CurrentPlayer)
	}
	return t.Kind.String()
}

type stateTurnJSON struct {
	Player int `json:"player"`
}

type stateTargetedJSON struct {
	Player int `json:"player"`
	Target int `json:"target"`
}

type stateAttackJSON struct {
	Player       int  `json:"player"`
	Target       int  `json:"target"`
	CanChallenge bool `json:"can_challenge"`
}

type stateBlockStealJSON struct {
	Player int        `json:"player"`
	Target int        `json:"target"`
	Card   cards.Card `json:"card"`
}

type stateCountJSON struct {
	Player int `json:"player"`
	Count  int `json:"count"`
}

type stateLeftJSON struct {
	Player int `json:"player"`
	Left   int `json:"left"`
}

type stateChallengeJSON struct {
	CurrentPlayer int             `json:"current_player"`
	Source        *StateType      `json:"source"`
	State         json.RawMessage `json:"state"`
}

type stateLostInfluenceJSON struct {
	Player        int `json:"player"`
	CurrentPlayer int `json:"current_player"`
}

type challengeInitialJSON struct {
	Initiator int        `json:"initiator"`
	Target    int        `json:"target"`
	Card      cards.Card `json:"card"`
}

type challengeShownJSON struct {
	Initiator int `json:"initiator"`
	Target    int `json:"target"`
}

type challengeTargetJSON struct {
	Target int `json:"target"`
}

// MarshalJSON encodes the ChallengeState in externally tagged form,
// mirroring the action alphabet: {"Initial": {...}} or a bare string for
// the terminal variants.
func (s ChallengeState) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ChallengeInitial:
		return tagJSON("Initial", challengeInitialJSON{s.Initiator, s.Target, s.Card})
	case ChallengeShownCard:
		return tagJSON("ShownCard", challengeShownJSON{s.Initiator, s.Target})
	case ChallengeInitiatorRevealedCard:
		return tagJSON("InitiatorRevealedCard", challengeTargetJSON{s.Target})
	case ChallengeDeckShuffled:
		return tagJSON("DeckShuffled", challengeTargetJSON{s.Target})
	}
	return json.Marshal(s.Kind.String())
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (s *ChallengeState) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		switch name {
		case "TookCard":
			*s = ChallengeState{Kind: ChallengeTookCard}
		case "TargetRevealedCard":
			*s = ChallengeState{Kind: ChallengeTargetRevealedCard}
		default:
			return errors.Errorf("invalid challenge state: %q", name)
		}
		return nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return errors.Errorf("challenge state must have exactly one tag: %s", data)
	}
	for name, raw := range tagged {
		switch name {
		case "Initial":
			var v challengeInitialJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*s = ChallengeState{Kind: ChallengeInitial, Initiator: v.Initiator, Target: v.Target, Card: v.Card}
		case "ShownCard":
			var v challengeShownJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*s = ChallengeState{Kind: ChallengeShownCard, Initiator: v.Initiator, Target: v.Target}
		case "InitiatorRevealedCard":
			var v challengeTargetJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*s = ChallengeState{Kind: ChallengeInitiatorRevealedCard, Target: v.Target}
		case "DeckShuffled":
			var v challengeTargetJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*s = ChallengeState{Kind: ChallengeDeckShuffled, Target: v.Target}
		default:
			return errors.Errorf("invalid challenge state: %q", name)
		}
	}
	return nil
}

// MarshalJSON encodes the StateType in externally tagged form, e.g.
// {"Turn": {"player": 0}} or {"BlockSteal": {"player": 1, "target": 0,
// "card": "Ambassador"}}.
func (t StateType) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case StateTurn, StateForeignAid, StateTax, StateExchange:
		return tagJSON(t.Kind.String(), stateTurnJSON{t.Player})
	case StateAssassination, StateSteal:
		return tagJSON(t.Kind.String(), stateAttackJSON{t.Player, t.Target, t.CanChallenge})
	case StateChallenge:
		state, err := json.Marshal(t.Challenge)
		if err != nil {
			return nil, err
		}
		return tagJSON("Challenge", stateChallengeJSON{t.CurrentPlayer, t.Source, state})
	case StateBlockForeignAid, StateBlockAssassination:
		return tagJSON(t.Kind.String(), stateTargetedJSON{t.Player, t.Target})
	case StateBlockSteal:
		return tagJSON("BlockSteal", stateBlockStealJSON{t.Player, t.Target, t.Card})
	case StateNeedCards, StateTookCards:
		return tagJSON(t.Kind.String(), stateCountJSON{t.Player, t.Count})
	case StateDroppedCard:
		return tagJSON("DroppedCard", stateLeftJSON{t.Player, t.Count})
	case StateLostInfluence:
		return tagJSON("LostInfluence", stateLostInfluenceJSON{t.Player, t.CurrentPlayer})
	}
	return nil, errors.Errorf("invalid state kind: %d", t.Kind)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (t *StateType) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return errors.Errorf("state type must have exactly one tag: %s", data)
	}
	for name, raw := range tagged {
		kind, err := parseStateKind(name)
		if err != nil {
			return err
		}
		result := StateType{Kind: kind}
		switch kind {
		case StateTurn, StateForeignAid, StateTax, StateExchange:
			var v stateTurnJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.Player = v.Player
		case StateAssassination, StateSteal:
			var v stateAttackJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.Player, result.Target, result.CanChallenge = v.Player, v.Target, v.CanChallenge
		case StateChallenge:
			var v stateChallengeJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.CurrentPlayer = v.CurrentPlayer
			result.Source = v.Source
			if err := json.Unmarshal(v.State, &result.Challenge); err != nil {
				return err
			}
		case StateBlockForeignAid, StateBlockAssassination:
			var v stateTargetedJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.Player, result.Target = v.Player, v.Target
		case StateBlockSteal:
			var v stateBlockStealJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.Player, result.Target, result.Card = v.Player, v.Target, v.Card
		case StateNeedCards, StateTookCards:
			var v stateCountJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.Player, result.Count = v.Player, v.Count
		case StateDroppedCard:
			var v stateLeftJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.Player, result.Count = v.Player, v.Left
		case StateLostInfluence:
			var v stateLostInfluenceJSON
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			result.Player, result.CurrentPlayer = v.Player, v.CurrentPlayer
		}
		*t = result
	}
	return nil
}

func parseStateKind(name string) (StateKind, error) {
	for i, s := range stateKindStr {
		if s == name {
			return StateKind(i), nil
		}
	}
	return 0, errors.Errorf("invalid state type: %q", name)
}

func tagJSON(name string, value interface{}) ([]byte, error) {
	return json.Marshal(map[string]interface{}{name: value})
}
