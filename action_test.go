package coup

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elsid/coup/cards"
)

func TestActionJSONUnitKind(t *testing.T) {
	data, err := json.Marshal(action(0, Income))
	require.NoError(t, err)
	require.JSONEq(t, `{"player":0,"action_type":"Income"}`, string(data))
	var decoded Action
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, action(0, Income), decoded)
}

func TestActionJSONTargetedKind(t *testing.T) {
	data, err := json.Marshal(targeted(1, Coup, 3))
	require.NoError(t, err)
	require.JSONEq(t, `{"player":1,"action_type":{"Coup":3}}`, string(data))
	var decoded Action
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, targeted(1, Coup, 3), decoded)
}

func TestActionJSONCardedKind(t *testing.T) {
	data, err := json.Marshal(carded(2, BlockSteal, cards.Ambassador))
	require.NoError(t, err)
	require.JSONEq(t, `{"player":2,"action_type":{"BlockSteal":"Ambassador"}}`, string(data))
	var decoded Action
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, carded(2, BlockSteal, cards.Ambassador), decoded)
}

func TestActionJSONRejectsUnknownKind(t *testing.T) {
	var decoded Action
	err := json.Unmarshal([]byte(`{"player":0,"action_type":"Meditate"}`), &decoded)
	require.Error(t, err)
}

func TestStateTypeJSONTurn(t *testing.T) {
	state := StateType{Kind: StateTurn, Player: 2}
	data, err := json.Marshal(state)
	require.NoError(t, err)
	require.JSONEq(t, `{"Turn":{"player":2}}`, string(data))
	var decoded StateType
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, state, decoded)
}

func TestStateTypeJSONAssassination(t *testing.T) {
	state := StateType{Kind: StateAssassination, Player: 0, Target: 2, CanChallenge: true}
	data, err := json.Marshal(state)
	require.NoError(t, err)
	require.JSONEq(t, `{"Assassination":{"player":0,"target":2,"can_challenge":true}}`, string(data))
	var decoded StateType
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, state, decoded)
}

func TestStateTypeJSONChallengeNested(t *testing.T) {
	state := StateType{
		Kind:          StateChallenge,
		CurrentPlayer: 1,
		Source:        &StateType{Kind: StateTax, Player: 1},
		Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: 0, Target: 1, Card: cards.Duke},
	}
	data, err := json.Marshal(state)
	require.NoError(t, err)
	var decoded StateType
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, state, decoded)
}

func TestChallengeStateJSONTerminal(t *testing.T) {
	data, err := json.Marshal(ChallengeState{Kind: ChallengeTookCard})
	require.NoError(t, err)
	require.JSONEq(t, `"TookCard"`, string(data))
	var decoded ChallengeState
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, ChallengeState{Kind: ChallengeTookCard}, decoded)
}

func TestStateTypeJSONDroppedCardUsesLeftTag(t *testing.T) {
	state := StateType{Kind: StateDroppedCard, Player: 3, Count: 1}
	data, err := json.Marshal(state)
	require.NoError(t, err)
	require.JSONEq(t, `{"DroppedCard":{"player":3,"left":1}}`, string(data))
	var decoded StateType
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, state, decoded)
}

func TestClaimedCard(t *testing.T) {
	claimed, ok := ActionType{Kind: Tax}.ClaimedCard()
	require.True(t, ok)
	require.Equal(t, cards.Duke, claimed)
	claimed, ok = ActionType{Kind: BlockSteal, Card: cards.Captain}.ClaimedCard()
	require.True(t, ok)
	require.Equal(t, cards.Captain, claimed)
	_, ok = ActionType{Kind: Income}.ClaimedCard()
	require.False(t, ok)
}
