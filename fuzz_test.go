package coup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFuzzTwoPlayersSingleCopies(t *testing.T) {
	require.NoError(t, RunFuzz(42, 5, Settings{PlayersNumber: 2, CardsPerType: 1}))
}

func TestFuzzFourPlayers(t *testing.T) {
	require.NoError(t, RunFuzz(42, 3, Settings{PlayersNumber: 4, CardsPerType: 2}))
}

func TestFuzzSixPlayers(t *testing.T) {
	if testing.Short() {
		t.Skip("long random playouts")
	}
	require.NoError(t, RunFuzz(42, 2, Settings{PlayersNumber: 6, CardsPerType: 3}))
}

func TestActionUniverseCoversEnumeratedActions(t *testing.T) {
	universe := actionUniverse(4)
	seen := make(map[string]bool, len(universe))
	for _, candidate := range universe {
		seen[candidate.String()] = true
	}
	game := NewGame(Settings{PlayersNumber: 4, CardsPerType: 2}, testRand())
	view := game.AnonymousView()
	for _, available := range AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands) {
		require.True(t, seen[available.String()], "enumerated action %v missing from the universe", available)
	}
}
