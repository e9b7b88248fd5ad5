package coup

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elsid/coup/cards"
)

type testState struct {
	stateType          StateType
	playerCoins        []int
	playerHands        []int
	playerCardsCounter []int
	playerCards        []cards.Hand
	deck               cards.StackDeck
	revealedCards      []cards.Card
}

func twoPlayersState() *testState {
	return &testState{
		stateType:          StateType{Kind: StateTurn, Player: 0},
		playerCoins:        []int{2, 2},
		playerHands:        []int{2, 2},
		playerCardsCounter: []int{2, 2},
		playerCards: []cards.Hand{
			{cards.Assassin, cards.Captain},
			{cards.Ambassador, cards.Duke},
		},
		deck: cards.StackDeck{cards.Contessa},
	}
}

func fourPlayersState() *testState {
	return &testState{
		stateType:          StateType{Kind: StateTurn, Player: 0},
		playerCoins:        []int{2, 2, 2, 2},
		playerHands:        []int{2, 2, 1, 0},
		playerCardsCounter: []int{2, 2, 1, 0},
		playerCards: []cards.Hand{
			{cards.Assassin, cards.Captain},
			{cards.Ambassador, cards.Duke},
			{cards.Assassin, cards.Contessa},
			{cards.Ambassador, cards.Captain},
		},
		deck: cards.StackDeck{cards.Duke, cards.Contessa},
	}
}

func (s *testState) state() *State {
	playerCards := make([]cards.PlayerCards, len(s.playerCards))
	for player := range s.playerCards {
		playerCards[player] = &s.playerCards[player]
	}
	return &State{
		StateType:          &s.stateType,
		PlayerCoins:        s.playerCoins,
		PlayerHands:        s.playerHands,
		PlayerCardsCounter: s.playerCardsCounter,
		PlayerCards:        playerCards,
		Deck:               &s.deck,
		RevealedCards:      &s.revealedCards,
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func (s *testState) play(t *testing.T, actions ...Action) error {
	t.Helper()
	rng := testRand()
	for _, a := range actions {
		if err := PlayAction(a, s.state(), rng); err != nil {
			return err
		}
	}
	return nil
}

func TestIncomeForTurnReturnsTurnForNextPlayer(t *testing.T) {
	state := twoPlayersState()
	require.NoError(t, state.play(t, action(0, Income)))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, 3, state.playerCoins[0])
}

func TestForeignAidForTurnReturnsForeignAid(t *testing.T) {
	state := twoPlayersState()
	require.NoError(t, state.play(t, action(0, ForeignAid)))
	require.Equal(t, StateType{Kind: StateForeignAid, Player: 0}, state.stateType)
}

func TestTaxForTurnReturnsTax(t *testing.T) {
	state := twoPlayersState()
	require.NoError(t, state.play(t, action(0, Tax)))
	require.Equal(t, StateType{Kind: StateTax, Player: 0}, state.stateType)
}

func TestAssassinateForTurnReturnsAssassination(t *testing.T) {
	state := twoPlayersState()
	state.playerCoins[0] = 3
	require.NoError(t, state.play(t, targeted(0, Assassinate, 1)))
	require.Equal(t, StateType{Kind: StateAssassination, Player: 0, Target: 1, CanChallenge: true}, state.stateType)
	require.Equal(t, []int{0, 2}, state.playerCoins)
}

func TestStealForTurnReturnsSteal(t *testing.T) {
	state := twoPlayersState()
	require.NoError(t, state.play(t, targeted(0, Steal, 1)))
	require.Equal(t, StateType{Kind: StateSteal, Player: 0, Target: 1, CanChallenge: true}, state.stateType)
}

func TestCoupForTurnReturnsLostInfluence(t *testing.T) {
	state := twoPlayersState()
	state.playerCoins[0] = 7
	require.NoError(t, state.play(t, targeted(0, Coup, 1)))
	require.Equal(t, StateType{Kind: StateLostInfluence, Player: 1, CurrentPlayer: 0}, state.stateType)
	require.Equal(t, 0, state.playerCoins[0])
}

func TestExchangeForTurnReturnsExchange(t *testing.T) {
	state := twoPlayersState()
	require.NoError(t, state.play(t, action(0, Exchange)))
	require.Equal(t, StateType{Kind: StateExchange, Player: 0}, state.stateType)
}

func TestRevealCardForLostInfluenceReturnsTurnForNextPlayer(t *testing.T) {
	state := twoPlayersState()
	state.stateType = StateType{Kind: StateLostInfluence, Player: 1, CurrentPlayer: 0}
	require.NoError(t, state.play(t, carded(1, RevealCard, cards.Ambassador)))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []cards.Card{cards.Ambassador}, state.revealedCards)
	require.Equal(t, 1, state.playerHands[1])
}

func TestPassBlockForTurnReturnsInvalidActionError(t *testing.T) {
	state := twoPlayersState()
	require.ErrorIs(t, state.play(t, action(0, PassBlock)), ErrInvalidAction)
	require.Equal(t, StateType{Kind: StateTurn, Player: 0}, state.stateType)
}

func TestBlockForeignAidForTaxReturnsInvalidActionError(t *testing.T) {
	state := twoPlayersState()
	state.stateType = StateType{Kind: StateTax, Player: 0}
	require.ErrorIs(t, state.play(t, action(0, BlockForeignAid)), ErrInvalidAction)
	require.Equal(t, StateType{Kind: StateTax, Player: 0}, state.stateType)
}

func TestTooManyCoinsForcesCoup(t *testing.T) {
	state := twoPlayersState()
	state.playerCoins[0] = MaxCoins
	require.ErrorIs(t, state.play(t, action(0, Income)), ErrTooManyCoins)
	require.NoError(t, state.play(t, targeted(0, Coup, 1)))
	require.Equal(t, StateType{Kind: StateLostInfluence, Player: 1, CurrentPlayer: 0}, state.stateType)
}

func TestInactivePlayerCannotAct(t *testing.T) {
	state := fourPlayersState()
	require.ErrorIs(t, state.play(t, action(3, Income)), ErrInactivePlayer)
}

func TestSuccessfullyBlockedForeignAidLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, ForeignAid),
		action(1, BlockForeignAid),
		action(1, PassChallenge),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{2, 2, 2, 2}, state.playerCoins)
}

func TestSuccessfullyChallengedBlockedForeignAidLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, ForeignAid),
		action(1, BlockForeignAid),
		action(2, Challenge),
		carded(1, RevealCard, cards.Duke),
		action(0, PassBlock),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{4, 2, 2, 2}, state.playerCoins)
}

func TestBlockForeignAidCanBeSuccessfullyChallengedMultipleTimes(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, ForeignAid),
		action(1, BlockForeignAid),
		action(2, Challenge),
		carded(1, RevealCard, cards.Ambassador),
		action(2, BlockForeignAid),
		action(0, Challenge),
		carded(2, RevealCard, cards.Contessa),
		action(0, PassBlock),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{4, 2, 2, 2}, state.playerCoins)
}

func TestFailedChallengeOnBlockedForeignAidLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, ForeignAid),
		action(1, BlockForeignAid),
		action(2, Challenge),
		carded(1, ShowCard, cards.Duke),
		carded(2, RevealCard, cards.Contessa),
		action(1, ShuffleDeck),
		action(1, TakeCard),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{2, 2, 2, 2}, state.playerCoins)
}

func TestUnchallengedTaxLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, Tax),
		action(0, PassChallenge),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{5, 2, 2, 2}, state.playerCoins)
}

func TestSuccessfullyChallengedTaxLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, Tax),
		action(1, Challenge),
		carded(0, RevealCard, cards.Assassin),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
}

func TestFailedTaxChallengeLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	state.stateType = StateType{Kind: StateTurn, Player: 1}
	require.NoError(t, state.play(t,
		action(1, Tax),
		action(0, Challenge),
		carded(1, ShowCard, cards.Duke),
		carded(0, RevealCard, cards.Assassin),
		action(1, ShuffleDeck),
		action(1, TakeCard),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 2}, state.stateType)
	require.Equal(t, []int{2, 5, 2, 2}, state.playerCoins)
}

func TestBlockAssassinationCanBeChallengedByAnyPlayer(t *testing.T) {
	state := fourPlayersState()
	state.playerCoins[0] = 3
	require.NoError(t, state.play(t,
		targeted(0, Assassinate, 2),
		action(0, PassChallenge),
		action(2, BlockAssassination),
		action(1, Challenge),
		carded(2, ShowCard, cards.Contessa),
		carded(1, RevealCard, cards.Ambassador),
		action(2, ShuffleDeck),
		action(2, TakeCard),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{0, 2, 2, 2}, state.playerCoins)
}

func TestStealCanBeChallengedByAnyAndBlockedByTargetPlayer(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		targeted(0, Steal, 1),
		action(2, Challenge),
		carded(0, ShowCard, cards.Captain),
		carded(2, RevealCard, cards.Contessa),
		action(0, ShuffleDeck),
		action(0, TakeCard),
		carded(1, BlockSteal, cards.Ambassador),
		action(1, PassChallenge),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{2, 2, 2, 2}, state.playerCoins)
}

func TestSuccessfullyChallengedStealLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		targeted(0, Steal, 1),
		action(2, Challenge),
		carded(0, RevealCard, cards.Assassin),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{2, 2, 2, 2}, state.playerCoins)
}

func TestSuccessfulStealLeadsToNextTurn(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		targeted(0, Steal, 1),
		action(1, Challenge),
		carded(0, ShowCard, cards.Captain),
		carded(1, RevealCard, cards.Ambassador),
		action(0, ShuffleDeck),
		action(0, TakeCard),
		carded(1, BlockSteal, cards.Captain),
		action(0, Challenge),
		carded(1, RevealCard, cards.Duke),
		action(0, PassBlock),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 2}, state.stateType)
	require.Equal(t, []int{4, 0, 2, 2}, state.playerCoins)
}

func TestBlockStealCanBeChallengedByAnyPlayer(t *testing.T) {
	state := fourPlayersState()
	state.playerCards[1] = cards.Hand{cards.Ambassador, cards.Duke}
	require.NoError(t, state.play(t,
		targeted(0, Steal, 1),
		action(0, PassChallenge),
		carded(1, BlockSteal, cards.Captain),
		action(2, Challenge),
		carded(1, RevealCard, cards.Duke),
		carded(1, BlockSteal, cards.Ambassador),
		action(0, Challenge),
		carded(1, ShowCard, cards.Ambassador),
		carded(0, RevealCard, cards.Assassin),
		action(1, ShuffleDeck),
		action(1, TakeCard),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
	require.Equal(t, []int{2, 2, 2, 2}, state.playerCoins)
}

func TestBlockStealRequiresBlockingCard(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		targeted(0, Steal, 1),
		action(0, PassChallenge),
	))
	require.ErrorIs(t, state.play(t, carded(1, BlockSteal, cards.Duke)), ErrInvalidCard)
	require.Equal(t, StateType{Kind: StateSteal, Player: 0, Target: 1, CanChallenge: false}, state.stateType)
}

func TestSuccessfulExchangeRequiresToDropCards(t *testing.T) {
	state := fourPlayersState()
	state.stateType = StateType{Kind: StateTurn, Player: 1}
	require.NoError(t, state.play(t,
		action(1, Exchange),
		action(2, Challenge),
		carded(1, ShowCard, cards.Ambassador),
		carded(2, RevealCard, cards.Contessa),
		action(1, ShuffleDeck),
		action(1, TakeCard),
		action(1, TakeCard),
		action(1, TakeCard),
	))
	require.Equal(t, StateType{Kind: StateTookCards, Player: 1, Count: 2}, state.stateType)
	first := state.playerCards[1][0]
	require.NoError(t, state.play(t, carded(1, DropCard, first)))
	second := state.playerCards[1][0]
	require.NoError(t, state.play(t, carded(1, DropCard, second)))
	require.Equal(t, StateType{Kind: StateTurn, Player: 0}, state.stateType)
	require.Equal(t, 2, state.playerCards[1].Count())
}

func TestExchangeWithEmptyDeckSkipsToNextTurn(t *testing.T) {
	state := twoPlayersState()
	state.deck = cards.StackDeck{}
	require.NoError(t, state.play(t,
		action(0, Exchange),
		action(0, PassChallenge),
	))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
}

func TestAssassinationPassBlockSkipsEliminatedTarget(t *testing.T) {
	state := fourPlayersState()
	state.playerCoins[0] = 3
	require.NoError(t, state.play(t,
		targeted(0, Assassinate, 2),
		action(0, PassChallenge),
	))
	state.playerHands[2] = 0
	require.NoError(t, state.play(t, action(0, PassBlock)))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
}

func TestCoupAgainstInactivePlayerReturnsError(t *testing.T) {
	state := fourPlayersState()
	state.playerCoins[0] = 7
	require.ErrorIs(t, state.play(t, targeted(0, Coup, 3)), ErrInvalidTarget)
	require.Equal(t, StateType{Kind: StateTurn, Player: 0}, state.stateType)
}

func TestChallengeShowRequiresClaimedCard(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, Tax),
		action(1, Challenge),
	))
	require.ErrorIs(t, state.play(t, carded(0, ShowCard, cards.Captain)), ErrInvalidCard)
	require.ErrorIs(t, state.play(t, carded(0, ShowCard, cards.Duke)), ErrInvalidCard)
	require.NoError(t, state.play(t, carded(0, RevealCard, cards.Captain)))
	require.Equal(t, StateType{Kind: StateTurn, Player: 1}, state.stateType)
}

func TestTakeCardDuringExchangeInflatesCounter(t *testing.T) {
	state := fourPlayersState()
	require.NoError(t, state.play(t,
		action(0, Exchange),
		action(0, PassChallenge),
		action(0, TakeCard),
	))
	require.Equal(t, 3, state.playerCardsCounter[0])
	require.Equal(t, 2, state.playerHands[0])
	require.NoError(t, state.play(t, action(0, TakeCard)))
	require.Equal(t, StateType{Kind: StateTookCards, Player: 0, Count: 2}, state.stateType)
	require.Equal(t, 4, state.playerCardsCounter[0])
}
