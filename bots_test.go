package coup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elsid/coup/cards"
)

func TestHonestBotSuggestsOnlyBackedClaims(t *testing.T) {
	settings := Settings{PlayersNumber: 2, CardsPerType: 1}
	game := NewCustomGame([][]cards.Card{
		{cards.Duke, cards.Assassin},
		{cards.Ambassador, cards.Captain},
	}, []cards.Card{cards.Contessa})
	view := game.PlayerView(0)
	bot := NewHonestCarefulRandomBot(view, settings)
	available := AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands)
	suggested := bot.SuggestActions(view, available)
	// Exchange claims an Ambassador and Steal a Captain we do not hold;
	// Assassinate is not even enumerated with two coins.
	expected := []Action{
		action(0, Income),
		action(0, ForeignAid),
		action(0, Tax),
	}
	require.Equal(t, expected, suggested)
}

func TestHonestBotDeclinesUnsafeChallengeWindow(t *testing.T) {
	settings := Settings{PlayersNumber: 2, CardsPerType: 1}
	game := NewCustomGame([][]cards.Card{
		{cards.Assassin, cards.Contessa},
		{cards.Duke, cards.Captain},
	}, []cards.Card{cards.Ambassador})
	bot := NewHonestCarefulRandomBot(game.PlayerView(0), settings)
	rng := testRand()
	require.NoError(t, game.Play(action(0, Income), rng))
	bot.AfterPlayerAction(game.PlayerView(0), action(0, Income))
	require.NoError(t, game.Play(action(1, Tax), rng))
	bot.AfterOpponentAction(game.PlayerView(0), NewActionView(action(1, Tax)))
	view := game.PlayerView(0)
	available := filterActionsByPlayer(
		AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands), 0)
	// The opponent may really hold the Duke: challenging is unsafe.
	_, ok := bot.GetOptionalAction(view, available)
	require.False(t, ok)
}

func TestRandomBotOnlyRevealsHeldCards(t *testing.T) {
	game := NewCustomGame([][]cards.Card{
		{cards.Assassin, cards.Ambassador},
		{cards.Captain, cards.Contessa},
	}, []cards.Card{cards.Duke})
	rng := testRand()
	game.playerCoins[0] = 7
	require.NoError(t, game.Play(targeted(0, Coup, 1), rng))
	view := game.PlayerView(1)
	bot := NewRandomBot(view)
	available := AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands)
	suggested := bot.SuggestActions(view, available)
	expected := []Action{
		carded(1, RevealCard, cards.Captain),
		carded(1, RevealCard, cards.Contessa),
	}
	require.Equal(t, expected, suggested)
}

func TestBotRngIsReproducible(t *testing.T) {
	hand := []cards.Card{cards.Duke, cards.Captain}
	first := rngFromHand(hand)
	second := rngFromHand(hand)
	require.Equal(t, first.Uint64(), second.Uint64())
}

func TestRunGameWithBotsFinishes(t *testing.T) {
	settings := Settings{PlayersNumber: 4, CardsPerType: 2}
	result, err := RunGameWithBots(42, []BotType{BotRandom}, settings, RunOptions{WritePlayer: -1})
	require.NoError(t, err)
	require.True(t, result.End.IsDone())
	_, ok := result.End.Winner()
	require.True(t, ok)
	require.Equal(t, 0, result.Begin.Step())
}

func TestRunGameWithHonestBotsFinishes(t *testing.T) {
	settings := Settings{PlayersNumber: 3, CardsPerType: 2}
	result, err := RunGameWithBots(7, []BotType{BotHonestCarefulRandom, BotRandom}, settings, RunOptions{WritePlayer: -1})
	require.NoError(t, err)
	require.True(t, result.End.IsDone())
}

func TestParseBotType(t *testing.T) {
	botType, err := ParseBotType("honest_careful_random")
	require.NoError(t, err)
	require.Equal(t, BotHonestCarefulRandom, botType)
	_, err = ParseBotType("clairvoyant")
	require.Error(t, err)
}

func TestCollectRandomGamesStats(t *testing.T) {
	settings := Settings{PlayersNumber: 3, CardsPerType: 2}
	stats, err := CollectRandomGamesStats(42, 5, 2, []BotType{BotRandom}, settings)
	require.NoError(t, err)
	require.Equal(t, 5, stats.Games)
	require.Len(t, stats.Steps, 5)
	require.Len(t, stats.WinnerBotType, 5)
}
