package coup

import "github.com/elsid/coup/cards"

// ExampleSettings is the table the example game is played on.
func ExampleSettings() Settings {
	return Settings{PlayersNumber: 6, CardsPerType: 3}
}

// ExampleDeal is the fixed deal the example game starts from: one hand
// per seat plus the remaining deck, bottom card first.
func ExampleDeal() ([][]cards.Card, []cards.Card) {
	hands := [][]cards.Card{
		{cards.Assassin, cards.Assassin},
		{cards.Duke, cards.Captain},
		{cards.Ambassador, cards.Ambassador},
		{cards.Captain, cards.Contessa},
		{cards.Duke, cards.Duke},
		{cards.Contessa, cards.Contessa},
	}
	deck := []cards.Card{cards.Assassin, cards.Ambassador, cards.Captain}
	return hands, deck
}

func action(player int, kind ActionKind) Action {
	return Action{Player: player, ActionType: ActionType{Kind: kind}}
}

func targeted(player int, kind ActionKind, target int) Action {
	return Action{Player: player, ActionType: ActionType{Kind: kind, Target: target}}
}

func carded(player int, kind ActionKind, card cards.Card) Action {
	return Action{Player: player, ActionType: ActionType{Kind: kind, Card: card}}
}

func taxTurn(player int) []Action {
	return []Action{action(player, Tax), action(player, PassChallenge)}
}

func assassinateTurn(player, target int, revealed cards.Card) []Action {
	return []Action{
		targeted(player, Assassinate, target),
		action(player, PassChallenge),
		action(player, PassBlock),
		carded(target, RevealCard, revealed),
	}
}

// ExampleActions is a full scripted game on the example deal: everyone
// taxes up, then the table eliminates itself with unchallenged
// assassinations and two coups until only player 4 remains.
func ExampleActions() []Action {
	var actions []Action
	for player := 0; player < 6; player++ {
		actions = append(actions, taxTurn(player)...)
	}
	actions = append(actions, assassinateTurn(0, 1, cards.Captain)...)
	actions = append(actions, taxTurn(1)...)
	actions = append(actions, assassinateTurn(2, 3, cards.Contessa)...)
	actions = append(actions, taxTurn(3)...)
	actions = append(actions, assassinateTurn(4, 5, cards.Contessa)...)
	actions = append(actions, taxTurn(5)...)
	actions = append(actions, taxTurn(0)...)
	actions = append(actions,
		targeted(1, Coup, 0),
		carded(0, RevealCard, cards.Assassin))
	actions = append(actions, taxTurn(2)...)
	actions = append(actions,
		targeted(3, Coup, 5),
		carded(5, RevealCard, cards.Contessa))
	actions = append(actions, taxTurn(4)...)
	actions = append(actions, assassinateTurn(0, 1, cards.Duke)...)
	actions = append(actions, assassinateTurn(2, 3, cards.Captain)...)
	actions = append(actions, assassinateTurn(4, 2, cards.Ambassador)...)
	actions = append(actions, taxTurn(0)...)
	actions = append(actions, taxTurn(2)...)
	actions = append(actions, taxTurn(4)...)
	actions = append(actions, assassinateTurn(0, 2, cards.Ambassador)...)
	actions = append(actions, assassinateTurn(4, 0, cards.Assassin)...)
	return actions
}
