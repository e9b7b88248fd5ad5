package coup

import "github.com/elsid/coup/cards"

// AvailableActions returns the complete set of actions the state machine
// will accept next, as a pure function of the expected-move descriptor and
// the public coin and hand counts. RevealCard and DropCard are enumerated
// for every card kind and ShowCard for the claimed card only; of these,
// only the moves naming a card the player actually holds will succeed.
func AvailableActions(stateType StateType, playerCoins, playerHands []int) []Action {
	switch stateType.Kind {
	case StateTurn:
		return turnAvailableActions(stateType.Player, playerCoins, playerHands)
	case StateForeignAid:
		return foreignAidAvailableActions(stateType.Player, playerHands)
	case StateTax, StateExchange, StateBlockForeignAid, StateBlockSteal, StateBlockAssassination:
		return nonBlockingAvailableActions(stateType.Player, playerHands)
	case StateAssassination:
		return assassinationAvailableActions(stateType.Player, stateType.Target, stateType.CanChallenge, playerHands)
	case StateSteal:
		return stealAvailableActions(stateType.Player, stateType.Target, stateType.CanChallenge, playerHands)
	case StateChallenge:
		return challengeAvailableActions(stateType.Challenge)
	case StateNeedCards:
		return []Action{{Player: stateType.Player, ActionType: ActionType{Kind: TakeCard}}}
	case StateTookCards, StateDroppedCard:
		return dropCardActions(stateType.Player)
	case StateLostInfluence:
		return lostInfluenceAvailableActions(stateType.Player)
	}
	return nil
}

func turnAvailableActions(player int, playerCoins, playerHands []int) []Action {
	if playerCoins[player] >= MaxCoins {
		actions := make([]Action, 0, len(playerHands))
		for other := range playerHands {
			if other != player && playerHands[other] > 0 {
				actions = append(actions, Action{Player: player, ActionType: ActionType{Kind: Coup, Target: other}})
			}
		}
		return actions
	}
	actions := make([]Action, 0, 4+3*(len(playerHands)-1))
	for _, kind := range [...]ActionKind{Income, ForeignAid, Tax, Exchange} {
		actions = append(actions, Action{Player: player, ActionType: ActionType{Kind: kind}})
	}
	for other := range playerHands {
		if other == player || playerHands[other] == 0 {
			continue
		}
		actions = append(actions, Action{Player: player, ActionType: ActionType{Kind: Steal, Target: other}})
		if playerCoins[player] >= AssassinationCost {
			actions = append(actions, Action{Player: player, ActionType: ActionType{Kind: Assassinate, Target: other}})
		}
		if playerCoins[player] >= CoupCost {
			actions = append(actions, Action{Player: player, ActionType: ActionType{Kind: Coup, Target: other}})
		}
	}
	return actions
}

func foreignAidAvailableActions(player int, playerHands []int) []Action {
	actions := make([]Action, 0, len(playerHands))
	actions = fillActions(ActionType{Kind: BlockForeignAid}, player, playerHands, actions)
	return append(actions, Action{Player: player, ActionType: ActionType{Kind: PassBlock}})
}

func nonBlockingAvailableActions(player int, playerHands []int) []Action {
	actions := make([]Action, 0, len(playerHands))
	actions = fillActions(ActionType{Kind: Challenge}, player, playerHands, actions)
	return append(actions, Action{Player: player, ActionType: ActionType{Kind: PassChallenge}})
}

func assassinationAvailableActions(player, target int, canChallenge bool, playerHands []int) []Action {
	if canChallenge {
		return nonBlockingAvailableActions(player, playerHands)
	}
	var actions []Action
	if playerHands[target] > 0 {
		actions = append(actions, Action{Player: target, ActionType: ActionType{Kind: BlockAssassination}})
	}
	return append(actions, Action{Player: player, ActionType: ActionType{Kind: PassBlock}})
}

func stealAvailableActions(player, target int, canChallenge bool, playerHands []int) []Action {
	if canChallenge {
		return nonBlockingAvailableActions(player, playerHands)
	}
	var actions []Action
	if playerHands[target] > 0 {
		actions = append(actions,
			Action{Player: target, ActionType: ActionType{Kind: BlockSteal, Card: cards.Ambassador}},
			Action{Player: target, ActionType: ActionType{Kind: BlockSteal, Card: cards.Captain}})
	}
	return append(actions, Action{Player: player, ActionType: ActionType{Kind: PassBlock}})
}

func challengeAvailableActions(challenge ChallengeState) []Action {
	switch challenge.Kind {
	case ChallengeInitial:
		actions := make([]Action, 0, cards.NumKinds+1)
		actions = append(actions, Action{Player: challenge.Target, ActionType: ActionType{Kind: ShowCard, Card: challenge.Card}})
		for _, card := range cards.All {
			actions = append(actions, Action{Player: challenge.Target, ActionType: ActionType{Kind: RevealCard, Card: card}})
		}
		return actions
	case ChallengeShownCard:
		actions := make([]Action, 0, cards.NumKinds)
		for _, card := range cards.All {
			actions = append(actions, Action{Player: challenge.Initiator, ActionType: ActionType{Kind: RevealCard, Card: card}})
		}
		return actions
	case ChallengeInitiatorRevealedCard:
		return []Action{{Player: challenge.Target, ActionType: ActionType{Kind: ShuffleDeck}}}
	case ChallengeDeckShuffled:
		return []Action{{Player: challenge.Target, ActionType: ActionType{Kind: TakeCard}}}
	}
	return nil
}

func dropCardActions(player int) []Action {
	actions := make([]Action, 0, cards.NumKinds)
	for _, card := range cards.All {
		actions = append(actions, Action{Player: player, ActionType: ActionType{Kind: DropCard, Card: card}})
	}
	return actions
}

func lostInfluenceAvailableActions(player int) []Action {
	actions := make([]Action, 0, cards.NumKinds)
	for _, card := range cards.All {
		actions = append(actions, Action{Player: player, ActionType: ActionType{Kind: RevealCard, Card: card}})
	}
	return actions
}

// fillActions adds one copy of the action type for every active player
// other than target, starting from the seat after target so that response
// windows are offered in table order.
func fillActions(actionType ActionType, target int, playerHands []int, actions []Action) []Action {
	for player := target + 1; player < len(playerHands); player++ {
		if playerHands[player] > 0 {
			actions = append(actions, Action{Player: player, ActionType: actionType})
		}
	}
	for player := 0; player < target; player++ {
		if playerHands[player] > 0 {
			actions = append(actions, Action{Player: player, ActionType: actionType})
		}
	}
	return actions
}
