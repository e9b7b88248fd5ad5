package coup

import (
	"math/rand"

	"github.com/elsid/coup/cards"
)

// Game constants.
const (
	CardsPerPlayer     = 2
	MaxCardsToExchange = 2
	InitialCoins       = 2
	IncomeAmount       = 1
	ForeignAidAmount   = 2
	TaxAmount          = 3
	MaxSteal           = 2
	AssassinationCost  = 3
	CoupCost           = 7
	MaxCoins           = 10
)

// State is the mutable game state the transition function operates on.
// The caller retains ownership; PlayAction holds exclusive access for the
// duration of one call. Hands and the deck are abstracted behind the
// capability interfaces so that the same machine drives both the real
// game and the tracker's counterfactual replay.
type State struct {
	StateType          *StateType
	PlayerCoins        []int
	PlayerHands        []int
	PlayerCardsCounter []int
	PlayerCards        []cards.PlayerCards
	Deck               cards.Deck
	RevealedCards      *[]cards.Card
}

// PlayAction validates the action against the current state and, if legal,
// commits the transition. On failure the state is observably unchanged and
// one of the Err* values is returned. The random stream is consumed only
// by a ShuffleDeck transition.
func PlayAction(action Action, state *State, rng *rand.Rand) error {
	if state.PlayerHands[action.Player] == 0 {
		return ErrInactivePlayer
	}
	st := state.StateType
	var next StateType
	var err error
	switch st.Kind {
	case StateTurn:
		next, err = onTurn(st.Player, state, action)
	case StateForeignAid:
		next, err = onForeignAid(st.Player, state, action)
	case StateTax:
		next, err = onTax(st.Player, state, action)
	case StateExchange:
		next, err = onExchange(st.Player, state, action)
	case StateAssassination:
		next, err = onAssassination(st.Player, st.Target, st.CanChallenge, state, action)
	case StateSteal:
		next, err = onSteal(st.Player, st.Target, st.CanChallenge, state, action)
	case StateChallenge:
		next, err = onChallenge(st.CurrentPlayer, st.Source, st.Challenge, state, action, rng)
	case StateBlockForeignAid:
		next, err = onBlockForeignAid(st.Player, st.Target, state, action)
	case StateNeedCards:
		next, err = onNeedCards(st.Player, st.Count, state, action)
	case StateTookCards:
		next, err = onTookCards(st.Player, st.Count, state, action)
	case StateDroppedCard:
		next, err = onDroppedCard(st.Player, st.Count, state, action)
	case StateBlockAssassination:
		next, err = onBlockAssassination(st.Player, st.Target, state, action)
	case StateBlockSteal:
		next, err = onBlockSteal(st.Player, st.Target, st.Card, state, action)
	case StateLostInfluence:
		next, err = onLostInfluence(st.Player, st.CurrentPlayer, state, action)
	}
	if err != nil {
		return err
	}
	*state.StateType = next
	return nil
}

func onTurn(player int, state *State, action Action) (StateType, error) {
	if player != action.Player {
		return StateType{}, ErrInvalidPlayer
	}
	if state.PlayerCoins[player] >= MaxCoins && action.ActionType.Kind != Coup {
		return StateType{}, ErrTooManyCoins
	}
	switch action.ActionType.Kind {
	case Income:
		state.PlayerCoins[player] += IncomeAmount
		return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}, nil
	case ForeignAid:
		return StateType{Kind: StateForeignAid, Player: player}, nil
	case Tax:
		return StateType{Kind: StateTax, Player: player}, nil
	case Exchange:
		return StateType{Kind: StateExchange, Player: player}, nil
	case Coup:
		target := action.ActionType.Target
		if target == player || state.PlayerHands[target] == 0 {
			return StateType{}, ErrInvalidTarget
		}
		if state.PlayerCoins[player] < CoupCost {
			return StateType{}, ErrNotEnoughCoins
		}
		state.PlayerCoins[player] -= CoupCost
		return StateType{Kind: StateLostInfluence, Player: target, CurrentPlayer: player}, nil
	case Assassinate:
		target := action.ActionType.Target
		if target == player || state.PlayerHands[target] == 0 {
			return StateType{}, ErrInvalidTarget
		}
		if state.PlayerCoins[player] < AssassinationCost {
			return StateType{}, ErrNotEnoughCoins
		}
		state.PlayerCoins[player] -= AssassinationCost
		return StateType{Kind: StateAssassination, Player: player, Target: target, CanChallenge: true}, nil
	case Steal:
		target := action.ActionType.Target
		if target == player || state.PlayerHands[target] == 0 {
			return StateType{}, ErrInvalidTarget
		}
		return StateType{Kind: StateSteal, Player: player, Target: target, CanChallenge: true}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onForeignAid(player int, state *State, action Action) (StateType, error) {
	switch action.ActionType.Kind {
	case PassBlock:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		state.PlayerCoins[player] += ForeignAidAmount
		return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}, nil
	case BlockForeignAid:
		if player == action.Player {
			return StateType{}, ErrInvalidTarget
		}
		return StateType{Kind: StateBlockForeignAid, Player: action.Player, Target: player}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onTax(player int, state *State, action Action) (StateType, error) {
	switch action.ActionType.Kind {
	case PassChallenge:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		state.PlayerCoins[player] += TaxAmount
		return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}, nil
	case Challenge:
		if player == action.Player {
			return StateType{}, ErrInvalidTarget
		}
		return StateType{
			Kind:          StateChallenge,
			CurrentPlayer: player,
			Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: action.Player, Target: player, Card: cards.Duke},
			Source:        &StateType{Kind: StateTax, Player: player},
		}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onExchange(player int, state *State, action Action) (StateType, error) {
	switch action.ActionType.Kind {
	case PassChallenge:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		return startExchange(player, state), nil
	case Challenge:
		if player == action.Player {
			return StateType{}, ErrInvalidTarget
		}
		return StateType{
			Kind:          StateChallenge,
			CurrentPlayer: player,
			Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: action.Player, Target: player, Card: cards.Ambassador},
			Source:        &StateType{Kind: StateExchange, Player: player},
		}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onAssassination(player, target int, canChallenge bool, state *State, action Action) (StateType, error) {
	if canChallenge {
		switch action.ActionType.Kind {
		case PassChallenge:
			if player != action.Player {
				return StateType{}, ErrInvalidPlayer
			}
			return StateType{Kind: StateAssassination, Player: player, Target: target, CanChallenge: false}, nil
		case Challenge:
			if player == action.Player {
				return StateType{}, ErrInvalidTarget
			}
			return StateType{
				Kind:          StateChallenge,
				CurrentPlayer: player,
				Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: action.Player, Target: player, Card: cards.Assassin},
				Source:        &StateType{Kind: StateAssassination, Player: player, Target: target, CanChallenge: true},
			}, nil
		}
		return StateType{}, ErrInvalidAction
	}
	switch action.ActionType.Kind {
	case PassBlock:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		if state.PlayerHands[target] == 0 {
			return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}, nil
		}
		return StateType{Kind: StateLostInfluence, Player: target, CurrentPlayer: player}, nil
	case BlockAssassination:
		if player == action.Player || target != action.Player {
			return StateType{}, ErrInvalidTarget
		}
		return StateType{Kind: StateBlockAssassination, Player: action.Player, Target: player}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onSteal(player, target int, canChallenge bool, state *State, action Action) (StateType, error) {
	if canChallenge {
		switch action.ActionType.Kind {
		case PassChallenge:
			if player != action.Player {
				return StateType{}, ErrInvalidPlayer
			}
			return StateType{Kind: StateSteal, Player: player, Target: target, CanChallenge: false}, nil
		case Challenge:
			if player == action.Player {
				return StateType{}, ErrInvalidTarget
			}
			return StateType{
				Kind:          StateChallenge,
				CurrentPlayer: player,
				Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: action.Player, Target: player, Card: cards.Captain},
				Source:        &StateType{Kind: StateSteal, Player: player, Target: target, CanChallenge: true},
			}, nil
		}
		return StateType{}, ErrInvalidAction
	}
	switch action.ActionType.Kind {
	case PassBlock:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		coins := state.PlayerCoins[target]
		if coins > MaxSteal {
			coins = MaxSteal
		}
		state.PlayerCoins[target] -= coins
		state.PlayerCoins[player] += coins
		return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}, nil
	case BlockSteal:
		if player == action.Player || target != action.Player {
			return StateType{}, ErrInvalidTarget
		}
		card := action.ActionType.Card
		if card != cards.Ambassador && card != cards.Captain {
			return StateType{}, ErrInvalidCard
		}
		return StateType{Kind: StateBlockSteal, Player: action.Player, Target: player, Card: card}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onChallenge(currentPlayer int, source *StateType, challenge ChallengeState, state *State, action Action, rng *rand.Rand) (StateType, error) {
	result, err := playChallengeAction(challenge, state, action, rng)
	if err != nil {
		return StateType{}, err
	}
	switch result.Kind {
	case ChallengeTookCard:
		// The claim was proven: resume the parent action after the
		// challenger lost an influence and the claimant replaced the
		// shown card.
		switch source.Kind {
		case StateTax:
			state.PlayerCoins[source.Player] += TaxAmount
			return StateType{Kind: StateTurn, Player: nextPlayer(currentPlayer, state.PlayerHands)}, nil
		case StateBlockForeignAid, StateBlockAssassination, StateBlockSteal:
			return StateType{Kind: StateTurn, Player: nextPlayer(currentPlayer, state.PlayerHands)}, nil
		case StateExchange:
			return startExchange(source.Player, state), nil
		case StateAssassination:
			return StateType{Kind: StateAssassination, Player: source.Player, Target: source.Target, CanChallenge: false}, nil
		case StateSteal:
			return StateType{Kind: StateSteal, Player: source.Player, Target: source.Target, CanChallenge: false}, nil
		}
		return StateType{}, ErrInvalidSource
	case ChallengeTargetRevealedCard:
		// The claim failed: roll the parent action back.
		switch source.Kind {
		case StateBlockForeignAid:
			return StateType{Kind: StateForeignAid, Player: source.Target}, nil
		case StateBlockAssassination:
			return StateType{Kind: StateAssassination, Player: source.Target, Target: source.Player, CanChallenge: false}, nil
		case StateBlockSteal:
			return StateType{Kind: StateSteal, Player: source.Target, Target: source.Player, CanChallenge: false}, nil
		case StateTax, StateExchange, StateAssassination, StateSteal:
			return StateType{Kind: StateTurn, Player: nextPlayer(currentPlayer, state.PlayerHands)}, nil
		}
		return StateType{}, ErrInvalidSource
	}
	return StateType{Kind: StateChallenge, CurrentPlayer: currentPlayer, Source: source, Challenge: result}, nil
}

func onBlockForeignAid(player, target int, state *State, action Action) (StateType, error) {
	switch action.ActionType.Kind {
	case PassChallenge:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		return StateType{Kind: StateTurn, Player: nextPlayer(target, state.PlayerHands)}, nil
	case Challenge:
		if player == action.Player {
			return StateType{}, ErrInvalidTarget
		}
		return StateType{
			Kind:          StateChallenge,
			CurrentPlayer: target,
			Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: action.Player, Target: player, Card: cards.Duke},
			Source:        &StateType{Kind: StateBlockForeignAid, Player: player, Target: target},
		}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onNeedCards(player, count int, state *State, action Action) (StateType, error) {
	if player != action.Player {
		return StateType{}, ErrInvalidPlayer
	}
	if action.ActionType.Kind != TakeCard {
		return StateType{}, ErrInvalidAction
	}
	state.PlayerCards[player].AddCard(state.Deck.PopCard())
	state.PlayerCardsCounter[player]++
	if count == 1 {
		return StateType{Kind: StateTookCards, Player: player, Count: state.PlayerCardsCounter[player] - state.PlayerHands[player]}, nil
	}
	return StateType{Kind: StateNeedCards, Player: player, Count: count - 1}, nil
}

func onTookCards(player, count int, state *State, action Action) (StateType, error) {
	if action.ActionType.Kind != DropCard {
		return StateType{}, ErrInvalidAction
	}
	if player != action.Player {
		return StateType{}, ErrInvalidPlayer
	}
	card := action.ActionType.Card
	if !state.PlayerCards[player].HasCard(card) {
		return StateType{}, ErrInvalidCard
	}
	state.PlayerCards[player].DropCard(card)
	state.PlayerCardsCounter[player]--
	state.Deck.PushCard(card)
	// Re-derive from the live counters rather than decrementing the
	// captured count: the counter may move between drops.
	left := state.PlayerCardsCounter[player] - state.PlayerHands[player]
	if left == 0 {
		return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}, nil
	}
	return StateType{Kind: StateTookCards, Player: player, Count: left}, nil
}

func onDroppedCard(player, left int, state *State, action Action) (StateType, error) {
	if action.ActionType.Kind != DropCard {
		return StateType{}, ErrInvalidAction
	}
	if player != action.Player {
		return StateType{}, ErrInvalidPlayer
	}
	card := action.ActionType.Card
	if !state.PlayerCards[player].HasCard(card) {
		return StateType{}, ErrInvalidCard
	}
	state.PlayerCards[player].DropCard(card)
	state.PlayerCardsCounter[player]--
	state.Deck.PushCard(card)
	if left == 1 {
		return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}, nil
	}
	return StateType{Kind: StateDroppedCard, Player: player, Count: left - 1}, nil
}

func onBlockAssassination(player, target int, state *State, action Action) (StateType, error) {
	switch action.ActionType.Kind {
	case PassChallenge:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		return StateType{Kind: StateTurn, Player: nextPlayer(target, state.PlayerHands)}, nil
	case Challenge:
		if player == action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		return StateType{
			Kind:          StateChallenge,
			CurrentPlayer: target,
			Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: action.Player, Target: player, Card: cards.Contessa},
			Source:        &StateType{Kind: StateBlockAssassination, Player: player, Target: target},
		}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onBlockSteal(player, target int, card cards.Card, state *State, action Action) (StateType, error) {
	switch action.ActionType.Kind {
	case PassChallenge:
		if player != action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		return StateType{Kind: StateTurn, Player: nextPlayer(target, state.PlayerHands)}, nil
	case Challenge:
		if player == action.Player {
			return StateType{}, ErrInvalidPlayer
		}
		return StateType{
			Kind:          StateChallenge,
			CurrentPlayer: target,
			Challenge:     ChallengeState{Kind: ChallengeInitial, Initiator: action.Player, Target: player, Card: card},
			Source:        &StateType{Kind: StateBlockSteal, Player: player, Target: target, Card: card},
		}, nil
	}
	return StateType{}, ErrInvalidAction
}

func onLostInfluence(player, currentTurnPlayer int, state *State, action Action) (StateType, error) {
	if action.ActionType.Kind != RevealCard {
		return StateType{}, ErrInvalidAction
	}
	if player != action.Player {
		return StateType{}, ErrInvalidPlayer
	}
	card := action.ActionType.Card
	if !state.PlayerCards[player].HasCard(card) {
		return StateType{}, ErrInvalidCard
	}
	state.PlayerCards[player].DropCard(card)
	state.PlayerHands[player]--
	state.PlayerCardsCounter[player]--
	*state.RevealedCards = append(*state.RevealedCards, card)
	return StateType{Kind: StateTurn, Player: nextPlayer(currentTurnPlayer, state.PlayerHands)}, nil
}

func startExchange(player int, state *State) StateType {
	count := MaxCardsToExchange
	if deckCount := state.Deck.Count(); deckCount < count {
		count = deckCount
	}
	if count == 0 {
		return StateType{Kind: StateTurn, Player: nextPlayer(player, state.PlayerHands)}
	}
	return StateType{Kind: StateNeedCards, Player: player, Count: count}
}

// nextPlayer advances circularly, skipping eliminated players.
func nextPlayer(player int, playerHands []int) int {
	for playerHands[(player+1)%len(playerHands)] == 0 {
		player++
	}
	return (player + 1) % len(playerHands)
}

func playChallengeAction(challenge ChallengeState, state *State, action Action, rng *rand.Rand) (ChallengeState, error) {
	switch challenge.Kind {
	case ChallengeInitial:
		return onChallengeInitial(challenge.Initiator, challenge.Target, challenge.Card, state, action)
	case ChallengeShownCard:
		return onChallengeShownCard(challenge.Initiator, challenge.Target, state, action)
	case ChallengeInitiatorRevealedCard:
		return onChallengeInitiatorRevealedCard(challenge.Target, state, action, rng)
	case ChallengeDeckShuffled:
		return onChallengeDeckShuffled(challenge.Target, state, action)
	}
	return ChallengeState{}, ErrInvalidAction
}

func onChallengeInitial(initiator, target int, card cards.Card, state *State, action Action) (ChallengeState, error) {
	if target != action.Player {
		return ChallengeState{}, ErrInvalidPlayer
	}
	switch action.ActionType.Kind {
	case ShowCard:
		shown := action.ActionType.Card
		if shown != card || !state.PlayerCards[target].HasCard(card) {
			return ChallengeState{}, ErrInvalidCard
		}
		state.PlayerCards[target].DropCard(card)
		state.PlayerCardsCounter[target]--
		state.Deck.PushCard(card)
		return ChallengeState{Kind: ChallengeShownCard, Initiator: initiator, Target: target}, nil
	case RevealCard:
		revealed := action.ActionType.Card
		if !state.PlayerCards[target].HasCard(revealed) {
			return ChallengeState{}, ErrInvalidCard
		}
		state.PlayerCards[target].DropCard(revealed)
		state.PlayerHands[target]--
		state.PlayerCardsCounter[target]--
		*state.RevealedCards = append(*state.RevealedCards, revealed)
		return ChallengeState{Kind: ChallengeTargetRevealedCard}, nil
	}
	return ChallengeState{}, ErrInvalidAction
}

func onChallengeShownCard(initiator, target int, state *State, action Action) (ChallengeState, error) {
	if initiator != action.Player {
		return ChallengeState{}, ErrInvalidPlayer
	}
	if action.ActionType.Kind != RevealCard {
		return ChallengeState{}, ErrInvalidAction
	}
	card := action.ActionType.Card
	if !state.PlayerCards[initiator].HasCard(card) {
		return ChallengeState{}, ErrInvalidCard
	}
	state.PlayerCards[initiator].DropCard(card)
	state.PlayerHands[initiator]--
	state.PlayerCardsCounter[initiator]--
	*state.RevealedCards = append(*state.RevealedCards, card)
	return ChallengeState{Kind: ChallengeInitiatorRevealedCard, Target: target}, nil
}

func onChallengeInitiatorRevealedCard(target int, state *State, action Action, rng *rand.Rand) (ChallengeState, error) {
	if target != action.Player {
		return ChallengeState{}, ErrInvalidPlayer
	}
	if action.ActionType.Kind != ShuffleDeck {
		return ChallengeState{}, ErrInvalidAction
	}
	state.Deck.Shuffle(rng)
	return ChallengeState{Kind: ChallengeDeckShuffled, Target: target}, nil
}

func onChallengeDeckShuffled(target int, state *State, action Action) (ChallengeState, error) {
	if target != action.Player {
		return ChallengeState{}, ErrInvalidPlayer
	}
	if action.ActionType.Kind != TakeCard {
		return ChallengeState{}, ErrInvalidAction
	}
	state.PlayerCards[target].AddCard(state.Deck.PopCard())
	state.PlayerCardsCounter[target]++
	return ChallengeState{Kind: ChallengeTookCard}, nil
}
