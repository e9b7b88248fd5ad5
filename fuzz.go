package coup

import (
	"math/rand"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elsid/coup/cards"
)

// maxFuzzSteps bounds a single random playout; a legal game ends long
// before this because forced coups drain the table.
const maxFuzzSteps = 100000

// RunFuzz plays random games and checks the state machine against the
// legal-action enumerator at every step: an action must be accepted
// exactly when the enumerator reports it and the actor holds the card it
// names, and every accepted action must preserve the card-conservation
// invariants.
func RunFuzz(seed uint64, games int, settings Settings) error {
	runID := uuid.New()
	glog.Infof("fuzz run %v: %d games with %+v", runID, games, settings)
	rng := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i < games; i++ {
		gameSeed := rng.Uint64()
		if err := fuzzGame(gameSeed, settings); err != nil {
			return errors.Wrapf(err, "fuzz run %v game %d (seed %d)", runID, i, gameSeed)
		}
	}
	return nil
}

func fuzzGame(seed uint64, settings Settings) error {
	rng := rand.New(rand.NewSource(int64(seed)))
	game := NewGame(settings, rng)
	universe := actionUniverse(settings.PlayersNumber)
	total := settings.CardsPerType * cards.NumKinds
	for step := 0; !game.IsDone(); step++ {
		if step >= maxFuzzSteps {
			return errors.Errorf("game did not terminate in %d steps", maxFuzzSteps)
		}
		view := game.AnonymousView()
		available := AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands)
		if err := checkActions(game, available, universe); err != nil {
			return errors.Wrapf(err, "step %d state %v", step, view.StateType)
		}
		playable := playableActions(game, available)
		if len(playable) == 0 {
			return errors.Errorf("step %d state %v has no playable action", step, view.StateType)
		}
		action := playable[rng.Intn(len(playable))]
		if err := game.Play(action, rng); err != nil {
			return errors.Wrapf(err, "step %d", step)
		}
		if err := checkConservation(game, total); err != nil {
			return errors.Wrapf(err, "step %d after %v", step, action)
		}
	}
	return nil
}

// checkActions verifies enumerator soundness and completeness: for every
// candidate action, the state machine accepts it exactly when it is
// enumerated and the actor holds the card it names.
func checkActions(game *Game, available, universe []Action) error {
	enumerated := make(map[string]bool, len(available))
	for _, action := range available {
		enumerated[action.String()] = true
	}
	probeRng := rand.New(rand.NewSource(0))
	for _, candidate := range universe {
		expected := enumerated[candidate.String()] && holdsNamedCard(game, candidate)
		err := game.Clone().Play(candidate, probeRng)
		if expected && err != nil {
			return errors.Wrapf(err, "enumerated action %v was rejected", candidate)
		}
		if !expected && err == nil {
			return errors.Errorf("non-enumerated action %v was accepted", candidate)
		}
	}
	return nil
}

func checkConservation(game *Game, total int) error {
	view := game.AnonymousView()
	sum := view.Deck + len(view.RevealedCards)
	for player, counter := range view.PlayerCards {
		if counter < view.PlayerHands[player] {
			return errors.Errorf("player %d holds %d cards but hand size is %d", player, counter, view.PlayerHands[player])
		}
		sum += counter
	}
	if sum != total {
		return errors.Errorf("card conservation broken: %d cards accounted, expected %d", sum, total)
	}
	for player, coins := range view.PlayerCoins {
		if coins < 0 {
			return errors.Errorf("player %d has negative coins", player)
		}
	}
	return nil
}

// playableActions filters the enumerated actions to those the acting
// player can actually perform with the cards they hold.
func playableActions(game *Game, available []Action) []Action {
	var result []Action
	for _, action := range available {
		if holdsNamedCard(game, action) {
			result = append(result, action)
		}
	}
	return result
}

func holdsNamedCard(game *Game, action Action) bool {
	switch action.ActionType.Kind {
	case ShowCard, RevealCard, DropCard:
		return handContains(game.PlayerHand(action.Player), action.ActionType.Card)
	}
	return true
}

// actionUniverse enumerates every syntactically possible action for the
// given table size: the completeness half of the enumerator laws is
// checked against this set.
func actionUniverse(playersNumber int) []Action {
	var result []Action
	for player := 0; player < playersNumber; player++ {
		for _, kind := range [...]ActionKind{
			Income, ForeignAid, Tax, Exchange, PassChallenge, PassBlock,
			Challenge, TakeCard, ShuffleDeck, BlockForeignAid, BlockAssassination,
		} {
			result = append(result, Action{Player: player, ActionType: ActionType{Kind: kind}})
		}
		for target := 0; target < playersNumber; target++ {
			for _, kind := range [...]ActionKind{Coup, Assassinate, Steal} {
				result = append(result, Action{Player: player, ActionType: ActionType{Kind: kind, Target: target}})
			}
		}
		for _, card := range cards.All {
			for _, kind := range [...]ActionKind{BlockSteal, ShowCard, RevealCard, DropCard} {
				result = append(result, Action{Player: player, ActionType: ActionType{Kind: kind, Card: card}})
			}
		}
	}
	return result
}
