package coup

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/timpalpant/go-cfr"

	"github.com/elsid/coup/cards"
)

// CoupGame implements cfr.ExtensiveFormGame for an N-player table. The
// root is a chance node over all distinct deals; every node below it is a
// player node whose children are the legal actions at that position.
type CoupGame struct {
	settings Settings
	seed     uint64
}

// Verify that we implement the interface.
var _ cfr.ExtensiveFormGame = CoupGame{}

// NewCoupGame builds the extensive-form wrapper for the given table. The
// seed drives the deck shuffles replayed inside the tree.
func NewCoupGame(settings Settings, seed uint64) CoupGame {
	return CoupGame{settings: settings, seed: seed}
}

// NumPlayers implements cfr.ExtensiveFormGame.
func (g CoupGame) NumPlayers() int {
	return g.settings.PlayersNumber
}

// RootNode implements cfr.ExtensiveFormGame.
func (g CoupGame) RootNode() cfr.GameTreeNode {
	return &GameNode{
		settings: g.settings,
		rng:      rand.New(rand.NewSource(int64(g.seed))),
		isDeal:   true,
	}
}

// GameNode represents a position in the extensive-form game tree: the
// chance deal node at the root, or a concrete game below it.
type GameNode struct {
	settings Settings
	rng      *rand.Rand
	isDeal   bool
	game     *Game

	children []*GameNode
	actions  []Action
}

// Verify that we implement the interface.
var _ cfr.GameTreeNode = &GameNode{}

// NewGameNode wraps an already-dealt game as a tree node.
func NewGameNode(game *Game, seed uint64) *GameNode {
	return &GameNode{
		settings: game.Settings(),
		rng:      rand.New(rand.NewSource(int64(seed))),
		game:     game,
	}
}

// IsChance implements cfr.GameTreeNode. Only the deal is a chance event:
// every shuffle afterwards is an explicit ShuffleDeck move.
func (n *GameNode) IsChance() bool {
	return n.isDeal
}

// IsTerminal implements cfr.GameTreeNode.
func (n *GameNode) IsTerminal() bool {
	return !n.isDeal && n.game.IsDone()
}

// Player implements cfr.GameTreeNode: the player expected to act.
func (n *GameNode) Player() int {
	if n.isDeal {
		return 0
	}
	if winner, ok := n.game.Winner(); ok {
		return winner
	}
	view := n.game.AnonymousView()
	available := AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands)
	if len(available) == 0 {
		panic(fmt.Errorf("no available action in non-terminal state %v", view.StateType))
	}
	return available[len(available)-1].Player
}

// NumChildren implements cfr.GameTreeNode.
func (n *GameNode) NumChildren() int {
	n.buildChildren()
	return len(n.children)
}

// GetChild implements cfr.GameTreeNode.
func (n *GameNode) GetChild(i int) cfr.GameTreeNode {
	n.buildChildren()
	return n.children[i]
}

// GetChildProbability implements cfr.GameTreeNode. All deals are treated
// as equally likely.
func (n *GameNode) GetChildProbability(i int) float64 {
	if !n.IsChance() {
		panic("cannot get child probability on non-chance node")
	}
	n.buildChildren()
	return 1.0 / float64(len(n.children))
}

// GetAction returns the action leading to the i-th child of a player
// node.
func (n *GameNode) GetAction(i int) Action {
	n.buildChildren()
	return n.actions[i]
}

// InfoSet implements cfr.GameTreeNode: the serialized view of the
// position from the given player's perspective.
func (n *GameNode) InfoSet(player int) string {
	if n.isDeal {
		return "deal"
	}
	data, err := json.Marshal(n.game.PlayerView(player))
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Utility implements cfr.GameTreeNode: +1 for the winner, -1 otherwise.
func (n *GameNode) Utility(player int) float64 {
	if !n.IsTerminal() {
		panic("cannot get the utility of a non-terminal node")
	}
	if winner, _ := n.game.Winner(); winner == player {
		return 1.0
	}
	return -1.0
}

// Game returns the concrete game at this node, nil at the deal node.
func (n *GameNode) Game() *Game {
	return n.game
}

// String implements fmt.Stringer.
func (n *GameNode) String() string {
	if n.isDeal {
		return "GameNode{deal}"
	}
	return fmt.Sprintf("GameNode{%v}", n.game.StateType())
}

func (n *GameNode) buildChildren() {
	if n.children != nil {
		return
	}
	if n.isDeal {
		n.buildDealChildren()
		return
	}
	if n.game.IsDone() {
		n.children = []*GameNode{}
		return
	}
	view := n.game.AnonymousView()
	available := AvailableActions(view.StateType, view.PlayerCoins, view.PlayerHands)
	children := make([]*GameNode, 0, len(available))
	actions := make([]Action, 0, len(available))
	for _, candidate := range available {
		child := n.game.Clone()
		if err := child.Play(candidate, n.rng); err != nil {
			// Show, reveal and drop moves are enumerated without
			// looking at the hand; the ones naming a card the player
			// does not hold are rejected here.
			continue
		}
		children = append(children, &GameNode{settings: n.settings, rng: n.rng, game: child})
		actions = append(actions, candidate)
	}
	n.children = children
	n.actions = actions
}

func (n *GameNode) buildDealChildren() {
	deck := cards.NewDeck(n.settings.CardsPerType)
	available := cards.NewSet(deck)
	deals := enumerateDeals(available, nil, n.settings.PlayersNumber)
	children := make([]*GameNode, 0, len(deals))
	for _, hands := range deals {
		remaining := available
		for _, hand := range hands {
			for _, card := range hand {
				remaining = remaining.Remove(card)
			}
		}
		game := NewCustomGame(hands, remaining.AsSlice())
		children = append(children, &GameNode{settings: n.settings, rng: n.rng, game: game})
	}
	n.children = children
}

// enumerateDeals enumerates every assignment of distinct two-card hands
// to the remaining seats.
func enumerateDeals(available cards.Set, dealt [][]cards.Card, seatsLeft int) [][][]cards.Card {
	if seatsLeft == 0 {
		result := make([][]cards.Card, len(dealt))
		copy(result, dealt)
		return [][][]cards.Card{result}
	}
	var result [][][]cards.Card
	for i := 0; i < cards.NumKinds; i++ {
		first := cards.All[i]
		if available.CountOf(first) == 0 {
			continue
		}
		withoutFirst := available.Remove(first)
		for j := i; j < cards.NumKinds; j++ {
			second := cards.All[j]
			if withoutFirst.CountOf(second) == 0 {
				continue
			}
			remaining := withoutFirst.Remove(second)
			hand := []cards.Card{first, second}
			result = append(result, enumerateDeals(remaining, append(dealt, hand), seatsLeft-1)...)
		}
	}
	return result
}
