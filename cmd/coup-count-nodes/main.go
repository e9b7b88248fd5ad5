// Probe the size of the coup game tree via the extensive-form adapter.
package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/timpalpant/go-cfr"

	coup "github.com/elsid/coup"
)

func main() {
	playersNumber := flag.Int("players_number", 2, "number of seats")
	cardsPerType := flag.Int("cards_per_type", 1, "copies of each card kind")
	seed := flag.Uint64("seed", 42, "seed for shuffles replayed inside the tree")
	maxDepth := flag.Int("max_depth", 12, "depth at which subtrees are cut off")
	flag.Parse()

	game := coup.NewCoupGame(coup.Settings{
		PlayersNumber: *playersNumber,
		CardsPerType:  *cardsPerType,
	}, *seed)
	total := countNodes(game.RootNode(), 0, *maxDepth)
	glog.Infof("%d nodes in game tree to depth %d", total, *maxDepth)
}

func countNodes(node cfr.GameTreeNode, depth, maxDepth int) int {
	if node.IsTerminal() || depth >= maxDepth {
		return 1
	}
	total := 1
	for i := 0; i < node.NumChildren(); i++ {
		total += countNodes(node.GetChild(i), depth+1, maxDepth)
	}
	return total
}
