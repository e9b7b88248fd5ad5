package coup

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/elsid/coup/cards"
)

// Stats accumulates outcome distributions over many self-play games.
type Stats struct {
	RunID                        uuid.UUID
	Games                        int
	Steps                        []int
	Turns                        []int
	Rounds                       []int
	WinnerBotType                []BotType
	WinnerInitialCards           [][]cards.Card
	WinnerBotTypeAndInitialCards []winnerKey
}

type winnerKey struct {
	botType BotType
	cards   [CardsPerPlayer]cards.Card
}

// CollectRandomGamesStats plays the requested number of games across the
// given number of workers and accumulates their outcomes. Seeds for the
// individual games are drawn from one stream seeded by seed.
func CollectRandomGamesStats(seed uint64, number, workers int, botTypes []BotType, settings Settings) (*Stats, error) {
	stats := &Stats{RunID: uuid.New()}
	glog.Infof("stats run %v: %d games in %d workers", stats.RunID, number, workers)
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(int64(seed)))
	var wg sync.WaitGroup
	var firstErr error
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if stats.Games >= number || firstErr != nil {
					mu.Unlock()
					return
				}
				stats.Games++
				gameSeed := rng.Uint64()
				mu.Unlock()
				result, err := RunGameWithBots(gameSeed, botTypes, settings, RunOptions{WritePlayer: -1})
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				stats.record(result, botTypes)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}

func (s *Stats) record(result RunResult, botTypes []BotType) {
	s.Steps = append(s.Steps, result.End.Step())
	s.Turns = append(s.Turns, result.End.Turn())
	s.Rounds = append(s.Rounds, result.End.Round())
	winner, _ := result.End.Winner()
	botType := botTypes[winner%len(botTypes)]
	s.WinnerBotType = append(s.WinnerBotType, botType)
	hand := result.Begin.PlayerHand(winner)
	sort.Slice(hand, func(i, j int) bool { return hand[i] < hand[j] })
	s.WinnerInitialCards = append(s.WinnerInitialCards, hand)
	var key winnerKey
	key.botType = botType
	copy(key.cards[:], hand)
	s.WinnerBotTypeAndInitialCards = append(s.WinnerBotTypeAndInitialCards, key)
}

// Write prints the accumulated distributions.
func (s *Stats) Write(w io.Writer) {
	fmt.Fprintf(w, "run: %v\n", s.RunID)
	writeCounts(w, "steps", s.Steps)
	writeCounts(w, "turns", s.Turns)
	writeCounts(w, "rounds", s.Rounds)
	winnerBotType := make(map[BotType]int)
	for _, botType := range s.WinnerBotType {
		winnerBotType[botType]++
	}
	fmt.Fprintln(w, "winner bot type:")
	for _, botType := range AllBotTypes {
		games := winnerBotType[botType]
		fmt.Fprintf(w, "%v %d %.2f%%\n", botType, games, percent(games, s.Games))
	}
	fmt.Fprintln(w)
	winnerCards := make(map[string]int)
	for _, hand := range s.WinnerInitialCards {
		winnerCards[handKey(hand)]++
	}
	fmt.Fprintln(w, "winner initial cards:")
	forEachHandPair(func(hand []cards.Card) {
		games := winnerCards[handKey(hand)]
		fmt.Fprintf(w, "%v %d %.2f%%\n", hand, games, percent(games, s.Games))
	})
	fmt.Fprintln(w)
	winnerBoth := make(map[string]int)
	for _, key := range s.WinnerBotTypeAndInitialCards {
		winnerBoth[key.botType.String()+"/"+handKey(key.cards[:])]++
	}
	fmt.Fprintln(w, "winner bot type and initial cards:")
	forEachHandPair(func(hand []cards.Card) {
		for _, botType := range AllBotTypes {
			games := winnerBoth[botType.String()+"/"+handKey(hand)]
			fmt.Fprintf(w, "%v %v %d %.2f%%\n", botType, hand, games, percent(games, s.Games))
		}
	})
}

func writeCounts(w io.Writer, name string, values []int) {
	counts := make(map[int]int)
	for _, value := range values {
		counts[value]++
	}
	keys := make([]int, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	fmt.Fprintf(w, "%s: %d\n", name, len(keys))
	for _, key := range keys {
		fmt.Fprintf(w, "%d %d\n", key, counts[key])
	}
	fmt.Fprintln(w)
}

func forEachHandPair(f func(hand []cards.Card)) {
	for i := 0; i < cards.NumKinds; i++ {
		for j := i; j < cards.NumKinds; j++ {
			f([]cards.Card{cards.All[i], cards.All[j]})
		}
	}
}

func handKey(hand []cards.Card) string {
	parts := make([]string, len(hand))
	for i, card := range hand {
		parts[i] = card.String()
	}
	return strings.Join(parts, ",")
}

func percent(games, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(games) / float64(total) * 100
}
