package coup

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elsid/coup/cards"
)

var (
	renderHeader   = lipgloss.NewStyle().Bold(true)
	renderActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	renderOut      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	renderWinner   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	renderState    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	renderCurrent  = lipgloss.NewStyle().Bold(true)
	renderRevealed = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderGame writes a full-knowledge rendering of the game: every hand is
// visible. Used by verbose simulation and replay output.
func RenderGame(w io.Writer, g *Game) {
	fmt.Fprintln(w, renderHeader.Render(fmt.Sprintf("round: %d, turn: %d, step: %d", g.Round(), g.Turn(), g.Step())))
	fmt.Fprintf(w, "deck: %d\n", g.DeckSize())
	if len(g.revealedCards) > 0 {
		fmt.Fprintf(w, "revealed: %s\n", renderRevealed.Render(cardList(g.revealedCards)))
	}
	winner := -1
	if player, ok := g.Winner(); ok {
		winner = player
	}
	for player := range g.playerCards {
		marker := "   "
		if player == g.player {
			marker = renderCurrent.Render("-> ")
		}
		label := fmt.Sprintf("%d) %d coins [%s]", player, g.playerCoins[player], cardList(g.playerCards[player]))
		switch {
		case player == winner:
			label = renderWinner.Render("W " + label)
		case g.IsPlayerActive(player):
			label = renderActive.Render("+ " + label)
		default:
			label = renderOut.Render("- " + label)
		}
		fmt.Fprintf(w, "%s%s\n", marker, label)
	}
	fmt.Fprintln(w, renderState.Render(fmt.Sprintf("state: %v", g.stateType)))
}

// RenderPlayerView writes a rendering of the game as one player sees it:
// their own hand plus the public counters.
func RenderPlayerView(w io.Writer, view PlayerView) {
	fmt.Fprintln(w, renderHeader.Render(fmt.Sprintf("round: %d, turn: %d, step: %d", view.Round, view.Turn, view.Step)))
	fmt.Fprintf(w, "deck: %d\n", view.Deck)
	if len(view.RevealedCards) > 0 {
		fmt.Fprintf(w, "revealed: %s\n", renderRevealed.Render(cardList(view.RevealedCards)))
	}
	for player := range view.PlayerHands {
		label := fmt.Sprintf("%d) %d coins, %d influence", player, view.PlayerCoins[player], view.PlayerHands[player])
		if player == view.Player {
			label += fmt.Sprintf(" [%s]", cardList(view.Cards))
			label = renderCurrent.Render(label)
		} else if view.PlayerHands[player] == 0 {
			label = renderOut.Render(label)
		}
		fmt.Fprintf(w, "  %s\n", label)
	}
	fmt.Fprintln(w, renderState.Render(fmt.Sprintf("state: %v", view.StateType)))
}

func cardList(values []cards.Card) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = value.String()
	}
	return strings.Join(parts, " ")
}
