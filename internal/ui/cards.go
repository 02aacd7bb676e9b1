package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/DevSymphony/forge/internal/rules"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(16).
			Align(lipgloss.Center)
	labelStyle = lipgloss.NewStyle().Bold(true)
	goodColor  = lipgloss.Color("10")
	badColor   = lipgloss.Color("9")
	flatColor  = lipgloss.Color("8")
)

// Card is one metric in an impact panel.
type Card struct {
	Label string
	Value string
	Trend int // <0 worse, 0 flat, >0 better
}

// ImpactCards returns the CPU, memory and FPS cards for an impact. Lower CPU
// and memory are better; higher FPS is better.
func ImpactCards(i rules.Impact) []Card {
	return []Card{
		{Label: "CPU", Value: fmt.Sprintf("%+d%%", i.CPU), Trend: -sign(i.CPU)},
		{Label: "Memory", Value: fmt.Sprintf("%+d%%", i.Memory), Trend: -sign(i.Memory)},
		{Label: "FPS", Value: fmt.Sprintf("%+d", i.FPS), Trend: sign(i.FPS)},
	}
}

// RenderImpact draws the impact cards side by side. Without a terminal it
// falls back to a single plain line.
func RenderImpact(i rules.Impact) string {
	cards := ImpactCards(i)
	if !ColorEnabled() {
		return fmt.Sprintf("CPU %s | Memory %s | FPS %s", cards[0].Value, cards[1].Value, cards[2].Value)
	}

	rendered := make([]string, len(cards))
	for n, c := range cards {
		color := flatColor
		switch {
		case c.Trend > 0:
			color = goodColor
		case c.Trend < 0:
			color = badColor
		}
		value := lipgloss.NewStyle().Foreground(color).Render(c.Value)
		rendered[n] = cardStyle.BorderForeground(color).Render(
			lipgloss.JoinVertical(lipgloss.Center, labelStyle.Render(c.Label), value),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
