package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar displays wizard completion
type ProgressBar struct {
	Percent float64
	Width   int
	Label   string
}

// NewProgressBar creates a progress bar at the given percentage
func NewProgressBar(percent float64) *ProgressBar {
	return &ProgressBar{Percent: percent, Width: 40}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Filled is the number of filled cells, clamped to the bar width
func (p *ProgressBar) Filled() int {
	filled := int(float64(p.Width) * p.Percent / 100)
	return min(max(filled, 0), p.Width)
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Label))
		content.WriteString(" ")
	}

	filled := p.Filled()
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty := p.Width - filled; empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("] ")
	content.WriteString(fmt.Sprintf("%.0f%%", p.Percent))
	return content.String()
}
