package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/output"
	"github.com/scott198989/securepoint-sub000/internal/rules"
	"github.com/scott198989/securepoint-sub000/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to exit...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneLoading:
		content = "Starting questionnaire..."
	case SceneQuestion:
		content = m.renderQuestion()
	case SceneResults:
		content = m.renderResults()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render(m.title),
		SubtitleStyle.Render(m.currentScene.String()),
		"",
		content,
		m.renderStatusBar(),
	)
}

// renderStatusBar renders the keyboard shortcuts for the current scene
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneQuestion:
		shortcuts = []string{
			formatShortcut("enter", "answer"),
			formatShortcut("esc", "back"),
			formatShortcut("ctrl+s", "finish"),
			formatShortcut("ctrl+c", "quit"),
		}
		if q := m.current(); q != nil && !usesInput(*q) {
			shortcuts = append([]string{formatShortcut("↑/↓", "move")}, shortcuts...)
			if q.Type == domain.QuestionMultiSelect {
				shortcuts = append([]string{formatShortcut("space", "toggle")}, shortcuts...)
			}
		}
	case SceneResults:
		shortcuts = []string{formatShortcut("q", "quit")}
	default:
		shortcuts = []string{formatShortcut("ctrl+c", "quit")}
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) current() *domain.Question {
	if m.snapshot == nil {
		return nil
	}
	return m.snapshot.Current
}

func (m Model) renderQuestion() string {
	var b strings.Builder
	b.WriteString(components.NewProgressBar(m.snapshot.Progress).WithLabel("Progress").Render())
	b.WriteString("\n\n")

	q := m.current()
	if q == nil {
		b.WriteString("All questions answered. Press enter to see your results.")
		return BorderStyle.Render(b.String())
	}

	text := q.Text
	if q.Required {
		text += " *"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(text))
	b.WriteString("\n")
	if q.HelpText != "" && !usesInput(*q) {
		b.WriteString(HelpStyle.Render(q.HelpText))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if usesInput(*q) {
		b.WriteString(m.input.View())
	} else {
		for i, o := range choices(*q) {
			pointer := "  "
			if i == m.cursor {
				pointer = "> "
			}
			label := o.Label
			if q.Type == domain.QuestionMultiSelect {
				box := "[ ]"
				if m.picked[o.Value] {
					box = "[x]"
				}
				label = box + " " + label
			}
			line := pointer + label
			if i == m.cursor {
				line = SelectedItemStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	if m.rejected != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.rejected))
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderResults() string {
	if m.result == nil {
		return "No result"
	}
	var b strings.Builder
	for _, r := range m.result.Results {
		status := StatusStyle(r.Status).Render(rules.StatusSymbol(r.Status) + " " + rules.StatusLabel(r.Status))
		b.WriteString(fmt.Sprintf("%s  %s", status, r.Name))
		switch {
		case r.MonthlyAmount != nil:
			b.WriteString("  " + output.FormatCurrency(*r.MonthlyAmount) + "/mo")
		case r.AmountRange != nil:
			b.WriteString(fmt.Sprintf("  %s-%s/mo", output.FormatCurrency(r.AmountRange.Min), output.FormatCurrency(r.AmountRange.Max)))
		}
		b.WriteString("\n")
		if r.Reason != "" {
			b.WriteString(HelpStyle.Render("    "+r.Reason) + "\n")
		}
	}
	s := m.result.Summary
	b.WriteString(fmt.Sprintf("\nEstimated monthly: %s  annual: %s\nResult ID: %s",
		output.FormatCurrency(s.EstimatedMonthlyTotal), output.FormatCurrency(s.EstimatedAnnualTotal), m.result.ID))
	return BorderStyle.Render(b.String())
}
