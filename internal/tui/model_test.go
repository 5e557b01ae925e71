package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scott198989/securepoint-sub000/internal/config"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/store"
	"github.com/scott198989/securepoint-sub000/internal/tui/components"
	"github.com/scott198989/securepoint-sub000/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) Model {
	t.Helper()
	bundle, err := config.NewRulesParser().LoadDefault()
	require.NoError(t, err)
	svc := wizard.NewService(store.NewMemoryStore(), bundle.NewEngine(), bundle.Wizards...)
	m := NewModel(context.Background(), svc, "special_pays")

	// Run the start command synchronously
	return step(t, m, m.Init()())
}

// step feeds msg to the model and runs any resulting service command
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and, for enter/esc/ctrl+s, resolves any service call it issues
func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	model := next.(Model)
	switch key.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyCtrlS:
		if cmd != nil {
			return step(t, model, cmd())
		}
	}
	return model
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModel_StartsOnFirstQuestion(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, SceneQuestion, m.currentScene)
	require.NotNil(t, m.current())
	assert.Equal(t, "branch", m.current().ID)

	view := m.View()
	assert.Contains(t, view, "Which branch do you serve in?")
	assert.Contains(t, view, "> Army")
}

func TestModel_AnswerAndNavigate(t *testing.T) {
	m := newModel(t)

	m = press(t, m, down)
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, enter)
	require.Equal(t, "component", m.current().ID)
	ans, ok := m.snapshot.Session.AnswerFor("branch")
	require.True(t, ok)
	assert.Equal(t, "navy", ans.Value.String())

	m = press(t, m, enter)
	require.Equal(t, "pay_grade", m.current().ID)
	assert.True(t, m.input.Focused())

	t.Run("custom validation message", func(t *testing.T) {
		bad := press(t, typeText(t, m, "sgt"), enter)
		assert.Equal(t, "pay_grade", bad.current().ID)
		assert.Equal(t, "Enter a pay grade like E-5, O-3 or W-2", bad.rejected)
		assert.Contains(t, bad.View(), "Enter a pay grade like E-5, O-3 or W-2")
	})

	m = press(t, typeText(t, m, "E-5"), enter)
	require.Equal(t, "years_of_service", m.current().ID)

	t.Run("number parse failure", func(t *testing.T) {
		bad := press(t, typeText(t, m, "ten"), enter)
		assert.Equal(t, "Please enter a number", bad.rejected)
	})

	m = press(t, m, esc)
	require.Equal(t, "pay_grade", m.current().ID)
	assert.Equal(t, "E-5", m.input.Value(), "previous answer is pre-filled")
}

func TestModel_MultiSelectToggle(t *testing.T) {
	m := newModel(t)
	q := domain.Question{
		ID:      "special_qualifications",
		Type:    domain.QuestionMultiSelect,
		Options: []domain.QuestionOption{{Value: "parachute", Label: "Parachute"}, {Value: "dive", Label: "Dive"}},
	}
	m.snapshot.Current = &q
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = press(t, m, down)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})

	v, ok := m.value(q)
	require.True(t, ok)
	items, _ := v.AsList()
	assert.Equal(t, []string{"parachute"}, items)
	assert.Contains(t, m.View(), "[x] Parachute")
}

func TestModel_FinishEarlyShowsResults(t *testing.T) {
	m := newModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, SceneResults, m.currentScene)
	require.NotNil(t, m.Result())
	assert.Len(t, m.Result().Results, 8)

	view := m.View()
	assert.Contains(t, view, "Family Separation Allowance")
	assert.Contains(t, view, "Estimated monthly: $0.00")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ErrorView(t *testing.T) {
	m := newModel(t)
	m = step(t, m, ErrorMsg{Err: wizard.ErrSessionNotFound})
	assert.Contains(t, m.View(), "Error: session not found")
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-5, 0},
	}
	for _, tt := range tests {
		bar := components.NewProgressBar(tt.percent).WithWidth(10)
		assert.Equal(t, tt.filled, bar.Filled())
	}
	assert.Contains(t, components.NewProgressBar(25).WithLabel("Progress").Render(), "25%")
}
