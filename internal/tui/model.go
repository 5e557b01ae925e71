package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/wizard"
)

// Model represents the entire application state
type Model struct {
	ctx      context.Context
	service  *wizard.Service
	configID string
	title    string

	currentScene Scene
	snapshot     *wizard.Snapshot
	result       *domain.EligibilityResult

	// Answer entry for the current question
	cursor   int
	picked   map[string]bool
	input    textinput.Model
	rejected string

	// Terminal dimensions
	width  int
	height int

	err error
}

// NewModel creates a model that runs one session of the given wizard
func NewModel(ctx context.Context, service *wizard.Service, configID string) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 30

	title := configID
	if m, err := service.Machine(configID); err == nil {
		title = m.Config().Title
	}
	return Model{
		ctx:          ctx,
		service:      service,
		configID:     configID,
		title:        title,
		currentScene: SceneLoading,
		picked:       map[string]bool{},
		input:        ti,
		width:        80,
		height:       24,
	}
}

// Init starts the session (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.startSessionCmd()
}

// Result returns the assessment once the session is complete
func (m Model) Result() *domain.EligibilityResult { return m.result }

func (m Model) startSessionCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.service.Start(m.ctx, m.configID)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return SessionMsg{Snapshot: snap}
	}
}

func (m Model) sessionID() string {
	if m.snapshot == nil || m.snapshot.Session == nil {
		return ""
	}
	return m.snapshot.Session.ID
}

// answerCmd records the answer and advances; at the end of the wizard it completes the session
func (m Model) answerCmd(questionID string, value domain.AnswerValue) tea.Cmd {
	id := m.sessionID()
	return func() tea.Msg {
		if _, err := m.service.SetAnswer(m.ctx, id, questionID, value); err != nil {
			var answerErr *wizard.AnswerError
			if errors.As(err, &answerErr) {
				return AnswerRejectedMsg{QuestionID: answerErr.QuestionID, Message: answerErr.Message}
			}
			return ErrorMsg{Err: err}
		}
		snap, err := m.service.Next(m.ctx, id)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if !snap.Moved {
			return complete(m.ctx, m.service, id)
		}
		return SessionMsg{Snapshot: snap}
	}
}

func (m Model) previousCmd() tea.Cmd {
	id := m.sessionID()
	return func() tea.Msg {
		snap, err := m.service.Previous(m.ctx, id)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return SessionMsg{Snapshot: snap}
	}
}

func (m Model) completeCmd() tea.Cmd {
	id := m.sessionID()
	return func() tea.Msg { return complete(m.ctx, m.service, id) }
}

func complete(ctx context.Context, service *wizard.Service, id string) tea.Msg {
	snap, err := service.Complete(ctx, id)
	if err != nil {
		return ErrorMsg{Err: err}
	}
	return ResultMsg{Result: snap.Session.Result}
}

// choices lists the selectable values of the current question
func choices(q domain.Question) []domain.QuestionOption {
	if q.Type == domain.QuestionBoolean {
		return []domain.QuestionOption{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}
	}
	return q.Options
}

// usesInput reports whether the question is answered by typing
func usesInput(q domain.Question) bool {
	switch q.Type {
	case domain.QuestionText, domain.QuestionNumber, domain.QuestionDate:
		return true
	}
	return false
}

// value builds the answer from the cursor, picks or text input. ok is false when
// typed text does not parse as a number.
func (m Model) value(q domain.Question) (v domain.AnswerValue, ok bool) {
	opts := choices(q)
	switch q.Type {
	case domain.QuestionBoolean:
		return domain.Bool(opts[m.cursor].Value == "true"), true
	case domain.QuestionSelect:
		if len(opts) == 0 {
			return domain.Null(), true
		}
		return domain.String(opts[m.cursor].Value), true
	case domain.QuestionMultiSelect:
		items := []string{}
		for _, o := range opts {
			if m.picked[o.Value] {
				items = append(items, o.Value)
			}
		}
		return domain.List(items...), true
	case domain.QuestionNumber:
		raw := strings.TrimSpace(m.input.Value())
		if raw == "" {
			return domain.Null(), true
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Null(), false
		}
		return domain.Number(n), true
	}
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return domain.Null(), true
	}
	return domain.String(raw), true
}

// prepare resets answer entry for the current question, pre-filling any existing answer
func (m *Model) prepare() tea.Cmd {
	m.cursor, m.picked, m.rejected = 0, map[string]bool{}, ""
	m.input.Reset()
	m.input.Blur()
	if m.snapshot == nil || m.snapshot.Current == nil {
		return nil
	}
	q := *m.snapshot.Current
	existing, answered := m.snapshot.Session.AnswerMap().Lookup(q.ID)

	if usesInput(q) {
		if answered {
			m.input.SetValue(existing.String())
		}
		m.input.Placeholder = q.HelpText
		return m.input.Focus()
	}
	if !answered {
		return nil
	}
	if items, ok := existing.AsList(); ok {
		for _, item := range items {
			m.picked[item] = true
		}
		return nil
	}
	for i, o := range choices(q) {
		if o.Value == existing.String() {
			m.cursor = i
		}
	}
	return nil
}
