package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionMsg:
		m.snapshot = msg.Snapshot
		m.currentScene = SceneQuestion
		cmd := m.prepare()
		return m, cmd

	case AnswerRejectedMsg:
		m.rejected = msg.Message
		return m, nil

	case ResultMsg:
		m.result = msg.Result
		m.currentScene = SceneResults
		m.input.Blur()
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	if m.currentScene == SceneQuestion && m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keyboard shortcuts
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.err != nil {
		return m, tea.Quit
	}

	switch m.currentScene {
	case SceneResults:
		switch msg.String() {
		case "q", "esc", "enter":
			return m, tea.Quit
		}
		return m, nil
	case SceneQuestion:
		return m.handleQuestionKey(msg)
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.snapshot == nil || m.snapshot.Current == nil {
		if msg.String() == "enter" {
			return m, m.completeCmd()
		}
		return m, nil
	}
	q := *m.snapshot.Current

	switch msg.String() {
	case "enter":
		v, ok := m.value(q)
		if !ok {
			m.rejected = "Please enter a number"
			return m, nil
		}
		return m, m.answerCmd(q.ID, v)
	case "esc", "shift+tab":
		return m, m.previousCmd()
	case "ctrl+s":
		return m, m.completeCmd()
	}

	if usesInput(q) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	opts := choices(q)
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(opts) > 0 {
			v := opts[m.cursor].Value
			m.picked[v] = !m.picked[v]
		}
	}
	return m, nil
}
