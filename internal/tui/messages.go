package tui

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/wizard"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneLoading Scene = iota
	SceneQuestion
	SceneResults
)

func (s Scene) String() string {
	switch s {
	case SceneLoading:
		return "Loading"
	case SceneQuestion:
		return "Questions"
	case SceneResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// SessionMsg carries the session state after a service call
type SessionMsg struct {
	Snapshot *wizard.Snapshot
}

// AnswerRejectedMsg carries the validation message for a rejected answer
type AnswerRejectedMsg struct {
	QuestionID string
	Message    string
}

// ResultMsg signals the session was completed and assessed
type ResultMsg struct {
	Result *domain.EligibilityResult
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
