package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrSessionComplete = errors.New("session is already complete")
	ErrSessionNotFound = errors.New("session not found")
	ErrResultNotFound  = errors.New("result not found")
	ErrConfigNotFound  = errors.New("wizard config not found")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrStepOutOfRange  = errors.New("step out of range")
	ErrInvalidAnswer   = errors.New("invalid answer")
)

// SessionError records the operation and session that failed
type SessionError struct {
	Op        string
	SessionID string
	Err       error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s session %s: %v", e.Op, e.SessionID, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// AnswerError carries the user-facing validation message for a rejected answer
type AnswerError struct {
	QuestionID string
	Message    string
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("%s: %s", e.QuestionID, e.Message)
}

func (e *AnswerError) Unwrap() error { return ErrInvalidAnswer }
