package domain

import "time"

// WizardStep groups questions shown together
type WizardStep struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Questions   []Question `yaml:"questions" json:"questions"`
}

// WizardConfig is a questionnaire definition and the pay types it assesses
type WizardConfig struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	PayTypes    []PayType    `yaml:"pay_types" json:"payTypes"`
	Steps       []WizardStep `yaml:"steps" json:"steps"`
}

// Questions returns every question in flat step order
func (c *WizardConfig) Questions() []Question {
	var out []Question
	for _, step := range c.Steps {
		out = append(out, step.Questions...)
	}
	return out
}

// SessionState is the lifecycle state of a wizard session
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionComplete   SessionState = "complete"
)

// WizardSession is the one mutable aggregate: a user's walk through a wizard.
// It is owned by a single writer.
type WizardSession struct {
	ID              string             `yaml:"id" json:"id"`
	ConfigID        string             `yaml:"config_id" json:"configId"`
	CurrentStep     int                `yaml:"current_step" json:"currentStep"`
	CurrentQuestion int                `yaml:"current_question" json:"currentQuestion"`
	Answers         []Answer           `yaml:"answers" json:"answers"`
	StartedAt       time.Time          `yaml:"started_at" json:"startedAt"`
	LastActivityAt  time.Time          `yaml:"last_activity_at" json:"lastActivityAt"`
	CompletedAt     *time.Time         `yaml:"completed_at,omitempty" json:"completedAt,omitempty"`
	IsComplete      bool               `yaml:"is_complete" json:"isComplete"`
	Result          *EligibilityResult `yaml:"result,omitempty" json:"result,omitempty"`
}

// State derives the lifecycle state
func (s *WizardSession) State() SessionState {
	if s.IsComplete {
		return SessionComplete
	}
	return SessionInProgress
}

// AnswerMap indexes the session's answers
func (s *WizardSession) AnswerMap() AnswerMap {
	return AnswersToMap(s.Answers)
}

// AnswerFor returns the recorded answer for a question
func (s *WizardSession) AnswerFor(questionID string) (Answer, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}
