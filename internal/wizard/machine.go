// Package wizard walks a session through a questionnaire: answers, branching,
// conditional questions, progress and completion.
package wizard

import (
	"fmt"
	"time"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rules"
)

// Assessor runs a full eligibility assessment
type Assessor interface {
	RunAssessment(payTypes []domain.PayType, answers []domain.Answer) domain.EligibilityResult
}

type position struct {
	step     int
	question int
}

// Machine applies one wizard config's navigation rules to sessions. It holds no session
// state, so one Machine serves every session of its config.
type Machine struct {
	config    *domain.WizardConfig
	questions []domain.Question
	flat      []position
	byID      map[string]int
	byPos     map[position]int
	Now       func() time.Time
}

// NewMachine indexes a wizard config in flat step order
func NewMachine(cfg *domain.WizardConfig) *Machine {
	m := &Machine{
		config: cfg,
		byID:   make(map[string]int),
		byPos:  make(map[position]int),
		Now:    func() time.Time { return time.Now().UTC() },
	}
	for si, step := range cfg.Steps {
		for qi, q := range step.Questions {
			pos := position{step: si, question: qi}
			m.byID[q.ID] = len(m.questions)
			m.byPos[pos] = len(m.questions)
			m.questions = append(m.questions, q)
			m.flat = append(m.flat, pos)
		}
	}
	return m
}

// Config returns the wizard definition
func (m *Machine) Config() *domain.WizardConfig { return m.config }

// Question returns a question of this wizard by id
func (m *Machine) Question(id string) (domain.Question, bool) {
	i, ok := m.byID[id]
	if !ok {
		return domain.Question{}, false
	}
	return m.questions[i], true
}

// Start creates an in-progress session positioned on the first visible question
func (m *Machine) Start(id string) *domain.WizardSession {
	now := m.Now()
	s := &domain.WizardSession{
		ID:             id,
		ConfigID:       m.config.ID,
		Answers:        []domain.Answer{},
		StartedAt:      now,
		LastActivityAt: now,
	}
	if first := m.firstVisibleFrom(0, domain.AnswerMap{}); first > 0 {
		m.moveTo(s, first)
	}
	return s
}

// Visible reports whether a question's showIf condition holds for the answers
func (m *Machine) Visible(q domain.Question, answers domain.AnswerMap) bool {
	return rules.Evaluate(q.ShowIf, answers)
}

// Current returns the question the session is positioned on
func (m *Machine) Current(s *domain.WizardSession) (domain.Question, bool) {
	i := m.currentIndex(s)
	if i < 0 {
		return domain.Question{}, false
	}
	return m.questions[i], true
}

// SetAnswer upserts the answer to a question. The value is stored as given; validation
// belongs to the caller.
func (m *Machine) SetAnswer(s *domain.WizardSession, questionID string, value domain.AnswerValue) error {
	if s.IsComplete {
		return ErrSessionComplete
	}
	if _, ok := m.byID[questionID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	now := m.Now()
	answer := domain.Answer{QuestionID: questionID, Value: value, Timestamp: now}
	replaced := false
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			s.Answers[i] = answer
			replaced = true
			break
		}
	}
	if !replaced {
		s.Answers = append(s.Answers, answer)
	}
	s.LastActivityAt = now
	return nil
}

// Next moves to the next visible question. moved is false at the end of the wizard.
func (m *Machine) Next(s *domain.WizardSession) (moved bool, err error) {
	if s.IsComplete {
		return false, ErrSessionComplete
	}
	answers := s.AnswerMap()
	cur := m.currentIndex(s)
	var target int
	if cur < 0 {
		target = m.firstVisibleFrom(0, answers)
	} else {
		target = m.resolveNext(cur, answers)
	}
	s.LastActivityAt = m.Now()
	if target < 0 {
		return false, nil
	}
	m.moveTo(s, target)
	return true, nil
}

// Previous moves back to the question that led to the current one. moved is false at the start.
func (m *Machine) Previous(s *domain.WizardSession) (moved bool, err error) {
	if s.IsComplete {
		return false, ErrSessionComplete
	}
	answers := s.AnswerMap()
	cur := m.currentIndex(s)
	s.LastActivityAt = m.Now()
	if cur < 0 {
		return false, nil
	}

	path := m.path(answers)
	for k := 1; k < len(path); k++ {
		if path[k] == cur {
			m.moveTo(s, path[k-1])
			return true, nil
		}
	}
	// Off the branch path (e.g. after GoToStep): fall back to flat order.
	for k := cur - 1; k >= 0; k-- {
		if m.Visible(m.questions[k], answers) {
			m.moveTo(s, k)
			return true, nil
		}
	}
	return false, nil
}

// GoToStep jumps to the first visible question at or after the start of a step
func (m *Machine) GoToStep(s *domain.WizardSession, step int) error {
	if s.IsComplete {
		return ErrSessionComplete
	}
	if step < 0 || step >= len(m.config.Steps) {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, step, len(m.config.Steps))
	}
	s.LastActivityAt = m.Now()
	start := -1
	for i, pos := range m.flat {
		if pos.step >= step {
			start = i
			break
		}
	}
	if start >= 0 {
		if k := m.firstVisibleFrom(start, s.AnswerMap()); k >= 0 {
			m.moveTo(s, k)
			return nil
		}
	}
	s.CurrentStep, s.CurrentQuestion = step, 0
	return nil
}

// Progress is the percentage of visible required questions that have a non-empty answer.
// With no visible required questions it is 100.
func (m *Machine) Progress(s *domain.WizardSession) float64 {
	total, answered := m.requiredCounts(s.AnswerMap())
	if total == 0 {
		return 100
	}
	return float64(answered) * 100 / float64(total)
}

// Ready reports whether every visible required question is answered
func (m *Machine) Ready(s *domain.WizardSession) bool {
	total, answered := m.requiredCounts(s.AnswerMap())
	return total == answered
}

// Missing lists the visible required questions without an answer, in flat order
func (m *Machine) Missing(s *domain.WizardSession) []string {
	answers := s.AnswerMap()
	var out []string
	for _, q := range m.questions {
		if q.Required && m.Visible(q, answers) && !answered(answers, q.ID) {
			out = append(out, q.ID)
		}
	}
	return out
}

// Complete runs the assessment over the wizard's pay types using only the answers to
// visible questions, attaches the result and marks the session complete. A completed session cannot be completed again.
func (m *Machine) Complete(s *domain.WizardSession, assessor Assessor) (domain.EligibilityResult, error) {
	if s.IsComplete {
		return domain.EligibilityResult{}, ErrSessionComplete
	}
	result := assessor.RunAssessment(m.config.PayTypes, m.VisibleAnswers(s.Answers))
	now := m.Now()
	s.Result = &result
	s.IsComplete = true
	s.CompletedAt = &now
	s.LastActivityAt = now
	return result, nil
}

// VisibleAnswers drops answers to questions whose showIf no longer holds. Hiding
// cascades, so a question shown only by a hidden answer is dropped as well.
// Answers to ids the wizard does not ask are kept.
func (m *Machine) VisibleAnswers(answers []domain.Answer) []domain.Answer {
	kept := answers
	for {
		am := domain.AnswersToMap(kept)
		next := make([]domain.Answer, 0, len(kept))
		for _, a := range kept {
			if i, ok := m.byID[a.QuestionID]; ok && !m.Visible(m.questions[i], am) {
				continue
			}
			next = append(next, a)
		}
		if len(next) == len(kept) {
			return next
		}
		kept = next
	}
}

func (m *Machine) requiredCounts(answers domain.AnswerMap) (total, done int) {
	for _, q := range m.questions {
		if !q.Required || !m.Visible(q, answers) {
			continue
		}
		total++
		if answered(answers, q.ID) {
			done++
		}
	}
	return total, done
}

func answered(answers domain.AnswerMap, questionID string) bool {
	v, ok := answers.Lookup(questionID)
	return ok && !v.IsEmpty()
}

func (m *Machine) currentIndex(s *domain.WizardSession) int {
	i, ok := m.byPos[position{step: s.CurrentStep, question: s.CurrentQuestion}]
	if !ok {
		return -1
	}
	return i
}

func (m *Machine) moveTo(s *domain.WizardSession, i int) {
	s.CurrentStep = m.flat[i].step
	s.CurrentQuestion = m.flat[i].question
}

// branchTarget applies the skip map, then nextQuestionId, then flat order
func (m *Machine) branchTarget(i int, answers domain.AnswerMap) int {
	q := m.questions[i]
	if v, ok := answers.Lookup(q.ID); ok {
		if dest, ok := q.SkipTo[v.String()]; ok {
			if j, ok := m.byID[dest]; ok {
				return j
			}
		}
	}
	if q.NextQuestionID != "" {
		if j, ok := m.byID[q.NextQuestionID]; ok {
			return j
		}
	}
	return i + 1
}

// resolveNext returns the next visible question after i, or -1 at the end
func (m *Machine) resolveNext(i int, answers domain.AnswerMap) int {
	return m.firstVisibleFrom(m.branchTarget(i, answers), answers)
}

func (m *Machine) firstVisibleFrom(i int, answers domain.AnswerMap) int {
	for k := i; k >= 0 && k < len(m.questions); k++ {
		if m.Visible(m.questions[k], answers) {
			return k
		}
	}
	return -1
}

// path is the sequence of questions a user reaches from the start by following Next
func (m *Machine) path(answers domain.AnswerMap) []int {
	var out []int
	seen := make(map[int]bool)
	for i := m.firstVisibleFrom(0, answers); i >= 0 && !seen[i]; i = m.resolveNext(i, answers) {
		seen[i] = true
		out = append(out, i)
	}
	return out
}
