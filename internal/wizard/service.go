package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/logging"
	"github.com/scott198989/securepoint-sub000/internal/metrics"
	"github.com/scott198989/securepoint-sub000/internal/rules"
	"github.com/scott198989/securepoint-sub000/internal/store"
)

// SessionKey is the store key of a session
func SessionKey(id string) string { return "session:" + id }

// ResultKey is the store key of an eligibility result
func ResultKey(id string) string { return "result:" + id }

// Snapshot is a session together with its derived navigation state
type Snapshot struct {
	Session  *domain.WizardSession `json:"session"`
	Current  *domain.Question      `json:"currentQuestion,omitempty"`
	Progress float64               `json:"progress"`
	Ready    bool                  `json:"ready"`
	Missing  []string              `json:"missing,omitempty"`
	Moved    bool                  `json:"moved"`
}

// Service drives wizard sessions and persists them, and their results, through a store
type Service struct {
	store    store.Store
	assessor Assessor
	machines map[string]*Machine
	order    []string
	logger   logging.Logger
	newID    func() string

	// mu serializes load-modify-save so a session has one writer at a time
	mu sync.Mutex
}

// NewService creates a service over the given wizards
func NewService(st store.Store, assessor Assessor, configs ...domain.WizardConfig) *Service {
	s := &Service{
		store:    st,
		assessor: assessor,
		machines: make(map[string]*Machine, len(configs)),
		logger:   logging.NopLogger{},
		newID:    newSessionID,
	}
	for i := range configs {
		cfg := configs[i]
		if _, dup := s.machines[cfg.ID]; !dup {
			s.order = append(s.order, cfg.ID)
		}
		s.machines[cfg.ID] = NewMachine(&cfg)
	}
	return s
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SetLogger sets the logger; nil installs a no-op logger
func (s *Service) SetLogger(logger logging.Logger) {
	s.logger = logging.OrNop(logger)
}

// Wizards lists the configured wizards in registration order
func (s *Service) Wizards() []domain.WizardConfig {
	out := make([]domain.WizardConfig, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.machines[id].Config())
	}
	return out
}

// Machine returns the navigator for a wizard
func (s *Service) Machine(configID string) (*Machine, error) {
	m, ok := s.machines[configID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configID)
	}
	return m, nil
}

// Start creates and persists a new session
func (s *Service) Start(ctx context.Context, configID string) (*Snapshot, error) {
	m, err := s.Machine(configID)
	if err != nil {
		return nil, err
	}
	session := m.Start(s.newID())
	if err := s.save(ctx, session); err != nil {
		return nil, &SessionError{Op: "start", SessionID: session.ID, Err: err}
	}
	metrics.SessionsStarted.WithLabelValues(configID).Inc()
	s.logger.Infof("session %s started for wizard %s", session.ID, configID)
	return s.snapshot(m, session, false), nil
}

// Get loads a session
func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	m, session, err := s.load(ctx, "get", id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(m, session, false), nil
}

// SetAnswer validates and records an answer. Validation failures return an *AnswerError.
func (s *Service) SetAnswer(ctx context.Context, id, questionID string, value domain.AnswerValue) (*Snapshot, error) {
	return s.mutate(ctx, "answer", id, func(m *Machine, session *domain.WizardSession) (bool, error) {
		if session.IsComplete {
			return false, ErrSessionComplete
		}
		q, ok := m.Question(questionID)
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
		}
		if res := rules.ValidateAnswer(q, value); !res.IsValid {
			return false, &AnswerError{QuestionID: questionID, Message: res.Error}
		}
		return false, m.SetAnswer(session, questionID, value)
	})
}

// Next advances to the next visible question
func (s *Service) Next(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, "next", id, func(m *Machine, session *domain.WizardSession) (bool, error) {
		return m.Next(session)
	})
}

// Previous moves back one question
func (s *Service) Previous(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, "previous", id, func(m *Machine, session *domain.WizardSession) (bool, error) {
		return m.Previous(session)
	})
}

// GoToStep jumps to a step
func (s *Service) GoToStep(ctx context.Context, id string, step int) (*Snapshot, error) {
	return s.mutate(ctx, "goto", id, func(m *Machine, session *domain.WizardSession) (bool, error) {
		if err := m.GoToStep(session, step); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Complete assesses the session, stores the result under its own key and marks the
// session complete
func (s *Service) Complete(ctx context.Context, id string) (*Snapshot, error) {
	var result domain.EligibilityResult
	snap, err := s.mutate(ctx, "complete", id, func(m *Machine, session *domain.WizardSession) (bool, error) {
		r, err := m.Complete(session, s.assessor)
		if err != nil {
			return false, err
		}
		result = r
		if err := store.SaveJSON(ctx, s.store, ResultKey(r.ID), r); err != nil {
			return false, fmt.Errorf("save result: %w", err)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	metrics.SessionsCompleted.WithLabelValues(snap.Session.ConfigID).Inc()
	metrics.ObserveAssessment(result)
	s.logger.Infof("session %s complete: result %s", id, result.ID)
	return snap, nil
}

// Abandon discards a session. Results it produced are kept.
func (s *Service) Abandon(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, err := s.load(ctx, "abandon", id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, SessionKey(id)); err != nil {
		return &SessionError{Op: "abandon", SessionID: id, Err: err}
	}
	s.logger.Infof("session %s abandoned", id)
	return nil
}

// Assess runs a one-shot assessment outside any session and stores the result
func (s *Service) Assess(ctx context.Context, payTypes []domain.PayType, answers []domain.Answer) (domain.EligibilityResult, error) {
	result := s.assessor.RunAssessment(payTypes, answers)
	if err := store.SaveJSON(ctx, s.store, ResultKey(result.ID), result); err != nil {
		return domain.EligibilityResult{}, fmt.Errorf("save result: %w", err)
	}
	metrics.ObserveAssessment(result)
	return result, nil
}

// Result loads a stored eligibility result
func (s *Service) Result(ctx context.Context, id string) (*domain.EligibilityResult, error) {
	var result domain.EligibilityResult
	if err := store.LoadJSON(ctx, s.store, ResultKey(id), &result); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrResultNotFound, id)
		}
		return nil, err
	}
	return &result, nil
}

func (s *Service) mutate(ctx context.Context, op, id string, fn func(*Machine, *domain.WizardSession) (bool, error)) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, session, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	moved, err := fn(m, session)
	if err != nil {
		return nil, &SessionError{Op: op, SessionID: id, Err: err}
	}
	if err := s.save(ctx, session); err != nil {
		return nil, &SessionError{Op: op, SessionID: id, Err: err}
	}
	s.logger.Debugf("session %s %s: step %d question %d", id, op, session.CurrentStep, session.CurrentQuestion)
	return s.snapshot(m, session, moved), nil
}

func (s *Service) load(ctx context.Context, op, id string) (*Machine, *domain.WizardSession, error) {
	var session domain.WizardSession
	if err := store.LoadJSON(ctx, s.store, SessionKey(id), &session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = ErrSessionNotFound
		}
		return nil, nil, &SessionError{Op: op, SessionID: id, Err: err}
	}
	m, err := s.Machine(session.ConfigID)
	if err != nil {
		return nil, nil, &SessionError{Op: op, SessionID: id, Err: err}
	}
	return m, &session, nil
}

func (s *Service) save(ctx context.Context, session *domain.WizardSession) error {
	return store.SaveJSON(ctx, s.store, SessionKey(session.ID), session)
}

func (s *Service) snapshot(m *Machine, session *domain.WizardSession, moved bool) *Snapshot {
	snap := &Snapshot{
		Session:  session,
		Progress: m.Progress(session),
		Ready:    m.Ready(session),
		Missing:  m.Missing(session),
		Moved:    moved,
	}
	if q, ok := m.Current(session); ok && !session.IsComplete {
		snap.Current = &q
	}
	return snap
}
