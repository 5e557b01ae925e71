package wizard

import (
	"testing"
	"time"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eq(questionID string, v domain.AnswerValue) domain.Leaf {
	return domain.Leaf{QuestionID: questionID, Operator: domain.OpEquals, Value: v}
}

// testConfig: deployed(false skips to has_dependents) -> location, days (deployed only)
// -> has_dependents -> separated (dependents only, jumps to langs) -> notes -> langs
func testConfig() domain.WizardConfig {
	return domain.WizardConfig{
		ID:       "test",
		Title:    "Test",
		PayTypes: []domain.PayType{"fsa"},
		Steps: []domain.WizardStep{
			{ID: "deployment", Title: "Deployment", Questions: []domain.Question{
				{ID: "deployed", Type: domain.QuestionBoolean, Required: true, SkipTo: map[string]string{"false": "has_dependents"}},
				{ID: "location", Type: domain.QuestionSelect, Required: true, ShowIf: eq("deployed", domain.Bool(true)),
					Options: []domain.QuestionOption{{Value: "combat_zone"}, {Value: "none"}}},
				{ID: "days", Type: domain.QuestionNumber, ShowIf: eq("deployed", domain.Bool(true))},
			}},
			{ID: "family", Title: "Family", Questions: []domain.Question{
				{ID: "has_dependents", Type: domain.QuestionBoolean, Required: true},
				{ID: "separated", Type: domain.QuestionBoolean, Required: true, ShowIf: eq("has_dependents", domain.Bool(true)), NextQuestionID: "langs"},
				{ID: "notes", Type: domain.QuestionText},
			}},
			{ID: "language", Title: "Language", Questions: []domain.Question{
				{ID: "langs", Type: domain.QuestionNumber, Required: true},
			}},
		},
	}
}

type stubAssessor struct {
	calls    int
	payTypes []domain.PayType
}

func (s *stubAssessor) RunAssessment(payTypes []domain.PayType, answers []domain.Answer) domain.EligibilityResult {
	s.calls++
	s.payTypes = payTypes
	return domain.EligibilityResult{ID: "result-1", Answers: answers}
}

func newTestMachine() *Machine {
	cfg := testConfig()
	m := NewMachine(&cfg)
	m.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

func current(t *testing.T, m *Machine, s *domain.WizardSession) string {
	t.Helper()
	q, ok := m.Current(s)
	require.True(t, ok)
	return q.ID
}

func TestMachine_Start(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "test", s.ConfigID)
	assert.Equal(t, 0, s.CurrentStep)
	assert.Equal(t, 0, s.CurrentQuestion)
	assert.Empty(t, s.Answers)
	assert.Equal(t, domain.SessionInProgress, s.State())
	assert.Equal(t, 0.0, m.Progress(s))
	assert.Equal(t, []string{"deployed", "has_dependents", "langs"}, m.Missing(s))
}

func TestMachine_SetAnswer(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")

	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(true)))
	require.NoError(t, m.SetAnswer(s, "langs", domain.Number(1)))
	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(false)))
	require.Len(t, s.Answers, 2, "answers are keyed by question")
	assert.Equal(t, "deployed", s.Answers[0].QuestionID, "overwrite keeps position")
	assert.True(t, s.Answers[0].Value.Equal(domain.Bool(false)))

	err := m.SetAnswer(s, "nope", domain.Bool(true))
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestMachine_NextHonorsSkipMapNextIDAndShowIf(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]domain.AnswerValue
		from    string
		want    string
	}{
		{"skip map on false", map[string]domain.AnswerValue{"deployed": domain.Bool(false)}, "deployed", "has_dependents"},
		{"no skip entry falls through", map[string]domain.AnswerValue{"deployed": domain.Bool(true)}, "deployed", "location"},
		{"unanswered uses flat order but hides", nil, "deployed", "has_dependents"},
		{"next question id", map[string]domain.AnswerValue{"has_dependents": domain.Bool(true), "separated": domain.Bool(true)}, "separated", "langs"},
		{"hidden question skipped", map[string]domain.AnswerValue{"has_dependents": domain.Bool(false)}, "has_dependents", "notes"},
		{"visible follow-up", map[string]domain.AnswerValue{"has_dependents": domain.Bool(true)}, "has_dependents", "separated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine()
			s := m.Start("s1")
			for id, v := range tt.answers {
				require.NoError(t, m.SetAnswer(s, id, v))
			}
			m.moveTo(s, m.byID[tt.from])

			moved, err := m.Next(s)
			require.NoError(t, err)
			assert.True(t, moved)
			assert.Equal(t, tt.want, current(t, m, s))
		})
	}
}

func TestMachine_NextAtEnd(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")
	m.moveTo(s, m.byID["langs"])
	moved, err := m.Next(s)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, "langs", current(t, m, s))
}

func TestMachine_PreviousRetracesBranches(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")
	walk := []struct {
		answer string
		value  domain.AnswerValue
		next   string
	}{
		{"deployed", domain.Bool(false), "has_dependents"},
		{"has_dependents", domain.Bool(true), "separated"},
		{"separated", domain.Bool(true), "langs"},
	}
	for _, step := range walk {
		require.Equal(t, step.answer, current(t, m, s))
		require.NoError(t, m.SetAnswer(s, step.answer, step.value))
		_, err := m.Next(s)
		require.NoError(t, err)
		require.Equal(t, step.next, current(t, m, s))
	}

	for _, want := range []string{"separated", "has_dependents", "deployed"} {
		moved, err := m.Previous(s)
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, want, current(t, m, s))
	}
	moved, err := m.Previous(s)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, "deployed", current(t, m, s))
}

func TestMachine_PreviousOffPathUsesFlatOrder(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")
	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(true)))
	require.NoError(t, m.SetAnswer(s, "has_dependents", domain.Bool(true)))
	require.NoError(t, m.GoToStep(s, 1))
	m.moveTo(s, m.byID["notes"])

	moved, err := m.Previous(s)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "separated", current(t, m, s))
}

func TestMachine_GoToStep(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")

	require.NoError(t, m.GoToStep(s, 2))
	assert.Equal(t, "langs", current(t, m, s))
	assert.Equal(t, 2, s.CurrentStep)

	require.NoError(t, m.GoToStep(s, 0))
	assert.Equal(t, "deployed", current(t, m, s))

	assert.ErrorIs(t, m.GoToStep(s, 3), ErrStepOutOfRange)
	assert.ErrorIs(t, m.GoToStep(s, -1), ErrStepOutOfRange)
}

func TestMachine_ProgressTracksVisibility(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")

	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(true)))
	// deployed, location, has_dependents, langs are visible and required
	assert.Equal(t, 25.0, m.Progress(s))

	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(false)))
	assert.InDelta(t, 100.0/3, m.Progress(s), 1e-9, "location is hidden again")

	require.NoError(t, m.SetAnswer(s, "has_dependents", domain.Bool(false)))
	require.NoError(t, m.SetAnswer(s, "langs", domain.String("")))
	assert.InDelta(t, 200.0/3, m.Progress(s), 1e-9, "empty answers do not count")
	assert.False(t, m.Ready(s))

	require.NoError(t, m.SetAnswer(s, "langs", domain.Number(0)))
	assert.Equal(t, 100.0, m.Progress(s))
	assert.True(t, m.Ready(s))
	assert.Empty(t, m.Missing(s))
}

func TestMachine_Complete(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")
	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(false)))

	assessor := &stubAssessor{}
	result, err := m.Complete(s, assessor)
	require.NoError(t, err)
	assert.Equal(t, "result-1", result.ID)
	assert.Equal(t, []domain.PayType{"fsa"}, assessor.payTypes)
	assert.True(t, s.IsComplete)
	assert.Equal(t, domain.SessionComplete, s.State())
	require.NotNil(t, s.Result)
	require.NotNil(t, s.CompletedAt)
	assert.Len(t, s.Result.Answers, 1)

	t.Run("complete sessions reject mutation", func(t *testing.T) {
		assert.ErrorIs(t, m.SetAnswer(s, "deployed", domain.Bool(true)), ErrSessionComplete)
		_, err := m.Next(s)
		assert.ErrorIs(t, err, ErrSessionComplete)
		_, err = m.Previous(s)
		assert.ErrorIs(t, err, ErrSessionComplete)
		assert.ErrorIs(t, m.GoToStep(s, 0), ErrSessionComplete)
		_, err = m.Complete(s, assessor)
		assert.ErrorIs(t, err, ErrSessionComplete)
		assert.Equal(t, 1, assessor.calls)
		assert.True(t, s.Answers[0].Value.Equal(domain.Bool(false)))
	})
}

func TestMachine_VisibleAnswers(t *testing.T) {
	m := newTestMachine()
	at := func(id string, v domain.AnswerValue) domain.Answer { return domain.Answer{QuestionID: id, Value: v} }
	ids := func(answers []domain.Answer) []string {
		var out []string
		for _, a := range answers {
			out = append(out, a.QuestionID)
		}
		return out
	}

	t.Run("hidden answers are dropped", func(t *testing.T) {
		got := m.VisibleAnswers([]domain.Answer{
			at("deployed", domain.Bool(false)),
			at("location", domain.String("combat_zone")),
			at("days", domain.Number(10)),
			at("has_dependents", domain.Bool(false)),
			at("separated", domain.Bool(true)),
			at("imported", domain.String("kept")),
		})
		assert.Equal(t, []string{"deployed", "has_dependents", "imported"}, ids(got))
	})

	t.Run("visible answers are untouched", func(t *testing.T) {
		in := []domain.Answer{at("deployed", domain.Bool(true)), at("location", domain.String("none"))}
		assert.Equal(t, in, m.VisibleAnswers(in))
	})

	t.Run("hiding cascades", func(t *testing.T) {
		cfg := domain.WizardConfig{ID: "chain", Steps: []domain.WizardStep{{ID: "s", Questions: []domain.Question{
			{ID: "a", Type: domain.QuestionBoolean},
			{ID: "b", Type: domain.QuestionText, ShowIf: eq("a", domain.Bool(true))},
			{ID: "c", Type: domain.QuestionNumber, ShowIf: eq("b", domain.String("x"))},
		}}}}
		chain := NewMachine(&cfg)
		got := chain.VisibleAnswers([]domain.Answer{
			at("a", domain.Bool(false)),
			at("b", domain.String("x")),
			at("c", domain.Number(1)),
		})
		assert.Equal(t, []string{"a"}, ids(got))
	})
}

func TestMachine_CompleteAssessesVisibleAnswersOnly(t *testing.T) {
	m := newTestMachine()
	s := m.Start("s1")
	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(true)))
	require.NoError(t, m.SetAnswer(s, "location", domain.String("combat_zone")))
	require.NoError(t, m.SetAnswer(s, "deployed", domain.Bool(false)))

	result, err := m.Complete(s, &stubAssessor{})
	require.NoError(t, err)
	require.Len(t, result.Answers, 1)
	assert.Equal(t, "deployed", result.Answers[0].QuestionID)
	assert.Len(t, s.Answers, 2, "the session keeps every recorded answer")
}

func TestMachine_CycleInBranchesTerminates(t *testing.T) {
	cfg := domain.WizardConfig{ID: "loop", Steps: []domain.WizardStep{{ID: "a", Questions: []domain.Question{
		{ID: "q1", Type: domain.QuestionBoolean, NextQuestionID: "q2"},
		{ID: "q2", Type: domain.QuestionBoolean, NextQuestionID: "q1"},
	}}}}
	m := NewMachine(&cfg)
	s := m.Start("s1")
	assert.Len(t, m.path(s.AnswerMap()), 2)
	m.moveTo(s, 1)
	moved, err := m.Previous(s)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "q1", current(t, m, s))
}
