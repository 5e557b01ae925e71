package rules

import (
	"testing"
	"time"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	payHFP   domain.PayType = "hfp_idp"
	payFSA   domain.PayType = "fsa"
	payFLPB  domain.PayType = "flpb"
	payOther domain.PayType = "unconfigured"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fixtureEngine(t *testing.T) *Engine {
	t.Helper()
	rules := []domain.Rule{
		{
			ID: "hfp-not-deployed", PayType: payHFP, Priority: 20,
			Conditions: domain.All(leaf("deployed", domain.OpEquals, domain.Bool(false))),
			Result:     domain.RuleOutcome{Status: domain.StatusNotEligible, Reason: "Not deployed"},
		},
		{
			ID: "hfp-eligible", PayType: payHFP, Priority: 10,
			Conditions: domain.All(
				leaf("deployed", domain.OpEquals, domain.Bool(true)),
				leaf("location", domain.OpIn, domain.List("combat_zone", "imminent_danger_area")),
			),
			Result: domain.RuleOutcome{Status: domain.StatusEligible, Reason: "Serving in a designated area", Amount: amount("225")},
		},
		{
			ID: "fsa-eligible", PayType: payFSA, Priority: 1,
			Conditions: domain.All(
				leaf("has_dependents", domain.OpEquals, domain.Bool(true)),
				leaf("days_away", domain.OpGreaterThan, domain.Number(29)),
			),
			Result: domain.RuleOutcome{Status: domain.StatusEligible, Amount: amount("250")},
		},
		{
			ID: "fsa-partial", PayType: payFSA, Priority: 2,
			Conditions: domain.Any(
				leaf("has_dependents", domain.OpEquals, domain.Bool(true)),
				leaf("days_away", domain.OpGreaterThan, domain.Number(29)),
			),
			// no declared status: derived from the requirement breakdown
			Result: domain.RuleOutcome{Reason: "Some requirements met"},
		},
		{
			ID: "flpb-eligible", PayType: payFLPB, Priority: 1,
			Conditions: domain.All(leaf("languages", domain.OpGreaterThan, domain.Number(0))),
			Result: domain.RuleOutcome{
				Status:        domain.StatusEligible,
				AmountFormula: "per_unit:question=languages,rate=400,cap=1000",
			},
		},
		{
			ID: "flpb-bad-formula", PayType: payFLPB, Priority: 0,
			Conditions: domain.All(leaf("languages", domain.OpGreaterThan, domain.Number(5))),
			Result:     domain.RuleOutcome{Status: domain.StatusEligible, AmountFormula: "no_such_formula", Amount: amount("1000")},
		},
	}
	questions := []domain.Question{
		{ID: "deployed", Text: "Are you deployed?", Type: domain.QuestionBoolean},
		{ID: "location", Text: "Where are you deployed?", Type: domain.QuestionSelect, Options: []domain.QuestionOption{
			{Value: "combat_zone", Label: "Combat zone"},
			{Value: "imminent_danger_area", Label: "Imminent danger area"},
		}},
	}
	catalog := NewCatalog(
		PayTypeInfo{PayType: payHFP, Name: "Hostile Fire / Imminent Danger Pay", DocumentsNeeded: []string{"Deployment orders"}},
		PayTypeInfo{PayType: payFSA, Name: "Family Separation Allowance",
			AmountRange: &domain.AmountRange{Min: decimal.NewFromInt(0), Max: decimal.NewFromInt(250)},
			Notes:       []string{"Paid after 30 consecutive days away"}},
	)
	e := NewEngine(NewRuleSet(rules, questions...), catalog)
	e.SetLogger(logging.NewTest(t))
	e.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	e.NewID = func() string { return "result-1" }
	return e
}

func TestEngine_EvaluateForPayType(t *testing.T) {
	e := fixtureEngine(t)

	t.Run("first matching rule by priority", func(t *testing.T) {
		res := e.EvaluateForPayType(payHFP, domain.AnswerMap{
			"deployed": domain.Bool(true),
			"location": domain.String("combat_zone"),
		})
		assert.Equal(t, domain.StatusEligible, res.Status)
		assert.Equal(t, "hfp-eligible", res.MatchedRuleID)
		assert.Equal(t, "Hostile Fire / Imminent Danger Pay", res.Name)
		require.NotNil(t, res.MonthlyAmount)
		assert.True(t, res.MonthlyAmount.Equal(decimal.NewFromInt(225)))
		assert.Equal(t, 2, res.TotalRequirements)
		assert.Equal(t, 2, res.MetRequirements)
		assert.Equal(t, "Are you deployed? is yes", res.Requirements[0].Description)
		assert.Equal(t, "Where are you deployed? is one of Combat zone, Imminent danger area", res.Requirements[1].Description)
		assert.Equal(t, []string{"Deployment orders"}, res.DocumentsNeeded)
		assert.NotEmpty(t, res.NextSteps)
	})

	t.Run("not eligible", func(t *testing.T) {
		res := e.EvaluateForPayType(payHFP, domain.AnswerMap{"deployed": domain.Bool(false)})
		assert.Equal(t, domain.StatusNotEligible, res.Status)
		assert.Nil(t, res.MonthlyAmount)
		assert.Empty(t, res.DocumentsNeeded)
	})

	t.Run("no match is incomplete", func(t *testing.T) {
		res := e.EvaluateForPayType(payHFP, domain.AnswerMap{})
		assert.Equal(t, domain.StatusIncomplete, res.Status)
		assert.Empty(t, res.Requirements)
		assert.Zero(t, res.TotalRequirements)
		assert.Contains(t, res.Notes[0], "Complete the remaining questions")
	})

	t.Run("unknown pay type is incomplete", func(t *testing.T) {
		res := e.EvaluateForPayType(payOther, domain.AnswerMap{"deployed": domain.Bool(true)})
		assert.Equal(t, domain.StatusIncomplete, res.Status)
		assert.Equal(t, "unconfigured", res.Name)
	})

	t.Run("derived status with range", func(t *testing.T) {
		res := e.EvaluateForPayType(payFSA, domain.AnswerMap{
			"has_dependents": domain.Bool(true),
			"days_away":      domain.Number(10),
		})
		assert.Equal(t, "fsa-partial", res.MatchedRuleID)
		assert.Equal(t, domain.StatusPotentiallyEligible, res.Status)
		assert.Equal(t, 1, res.MetRequirements)
		assert.Nil(t, res.MonthlyAmount)
		require.NotNil(t, res.AmountRange)
		assert.True(t, res.AmountRange.Max.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, []string{"Paid after 30 consecutive days away"}, res.Notes)
	})

	t.Run("formula amount", func(t *testing.T) {
		res := e.EvaluateForPayType(payFLPB, domain.AnswerMap{"languages": domain.Number(2)})
		require.NotNil(t, res.MonthlyAmount)
		assert.True(t, res.MonthlyAmount.Equal(decimal.NewFromInt(800)))

		res = e.EvaluateForPayType(payFLPB, domain.AnswerMap{"languages": domain.Number(3)})
		assert.True(t, res.MonthlyAmount.Equal(decimal.NewFromInt(1000)), "capped")
	})

	t.Run("unknown formula falls back to fixed amount", func(t *testing.T) {
		res := e.EvaluateForPayType(payFLPB, domain.AnswerMap{"languages": domain.Number(6)})
		assert.Equal(t, "flpb-bad-formula", res.MatchedRuleID)
		require.NotNil(t, res.MonthlyAmount)
		assert.True(t, res.MonthlyAmount.Equal(decimal.NewFromInt(1000)))
	})
}

func TestDeriveStatus(t *testing.T) {
	met := domain.RequirementResult{Met: true}
	unmet := domain.RequirementResult{Met: false}
	tests := []struct {
		name string
		reqs []domain.RequirementResult
		want domain.Status
	}{
		{"none", nil, domain.StatusIncomplete},
		{"all met", []domain.RequirementResult{met, met}, domain.StatusEligible},
		{"none met", []domain.RequirementResult{unmet, unmet}, domain.StatusNotEligible},
		{"some met", []domain.RequirementResult{met, unmet}, domain.StatusPotentiallyEligible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.reqs))
		})
	}
}

func TestEngine_RunAssessment(t *testing.T) {
	e := fixtureEngine(t)
	answers := []domain.Answer{
		{QuestionID: "deployed", Value: domain.Bool(true)},
		{QuestionID: "location", Value: domain.String("imminent_danger_area")},
		{QuestionID: "has_dependents", Value: domain.Bool(true)},
		{QuestionID: "days_away", Value: domain.Number(45)},
		{QuestionID: "languages", Value: domain.Number(1)},
	}
	result := e.RunAssessment([]domain.PayType{payHFP, payFSA, payFLPB, payOther}, answers)

	assert.Equal(t, "result-1", result.ID)
	assert.Equal(t, 2024, result.AssessedAt.Year())
	assert.Len(t, result.Answers, 5)
	assert.Len(t, result.Results, 4)

	s := result.Summary
	assert.Equal(t, 4, s.TotalPayTypesChecked)
	assert.Equal(t, 3, s.EligibleCount)
	assert.Equal(t, 1, s.IncompleteCount)
	assert.True(t, s.EstimatedMonthlyTotal.Equal(decimal.NewFromInt(875)), "225 + 250 + 400, got %s", s.EstimatedMonthlyTotal)
	assert.True(t, s.EstimatedAnnualTotal.Equal(decimal.NewFromInt(10500)))

	fsa, ok := result.ResultFor(payFSA)
	require.True(t, ok)
	assert.Equal(t, domain.StatusEligible, fsa.Status)
}

func TestEngine_RunAssessment_DefaultsToAllPayTypes(t *testing.T) {
	e := fixtureEngine(t)
	result := e.RunAssessment(nil, nil)
	assert.Equal(t, 3, result.Summary.TotalPayTypesChecked)
	assert.Equal(t, 3, result.Summary.IncompleteCount)
	assert.True(t, result.Summary.EstimatedMonthlyTotal.IsZero())
}

func TestSummarize_CountsAlwaysAddUp(t *testing.T) {
	statuses := append(domain.Statuses, domain.Status("bogus"))
	var results []domain.PayTypeEligibilityResult
	for i := 0; i < 40; i++ {
		st := statuses[(i*7)%len(statuses)]
		r := domain.PayTypeEligibilityResult{Status: st, MonthlyAmount: amount("100")}
		results = append(results, r)

		s := Summarize(results)
		sum := s.EligibleCount + s.PotentiallyEligibleCount + s.NotEligibleCount + s.IncompleteCount
		require.Equal(t, s.TotalPayTypesChecked, sum)
		assert.True(t, s.EstimatedMonthlyTotal.Equal(decimal.NewFromInt(int64(100*s.EligibleCount))),
			"only eligible results count toward the total")
	}
}

func TestEngine_SetLogger(t *testing.T) {
	e := NewEngine(nil, nil)
	e.SetLogger(nil)
	assert.IsType(t, logging.NopLogger{}, e.Logger)
	assert.NotEmpty(t, e.NewID())
}

func TestRuleSet_StablePriorityOrder(t *testing.T) {
	rs := NewRuleSet([]domain.Rule{
		{ID: "b", PayType: "x", Priority: 5},
		{ID: "a", PayType: "x", Priority: 1},
		{ID: "c", PayType: "x", Priority: 5},
		{ID: "z", PayType: "y", Priority: 0},
	})
	var ids []string
	for _, r := range rs.RulesFor("x") {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, []domain.PayType{"x", "y"}, rs.PayTypes())
	assert.Equal(t, 4, rs.Len())
	assert.Empty(t, rs.RulesFor("missing"))
}
