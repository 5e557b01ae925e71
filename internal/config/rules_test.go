package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesParser_LoadDefault(t *testing.T) {
	bundle, err := NewRulesParser().LoadDefault()
	require.NoError(t, err)

	wizard, ok := bundle.Wizard("special_pays")
	require.True(t, ok)
	assert.Len(t, wizard.Steps, 5)
	assert.Len(t, wizard.PayTypes, 8)
	assert.ElementsMatch(t, wizard.PayTypes, bundle.Rules.PayTypes(), "every listed pay type has rules")

	for _, pt := range wizard.PayTypes {
		_, ok := bundle.Catalog.Get(pt)
		assert.True(t, ok, "catalog entry for %s", pt)
	}

	q, ok := bundle.Rules.Question("deployment_location_type")
	require.True(t, ok)
	assert.Equal(t, domain.PayType("hfp_idp"), q.PayType)
	assert.Equal(t, domain.Leaf{QuestionID: "deployed", Operator: domain.OpEquals, Value: domain.Bool(true)}, q.ShowIf)

	q, ok = bundle.Rules.Question("branch")
	require.True(t, ok)
	assert.Equal(t, domain.GeneralPayType, q.PayType)
	assert.Nil(t, q.ShowIf)

	q, ok = bundle.Rules.Question("deployed")
	require.True(t, ok)
	assert.Equal(t, "has_dependents", q.SkipTo["false"])
}

func TestRulesParser_DefaultAssessment(t *testing.T) {
	bundle, err := NewRulesParser().LoadDefault()
	require.NoError(t, err)
	engine := bundle.NewEngine()

	answers := domain.AnswerMap{
		"pay_grade":                domain.String("E-5"),
		"deployed":                 domain.Bool(true),
		"deployment_location_type": domain.String("combat_zone"),
		"has_dependents":           domain.Bool(true),
		"separated_from_family":    domain.Bool(true),
		"days_separated":           domain.Number(45),
		"sea_duty":                 domain.Bool(false),
		"aviation_status":          domain.String("none"),
		"special_qualifications":   domain.List("parachute"),
		"jump_current":             domain.Bool(true),
		"languages_proficient":     domain.Number(2),
		"dlpt_current":             domain.Bool(true),
	}
	wizard, _ := bundle.Wizard("special_pays")
	result := engine.RunAssessment(wizard.PayTypes, answerList(answers))

	expected := map[domain.PayType]struct {
		status domain.Status
		amount string
	}{
		"hfp_idp":        {domain.StatusEligible, "225"},
		"hdp_l":          {domain.StatusNotEligible, ""},
		"fsa":            {domain.StatusEligible, "250"},
		"career_sea_pay": {domain.StatusNotEligible, ""},
		"acip":           {domain.StatusNotEligible, ""},
		"parachute_pay":  {domain.StatusEligible, "150"},
		"dive_pay":       {domain.StatusIncomplete, ""},
		"flpb":           {domain.StatusEligible, "800"},
	}
	for pt, want := range expected {
		t.Run(string(pt), func(t *testing.T) {
			res, ok := result.ResultFor(pt)
			require.True(t, ok)
			assert.Equal(t, want.status, res.Status, res.Reason)
			if want.amount != "" {
				require.NotNil(t, res.MonthlyAmount)
				assert.True(t, res.MonthlyAmount.Equal(decimal.RequireFromString(want.amount)), "got %s", res.MonthlyAmount)
			}
		})
	}

	assert.Equal(t, 8, result.Summary.TotalPayTypesChecked)
	assert.Equal(t, 4, result.Summary.EligibleCount)
	assert.Equal(t, 3, result.Summary.NotEligibleCount)
	assert.Equal(t, 1, result.Summary.IncompleteCount)
	assert.True(t, result.Summary.EstimatedMonthlyTotal.Equal(decimal.NewFromInt(1425)))
}

func answerList(m domain.AnswerMap) []domain.Answer {
	out := make([]domain.Answer, 0, len(m))
	for id, v := range m {
		out = append(out, domain.Answer{QuestionID: id, Value: v})
	}
	return out
}

const miniQuestions = `
          - id: has_dependents
            text: Dependents?
            type: boolean
            required: true
          - id: tier
            text: Tier?
            type: select
            options:
              - { value: "1", label: One }
`

const miniRule = `
  - id: fsa-yes
    pay_type: fsa
    conditions: { question_id: has_dependents, operator: equals, value: true }
    result: { status: eligible, amount: 250 }
`

func miniDoc(questions, rules string) string {
	return `version: 1
wizards:
  - id: mini
    title: Mini
    pay_types: [fsa]
    steps:
      - id: only
        title: Only
        questions:` + questions + `
rules:` + rules
}

func TestRulesParser_Parse(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantInvalid bool
		errContains string
	}{
		{"valid", miniDoc(miniQuestions, miniRule), false, ""},
		{"bare leaf rule wraps in and", miniDoc(miniQuestions, `
  - id: tier-one
    pay_type: fsa
    conditions: { question_id: tier, operator: in, value: ["1"] }
    result: { status: eligible }
`), false, ""},
		{"not yaml", "version: [1", false, "failed to parse YAML"},
		{"empty", "", true, "document is empty"},
		{"missing rules", "version: 1\nwizards: []\n", true, "rules"},
		{"unknown field", miniDoc(miniQuestions, miniRule) + "    colour: red\n", true, "colour"},
		{"unknown operator", miniDoc(miniQuestions, `
  - id: bad-op
    pay_type: fsa
    conditions: { question_id: has_dependents, operator: roughly, value: true }
    result: { status: eligible }
`), true, "operator"},
		{"bad status", miniDoc(miniQuestions, `
  - id: bad-status
    pay_type: fsa
    conditions: { question_id: has_dependents, operator: equals, value: true }
    result: { status: maybe }
`), true, "status"},
		{"unknown question in rule", miniDoc(miniQuestions, `
  - id: ghost
    pay_type: fsa
    conditions: { question_id: ghost_question, operator: equals, value: true }
    result: { status: eligible }
`), true, `unknown question "ghost_question"`},
		{"unknown formula", miniDoc(miniQuestions, `
  - id: mystery
    pay_type: fsa
    conditions: { question_id: has_dependents, operator: equals, value: true }
    result: { status: eligible, amount_formula: mystery }
`), true, "unknown formula: mystery"},
		{"in needs list", miniDoc(miniQuestions, `
  - id: scalar-in
    pay_type: fsa
    conditions: { question_id: tier, operator: in, value: "1" }
    result: { status: eligible }
`), true, "needs a list value"},
		{"duplicate rule id", miniDoc(miniQuestions, miniRule+miniRule), true, `duplicate rule id "fsa-yes"`},
		{"duplicate question", miniDoc(miniQuestions+miniQuestions, miniRule), true, `duplicate question id "has_dependents"`},
		{"select without options", miniDoc(`
          - id: has_dependents
            text: Dependents?
            type: select
`, miniRule), true, "needs options"},
		{"skip target missing", miniDoc(`
          - id: has_dependents
            text: Dependents?
            type: boolean
            skip_to: { "false": nowhere }
`, miniRule), true, `"nowhere" not found`},
		{"show_if unknown question", miniDoc(`
          - id: has_dependents
            text: Dependents?
            type: boolean
            show_if: { question_id: nowhere, operator: equals, value: true }
`, miniRule), true, `unknown question "nowhere"`},
		{"bad pattern", miniDoc(`
          - id: has_dependents
            text: Dependents?
            type: text
            validation: { pattern: "([" }
`, miniRule), true, "invalid pattern"},
	}

	parser := NewRulesParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, err := parser.Parse([]byte(tt.doc))
			if tt.errContains == "" {
				require.NoError(t, err)
				assert.NotNil(t, bundle)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, tt.wantInvalid, errorsIsInvalid(err))
		})
	}
}

func errorsIsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidDocument)
}

func TestRulesParser_BareLeafRule(t *testing.T) {
	bundle, err := NewRulesParser().Parse([]byte(miniDoc(miniQuestions, miniRule)))
	require.NoError(t, err)
	rules := bundle.Rules.RulesFor("fsa")
	require.Len(t, rules, 1)
	assert.Equal(t, domain.LogicAnd, rules[0].Conditions.Type)
	assert.Len(t, rules[0].Conditions.Conditions, 1)
	require.NotNil(t, rules[0].Result.Amount)
	assert.True(t, rules[0].Result.Amount.Equal(decimal.NewFromInt(250)))
}

func TestRulesParser_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(miniDoc(miniQuestions, miniRule)), 0o600))

	bundle, err := NewRulesParser().LoadFromFile(path)
	require.NoError(t, err)
	_, ok := bundle.Wizard("mini")
	assert.True(t, ok)
	_, ok = bundle.Wizard("special_pays")
	assert.False(t, ok)

	_, err = NewRulesParser().LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultRulesYAMLIsACopy(t *testing.T) {
	a := DefaultRulesYAML()
	a[0] = '!'
	assert.NotEqual(t, a[0], DefaultRulesYAML()[0])
	assert.NotEmpty(t, RulesSchema())
}
