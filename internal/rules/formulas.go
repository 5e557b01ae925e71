package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/shopspring/decimal"
)

// Formula computes a monthly amount from the answers. ok is false when the answers
// do not carry what the formula needs.
type Formula func(answers domain.AnswerMap) (amount decimal.Decimal, ok bool)

// FormulaFactory creates a formula from parameters
type FormulaFactory func(params map[string]string) (Formula, error)

// FormulaRegistry resolves the amountFormula names used by rules
type FormulaRegistry struct {
	factories map[string]FormulaFactory
}

// NewFormulaRegistry creates a registry with all built-in formulas registered
func NewFormulaRegistry() *FormulaRegistry {
	registry := &FormulaRegistry{
		factories: make(map[string]FormulaFactory),
	}

	registry.Register("hardship_duty_location", createHardshipDutyLocation)
	registry.Register("career_sea_pay", createCareerSeaPay)
	registry.Register("aviation_incentive", createAviationIncentive)
	registry.Register("parachute_duty", createParachuteDuty)
	registry.Register("per_unit", createPerUnit)

	return registry
}

// Register adds a formula factory to the registry
func (r *FormulaRegistry) Register(name string, factory FormulaFactory) {
	r.factories[name] = factory
}

// Create creates a formula by name with the given parameters
func (r *FormulaRegistry) Create(name string, params map[string]string) (Formula, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown formula: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered formulas, sorted
func (r *FormulaRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse reads a formula reference from a rules document.
// Format: "name" or "name:param1=value1,param2=value2"
// Example: "per_unit:question=languages_proficient,rate=400,cap=1000"
func (r *FormulaRegistry) Parse(spec string) (Formula, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

// Factory functions for each formula

func questionParam(params map[string]string, key, fallback string) string {
	if q, ok := params[key]; ok && q != "" {
		return q
	}
	return fallback
}

func number(answers domain.AnswerMap, questionID string) (float64, bool) {
	v, ok := answers.Lookup(questionID)
	if !ok {
		return 0, false
	}
	return v.AsNumber()
}

// createHardshipDutyLocation pays $50/$100/$150 for tiers 1-3
func createHardshipDutyLocation(params map[string]string) (Formula, error) {
	question := questionParam(params, "question", "hardship_tier")
	tiers := map[string]decimal.Decimal{
		"1": decimal.NewFromInt(50),
		"2": decimal.NewFromInt(100),
		"3": decimal.NewFromInt(150),
	}
	return func(answers domain.AnswerMap) (decimal.Decimal, bool) {
		v, ok := answers.Lookup(question)
		if !ok {
			return decimal.Zero, false
		}
		amount, ok := tiers[v.String()]
		return amount, ok
	}, nil
}

type seaPayStep struct {
	years    float64
	enlisted int64
	officer  int64
}

// cumulative sea service steps
var seaPaySteps = []seaPayStep{
	{0, 50, 150},
	{1, 100, 200},
	{3, 250, 300},
	{5, 400, 450},
	{8, 520, 600},
	{12, 620, 750},
}

// createCareerSeaPay scales with cumulative sea years and whether the member is an officer
func createCareerSeaPay(params map[string]string) (Formula, error) {
	yearsQ := questionParam(params, "question", "sea_years")
	gradeQ := questionParam(params, "grade_question", "pay_grade")
	return func(answers domain.AnswerMap) (decimal.Decimal, bool) {
		years, ok := number(answers, yearsQ)
		if !ok {
			return decimal.Zero, false
		}
		officer := false
		if g, ok := answers.Lookup(gradeQ); ok {
			officer = rates.IsOfficer(g.String())
		}
		step := seaPaySteps[0]
		for _, s := range seaPaySteps {
			if years >= s.years {
				step = s
			}
		}
		if officer {
			return decimal.NewFromInt(step.officer), true
		}
		return decimal.NewFromInt(step.enlisted), true
	}, nil
}

// createAviationIncentive pays officer ACIP or enlisted CEFIP by aviation years
func createAviationIncentive(params map[string]string) (Formula, error) {
	statusQ := questionParam(params, "status_question", "aviation_status")
	yearsQ := questionParam(params, "question", "aviation_years")
	return func(answers domain.AnswerMap) (decimal.Decimal, bool) {
		status, ok := answers.Lookup(statusQ)
		if !ok {
			return decimal.Zero, false
		}
		years, ok := number(answers, yearsQ)
		if !ok {
			return decimal.Zero, false
		}
		switch status.String() {
		case "aircrew_officer":
			switch {
			case years > 6:
				return decimal.NewFromInt(1000), true
			case years > 2:
				return decimal.NewFromInt(250), true
			default:
				return decimal.NewFromInt(125), true
			}
		case "enlisted_aircrew":
			switch {
			case years > 14:
				return decimal.NewFromInt(400), true
			case years > 8:
				return decimal.NewFromInt(350), true
			case years > 4:
				return decimal.NewFromInt(225), true
			default:
				return decimal.NewFromInt(150), true
			}
		}
		return decimal.Zero, false
	}, nil
}

// createParachuteDuty pays $225 for HALO and $150 for static line
func createParachuteDuty(params map[string]string) (Formula, error) {
	question := questionParam(params, "question", "special_qualifications")
	return func(answers domain.AnswerMap) (decimal.Decimal, bool) {
		v, ok := answers.Lookup(question)
		if !ok {
			return decimal.Zero, false
		}
		switch {
		case v.Contains(domain.String("halo")):
			return decimal.NewFromInt(225), true
		case v.Contains(domain.String("parachute")):
			return decimal.NewFromInt(150), true
		}
		return decimal.Zero, false
	}, nil
}

// createPerUnit pays rate x the numeric answer, optionally capped
func createPerUnit(params map[string]string) (Formula, error) {
	question, ok := params["question"]
	if !ok || question == "" {
		return nil, fmt.Errorf("per_unit requires 'question' parameter")
	}
	rateStr, ok := params["rate"]
	if !ok {
		return nil, fmt.Errorf("per_unit requires 'rate' parameter")
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %w", err)
	}
	var limit *decimal.Decimal
	if capStr, ok := params["cap"]; ok {
		c, err := decimal.NewFromString(capStr)
		if err != nil {
			return nil, fmt.Errorf("invalid cap value: %w", err)
		}
		limit = &c
	}
	return func(answers domain.AnswerMap) (decimal.Decimal, bool) {
		units, ok := number(answers, question)
		if !ok || units < 0 {
			return decimal.Zero, false
		}
		amount := decimal.NewFromFloat(units).Mul(rate)
		if limit != nil && amount.GreaterThan(*limit) {
			amount = *limit
		}
		return amount, true
	}, nil
}
