package domain

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// PayType identifies a special or incentive pay
type PayType string

// GeneralPayType tags questions that feed more than one pay type
const GeneralPayType PayType = "general"

// Status is the eligibility verdict for a pay type
type Status string

const (
	StatusEligible            Status = "eligible"
	StatusPotentiallyEligible Status = "potentially_eligible"
	StatusNotEligible         Status = "not_eligible"
	StatusIncomplete          Status = "incomplete"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusEligible, StatusPotentiallyEligible, StatusNotEligible, StatusIncomplete}

// Valid reports whether s is one of the four statuses
func (s Status) Valid() bool {
	switch s {
	case StatusEligible, StatusPotentiallyEligible, StatusNotEligible, StatusIncomplete:
		return true
	}
	return false
}

// QuestionType is the input kind for a question
type QuestionType string

const (
	QuestionBoolean     QuestionType = "boolean"
	QuestionSelect      QuestionType = "select"
	QuestionMultiSelect QuestionType = "multiselect"
	QuestionText        QuestionType = "text"
	QuestionNumber      QuestionType = "number"
	QuestionDate        QuestionType = "date"
)

// QuestionOption is one choice of a select/multiselect question
type QuestionOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Validation holds optional answer constraints
type Validation struct {
	Min       *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	MinLength *int     `yaml:"min_length,omitempty" json:"minLength,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty" json:"maxLength,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Message   string   `yaml:"message,omitempty" json:"message,omitempty"`
}

// Question is a single wizard prompt. Questions are immutable reference data.
type Question struct {
	ID             string            `yaml:"id" json:"id"`
	PayType        PayType           `yaml:"pay_type" json:"payType"`
	Text           string            `yaml:"text" json:"text"`
	HelpText       string            `yaml:"help_text,omitempty" json:"helpText,omitempty"`
	Type           QuestionType      `yaml:"type" json:"type"`
	Options        []QuestionOption  `yaml:"options,omitempty" json:"options,omitempty"`
	Required       bool              `yaml:"required" json:"required"`
	ShowIf         Condition         `yaml:"-" json:"showIf,omitempty"`
	Validation     *Validation       `yaml:"validation,omitempty" json:"validation,omitempty"`
	NextQuestionID string            `yaml:"next_question_id,omitempty" json:"nextQuestionId,omitempty"`
	SkipTo         map[string]string `yaml:"skip_to,omitempty" json:"skipTo,omitempty"`
}

// HasOption reports whether value is one of the question's option values
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// UnmarshalJSON restores ShowIf, which is an interface the decoder cannot fill
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var raw struct {
		plain
		ShowIf json.RawMessage `json:"showIf,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	showIf, err := DecodeCondition(raw.ShowIf)
	if err != nil {
		return fmt.Errorf("question %q: %w", raw.ID, err)
	}
	*q = Question(raw.plain)
	q.ShowIf = showIf
	return nil
}

// RuleOutcome is what a matching rule declares
type RuleOutcome struct {
	Status        Status           `yaml:"status" json:"status"`
	Reason        string           `yaml:"reason" json:"reason"`
	Amount        *decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty"`
	AmountFormula string           `yaml:"amount_formula,omitempty" json:"amountFormula,omitempty"`
}

// Rule maps a condition tree to an outcome for one pay type.
// Lower Priority values are evaluated first.
type Rule struct {
	ID         string      `yaml:"id" json:"id"`
	PayType    PayType     `yaml:"pay_type" json:"payType"`
	Conditions Compound    `yaml:"-" json:"conditions"`
	Result     RuleOutcome `yaml:"result" json:"result"`
	Priority   int         `yaml:"priority" json:"priority"`
}

// RequirementResult reports one leaf condition of the matched rule
type RequirementResult struct {
	QuestionID  string `yaml:"question_id" json:"questionId"`
	Description string `yaml:"description" json:"description"`
	Met         bool   `yaml:"met" json:"met"`
}

// AmountRange is a monthly min/max estimate
type AmountRange struct {
	Min decimal.Decimal `yaml:"min" json:"min"`
	Max decimal.Decimal `yaml:"max" json:"max"`
}

// PayTypeEligibilityResult is the verdict for one pay type
type PayTypeEligibilityResult struct {
	PayType           PayType             `yaml:"pay_type" json:"payType"`
	Name              string              `yaml:"name" json:"name"`
	Status            Status              `yaml:"status" json:"status"`
	Reason            string              `yaml:"reason,omitempty" json:"reason,omitempty"`
	MatchedRuleID     string              `yaml:"matched_rule_id,omitempty" json:"matchedRuleId,omitempty"`
	Requirements      []RequirementResult `yaml:"requirements" json:"requirements"`
	TotalRequirements int                 `yaml:"total_requirements" json:"totalRequirements"`
	MetRequirements   int                 `yaml:"met_requirements" json:"metRequirements"`
	MonthlyAmount     *decimal.Decimal    `yaml:"monthly_amount,omitempty" json:"monthlyAmount,omitempty"`
	AmountRange       *AmountRange        `yaml:"amount_range,omitempty" json:"amountRange,omitempty"`
	NextSteps         []string            `yaml:"next_steps" json:"nextSteps"`
	DocumentsNeeded   []string            `yaml:"documents_needed" json:"documentsNeeded"`
	Notes             []string            `yaml:"notes" json:"notes"`
}

// EligibilitySummary aggregates per-status counts and eligible totals
type EligibilitySummary struct {
	TotalPayTypesChecked     int             `yaml:"total_pay_types_checked" json:"totalPayTypesChecked"`
	EligibleCount            int             `yaml:"eligible_count" json:"eligibleCount"`
	PotentiallyEligibleCount int             `yaml:"potentially_eligible_count" json:"potentiallyEligibleCount"`
	NotEligibleCount         int             `yaml:"not_eligible_count" json:"notEligibleCount"`
	IncompleteCount          int             `yaml:"incomplete_count" json:"incompleteCount"`
	EstimatedMonthlyTotal    decimal.Decimal `yaml:"estimated_monthly_total" json:"estimatedMonthlyTotal"`
	EstimatedAnnualTotal     decimal.Decimal `yaml:"estimated_annual_total" json:"estimatedAnnualTotal"`
}

// EligibilityResult is the immutable snapshot produced by an assessment
type EligibilityResult struct {
	ID         string                     `yaml:"id" json:"id"`
	AssessedAt time.Time                  `yaml:"assessed_at" json:"assessedAt"`
	Answers    []Answer                   `yaml:"answers" json:"answers"`
	Results    []PayTypeEligibilityResult `yaml:"results" json:"results"`
	Summary    EligibilitySummary         `yaml:"summary" json:"summary"`
}

// ResultFor returns the result for a pay type, if it was evaluated
func (r *EligibilityResult) ResultFor(payType PayType) (PayTypeEligibilityResult, bool) {
	for _, res := range r.Results {
		if res.PayType == payType {
			return res, true
		}
	}
	return PayTypeEligibilityResult{}, false
}
