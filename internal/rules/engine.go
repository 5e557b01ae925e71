package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/logging"
	"github.com/shopspring/decimal"
)

// Engine evaluates rule sets against answers. It holds no mutable state beyond its
// configuration and is safe for concurrent use once built.
type Engine struct {
	Rules    *RuleSet
	Catalog  *Catalog
	Formulas *FormulaRegistry
	Logger   logging.Logger
	Now      func() time.Time
	NewID    func() string
}

// NewEngine creates an engine over a rule set and catalog with the built-in formulas
func NewEngine(rules *RuleSet, catalog *Catalog) *Engine {
	if rules == nil {
		rules = NewRuleSet(nil)
	}
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Engine{
		Rules:    rules,
		Catalog:  catalog,
		Formulas: NewFormulaRegistry(),
		Logger:   logging.NopLogger{},
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    newID,
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SetLogger sets the logger; nil installs a no-op logger
func (e *Engine) SetLogger(logger logging.Logger) {
	e.Logger = logging.OrNop(logger)
}

// DeriveStatus classifies a requirement breakdown: all met is eligible, none met is
// not eligible, some met is potentially eligible, and no requirements is incomplete.
func DeriveStatus(requirements []domain.RequirementResult) domain.Status {
	if len(requirements) == 0 {
		return domain.StatusIncomplete
	}
	met := countMet(requirements)
	switch met {
	case len(requirements):
		return domain.StatusEligible
	case 0:
		return domain.StatusNotEligible
	}
	return domain.StatusPotentiallyEligible
}

func countMet(requirements []domain.RequirementResult) int {
	n := 0
	for _, r := range requirements {
		if r.Met {
			n++
		}
	}
	return n
}

// EvaluateForPayType returns the verdict of the first rule, in priority order, whose
// conditions hold. No match yields an incomplete result.
func (e *Engine) EvaluateForPayType(payType domain.PayType, answers domain.AnswerMap) domain.PayTypeEligibilityResult {
	res := domain.PayTypeEligibilityResult{
		PayType:         payType,
		Name:            e.Catalog.Name(payType),
		Requirements:    []domain.RequirementResult{},
		NextSteps:       []string{},
		DocumentsNeeded: []string{},
		Notes:           []string{},
	}

	for _, rule := range e.Rules.RulesFor(payType) {
		if !Evaluate(rule.Conditions, answers) {
			continue
		}
		res.MatchedRuleID = rule.ID
		res.Requirements = e.requirements(rule, answers)
		res.TotalRequirements = len(res.Requirements)
		res.MetRequirements = countMet(res.Requirements)
		res.Status = rule.Result.Status
		if !res.Status.Valid() {
			res.Status = DeriveStatus(res.Requirements)
		}
		res.Reason = rule.Result.Reason
		e.attachAmounts(&res, rule, answers)
		e.attachGuidance(&res)
		e.Logger.Debugf("pay type %s matched rule %s: %s (%d/%d requirements met)",
			payType, rule.ID, res.Status, res.MetRequirements, res.TotalRequirements)
		return res
	}

	res.Status = domain.StatusIncomplete
	res.Reason = "Not enough information to determine eligibility"
	res.Notes = append(res.Notes, "Complete the remaining questions to determine eligibility")
	res.NextSteps = e.Catalog.NextSteps(payType, res.Status)
	e.Logger.Debugf("pay type %s matched no rule", payType)
	return res
}

func (e *Engine) requirements(rule domain.Rule, answers domain.AnswerMap) []domain.RequirementResult {
	leaves := domain.Leaves(rule.Conditions)
	out := make([]domain.RequirementResult, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, domain.RequirementResult{
			QuestionID:  leaf.QuestionID,
			Description: e.describe(leaf),
			Met:         EvaluateLeaf(leaf, answers),
		})
	}
	return out
}

var operatorPhrases = map[domain.Operator]string{
	domain.OpEquals:      "is",
	domain.OpNotEquals:   "is not",
	domain.OpContains:    "includes",
	domain.OpGreaterThan: "is greater than",
	domain.OpLessThan:    "is less than",
	domain.OpIn:          "is one of",
	domain.OpNotIn:       "is not one of",
}

// describe renders a leaf as "<question> <operator phrase> <value>", using option labels when known
func (e *Engine) describe(leaf domain.Leaf) string {
	subject := leaf.QuestionID
	q, known := e.Rules.Question(leaf.QuestionID)
	if known && q.Text != "" {
		subject = q.Text
	}
	phrase, ok := operatorPhrases[leaf.Operator]
	if !ok {
		phrase = string(leaf.Operator)
	}
	return fmt.Sprintf("%s %s %s", subject, phrase, displayValue(q, leaf.Value))
}

func displayValue(q domain.Question, v domain.AnswerValue) string {
	label := func(s string) string {
		for _, opt := range q.Options {
			if opt.Value == s && opt.Label != "" {
				return opt.Label
			}
		}
		return s
	}
	switch v.Kind() {
	case domain.KindBool:
		if b, _ := v.AsBool(); b {
			return "yes"
		}
		return "no"
	case domain.KindString:
		s, _ := v.AsString()
		return label(s)
	case domain.KindList:
		items, _ := v.AsList()
		for i := range items {
			items[i] = label(items[i])
		}
		return strings.Join(items, ", ")
	}
	return v.String()
}

func (e *Engine) attachAmounts(res *domain.PayTypeEligibilityResult, rule domain.Rule, answers domain.AnswerMap) {
	info, hasInfo := e.Catalog.Get(res.PayType)
	switch res.Status {
	case domain.StatusEligible:
		if amount, ok := e.ruleAmount(rule, answers); ok {
			res.MonthlyAmount = &amount
		} else if hasInfo && info.MonthlyAmount != nil {
			amount := *info.MonthlyAmount
			res.MonthlyAmount = &amount
		}
	case domain.StatusPotentiallyEligible:
		if hasInfo && info.AmountRange != nil {
			r := *info.AmountRange
			res.AmountRange = &r
		} else if amount, ok := e.ruleAmount(rule, answers); ok {
			res.AmountRange = &domain.AmountRange{Min: amount, Max: amount}
		}
	}
}

// ruleAmount resolves the rule's formula, falling back to its fixed amount
func (e *Engine) ruleAmount(rule domain.Rule, answers domain.AnswerMap) (decimal.Decimal, bool) {
	if spec := rule.Result.AmountFormula; spec != "" && e.Formulas != nil {
		formula, err := e.Formulas.Parse(spec)
		if err != nil {
			e.Logger.Warnf("rule %s: %v; using fixed amount", rule.ID, err)
		} else if amount, ok := formula(answers); ok {
			return amount, true
		}
	}
	if rule.Result.Amount != nil {
		return *rule.Result.Amount, true
	}
	return decimal.Zero, false
}

func (e *Engine) attachGuidance(res *domain.PayTypeEligibilityResult) {
	res.NextSteps = e.Catalog.NextSteps(res.PayType, res.Status)
	info, ok := e.Catalog.Get(res.PayType)
	if !ok {
		return
	}
	if res.Status == domain.StatusEligible || res.Status == domain.StatusPotentiallyEligible {
		res.DocumentsNeeded = append(res.DocumentsNeeded, info.DocumentsNeeded...)
	}
	res.Notes = append(res.Notes, info.Notes...)
}

// RunAssessment evaluates each pay type and aggregates the summary. An empty pay type
// list assesses every pay type in the rule set.
func (e *Engine) RunAssessment(payTypes []domain.PayType, answers []domain.Answer) domain.EligibilityResult {
	if len(payTypes) == 0 {
		payTypes = e.Rules.PayTypes()
	}
	answerMap := domain.AnswersToMap(answers)
	results := make([]domain.PayTypeEligibilityResult, 0, len(payTypes))
	for _, pt := range payTypes {
		results = append(results, e.EvaluateForPayType(pt, answerMap))
	}
	snapshot := make([]domain.Answer, len(answers))
	copy(snapshot, answers)

	result := domain.EligibilityResult{
		ID:         e.NewID(),
		AssessedAt: e.Now(),
		Answers:    snapshot,
		Results:    results,
		Summary:    Summarize(results),
	}
	e.Logger.Infof("assessment %s: %d pay types, %d eligible, %d potentially eligible, estimated %s/month",
		result.ID, result.Summary.TotalPayTypesChecked, result.Summary.EligibleCount,
		result.Summary.PotentiallyEligibleCount, result.Summary.EstimatedMonthlyTotal.StringFixed(2))
	return result
}

// Summarize counts statuses and totals monthly amounts of definitely eligible results only
func Summarize(results []domain.PayTypeEligibilityResult) domain.EligibilitySummary {
	s := domain.EligibilitySummary{
		TotalPayTypesChecked:  len(results),
		EstimatedMonthlyTotal: decimal.Zero,
	}
	for _, r := range results {
		switch r.Status {
		case domain.StatusEligible:
			s.EligibleCount++
			if r.MonthlyAmount != nil {
				s.EstimatedMonthlyTotal = s.EstimatedMonthlyTotal.Add(*r.MonthlyAmount)
			}
		case domain.StatusPotentiallyEligible:
			s.PotentiallyEligibleCount++
		case domain.StatusNotEligible:
			s.NotEligibleCount++
		default:
			s.IncompleteCount++
		}
	}
	s.EstimatedAnnualTotal = s.EstimatedMonthlyTotal.Mul(decimal.NewFromInt(12))
	return s
}
