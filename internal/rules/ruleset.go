package rules

import (
	"slices"

	"github.com/scott198989/securepoint-sub000/internal/domain"
)

// RuleSet holds the rules per pay type in evaluation order and the questions they reference.
// It is read-only after construction.
type RuleSet struct {
	order     []domain.PayType
	byPayType map[domain.PayType][]domain.Rule
	questions map[string]domain.Question
}

// NewRuleSet groups rules by pay type and stably sorts each group by ascending priority,
// so rules with equal priority keep their declared order.
func NewRuleSet(rules []domain.Rule, questions ...domain.Question) *RuleSet {
	rs := &RuleSet{
		byPayType: make(map[domain.PayType][]domain.Rule),
		questions: make(map[string]domain.Question, len(questions)),
	}
	for _, r := range rules {
		if _, seen := rs.byPayType[r.PayType]; !seen {
			rs.order = append(rs.order, r.PayType)
		}
		rs.byPayType[r.PayType] = append(rs.byPayType[r.PayType], r)
	}
	for pt := range rs.byPayType {
		slices.SortStableFunc(rs.byPayType[pt], func(a, b domain.Rule) int { return a.Priority - b.Priority })
	}
	for _, q := range questions {
		rs.questions[q.ID] = q
	}
	return rs
}

// RulesFor returns a pay type's rules in evaluation order
func (rs *RuleSet) RulesFor(payType domain.PayType) []domain.Rule {
	return slices.Clone(rs.byPayType[payType])
}

// PayTypes lists pay types in first-declared order
func (rs *RuleSet) PayTypes() []domain.PayType {
	return slices.Clone(rs.order)
}

// Question returns a referenced question, if known
func (rs *RuleSet) Question(id string) (domain.Question, bool) {
	q, ok := rs.questions[id]
	return q, ok
}

// Len is the total number of rules
func (rs *RuleSet) Len() int {
	n := 0
	for _, rules := range rs.byPayType {
		n += len(rules)
	}
	return n
}
