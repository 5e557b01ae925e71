package rules

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
)

// Evaluate reports whether a condition holds against the answers. A nil condition holds.
// Evaluation never fails: a missing answer, a kind mismatch or an unknown operator is false.
func Evaluate(c domain.Condition, answers domain.AnswerMap) bool {
	switch n := c.(type) {
	case nil:
		return true
	case domain.Leaf:
		return EvaluateLeaf(n, answers)
	case *domain.Leaf:
		return n == nil || EvaluateLeaf(*n, answers)
	case domain.Compound:
		return evaluateCompound(n, answers)
	case *domain.Compound:
		return n == nil || evaluateCompound(*n, answers)
	}
	return false
}

func evaluateCompound(c domain.Compound, answers domain.AnswerMap) bool {
	switch c.Type {
	case domain.LogicAnd:
		for _, child := range c.Conditions {
			if !Evaluate(child, answers) {
				return false
			}
		}
		return true
	case domain.LogicOr:
		for _, child := range c.Conditions {
			if Evaluate(child, answers) {
				return true
			}
		}
		return false
	}
	return false
}

// EvaluateLeaf applies one comparison. Absent or null answers are false for every operator,
// including not_equals and not_in.
func EvaluateLeaf(l domain.Leaf, answers domain.AnswerMap) bool {
	answer, ok := answers.Lookup(l.QuestionID)
	if !ok {
		return false
	}
	switch l.Operator {
	case domain.OpEquals:
		return answer.Equal(l.Value)
	case domain.OpNotEquals:
		return !answer.Equal(l.Value)
	case domain.OpContains:
		return answer.Contains(l.Value)
	case domain.OpGreaterThan:
		a, okA := answer.AsNumber()
		b, okB := l.Value.AsNumber()
		return okA && okB && a > b
	case domain.OpLessThan:
		a, okA := answer.AsNumber()
		b, okB := l.Value.AsNumber()
		return okA && okB && a < b
	case domain.OpIn:
		return memberOf(answer, l.Value)
	case domain.OpNotIn:
		if _, isList := l.Value.AsList(); !isList || answer.Kind() == domain.KindList {
			return false
		}
		return !memberOf(answer, l.Value)
	}
	return false
}

// memberOf tests a scalar answer against a list of candidates. Strings match by value;
// numbers and booleans match their stringified form.
func memberOf(answer, candidates domain.AnswerValue) bool {
	list, ok := candidates.AsList()
	if !ok || answer.Kind() == domain.KindList {
		return false
	}
	s := answer.String()
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
