package config

import (
	"fmt"

	"github.com/scott198989/securepoint-sub000/internal/domain"
)

// conditionDoc is the on-disk form of a condition: a mapping with "type" is a compound,
// anything else is a leaf
type conditionDoc struct {
	Type       domain.Logic       `yaml:"type,omitempty"`
	Conditions []conditionDoc     `yaml:"conditions,omitempty"`
	QuestionID string             `yaml:"question_id,omitempty"`
	Operator   domain.Operator    `yaml:"operator,omitempty"`
	Value      domain.AnswerValue `yaml:"value,omitempty"`
}

func (c conditionDoc) isCompound() bool {
	return c.Type != "" || c.Conditions != nil
}

func (c conditionDoc) toCondition(path string) (domain.Condition, error) {
	if c.isCompound() {
		return c.toCompound(path)
	}
	if c.QuestionID == "" {
		return nil, fmt.Errorf("%s: question_id is required", path)
	}
	if !c.Operator.Valid() {
		return nil, fmt.Errorf("%s: unknown operator %q", path, c.Operator)
	}
	if (c.Operator == domain.OpIn || c.Operator == domain.OpNotIn) && c.Value.Kind() != domain.KindList {
		return nil, fmt.Errorf("%s: operator %s needs a list value", path, c.Operator)
	}
	return domain.Leaf{QuestionID: c.QuestionID, Operator: c.Operator, Value: c.Value}, nil
}

func (c conditionDoc) toCompound(path string) (domain.Compound, error) {
	logic := c.Type
	if logic == "" {
		logic = domain.LogicAnd
	}
	if logic != domain.LogicAnd && logic != domain.LogicOr {
		return domain.Compound{}, fmt.Errorf("%s: unknown compound type %q", path, c.Type)
	}
	out := domain.Compound{Type: logic, Conditions: make([]domain.Condition, 0, len(c.Conditions))}
	for i, child := range c.Conditions {
		cond, err := child.toCondition(fmt.Sprintf("%s.conditions[%d]", path, i))
		if err != nil {
			return domain.Compound{}, err
		}
		out.Conditions = append(out.Conditions, cond)
	}
	return out, nil
}

// ruleConditions converts a rule's top-level condition; a bare leaf becomes a single-child "and"
func (c conditionDoc) ruleConditions(path string) (domain.Compound, error) {
	if c.isCompound() {
		return c.toCompound(path)
	}
	leaf, err := c.toCondition(path)
	if err != nil {
		return domain.Compound{}, err
	}
	return domain.All(leaf), nil
}
