package domain

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Operator is a leaf comparison
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIn          Operator = "in"
	OpNotIn       Operator = "not_in"
)

// Valid reports whether the operator is one of the supported comparisons
func (o Operator) Valid() bool {
	switch o {
	case OpEquals, OpNotEquals, OpContains, OpGreaterThan, OpLessThan, OpIn, OpNotIn:
		return true
	}
	return false
}

// Logic joins the children of a compound condition
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// Condition is either a Leaf or a Compound. Trees come from static configuration.
type Condition interface {
	conditionNode()
}

// Leaf compares the answer to one question against a fixed value
type Leaf struct {
	QuestionID string      `yaml:"question_id" json:"questionId"`
	Operator   Operator    `yaml:"operator" json:"operator"`
	Value      AnswerValue `yaml:"value" json:"value"`
}

// Compound combines child conditions with and/or
type Compound struct {
	Type       Logic       `yaml:"type" json:"type"`
	Conditions []Condition `yaml:"conditions" json:"conditions"`
}

func (Leaf) conditionNode()     {}
func (Compound) conditionNode() {}

// All builds an "and" compound
func All(conds ...Condition) Compound {
	return Compound{Type: LogicAnd, Conditions: conds}
}

// Any builds an "or" compound
func Any(conds ...Condition) Compound {
	return Compound{Type: LogicOr, Conditions: conds}
}

// Leaves flattens a condition tree into its leaf conditions, depth first
func Leaves(c Condition) []Leaf {
	var out []Leaf
	var walk func(Condition)
	walk = func(node Condition) {
		switch n := node.(type) {
		case Leaf:
			out = append(out, n)
		case *Leaf:
			if n != nil {
				out = append(out, *n)
			}
		case Compound:
			for _, child := range n.Conditions {
				walk(child)
			}
		case *Compound:
			if n != nil {
				for _, child := range n.Conditions {
					walk(child)
				}
			}
		}
	}
	walk(c)
	return out
}

// DecodeCondition reads a JSON condition tree. Objects carrying a "type"
// field are compounds, anything else is a leaf. null decodes to nil.
func DecodeCondition(data []byte) (Condition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var head struct {
		Type *Logic `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, fmt.Errorf("invalid condition: %w", err)
	}
	if head.Type != nil {
		var c Compound
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, err
		}
		return c, nil
	}
	var l Leaf
	if err := json.Unmarshal(trimmed, &l); err != nil {
		return nil, fmt.Errorf("invalid condition: %w", err)
	}
	return l, nil
}

// UnmarshalJSON decodes each child with DecodeCondition
func (c *Compound) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       Logic             `json:"type"`
		Conditions []json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid compound condition: %w", err)
	}
	c.Type = raw.Type
	c.Conditions = make([]Condition, 0, len(raw.Conditions))
	for i, child := range raw.Conditions {
		cond, err := DecodeCondition(child)
		if err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
		if cond != nil {
			c.Conditions = append(c.Conditions, cond)
		}
	}
	return nil
}
