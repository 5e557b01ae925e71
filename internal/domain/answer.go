package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ValueKind identifies which variant an AnswerValue holds
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindList
	KindNumber
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "null"
	}
}

// AnswerValue is a tagged union of string | []string | number | boolean | null.
// The zero value is null.
type AnswerValue struct {
	kind ValueKind
	str  string
	list []string
	num  float64
	b    bool
}

// Null returns the null answer value
func Null() AnswerValue { return AnswerValue{} }

// String wraps a string answer
func String(s string) AnswerValue { return AnswerValue{kind: KindString, str: s} }

// List wraps a multi-select answer
func List(items ...string) AnswerValue {
	return AnswerValue{kind: KindList, list: slices.Clone(items)}
}

// Number wraps a numeric answer
func Number(n float64) AnswerValue { return AnswerValue{kind: KindNumber, num: n} }

// Bool wraps a boolean answer
func Bool(b bool) AnswerValue { return AnswerValue{kind: KindBool, b: b} }

// Kind reports the active variant
func (v AnswerValue) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is null
func (v AnswerValue) IsNull() bool { return v.kind == KindNull }

// AsString returns the string variant
func (v AnswerValue) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsList returns a copy of the list variant
func (v AnswerValue) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// AsNumber returns the numeric variant
func (v AnswerValue) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean variant
func (v AnswerValue) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// IsEmpty reports whether the value counts as unanswered: null, "" or an empty list
func (v AnswerValue) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	case KindList:
		return len(v.list) == 0
	}
	return false
}

// Equal is strict equality: same variant and same value. Lists compare element-wise.
func (v AnswerValue) Equal(other AnswerValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindList:
		return slices.Equal(v.list, other.list)
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	}
	return true
}

// Contains reports whether a list value holds the scalar member
func (v AnswerValue) Contains(member AnswerValue) bool {
	if v.kind != KindList || member.kind != KindString {
		return false
	}
	return slices.Contains(v.list, member.str)
}

// String renders the value the way skip maps key on it
func (v AnswerValue) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindList:
		return strings.Join(v.list, ",")
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return "null"
}

// Interface returns the value as a plain Go value (nil, string, []string, float64, bool)
func (v AnswerValue) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindList:
		return slices.Clone(v.list)
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	}
	return nil
}

// ValueFrom converts a decoded JSON/YAML value into an AnswerValue
func ValueFrom(raw any) (AnswerValue, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case AnswerValue:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q: %w", x, err)
		}
		return Number(f), nil
	case []string:
		return List(x...), nil
	case []any:
		items := make([]string, 0, len(x))
		for i, item := range x {
			s, ok := item.(string)
			if !ok {
				return Null(), fmt.Errorf("list item %d must be a string, got %T", i, item)
			}
			items = append(items, s)
		}
		return List(items...), nil
	}
	return Null(), fmt.Errorf("unsupported answer value type %T", raw)
}

// MarshalJSON encodes the active variant as its natural JSON form
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.kind == KindList && v.list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes any supported JSON value
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueFrom(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the active variant
func (v AnswerValue) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML decodes any supported YAML value
func (v *AnswerValue) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ValueFrom(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Answer is a single recorded response. Within a session answers are keyed by QuestionID.
type Answer struct {
	QuestionID string      `yaml:"question_id" json:"questionId"`
	Value      AnswerValue `yaml:"value" json:"value"`
	Timestamp  time.Time   `yaml:"timestamp" json:"timestamp"`
}

// AnswerMap is the lookup form conditions are evaluated against
type AnswerMap map[string]AnswerValue

// Lookup returns the value for a question. Null values count as absent.
func (m AnswerMap) Lookup(questionID string) (AnswerValue, bool) {
	v, ok := m[questionID]
	if !ok || v.IsNull() {
		return Null(), false
	}
	return v, true
}

// AnswersToMap indexes answers by question id; later entries win
func AnswersToMap(answers []Answer) AnswerMap {
	m := make(AnswerMap, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = a.Value
	}
	return m
}
