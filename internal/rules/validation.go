package rules

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/scott198989/securepoint-sub000/internal/domain"
)

// ValidationResult reports whether an answer satisfies its question. Error is user-facing.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

func valid() ValidationResult { return ValidationResult{IsValid: true} }

func invalid(q domain.Question, fallback string) ValidationResult {
	if q.Validation != nil && q.Validation.Message != "" {
		return ValidationResult{Error: q.Validation.Message}
	}
	return ValidationResult{Error: fallback}
}

// DateLayout is the accepted format for date answers
const DateLayout = "2006-01-02"

// ValidateAnswer checks a value against a question's type, options and constraints.
// Empty values pass unless the question is required.
func ValidateAnswer(q domain.Question, v domain.AnswerValue) ValidationResult {
	if v.IsEmpty() {
		if q.Required {
			return ValidationResult{Error: "This question is required"}
		}
		return valid()
	}

	switch q.Type {
	case domain.QuestionBoolean:
		if _, ok := v.AsBool(); !ok {
			return ValidationResult{Error: "Please answer yes or no"}
		}
	case domain.QuestionSelect:
		s, ok := v.AsString()
		if !ok || !q.HasOption(s) {
			return ValidationResult{Error: "Please choose one of the listed options"}
		}
	case domain.QuestionMultiSelect:
		items, ok := v.AsList()
		if !ok {
			return ValidationResult{Error: "Please choose one or more of the listed options"}
		}
		for _, item := range items {
			if !q.HasOption(item) {
				return ValidationResult{Error: fmt.Sprintf("%q is not one of the listed options", item)}
			}
		}
	case domain.QuestionNumber:
		n, ok := v.AsNumber()
		if !ok {
			return ValidationResult{Error: "Please enter a number"}
		}
		if rule := q.Validation; rule != nil {
			if rule.Min != nil && n < *rule.Min {
				return invalid(q, fmt.Sprintf("Value must be at least %g", *rule.Min))
			}
			if rule.Max != nil && n > *rule.Max {
				return invalid(q, fmt.Sprintf("Value must be at most %g", *rule.Max))
			}
		}
	case domain.QuestionText:
		s, ok := v.AsString()
		if !ok {
			return ValidationResult{Error: "Please enter text"}
		}
		if rule := q.Validation; rule != nil {
			n := utf8.RuneCountInString(s)
			if rule.MinLength != nil && n < *rule.MinLength {
				return invalid(q, fmt.Sprintf("Must be at least %d characters", *rule.MinLength))
			}
			if rule.MaxLength != nil && n > *rule.MaxLength {
				return invalid(q, fmt.Sprintf("Must be at most %d characters", *rule.MaxLength))
			}
			if rule.Pattern != "" {
				re, err := regexp.Compile(rule.Pattern)
				if err == nil && !re.MatchString(s) {
					return invalid(q, "Value is not in the expected format")
				}
			}
		}
	case domain.QuestionDate:
		s, ok := v.AsString()
		if !ok {
			return ValidationResult{Error: "Please enter a date"}
		}
		if _, err := time.Parse(DateLayout, s); err != nil {
			return ValidationResult{Error: "Please enter a date as YYYY-MM-DD"}
		}
	}
	return valid()
}
