package rules

import (
	"testing"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ptrFloat(f float64) *float64 { return &f }
func ptrInt(i int) *int           { return &i }

func TestValidateAnswer(t *testing.T) {
	selectQ := domain.Question{ID: "branch", Type: domain.QuestionSelect, Required: true, Options: []domain.QuestionOption{
		{Value: "army", Label: "Army"}, {Value: "navy", Label: "Navy"},
	}}
	multiQ := domain.Question{ID: "quals", Type: domain.QuestionMultiSelect, Options: []domain.QuestionOption{
		{Value: "dive"}, {Value: "halo"},
	}}
	numberQ := domain.Question{ID: "yos", Type: domain.QuestionNumber, Required: true,
		Validation: &domain.Validation{Min: ptrFloat(0), Max: ptrFloat(40)}}
	customQ := domain.Question{ID: "days", Type: domain.QuestionNumber,
		Validation: &domain.Validation{Max: ptrFloat(365), Message: "A year has at most 365 days"}}
	textQ := domain.Question{ID: "grade", Type: domain.QuestionText,
		Validation: &domain.Validation{Pattern: `^[EOW]-?[1-9]$`, MinLength: ptrInt(2), MaxLength: ptrInt(3)}}
	dateQ := domain.Question{ID: "eas", Type: domain.QuestionDate}
	boolQ := domain.Question{ID: "deployed", Type: domain.QuestionBoolean, Required: true}

	tests := []struct {
		name  string
		q     domain.Question
		v     domain.AnswerValue
		valid bool
		msg   string
	}{
		{"required missing", boolQ, domain.Null(), false, "This question is required"},
		{"required blank string", selectQ, domain.String("  "), false, "This question is required"},
		{"optional missing", multiQ, domain.Null(), true, ""},
		{"bool ok", boolQ, domain.Bool(false), true, ""},
		{"bool wrong kind", boolQ, domain.String("yes"), false, "Please answer yes or no"},
		{"select ok", selectQ, domain.String("navy"), true, ""},
		{"select unknown", selectQ, domain.String("coast_guard"), false, "Please choose one of the listed options"},
		{"multi ok", multiQ, domain.List("dive", "halo"), true, ""},
		{"multi unknown", multiQ, domain.List("dive", "scuba"), false, `"scuba" is not one of the listed options`},
		{"multi wrong kind", multiQ, domain.String("dive"), false, "Please choose one or more of the listed options"},
		{"number ok", numberQ, domain.Number(12), true, ""},
		{"number zero ok", numberQ, domain.Number(0), true, ""},
		{"number below", numberQ, domain.Number(-1), false, "Value must be at least 0"},
		{"number above", numberQ, domain.Number(41), false, "Value must be at most 40"},
		{"number custom message", customQ, domain.Number(400), false, "A year has at most 365 days"},
		{"number wrong kind", numberQ, domain.String("12"), false, "Please enter a number"},
		{"text ok", textQ, domain.String("E-5"), true, ""},
		{"text pattern", textQ, domain.String("X5"), false, "Value is not in the expected format"},
		{"text too long", textQ, domain.String("E-55"), false, "Must be at most 3 characters"},
		{"text too short", textQ, domain.String("E"), false, "Must be at least 2 characters"},
		{"date ok", dateQ, domain.String("2025-09-30"), true, ""},
		{"date bad", dateQ, domain.String("09/30/2025"), false, "Please enter a date as YYYY-MM-DD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAnswer(tt.q, tt.v)
			assert.Equal(t, tt.valid, got.IsValid)
			assert.Equal(t, tt.msg, got.Error)
		})
	}
}

func TestStatusDisplay(t *testing.T) {
	for _, s := range domain.Statuses {
		assert.NotEmpty(t, StatusColor(s))
		assert.NotEmpty(t, StatusLabel(s))
		assert.NotEmpty(t, StatusIcon(s))
		assert.NotEqual(t, "-", StatusSymbol(s))
	}
	assert.Equal(t, "#22C55E", StatusColor(domain.StatusEligible))
	assert.Equal(t, "Potentially Eligible", StatusLabel(domain.StatusPotentiallyEligible))
	assert.Equal(t, "close-circle", StatusIcon(domain.StatusNotEligible))
	assert.Equal(t, StatusColor(domain.StatusIncomplete), StatusColor("unknown"))
	assert.Equal(t, "unknown", StatusLabel("unknown"))
}

func TestCatalog(t *testing.T) {
	c := NewCatalog(
		PayTypeInfo{PayType: "a", Name: "Alpha", NextSteps: map[domain.Status][]string{domain.StatusEligible: {"Call finance"}}},
		PayTypeInfo{PayType: "b", Name: "Bravo"},
		PayTypeInfo{PayType: "a", Name: "Alpha Prime"},
	)
	all := c.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "Alpha Prime", all[0].Name)
	assert.Equal(t, "Bravo", c.Name("b"))
	assert.Equal(t, "zulu", c.Name("zulu"))
	assert.Equal(t, defaultNextSteps[domain.StatusEligible], c.NextSteps("a", domain.StatusEligible), "replaced entry has no custom steps")

	c.Add(PayTypeInfo{PayType: "c", NextSteps: map[domain.Status][]string{domain.StatusEligible: {"Call finance"}}})
	assert.Equal(t, []string{"Call finance"}, c.NextSteps("c", domain.StatusEligible))
	assert.Equal(t, defaultNextSteps[domain.StatusNotEligible], c.NextSteps("c", domain.StatusNotEligible))
}
