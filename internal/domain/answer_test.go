package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAnswerValue_String(t *testing.T) {
	tests := []struct {
		name  string
		value AnswerValue
		want  string
	}{
		{"null", Null(), "null"},
		{"string", String("navy"), "navy"},
		{"list", List("a", "b"), "a,b"},
		{"whole number", Number(30), "30"},
		{"fraction", Number(2.5), "2.5"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestAnswerValue_EqualIsStrict(t *testing.T) {
	assert.True(t, String("1").Equal(String("1")))
	assert.False(t, String("1").Equal(Number(1)), "different variants never compare equal")
	assert.False(t, Bool(true).Equal(String("true")))
	assert.True(t, List("a", "b").Equal(List("a", "b")))
	assert.False(t, List("a", "b").Equal(List("b", "a")))
	assert.True(t, Null().Equal(AnswerValue{}))
}

func TestAnswerValue_IsEmpty(t *testing.T) {
	assert.True(t, Null().IsEmpty())
	assert.True(t, String("  ").IsEmpty())
	assert.True(t, List().IsEmpty())
	assert.False(t, Number(0).IsEmpty())
	assert.False(t, Bool(false).IsEmpty())
}

func TestAnswerValue_ListIsCopied(t *testing.T) {
	items := []string{"a"}
	v := List(items...)
	items[0] = "changed"
	got, ok := v.AsList()
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, got)

	got[0] = "mutated"
	again, _ := v.AsList()
	assert.Equal(t, []string{"a"}, again)
}

func TestAnswerValue_Contains(t *testing.T) {
	v := List("parachute", "halo")
	assert.True(t, v.Contains(String("halo")))
	assert.False(t, v.Contains(String("dive")))
	assert.False(t, String("halo").Contains(String("halo")))
}

func TestAnswerValue_DecodeJSON(t *testing.T) {
	tests := []struct {
		in   string
		want AnswerValue
	}{
		{`null`, Null()},
		{`"navy"`, String("navy")},
		{`45`, Number(45)},
		{`true`, Bool(true)},
		{`["a","b"]`, List("a", "b")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v AnswerValue
			require.NoError(t, json.Unmarshal([]byte(tt.in), &v))
			assert.True(t, tt.want.Equal(v), "got %s", v)
		})
	}

	t.Run("list of numbers is rejected", func(t *testing.T) {
		var v AnswerValue
		assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &v))
	})

	t.Run("empty list encodes as an array", func(t *testing.T) {
		data, err := json.Marshal(List())
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}

func TestAnswerValue_DecodeYAML(t *testing.T) {
	var answers []Answer
	doc := `
- question_id: deployed
  value: true
- question_id: days_separated
  value: 45
- question_id: special_qualifications
  value: [parachute, dive]
- question_id: branch
  value: army
`
	require.NoError(t, yaml.Unmarshal([]byte(doc), &answers))
	m := AnswersToMap(answers)

	deployed, _ := m.Lookup("deployed")
	assert.True(t, deployed.Equal(Bool(true)))
	days, _ := m.Lookup("days_separated")
	assert.True(t, days.Equal(Number(45)))
	quals, _ := m.Lookup("special_qualifications")
	assert.True(t, quals.Equal(List("parachute", "dive")))
	branch, _ := m.Lookup("branch")
	assert.Equal(t, KindString, branch.Kind())
}

func TestAnswerMap_Lookup(t *testing.T) {
	m := AnswersToMap([]Answer{
		{QuestionID: "a", Value: String("first")},
		{QuestionID: "a", Value: String("second")},
		{QuestionID: "n", Value: Null()},
	})
	v, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "second", v.String(), "later answers win")

	_, ok = m.Lookup("n")
	assert.False(t, ok, "null counts as absent")
	_, ok = m.Lookup("missing")
	assert.False(t, ok)
}

func TestLeaves(t *testing.T) {
	tree := All(
		Leaf{QuestionID: "a"},
		Any(Leaf{QuestionID: "b"}, &Leaf{QuestionID: "c"}),
	)
	var ids []string
	for _, l := range Leaves(tree) {
		ids = append(ids, l.QuestionID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
