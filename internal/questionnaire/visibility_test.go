package questionnaire

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleQuestions_Scenario(t *testing.T) {
	m := childrenModule(t)
	answers := Defaults(m)

	assert.Equal(t, []string{"household", "has_children", "housing", "costs", "notes"},
		ids(VisibleQuestions(m.Questions, answers)))

	a := answers["has_children"]
	a.Value = Scalar("yes")
	answers["has_children"] = a
	assert.Equal(t, []string{"household", "has_children", "child_ages", "housing", "costs", "notes"},
		ids(VisibleQuestions(m.Questions, answers)))

	a.Value = Scalar("no")
	answers["has_children"] = a
	assert.NotContains(t, ids(VisibleQuestions(m.Questions, answers)), "child_ages")
}

func TestVisibleQuestions_CompoundCondition(t *testing.T) {
	m, err := NewModule("hmrc", nil, nil, []*Question{
		{ID: "flow", Kind: KindSingleSelect, Options: []Option{{Value: "sa"}, {Value: "ctc"}}},
		{ID: "employed", Kind: KindSingleSelect, Options: yesNo()},
		{ID: "payslips", Kind: KindFile, When: WhenMap(map[string]string{"flow": "sa", "employed": "yes"})},
	})
	require.NoError(t, err)

	answers := Defaults(m)
	set := func(id, v string) {
		a := answers[id]
		a.Value = Scalar(v)
		answers[id] = a
	}

	set("flow", "sa")
	assert.NotContains(t, ids(VisibleQuestions(m.Questions, answers)), "payslips")
	set("employed", "yes")
	assert.Contains(t, ids(VisibleQuestions(m.Questions, answers)), "payslips")
	set("flow", "ctc")
	assert.NotContains(t, ids(VisibleQuestions(m.Questions, answers)), "payslips")
}

func TestVisibleQuestions_NonScalarNeverMatches(t *testing.T) {
	c := Condition{QuestionID: "housing", Equals: "rent"}
	answers := Answers{"housing": {QuestionID: "housing", Value: List("rent")}}
	assert.False(t, c.Holds(answers))
	assert.False(t, c.Holds(Answers{}))
}

// Randomized check: the visible list is an order-preserving subsequence of all
// questions and never contains a question whose condition is false.
func TestVisibleQuestions_Subsequence(t *testing.T) {
	m := childrenModule(t)
	rng := rand.New(rand.NewSource(7))
	values := []string{"", "yes", "no", "single", "couple"}

	for range 500 {
		answers := Defaults(m)
		for _, id := range []string{"household", "has_children"} {
			a := answers[id]
			a.Value = Scalar(values[rng.Intn(len(values))])
			answers[id] = a
		}
		if rng.Intn(4) == 0 {
			delete(answers, "has_children")
		}

		visible := VisibleQuestions(m.Questions, answers)
		require.LessOrEqual(t, len(visible), len(m.Questions))

		last := -1
		for _, q := range visible {
			idx := m.IndexOf(q.ID)
			require.Greater(t, idx, last, "order not preserved")
			last = idx
			for _, c := range q.When {
				require.True(t, c.Holds(answers), "hidden question %s leaked", q.ID)
			}
		}
		for _, q := range m.Questions {
			if q.Visible(answers) {
				require.Contains(t, ids(visible), q.ID)
			}
		}
	}
}

func TestNewModule_Validation(t *testing.T) {
	tests := []struct {
		name      string
		questions []*Question
		wantErr   string
	}{
		{
			name: "forward reference",
			questions: []*Question{
				{ID: "b", Kind: KindShortText, When: []Condition{{QuestionID: "a", Equals: "x"}}},
				{ID: "a", Kind: KindShortText},
			},
			wantErr: "does not precede",
		},
		{
			name: "self reference",
			questions: []*Question{
				{ID: "a", Kind: KindShortText, When: []Condition{{QuestionID: "a", Equals: "x"}}},
			},
			wantErr: "does not precede",
		},
		{
			name: "duplicate id",
			questions: []*Question{
				{ID: "a", Kind: KindShortText},
				{ID: "a", Kind: KindLongText},
			},
			wantErr: "duplicate question",
		},
		{
			name:      "unknown kind",
			questions: []*Question{{ID: "a", Kind: "slider"}},
			wantErr:   "unknown kind",
		},
		{
			name:      "select without options",
			questions: []*Question{{ID: "a", Kind: KindSingleSelect}},
			wantErr:   "needs options",
		},
		{
			name:      "empty group",
			questions: []*Question{{ID: "g", Kind: KindGroup}},
			wantErr:   "no children",
		},
		{
			name: "condition on list question",
			questions: []*Question{
				{ID: "a", Kind: KindMultiSelect, Options: []Option{{Value: "x"}}},
				{ID: "b", Kind: KindShortText, When: []Condition{{QuestionID: "a", Equals: "x"}}},
			},
			wantErr: "not scalar",
		},
		{
			name: "valid",
			questions: []*Question{
				{ID: "a", Kind: KindSingleSelect, Options: yesNo()},
				{ID: "b", Kind: KindShortText, When: []Condition{{QuestionID: "a", Equals: "yes"}}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModule("m", nil, nil, tt.questions)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
