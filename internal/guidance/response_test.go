package guidance

import (
	"testing"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
	"github.com/stretchr/testify/assert"
)

func TestShouldSkip(t *testing.T) {
	star := &questionnaire.Question{ID: "s", Kind: questionnaire.KindLongText, StarEnabled: true}
	plain := &questionnaire.Question{ID: "p", Kind: questionnaire.KindShortText}
	multi := &questionnaire.Question{ID: "m", Kind: questionnaire.KindMultiSelect}

	tests := []struct {
		name string
		q    *questionnaire.Question
		a    questionnaire.Answer
		want bool
	}{
		{"star zero rating", star, questionnaire.Answer{Value: questionnaire.Scalar("text"), Rating: 0}, true},
		{"star rated empty text", star, questionnaire.Answer{Value: questionnaire.Scalar(""), Rating: 2}, false},
		{"plain empty", plain, questionnaire.Answer{Value: questionnaire.Scalar("")}, true},
		{"plain whitespace is sent", plain, questionnaire.Answer{Value: questionnaire.Scalar("  ")}, false},
		{"plain filled", plain, questionnaire.Answer{Value: questionnaire.Scalar("Leeds")}, false},
		{"multi none", multi, questionnaire.Answer{Value: questionnaire.List()}, true},
		{"multi some", multi, questionnaire.Answer{Value: questionnaire.List("rent")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldSkip(tt.q, tt.a))
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("fenced object", func(t *testing.T) {
		r := Parse("```json\n{\"answer_en\":\"I need help\",\"explanation_en\":\"because\"}\n```", i18n.English)
		assert.False(t, r.Failed())
		assert.Equal(t, "I need help", r.Get("answer_en"))
		assert.Equal(t, "because", r.Get("explanation_en"))
	})

	t.Run("lists become bullets", func(t *testing.T) {
		r := Parse(`{"evidence_checklist_en":["Payslips","- Tenancy agreement"],"answer_en":3}`, i18n.English)
		assert.Equal(t, "- Payslips\n- Tenancy agreement", r.Get("evidence_checklist_en"))
		assert.Equal(t, "3", r.Get("answer_en"))
	})

	t.Run("malformed keeps raw text", func(t *testing.T) {
		r := Parse("Sure! Here is your answer.", i18n.Ukrainian)
		assert.True(t, r.Failed())
		assert.Equal(t, "Отримана відповідь недійсна.", r.Err)
		assert.Equal(t, "Sure! Here is your answer.", r.Get("answer_uk"))
	})

	t.Run("array is not an object", func(t *testing.T) {
		r := Parse(`["a"]`, i18n.English)
		assert.True(t, r.Failed())
	})

	t.Run("empty output", func(t *testing.T) {
		r := Parse("  ", i18n.Farsi)
		assert.True(t, r.Failed())
		assert.Equal(t, "پاسخ خالی دریافت شد.", r.Get("answer_fa"))
	})
}

func TestFailure(t *testing.T) {
	r := Failure(i18n.English)
	assert.True(t, r.Failed())
	assert.Equal(t, i18n.T(i18n.English, i18n.MsgGenerationError), r.Err)
	assert.Empty(t, r.Fields)
}
