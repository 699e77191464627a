package questionnaire

import (
	"testing"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/stretchr/testify/require"
)

func yesNo() []Option {
	return []Option{
		{Value: "yes", Label: i18n.Text{i18n.English: "Yes"}},
		{Value: "no", Label: i18n.Text{i18n.English: "No"}},
	}
}

// childrenModule is a small Universal Credit style form:
//
//	household  single-select
//	has_children  single-select yes/no
//	child_ages  when has_children=yes
//	housing  multi-select
//	costs  group
//	notes  long-text, impact dial
func childrenModule(t *testing.T) *Module {
	t.Helper()
	m, err := NewModule("uc", i18n.Text{i18n.English: "Universal Credit"}, nil, []*Question{
		{ID: "household", Kind: KindSingleSelect, Options: []Option{{Value: "single"}, {Value: "couple"}}},
		{ID: "has_children", Kind: KindSingleSelect, Options: yesNo()},
		{ID: "child_ages", Kind: KindShortText, When: []Condition{{QuestionID: "has_children", Equals: "yes"}}},
		{ID: "housing", Kind: KindMultiSelect, Options: []Option{{Value: "rent"}, {Value: "mortgage"}, {Value: "none"}}},
		{ID: "costs", Kind: KindGroup, Children: []*Question{
			{ID: "rent", Kind: KindCurrency},
			{ID: "people", Kind: KindNumber},
		}},
		{ID: "notes", Kind: KindLongText, StarEnabled: true, BookEnabled: true},
	})
	require.NoError(t, err)
	return m
}

func ids(qs []*Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
