// Package questionnaire is the conditional form engine: question definitions,
// visibility rules, typed answer values, cursor navigation and persistence of
// progress to a key-value store.
package questionnaire

import (
	"fmt"
	"sort"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
)

// Kind is the input kind of a question.
type Kind string

const (
	KindShortText    Kind = "short-text"
	KindLongText     Kind = "long-text"
	KindSingleSelect Kind = "single-select"
	KindMultiSelect  Kind = "multi-select"
	KindNumber       Kind = "number"
	KindCurrency     Kind = "currency"
	KindDate         Kind = "date"
	KindFile         Kind = "file"
	KindGroup        Kind = "group"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindShortText, KindLongText, KindSingleSelect, KindMultiSelect,
		KindNumber, KindCurrency, KindDate, KindFile, KindGroup:
		return true
	}
	return false
}

// Shape is the value shape answers of this kind carry.
func (k Kind) Shape() Shape {
	switch k {
	case KindMultiSelect, KindFile:
		return ShapeList
	case KindGroup:
		return ShapeFields
	default:
		return ShapeScalar
	}
}

// Option is one choice of a select question.
type Option struct {
	Value string
	Label i18n.Text
	Tip   i18n.Text
}

// Condition requires the answer to a prior question to equal a value.
type Condition struct {
	QuestionID string
	Equals     string
}

// Question is a single step of a form.
type Question struct {
	ID          string
	Kind        Kind
	Text        i18n.Text
	Description i18n.Text
	Placeholder i18n.Text
	ProofHint   i18n.Text
	Options     []Option

	// When holds the visibility conditions; all must hold. Empty means always visible.
	When     []Condition
	Children []*Question

	// StarEnabled shows the impact dial; BookEnabled shows the length dial.
	StarEnabled bool
	BookEnabled bool
	AllowProof  bool
}

// Option returns the option with the given value.
func (q *Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Child returns the child question with the given id.
func (q *Question) Child(id string) (*Question, bool) {
	for _, c := range q.Children {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// WhenMap builds conditions from a question-id to value map, sorted by id so
// evaluation order is stable.
func WhenMap(m map[string]string) []Condition {
	if len(m) == 0 {
		return nil
	}
	conds := make([]Condition, 0, len(m))
	for id, v := range m {
		conds = append(conds, Condition{QuestionID: id, Equals: v})
	}
	sort.Slice(conds, func(i, j int) bool { return conds[i].QuestionID < conds[j].QuestionID })
	return conds
}

// Module is a form: an ordered list of questions with localized title and intro.
type Module struct {
	ID        string
	Title     i18n.Text
	Intro     i18n.Text
	Questions []*Question

	index map[string]int
}

// NewModule validates the question list and builds a module.
//
// Question ids must be unique, conditions may only reference questions that
// appear earlier in the list, and kinds must be consistent with their options and
// children.
func NewModule(id string, title, intro i18n.Text, questions []*Question) (*Module, error) {
	if id == "" {
		return nil, fmt.Errorf("module id is empty")
	}
	m := &Module{
		ID:        id,
		Title:     title,
		Intro:     intro,
		Questions: questions,
		index:     make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		if err := validateQuestion(q, false); err != nil {
			return nil, fmt.Errorf("module %s: %w", id, err)
		}
		if _, dup := m.index[q.ID]; dup {
			return nil, fmt.Errorf("module %s: duplicate question id %q", id, q.ID)
		}
		for _, c := range q.When {
			j, ok := m.index[c.QuestionID]
			if !ok {
				return nil, fmt.Errorf("module %s: question %q depends on %q which does not precede it",
					id, q.ID, c.QuestionID)
			}
			if questions[j].Kind.Shape() != ShapeScalar {
				return nil, fmt.Errorf("module %s: question %q depends on %q whose answers are not scalar",
					id, q.ID, c.QuestionID)
			}
		}
		m.index[q.ID] = i
	}
	return m, nil
}

func validateQuestion(q *Question, child bool) error {
	if q == nil {
		return fmt.Errorf("nil question")
	}
	if q.ID == "" {
		return fmt.Errorf("question with empty id")
	}
	if !q.Kind.Valid() {
		return fmt.Errorf("question %q: unknown kind %q", q.ID, q.Kind)
	}
	switch q.Kind {
	case KindSingleSelect, KindMultiSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: %s needs options", q.ID, q.Kind)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if seen[o.Value] {
				return fmt.Errorf("question %q: duplicate option %q", q.ID, o.Value)
			}
			seen[o.Value] = true
		}
	case KindGroup:
		if child {
			return fmt.Errorf("question %q: groups cannot be nested", q.ID)
		}
		if len(q.Children) == 0 {
			return fmt.Errorf("question %q: group has no children", q.ID)
		}
		seen := make(map[string]bool, len(q.Children))
		for _, c := range q.Children {
			if err := validateQuestion(c, true); err != nil {
				return fmt.Errorf("group %q: %w", q.ID, err)
			}
			if c.Kind.Shape() != ShapeScalar {
				return fmt.Errorf("group %q: child %q must be a scalar kind", q.ID, c.ID)
			}
			if seen[c.ID] {
				return fmt.Errorf("group %q: duplicate child %q", q.ID, c.ID)
			}
			seen[c.ID] = true
		}
	}
	if child && len(q.When) > 0 {
		return fmt.Errorf("question %q: child questions cannot have conditions", q.ID)
	}
	return nil
}

// Question returns the question with the given id.
func (m *Module) Question(id string) (*Question, bool) {
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return m.Questions[i], true
}

// IndexOf returns the position of id in the full question list, or -1.
func (m *Module) IndexOf(id string) int {
	if i, ok := m.index[id]; ok {
		return i
	}
	return -1
}
