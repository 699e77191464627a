package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/components"
)

// target says which part of the answer a field edits.
type target int

const (
	targetValue target = iota
	targetRating
	targetLength
	targetFiles
	targetProof
)

// field is one focusable control of the current question.
type field struct {
	target target
	// child is the group child id for value fields of a group question.
	child string
	label string
	kind  questionnaire.Kind

	input  *components.TextInput
	area   *components.TextArea
	choice *components.Choice
	dial   *components.Dial
}

// update forwards msg to the control. changed reports an edit that should be
// committed right away; submit reports enter on a control that commits on
// enter (file paths) or advances (single-line text).
func (f field) update(msg tea.Msg) (next field, cmd tea.Cmd, changed, submit bool) {
	enter := false
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		enter = true
	}
	switch {
	case f.input != nil:
		if enter {
			return f, nil, false, true
		}
		before := f.input.Value()
		in, cmd := f.input.Update(msg)
		f.input = &in
		return f, cmd, f.target == targetValue && in.Value() != before, false
	case f.area != nil:
		before := f.area.Value()
		ta, cmd := f.area.Update(msg)
		f.area = &ta
		return f, cmd, ta.Value() != before, false
	case f.choice != nil:
		c, changed := f.choice.Update(msg)
		f.choice = &c
		return f, nil, changed, false
	case f.dial != nil:
		d, changed := f.dial.Update(msg)
		f.dial = &d
		return f, nil, changed, false
	}
	return f, nil, false, false
}

func (f field) focus() tea.Cmd {
	switch {
	case f.input != nil:
		return f.input.Focus()
	case f.area != nil:
		return f.area.Focus()
	}
	return nil
}

func (f field) blur() {
	switch {
	case f.input != nil:
		f.input.Blur()
	case f.area != nil:
		f.area.Blur()
	}
}

// scalar returns the text or single choice held by a value field.
func (f field) scalar() string {
	switch {
	case f.input != nil:
		return f.input.Value()
	case f.area != nil:
		return f.area.Value()
	case f.choice != nil:
		return f.choice.Value()
	}
	return ""
}

// value returns the value a non-group value field holds.
func (f field) value() questionnaire.Value {
	if f.choice != nil && f.choice.Multi {
		return questionnaire.List(f.choice.Chosen()...)
	}
	return questionnaire.Scalar(f.scalar())
}

func (f field) setError(err error) {
	if f.input != nil {
		f.input.SetError(err)
	}
}

// buildFields creates the controls for q, seeded from its answer.
func buildFields(q *questionnaire.Question, a questionnaire.Answer, l i18n.Lang, width int) []field {
	var fields []field
	switch q.Kind {
	case questionnaire.KindGroup:
		for _, c := range q.Children {
			f := valueField(c, questionnaire.Scalar(a.Value.Field(c.ID)), l, width)
			f.child = c.ID
			f.label = c.Text.Get(l)
			fields = append(fields, f)
		}
	case questionnaire.KindFile:
		in := components.NewTextInput(i18n.T(l, i18n.MsgFilePath), false, width)
		in.SetValue(filePaths(a))
		fields = append(fields, field{target: targetFiles, kind: q.Kind, input: &in})
	default:
		fields = append(fields, valueField(q, a.Value, l, width))
	}

	if q.StarEnabled {
		d := components.NewDial(i18n.T(l, i18n.MsgImpact), "★",
			questionnaire.MinRating, questionnaire.MaxRating, a.Rating, "left", "right")
		fields = append(fields, field{target: targetRating, dial: &d})
	}
	if q.BookEnabled {
		d := components.NewDial(i18n.T(l, i18n.MsgLength), "▮",
			questionnaire.MinLength, questionnaire.MaxLength, a.Length, "left", "right")
		fields = append(fields, field{target: targetLength, dial: &d})
	}
	if q.AllowProof {
		in := components.NewTextInput(q.ProofHint.Get(l), false, width)
		if q.Kind != questionnaire.KindFile {
			in.SetValue(filePaths(a))
		}
		fields = append(fields, field{target: targetProof, label: q.ProofHint.Get(l), input: &in})
	}

	for i := range fields {
		if i > 0 {
			fields[i].blur()
		}
	}
	return fields
}

func valueField(q *questionnaire.Question, v questionnaire.Value, l i18n.Lang, width int) field {
	f := field{target: targetValue, kind: q.Kind}
	switch q.Kind {
	case questionnaire.KindSingleSelect, questionnaire.KindMultiSelect:
		opts := make([]components.ChoiceOption, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, components.ChoiceOption{
				Value: o.Value,
				Label: o.Label.Get(l),
				Tip:   o.Tip.Get(l),
			})
		}
		multi := q.Kind == questionnaire.KindMultiSelect
		chosen := v.Items()
		if !multi {
			chosen = []string{v.String()}
		}
		c := components.NewChoice(opts, multi, chosen...)
		f.choice = &c
	case questionnaire.KindLongText:
		ta := components.NewTextArea(q.Placeholder.Get(l), width, 6)
		ta.SetValue(v.String())
		f.area = &ta
	default:
		numeric := q.Kind == questionnaire.KindNumber || q.Kind == questionnaire.KindCurrency
		placeholder := q.Placeholder.Get(l)
		if placeholder == "" && q.Kind == questionnaire.KindDate {
			placeholder = "YYYY-MM-DD"
		}
		in := components.NewTextInput(placeholder, numeric, width)
		in.SetValue(v.String())
		f.input = &in
	}
	return f
}

func filePaths(a questionnaire.Answer) string {
	if len(a.Files) > 0 {
		paths := make([]string, 0, len(a.Files))
		for _, f := range a.Files {
			paths = append(paths, f.Path)
		}
		return strings.Join(paths, ", ")
	}
	if a.Value.Shape() == questionnaire.ShapeList {
		return a.Value.String()
	}
	return ""
}

// statFiles resolves a comma separated list of paths.
func statFiles(list string) ([]questionnaire.File, error) {
	var files []questionnaire.File
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}
		files = append(files, questionnaire.File{Name: filepath.Base(p), Path: p, Size: info.Size()})
	}
	return files, nil
}
