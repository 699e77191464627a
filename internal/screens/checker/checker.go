// Package checker is the screen that scores a completed form file.
package checker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	formcheck "github.com/sfmahdi38-cmd/ukpip-site/internal/checker"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/components"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/layout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

// Focus order of the input page.
const (
	focusType = iota
	focusForm
	focusEvidence
	focusButton
	focusCount
)

const inputWidth = 56

type reportMsg struct {
	report *formcheck.Report
	err    error
}

// CheckerScreen collects the form type and files, runs the analysis and
// shows the report.
type CheckerScreen struct {
	deps screen.Deps
	lang i18n.Lang

	formType components.Choice
	formPath components.TextInput
	evidence components.TextInput
	focus    int

	analyzing bool
	errText   string

	report  *formcheck.Report
	scroll  int
	notice  string
	saveDir string
}

var _ screen.Screen = (*CheckerScreen)(nil)
var _ screen.KeyHintProvider = (*CheckerScreen)(nil)

// New creates a CheckerScreen. Saved improvement files go to the working
// directory.
func New(deps screen.Deps) *CheckerScreen {
	lang := deps.Lang()
	s := &CheckerScreen{
		deps:     deps,
		lang:     lang,
		formType: components.NewChoice(typeOptions(deps, lang), false),
		formPath: components.NewTextInput("/path/to/form.pdf", false, inputWidth),
		evidence: components.NewTextInput(i18n.T(lang, i18n.MsgFilePath), false, inputWidth),
		saveDir:  ".",
	}
	s.formPath.Blur()
	s.evidence.Blur()
	return s
}

func typeOptions(deps screen.Deps, l i18n.Lang) []components.ChoiceOption {
	var ids []string
	switch {
	case deps.Checker != nil:
		ids = deps.Checker.FormTypes()
	case deps.Catalog != nil:
		ids = deps.Catalog.FormIDs()
	}
	opts := make([]components.ChoiceOption, 0, len(ids))
	for _, id := range ids {
		label := id
		if deps.Catalog != nil {
			if e, err := deps.Catalog.Entry(id); err == nil {
				label = e.Name.Get(l)
			}
		}
		opts = append(opts, components.ChoiceOption{Value: id, Label: label})
	}
	return opts
}

func (s *CheckerScreen) Init() tea.Cmd {
	return nil
}

func (s *CheckerScreen) Title() string {
	return i18n.T(s.lang, i18n.MsgCheckerTitle)
}

func (s *CheckerScreen) KeyHints() []layout.KeyHint {
	if s.report != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "S", Description: i18n.T(s.lang, i18n.MsgSaveImprovements)},
			{Key: "N", Description: "New check"},
			{Key: "Esc", Description: i18n.T(s.lang, i18n.MsgBack)},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: i18n.T(s.lang, i18n.MsgAnalyze)},
		{Key: "Esc", Description: i18n.T(s.lang, i18n.MsgBack)},
	}
}

func (s *CheckerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		s.analyzing = false
		if msg.err != nil {
			s.errText = s.describe(msg.err)
			return s, nil
		}
		s.report, s.scroll, s.notice = msg.report, 0, ""
		return s, nil

	case tea.KeyMsg:
		if s.analyzing {
			return s, nil
		}
		if s.report != nil {
			return s.reportKey(msg)
		}
		return s.inputKey(msg)
	}
	return s, nil
}

func (s *CheckerScreen) inputKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "enter":
		if s.focus == focusType {
			s.formType, _ = s.formType.Update(msg)
			return s, s.setFocus(focusForm)
		}
		return s, s.analyze()
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusType:
		s.formType, _ = s.formType.Update(msg)
	case focusForm:
		s.formPath, cmd = s.formPath.Update(msg)
	case focusEvidence:
		s.evidence, cmd = s.evidence.Update(msg)
	}
	return s, cmd
}

func (s *CheckerScreen) reportKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		s.scroll++
	case "pgup":
		s.scroll = max(0, s.scroll-10)
	case "pgdown":
		s.scroll += 10
	case "s":
		s.save()
	case "n":
		s.report, s.errText, s.notice = nil, "", ""
		return s, s.setFocus(focusForm)
	}
	return s, nil
}

func (s *CheckerScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.formPath.Blur()
	s.evidence.Blur()
	switch f {
	case focusForm:
		return s.formPath.Focus()
	case focusEvidence:
		return s.evidence.Focus()
	}
	return nil
}

// analyze loads the files and runs the analysis off the UI goroutine.
func (s *CheckerScreen) analyze() tea.Cmd {
	c := s.deps.Checker
	if c == nil {
		s.errText = i18n.T(s.lang, i18n.MsgGenerationError)
		return nil
	}
	formType := s.formType.Value()
	if formType == "" {
		s.errText = i18n.T(s.lang, i18n.MsgSelectFormType)
		return nil
	}
	formPath := strings.TrimSpace(s.formPath.Value())
	evidence := splitPaths(s.evidence.Value())
	lang := s.lang

	s.analyzing, s.errText = true, ""
	return func() tea.Msg {
		in, err := c.Load(formType, formPath, evidence, lang)
		if err != nil {
			return reportMsg{err: err}
		}
		report, err := c.Analyze(context.Background(), in)
		return reportMsg{report: report, err: err}
	}
}

func splitPaths(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// describe turns an analysis error into the message shown to the user.
func (s *CheckerScreen) describe(err error) string {
	switch {
	case errors.Is(err, unlock.ErrLocked), errors.Is(err, unlock.ErrNoUsesLeft):
		return i18n.T(s.lang, i18n.MsgPaywall)
	case errors.Is(err, formcheck.ErrNoForm),
		errors.Is(err, formcheck.ErrUnsupportedFile),
		errors.Is(err, formcheck.ErrFileTooLarge),
		errors.Is(err, formcheck.ErrTooManyFiles),
		errors.Is(err, os.ErrNotExist):
		return err.Error()
	}
	s.deps.Log().Printf("checker: analysis failed: %v", err)
	return i18n.T(s.lang, i18n.MsgAnalysisFailed)
}

func (s *CheckerScreen) save() {
	name := filepath.Join(s.saveDir, formcheck.ImprovementsFileName(s.lang))
	if err := os.WriteFile(name, []byte(s.report.ImprovementsText(s.lang)), 0o644); err != nil {
		s.notice = fmt.Sprintf("✗ %v", err)
		return
	}
	s.notice = i18n.T(s.lang, i18n.MsgSaved, name)
}
