// Package form is the question-by-question screen for one module, with live
// AI guidance for the question on screen.
package form

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/layout"
)

const fieldWidth = 60

// FormScreen implements screen.Screen for a question-flow module.
type FormScreen struct {
	deps   screen.Deps
	lang   i18n.Lang
	engine *questionnaire.Engine
	guide  *guidance.Service

	// qid is the question the fields were built for.
	qid    string
	fields []field
	focus  int

	confirmReset bool
	ticking      bool
	spinner      int
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates a FormScreen for m and restores saved progress.
func New(deps screen.Deps, m *questionnaire.Module) *FormScreen {
	s := &FormScreen{
		deps:   deps,
		lang:   deps.Lang(),
		engine: questionnaire.New(m, deps.Store, questionnaire.WithLogger(deps.Log())),
	}
	s.engine.Restore(context.Background())
	if deps.NewGuidance != nil {
		s.guide = deps.NewGuidance()
	}
	s.syncFields()
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return tea.Batch(s.focusCmd(), s.waitGuidance())
}

func (s *FormScreen) Title() string {
	return s.engine.Module().Title.Get(s.lang)
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: i18n.T(s.lang, i18n.MsgStartOver)},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "PgDn/PgUp", Description: "Next/Prev question"},
		{Key: "Ctrl+R", Description: i18n.T(s.lang, i18n.MsgStartOver)},
		{Key: "Esc", Description: i18n.T(s.lang, i18n.MsgBack)},
	}
}

// Close stops the guidance service; pending requests are dropped.
func (s *FormScreen) Close() {
	if s.guide != nil {
		go s.guide.Close()
	}
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guidanceReadyMsg:
		if msg.svc != s.guide {
			return s, nil
		}
		s.applyGuidance()
		return s, s.waitGuidance()

	case spinnerTickMsg:
		s.spinner++
		if s.busy() {
			return s, spinnerTick()
		}
		s.ticking = false
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *FormScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			s.engine.Reset(context.Background())
			s.qid = ""
			s.syncFields()
			return s, s.focusCmd()
		case "n", "N":
			s.confirmReset = false
		}
		return s, nil
	}

	switch key {
	case "ctrl+r":
		s.confirmReset = true
		return s, nil
	case "pgdown", "ctrl+n":
		return s.move(s.engine.Advance())
	case "pgup", "ctrl+p":
		return s.move(s.engine.Retreat())
	case "tab":
		return s, s.cycleFocus(1)
	case "shift+tab":
		return s, s.cycleFocus(-1)
	}

	return s.forward(msg)
}

// forward passes msg to the focused field and commits what changed.
func (s *FormScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.fields) == 0 {
		return s, nil
	}
	f, cmd, changed, submit := s.fields[s.focus].update(msg)
	s.fields[s.focus] = f

	switch {
	case submit && (f.target == targetFiles || f.target == targetProof):
		return s, tea.Batch(cmd, s.commitFiles(f))
	case submit:
		return s.move(s.engine.Advance())
	case changed:
		return s, tea.Batch(cmd, s.commit(f))
	}
	return s, cmd
}

func (s *FormScreen) move(moved bool) (screen.Screen, tea.Cmd) {
	if !moved {
		return s, nil
	}
	s.syncFields()
	return s, s.focusCmd()
}

// commit writes the edited part of the answer and asks for fresh guidance.
func (s *FormScreen) commit(f field) tea.Cmd {
	q, ok := s.engine.Current()
	if !ok {
		return nil
	}
	ctx := context.Background()

	var err error
	switch f.target {
	case targetRating:
		err = s.engine.SetRating(ctx, q.ID, f.dial.Value)
	case targetLength:
		err = s.engine.SetLength(ctx, q.ID, f.dial.Value)
	case targetValue:
		err = s.engine.SetValue(ctx, q.ID, s.currentValue(q))
		f.setError(err)
		if errors.Is(err, questionnaire.ErrInvalidValue) {
			return nil
		}
	}
	if err != nil {
		s.deps.Log().Printf("form: update %s: %v", q.ID, err)
		return nil
	}
	return s.afterEdit(q)
}

func (s *FormScreen) commitFiles(f field) tea.Cmd {
	q, ok := s.engine.Current()
	if !ok {
		return nil
	}
	files, err := statFiles(f.input.Value())
	f.setError(err)
	if err != nil {
		return nil
	}
	if err := s.engine.SetFiles(context.Background(), q.ID, files); err != nil {
		f.setError(err)
		return nil
	}
	if f.target == targetFiles {
		return s.afterEdit(q)
	}
	return nil
}

// currentValue assembles the question's value from its value fields.
func (s *FormScreen) currentValue(q *questionnaire.Question) questionnaire.Value {
	if q.Kind != questionnaire.KindGroup {
		for _, f := range s.fields {
			if f.target == targetValue {
				return f.value()
			}
		}
		return questionnaire.DefaultValue(q.Kind)
	}
	m := make(map[string]string)
	for _, f := range s.fields {
		if f.target == targetValue && f.child != "" {
			if v := f.scalar(); v != "" {
				m[f.child] = v
			}
		}
	}
	return questionnaire.Fields(m)
}

// afterEdit re-syncs the fields when visibility moved the cursor and
// schedules guidance for q.
func (s *FormScreen) afterEdit(q *questionnaire.Question) tea.Cmd {
	var cmds []tea.Cmd
	if cur, ok := s.engine.Current(); !ok || cur.ID != s.qid {
		s.syncFields()
		cmds = append(cmds, s.focusCmd())
	}
	if s.guide == nil {
		return tea.Batch(cmds...)
	}
	a, _ := s.engine.Answer(q.ID)
	requested := s.guide.Request(guidance.Input{
		Module:   s.engine.Module(),
		Question: q,
		Answer:   a,
		All:      s.engine.Answers(),
		Lang:     s.lang,
	})
	if requested && !s.ticking {
		s.ticking = true
		cmds = append(cmds, spinnerTick())
	}
	return tea.Batch(cmds...)
}

// applyGuidance stores drained results on their answers.
func (s *FormScreen) applyGuidance() {
	ctx := context.Background()
	for _, r := range s.guide.Drain() {
		if err := s.engine.SetResponse(ctx, r.QuestionID, r.Response); err != nil {
			s.deps.Log().Printf("form: store guidance for %s: %v", r.QuestionID, err)
		}
	}
	if cur, ok := s.engine.Current(); !ok || cur.ID != s.qid {
		s.syncFields()
	}
}

// syncFields rebuilds the controls when the current question changed.
func (s *FormScreen) syncFields() {
	q, ok := s.engine.Current()
	if !ok {
		s.qid, s.fields, s.focus = "", nil, 0
		return
	}
	if q.ID == s.qid {
		return
	}
	a, _ := s.engine.Answer(q.ID)
	s.qid = q.ID
	s.fields = buildFields(q, a, s.lang, fieldWidth)
	s.focus = 0
}

func (s *FormScreen) cycleFocus(delta int) tea.Cmd {
	if len(s.fields) < 2 {
		return nil
	}
	s.fields[s.focus].blur()
	s.focus = (s.focus + delta + len(s.fields)) % len(s.fields)
	return s.focusCmd()
}

func (s *FormScreen) focusCmd() tea.Cmd {
	if len(s.fields) == 0 {
		return nil
	}
	return s.fields[s.focus].focus()
}

func (s *FormScreen) busy() bool {
	return s.guide != nil && s.qid != "" && s.guide.Busy(s.qid)
}

func (s *FormScreen) waitGuidance() tea.Cmd {
	svc := s.guide
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-svc.Ready():
			return guidanceReadyMsg{svc: svc}
		case <-svc.Done():
			return nil
		}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
