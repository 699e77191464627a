package form

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/components"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/layout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *FormScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 90)
	align := layout.TextAlign(s.lang.RTL())

	if s.confirmReset {
		return components.Centered(components.Card(
			theme.Heading.Render(i18n.T(s.lang, i18n.MsgStartOver)+"?")+"\n\n"+
				theme.Hint.Render("Y / N"), 40), width, height)
	}

	q, ok := s.engine.Current()
	if !ok {
		return components.Centered(theme.Hint.Render(i18n.T(s.lang, i18n.MsgNoQuestions)), width, height)
	}
	a, _ := s.engine.Answer(q.ID)

	var b strings.Builder

	pos, total := s.engine.Progress()
	b.WriteString(components.StepProgress(i18n.T(s.lang, i18n.MsgProgress, pos, total), pos, total, cw).View())
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))
	b.WriteString("\n\n")

	b.WriteString(layout.Wrap(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text.Get(s.lang)), cw, align))
	b.WriteString("\n")
	if d := q.Description.Get(s.lang); d != "" {
		b.WriteString(layout.Wrap(theme.Hint.Render(d), cw, align))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, f := range s.fields {
		b.WriteString(s.renderField(f, i == s.focus, cw))
		b.WriteString("\n")
	}

	if panel := s.renderGuidance(a, cw, align); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *FormScreen) renderField(f field, focused bool, cw int) string {
	marker := "  "
	if focused {
		marker = theme.Selected.Render("▌ ")
	}

	var body string
	switch {
	case f.input != nil:
		body = f.input.View()
	case f.area != nil:
		body = f.area.View()
	case f.choice != nil:
		body = f.choice.View(cw - 4)
	case f.dial != nil:
		body = f.dial.View()
	}

	if f.label != "" {
		body = theme.Hint.Render(f.label) + "\n" + body
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i := range lines {
		lines[i] = marker + lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderGuidance shows the last response for the question, or a spinner
// while a request is outstanding.
func (s *FormScreen) renderGuidance(a questionnaire.Answer, cw int, align lipgloss.Position) string {
	if s.guide == nil {
		return ""
	}
	if s.busy() {
		frame := spinnerFrames[s.spinner%len(spinnerFrames)]
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame + " " + i18n.T(s.lang, i18n.MsgGenerating))
	}
	r := a.Response
	if r == nil {
		return ""
	}

	inner := cw - 4
	var b strings.Builder
	if r.Failed() {
		b.WriteString(layout.Wrap(theme.Bad.Render(r.Err), inner, align))
		if raw := r.Get(guidance.AnswerKey(s.lang)); raw != "" {
			b.WriteString("\n\n")
			b.WriteString(layout.Wrap(theme.Hint.Render(raw), inner, align))
		}
		return theme.Panel.BorderForeground(theme.Error).Render(b.String())
	}

	b.WriteString(layout.Wrap(theme.Body.Render(r.Get(guidance.AnswerKey(s.lang))), inner, align))
	sections := []struct {
		title string
		key   string
	}{
		{i18n.MsgEvidence, guidance.EvidenceKey(s.lang)},
		{i18n.MsgNextSteps, guidance.NextStepsKey(s.lang)},
		{i18n.MsgExplanation, guidance.ExplanationKey(s.lang)},
	}
	for _, sec := range sections {
		text := r.Get(sec.key)
		if text == "" {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(layout.Wrap(theme.Heading.Render(i18n.T(s.lang, sec.title)), inner, align))
		b.WriteString("\n")
		b.WriteString(layout.Wrap(theme.Body.Render(text), inner, align))
	}
	return theme.Panel.Width(cw).Render(b.String())
}
