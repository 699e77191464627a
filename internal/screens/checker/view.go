package checker

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	formcheck "github.com/sfmahdi38-cmd/ukpip-site/internal/checker"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/components"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/layout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

func (s *CheckerScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 90)
	if s.report != nil {
		return s.viewReport(cw, width, height)
	}
	return s.viewInput(cw, width, height)
}

func (s *CheckerScreen) viewInput(cw, width, height int) string {
	marker := func(f int) string {
		if s.focus == f {
			return theme.Selected.Render("▌ ")
		}
		return "  "
	}
	indent := func(f int, body string) string {
		lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
		for i := range lines {
			lines[i] = marker(f) + lines[i]
		}
		return strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(i18n.T(s.lang, i18n.MsgCheckerTitle)))
	b.WriteString("\n\n")

	b.WriteString(indent(focusType, theme.Hint.Render(i18n.T(s.lang, i18n.MsgFormType))+"\n"+s.formType.View(cw-4)))
	b.WriteString("\n\n")
	b.WriteString(indent(focusForm, theme.Hint.Render(i18n.T(s.lang, i18n.MsgUploadForm))+"\n"+s.formPath.View()))
	b.WriteString("\n\n")
	b.WriteString(indent(focusEvidence, theme.Hint.Render(i18n.T(s.lang, i18n.MsgUploadEvidence))+"\n"+s.evidence.View()))
	b.WriteString("\n\n")

	label := i18n.T(s.lang, i18n.MsgAnalyze)
	if s.analyzing {
		label = i18n.T(s.lang, i18n.MsgAnalyzing)
	}
	b.WriteString(marker(focusButton))
	b.WriteString(components.NewButton(label, s.focus == focusButton && !s.analyzing, nil).View())

	if s.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Wrap(theme.Bad.Render(s.errText), cw, layout.TextAlign(s.lang.RTL())))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *CheckerScreen) viewReport(cw, width, height int) string {
	lines := strings.Split(s.renderReport(cw), "\n")

	footer := ""
	if s.notice != "" {
		footer = theme.Good.Render(s.notice)
	}
	room := height
	if footer != "" {
		room -= 2
	}
	room = max(1, room)

	maxScroll := max(0, len(lines)-room)
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := min(len(lines), s.scroll+room)
	body := strings.Join(lines[s.scroll:end], "\n")
	if footer != "" {
		body += "\n\n" + footer
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// renderReport lays out the whole report; the view scrolls over its lines.
func (s *CheckerScreen) renderReport(cw int) string {
	r := s.report
	l := s.lang
	align := layout.TextAlign(l.RTL())
	section := func(b *strings.Builder, title string) {
		b.WriteString("\n\n")
		b.WriteString(theme.Heading.Render(title))
		b.WriteString("\n")
	}
	bullets := func(b *strings.Builder, items []string) {
		for _, it := range items {
			b.WriteString(layout.Wrap("• "+it, cw, align))
			b.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(i18n.T(l, i18n.MsgOverallScore)))
	b.WriteString("  ")
	b.WriteString(stars(r.OverallStars))
	b.WriteString("\n")
	b.WriteString(components.Rule(cw))

	section(&b, i18n.T(l, i18n.MsgSubScores))
	for _, e := range r.Scores.Entries() {
		b.WriteString(fmt.Sprintf("%-18s %s\n", e.Name, stars(e.Value)))
	}

	if r.TranslationSummary != "" {
		section(&b, i18n.T(l, i18n.MsgSummary))
		b.WriteString(layout.Wrap(theme.Body.Render(r.TranslationSummary), cw, align))
	}
	if len(r.KeyFindings) > 0 {
		section(&b, i18n.T(l, i18n.MsgKeyFindings))
		bullets(&b, r.KeyFindings)
	}
	if len(r.MissingEvidence) > 0 {
		section(&b, i18n.T(l, i18n.MsgRecommendedEvidence))
		bullets(&b, r.MissingEvidence)
	}
	if len(r.Improvements) > 0 {
		section(&b, i18n.T(l, i18n.MsgImprovements))
		for i, imp := range r.Improvements {
			if i > 0 {
				b.WriteString("\n")
			}
			before, after, rationale := imp.In(l)
			b.WriteString(theme.Selected.Render(imp.SectionID))
			b.WriteString("\n")
			b.WriteString(layout.Wrap(theme.Bad.Render(i18n.T(l, i18n.MsgBefore)+": ")+before, cw, align))
			b.WriteString("\n")
			b.WriteString(layout.Wrap(theme.Good.Render(i18n.T(l, i18n.MsgAfter)+": ")+after, cw, align))
			b.WriteString("\n")
			b.WriteString(layout.Wrap(theme.Hint.Render(i18n.T(l, i18n.MsgRationale)+": "+rationale), cw, align))
			b.WriteString("\n")
		}
	}
	if len(r.QuestionScores) > 0 {
		section(&b, i18n.T(l, i18n.MsgQuestionScores))
		for _, q := range r.QuestionScores {
			b.WriteString(fmt.Sprintf("%s  %s\n", stars(q.Score), q.Question))
		}
	}
	if steps := r.NextSteps(l); len(steps) > 0 {
		section(&b, i18n.T(l, i18n.MsgNextSteps))
		bullets(&b, steps)
	}
	if d := r.Disclaimer(l); d != "" {
		b.WriteString("\n")
		b.WriteString(layout.Wrap(theme.Hint.Render(d), cw, align))
	}
	return b.String()
}

// stars renders a 1..6 score as a coloured star row.
func stars(n int) string {
	n = max(0, min(formcheck.MaxScore, n))
	return theme.Score(n).Render(strings.Repeat("★", n)+strings.Repeat("☆", formcheck.MaxScore-n)) +
		theme.Hint.Render(fmt.Sprintf(" %d/%d", n, formcheck.MaxScore))
}
