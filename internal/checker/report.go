package checker

import (
	"fmt"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
)

// MaxScore is the top of every score scale.
const MaxScore = 6

// Scores are the six sub-scores, each 1..MaxScore.
type Scores struct {
	Completeness    int `json:"completeness"`
	Consistency     int `json:"consistency"`
	EvidenceLinkage int `json:"evidence_linkage"`
	Relevance       int `json:"relevance"`
	ToneClarity     int `json:"tone_clarity"`
	RiskFlags       int `json:"risk_flags"`
}

// ScoreEntry is one named sub-score.
type ScoreEntry struct {
	Name  string
	Value int
}

// Entries lists the sub-scores in display order.
func (s Scores) Entries() []ScoreEntry {
	return []ScoreEntry{
		{"completeness", s.Completeness},
		{"consistency", s.Consistency},
		{"evidence linkage", s.EvidenceLinkage},
		{"relevance", s.Relevance},
		{"tone clarity", s.ToneClarity},
		{"risk flags", s.RiskFlags},
	}
}

// Improvement is a suggested rewrite of one section in all three languages.
type Improvement struct {
	SectionID   string `json:"section_id"`
	BeforeFA    string `json:"before_fa,omitempty"`
	AfterFA     string `json:"after_fa,omitempty"`
	RationaleFA string `json:"rationale_fa,omitempty"`
	BeforeEN    string `json:"before_en"`
	AfterEN     string `json:"after_en"`
	RationaleEN string `json:"rationale_en"`
	BeforeUK    string `json:"before_uk,omitempty"`
	AfterUK     string `json:"after_uk,omitempty"`
	RationaleUK string `json:"rationale_uk,omitempty"`
}

// In returns the before, after and rationale text in l, falling back to
// English when l is missing.
func (imp Improvement) In(l i18n.Lang) (before, after, rationale string) {
	switch l {
	case i18n.Farsi:
		before, after, rationale = imp.BeforeFA, imp.AfterFA, imp.RationaleFA
	case i18n.Ukrainian:
		before, after, rationale = imp.BeforeUK, imp.AfterUK, imp.RationaleUK
	}
	if before == "" && after == "" && rationale == "" {
		return imp.BeforeEN, imp.AfterEN, imp.RationaleEN
	}
	return before, after, rationale
}

// QuestionScore is the score given to one question of the form.
type QuestionScore struct {
	Question string `json:"question"`
	Score    int    `json:"score"`
}

// Report is the analysis of one completed form.
type Report struct {
	Language           string          `json:"language"`
	FormType           string          `json:"form_type"`
	OverallStars       int             `json:"overall_stars"`
	Scores             Scores          `json:"scores"`
	TranslationSummary string          `json:"translation_summary"`
	KeyFindings        []string        `json:"key_findings"`
	MissingEvidence    []string        `json:"missing_evidence"`
	Improvements       []Improvement   `json:"improvements"`
	QuestionScores     []QuestionScore `json:"per_question_scores,omitempty"`
	NextStepsFA        []string        `json:"next_steps_fa"`
	NextStepsEN        []string        `json:"next_steps_en"`
	NextStepsUK        []string        `json:"next_steps_uk"`
	DisclaimerFA       string          `json:"disclaimer_fa"`
	DisclaimerEN       string          `json:"disclaimer_en"`
	DisclaimerUK       string          `json:"disclaimer_uk"`
}

// NextSteps returns the next steps in l.
func (r *Report) NextSteps(l i18n.Lang) []string {
	switch l {
	case i18n.Farsi:
		return r.NextStepsFA
	case i18n.Ukrainian:
		return r.NextStepsUK
	default:
		return r.NextStepsEN
	}
}

// Disclaimer returns the disclaimer in l.
func (r *Report) Disclaimer(l i18n.Lang) string {
	switch l {
	case i18n.Farsi:
		return r.DisclaimerFA
	case i18n.Ukrainian:
		return r.DisclaimerUK
	default:
		return r.DisclaimerEN
	}
}

// ImprovementsText renders the improvements in l as plain text, one block per
// section.
func (r *Report) ImprovementsText(l i18n.Lang) string {
	blocks := make([]string, 0, len(r.Improvements))
	for _, imp := range r.Improvements {
		before, after, rationale := imp.In(l)
		blocks = append(blocks, fmt.Sprintf("Section: %s\nBefore: %s\nAfter: %s\nRationale: %s",
			imp.SectionID, before, after, rationale))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// ImprovementsFileName is the file name used when saving ImprovementsText.
func ImprovementsFileName(l i18n.Lang) string {
	return "form-improvements-" + string(l) + ".txt"
}
