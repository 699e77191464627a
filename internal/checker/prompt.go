package checker

import (
	"fmt"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
)

const (
	disclaimerFA = "این یک تحلیل خودکار است و جایگزین مشاوره حرفه‌ای نمی‌شود."
	disclaimerEN = "This is an automated analysis and does not replace professional advice."
	disclaimerUK = "Це автоматизований аналіз, який не замінює професійної консультації."
)

// BuildPrompt returns the analysis instruction for a form of formType
// uploaded as fileName by a user reading l.
func BuildPrompt(formType, fileName string, evidence []string, l i18n.Lang) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert AI assistant for reviewing UK benefit application forms.
Analyze the provided form (%q) and any supporting evidence documents.
The user's primary language is %q, but you must provide all text outputs in English (en), Farsi (fa), and Ukrainian (uk).
The form type is %q.
`, fileName, string(l), formType)
	if len(evidence) > 0 {
		fmt.Fprintf(&b, "Supporting evidence files, in the order attached: %s.\n", strings.Join(evidence, ", "))
	}
	fmt.Fprintf(&b, `
Your task is to return a single, valid JSON object and nothing else. The JSON object must match this structure:
{
  "language": %[1]q,
  "form_type": %[2]q,
  "overall_stars": "integer (1-6)",
  "scores": { "completeness": "int(1-6)", "consistency": "int(1-6)", "evidence_linkage": "int(1-6)", "relevance": "int(1-6)", "tone_clarity": "int(1-6)", "risk_flags": "int(1-6)" },
  "translation_summary": "string in %[1]s",
  "key_findings": ["array of strings in %[1]s"],
  "missing_evidence": ["array of strings in %[1]s"],
  "improvements": [{ "section_id": "string", "before_fa": "string", "after_fa": "string", "rationale_fa": "string", "before_en": "string", "after_en": "string", "rationale_en": "string", "before_uk": "string", "after_uk": "string", "rationale_uk": "string" }],
  "per_question_scores": [{ "question": "Question Name from form", "score": "int(1-6)" }],
  "next_steps_fa": ["array of strings"],
  "next_steps_en": ["array of strings"],
  "next_steps_uk": ["array of strings"],
  "disclaimer_fa": %[3]q,
  "disclaimer_en": %[4]q,
  "disclaimer_uk": %[5]q
}
Critically evaluate the documents and provide accurate scores and concrete, actionable feedback in the JSON format. Ensure all text fields are correctly translated as requested.`,
		string(l), formType, disclaimerFA, disclaimerEN, disclaimerUK)
	return b.String()
}
