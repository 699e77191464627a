package checker

import "github.com/sfmahdi38-cmd/ukpip-site/internal/llm"

func score(desc string) map[string]any {
	return map[string]any{"type": "integer", "minimum": 1, "maximum": 6, "description": desc}
}

func stringList(desc string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": desc}
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// ReportSchema is the JSON schema of a form analysis.
var ReportSchema = &llm.Schema{
	Name:        "form-report",
	Description: "Scored review of a completed UK government form with multilingual improvements",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"language":      map[string]any{"type": "string", "enum": []any{"fa", "en", "uk"}},
			"form_type":     str("The form type being reviewed"),
			"overall_stars": score("Overall quality from 1 (poor) to 6 (excellent)"),
			"scores": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"completeness":     score("Are all sections answered"),
					"consistency":      score("Do answers agree with each other"),
					"evidence_linkage": score("Are claims backed by the evidence"),
					"relevance":        score("Do answers address the descriptors"),
					"tone_clarity":     score("Is the writing clear and appropriate"),
					"risk_flags":       score("6 means no risks found"),
				},
				"required":             []any{"completeness", "consistency", "evidence_linkage", "relevance", "tone_clarity", "risk_flags"},
				"additionalProperties": false,
			},
			"translation_summary": str("Summary of the form in the user's language"),
			"key_findings":        stringList("Key findings in the user's language"),
			"missing_evidence":    stringList("Evidence the user should add, in the user's language"),
			"improvements": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"section_id":   str("Section or question the change applies to"),
						"before_fa":    str("Original text, Farsi"),
						"after_fa":     str("Improved text, Farsi"),
						"rationale_fa": str("Why, Farsi"),
						"before_en":    str("Original text, English"),
						"after_en":     str("Improved text, English"),
						"rationale_en": str("Why, English"),
						"before_uk":    str("Original text, Ukrainian"),
						"after_uk":     str("Improved text, Ukrainian"),
						"rationale_uk": str("Why, Ukrainian"),
					},
					"required": []any{"section_id", "before_en", "after_en", "rationale_en"},
				},
			},
			"per_question_scores": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": str("Question name as written on the form"),
						"score":    score("Score for this question"),
					},
					"required": []any{"question", "score"},
				},
			},
			"next_steps_fa": stringList("Next steps in Farsi"),
			"next_steps_en": stringList("Next steps in English"),
			"next_steps_uk": stringList("Next steps in Ukrainian"),
			"disclaimer_fa": str("Disclaimer in Farsi"),
			"disclaimer_en": str("Disclaimer in English"),
			"disclaimer_uk": str("Disclaimer in Ukrainian"),
		},
		"required": []any{
			"language", "form_type", "overall_stars", "scores", "translation_summary",
			"key_findings", "missing_evidence", "improvements",
			"next_steps_fa", "next_steps_en", "next_steps_uk",
			"disclaimer_fa", "disclaimer_en", "disclaimer_uk",
		},
	},
}
