// Package guidance drafts AI answers for the focused question: it builds the
// prompt for each form family, decides when a request is worth sending,
// debounces edits and parses what comes back.
package guidance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
)

var impactPhrases = map[int]string{
	1: "very low impact",
	2: "low impact",
	3: "neutral impact",
	4: "somewhat impactful",
	5: "high impact",
	6: "maximum impact",
}

var lengthPhrases = map[int]string{
	1: "a very short answer (1-2 sentences)",
	2: "a medium-short answer (3-4 sentences)",
	3: "a semi-detailed answer (a short paragraph)",
	4: "a full, detailed answer (a long paragraph)",
}

func impactPhrase(n int) string {
	if p, ok := impactPhrases[n]; ok {
		return p
	}
	return "not set"
}

func lengthPhrase(n int) string {
	if p, ok := lengthPhrases[n]; ok {
		return p
	}
	return lengthPhrases[questionnaire.MinLength]
}

// Response keys, suffixed with the language code.
func AnswerKey(l i18n.Lang) string      { return "answer_" + string(l) }
func ExplanationKey(l i18n.Lang) string { return "explanation_" + string(l) }
func EvidenceKey(l i18n.Lang) string    { return "evidence_checklist_" + string(l) }
func NextStepsKey(l i18n.Lang) string   { return "next_steps_" + string(l) }

// Branch questions select the prompt for modules covering several forms.
const (
	hmrcBranch = "hmrc_flow"
	nhsBranch  = "form_type"
)

func basicInstruction(l i18n.Lang) string {
	return fmt.Sprintf(`You are an expert assistant for completing UK government forms. Your goal is to help %[1]s in the UK.
You MUST return a single, valid JSON object and nothing else. The JSON object must have two keys: "%[2]s" and "%[3]s".
- "%[2]s" (string): The response in clear, professional %[4]s.
- "%[3]s" (string): Briefly explain *why* you generated that specific answer, referencing the user's input.`,
		l.Audience(), AnswerKey(l), ExplanationKey(l), l.Name())
}

func multiPartInstruction(l i18n.Lang) string {
	return fmt.Sprintf(`You are an expert assistant for completing UK government forms. Your goal is to help %[1]s in the UK.
You MUST return a single, valid JSON object and nothing else. The JSON object must have four keys: "%[2]s", "%[3]s", "%[4]s", and "%[5]s".
- "%[2]s" (string): Provide tailored guidance in polite, professional %[6]s.
- "%[3]s" (string): Provide a bulleted list (using '-') of documents the user should prepare.
- "%[4]s" (string): Provide a bulleted list (using '-') of the next actions the user should take.
- "%[5]s" (string): Briefly explain the reasoning for the guidance you provided, referencing the user's input.`,
		l.Audience(), AnswerKey(l), EvidenceKey(l), NextStepsKey(l), ExplanationKey(l), l.Name())
}

// Multipart reports whether responses for moduleID carry the evidence
// checklist and next steps keys.
func Multipart(moduleID string) bool {
	switch moduleID {
	case "uc", "carers_allowance", "nhs_forms", "student_finance", "immigration", "dvla_forms", "hmrc_forms":
		return true
	}
	return false
}

// promptInput is what every prompt family draws on.
type promptInput struct {
	question *questionnaire.Question
	answer   questionnaire.Answer
	context  string // whole form as [{"q":..,"v":..}]
	lang     i18n.Lang
}

func (in promptInput) text() string  { return in.question.Text.Get(in.lang) }
func (in promptInput) value() string { return jsonText(in.answer.Value) }

type promptFunc func(in promptInput, all questionnaire.Answers) string

var families = map[string]promptFunc{
	"blue_badge":       blueBadgePrompt,
	"council_tax":      councilTaxPrompt,
	"dvla_forms":       dvlaPrompt,
	"hmrc_forms":       hmrcPrompt,
	"carers_allowance": carersPrompt,
	"nhs_forms":        nhsPrompt,
	"student_finance":  studentFinancePrompt,
	"uc":               universalCreditPrompt,
	"immigration":      immigrationPrompt,
}

// BuildPrompt returns the prompt for question q of module m given its
// answer and the answers of the whole form. Modules without a dedicated
// family get the PIP prompt.
func BuildPrompt(m *questionnaire.Module, q *questionnaire.Question, a questionnaire.Answer, all questionnaire.Answers, l i18n.Lang) string {
	in := promptInput{
		question: q,
		answer:   a,
		context:  formContext(m, all),
		lang:     l,
	}
	if fn, ok := families[m.ID]; ok {
		return fn(in, all)
	}
	return pipPrompt(in, all)
}

func blueBadgePrompt(in promptInput, _ questionnaire.Answers) string {
	l := in.lang
	return basicInstruction(l) + fmt.Sprintf(`
You are generating %s answers for a UK Blue Badge application.
- Impact level (stars): %d/6 (%s) must control assertiveness and emphasis on mobility limitations.
- Length level (books): %d/4 (%s) must control answer depth and detail.
Current Question: "%s"
User's input: %s
Based on these requirements, generate a suitable response. Reflect real functional difficulties: distance limits, pain, fatigue, safety risks, non-visible conditions.`,
		l.Name(), in.answer.Rating, impactPhrase(in.answer.Rating), in.answer.Length, lengthPhrase(in.answer.Length),
		in.text(), in.value())
}

func councilTaxPrompt(in promptInput, _ questionnaire.Answers) string {
	return basicInstruction(in.lang) + fmt.Sprintf(`
You are generating %s answers for a UK Council Tax Reduction application. The tone should be formal and clear.
Current Question: "%s"
User's input: %s
Based on the user's input, generate a simple, direct, and professional answer.`,
		in.lang.Name(), in.text(), in.value())
}

func dvlaPrompt(in promptInput, _ questionnaire.Answers) string {
	return multiPartInstruction(in.lang) + fmt.Sprintf(`
Current Question: "%s"
User's input: %s
Based on the user's input, provide specific advice in %s:
- If their foreign license is from a non-exchangeable country, explain that they need to apply for a Provisional Licence and take UK tests.
- If they report a medical condition, advise them they must declare it and may need to fill out specific medical forms (e.g., MED1).
- If they failed a vision test, advise them to see an optician before proceeding.`,
		in.text(), in.value(), in.lang.Name())
}

func hmrcPrompt(in promptInput, all questionnaire.Answers) string {
	l := in.lang
	switch all[hmrcBranch].Value.String() {
	case "self_assessment":
		return multiPartInstruction(l) + fmt.Sprintf(`
You generate clear %s guidance for HMRC Self Assessment.
Current Question: "%s"
User's input for this question: %s
Full form context: %s
Return tailored answers, an exact evidence checklist, and concise next steps to file online.`,
			l.Name(), in.text(), in.value(), in.context)
	case "child_tax_credit":
		return multiPartInstruction(l) + fmt.Sprintf(`
You generate clear %s guidance for Child Tax Credit.
Current Question: "%s"
User's input for this question: %s
Full form context: %s
Return tailored answers, an evidence checklist, and next steps on how to apply/update details.`,
			l.Name(), in.text(), in.value(), in.context)
	}
	return selectFormTypePrompt(l)
}

func carersPrompt(in promptInput, _ questionnaire.Answers) string {
	return multiPartInstruction(in.lang) + fmt.Sprintf(`
You generate clear %s guidance for a UK Carer’s Allowance claim.
Current Question: "%s"
User's input for this question: %s
Full form context: %s
Return tailored answers, an exact evidence checklist, and next steps on how to submit online.
Provide warnings if user seems ineligible (e.g., <35 hours, high earnings, full-time student).`,
		in.lang.Name(), in.text(), in.value(), in.context)
}

func nhsPrompt(in promptInput, all questionnaire.Answers) string {
	l := in.lang
	switch all[nhsBranch].Value.String() {
	case "gp":
		return multiPartInstruction(l) + fmt.Sprintf(`
You generate clear %s guidance for NHS GP Registration.
Current Question: "%s"
User's input for this question: %s
Explain how to register with a GP using ID, proof of address, and medical history. Return tailored answers, a checklist, and next steps.`,
			l.Name(), in.text(), in.value())
	case "hc1":
		return multiPartInstruction(l) + fmt.Sprintf(`
You generate clear %s guidance for NHS HC1/HC2 forms (Low Income Scheme).
Current Question: "%s"
User's input for this question: %s
Explain eligibility based on benefits, income, savings, and household. Return tailored answers, a checklist, and next steps.`,
			l.Name(), in.text(), in.value())
	}
	return selectFormTypePrompt(l)
}

func studentFinancePrompt(in promptInput, _ questionnaire.Answers) string {
	return multiPartInstruction(in.lang) + fmt.Sprintf(`
You generate clear %s guidance for Student Finance applications (UK).
Current Question: "%s"
User's input for this question: %s
Full form context: %s
Use inputs: study level, institution, course length, residency status, household income, living arrangements, dependents, and special support needs.
Return tailored answers, an evidence checklist (documents: admission letter, BRP, income proofs, child dependents, disability assessments), and next steps (how to apply online, deadlines, processing times).`,
		in.lang.Name(), in.text(), in.value(), in.context)
}

func universalCreditPrompt(in promptInput, _ questionnaire.Answers) string {
	l := in.lang
	return multiPartInstruction(l) + fmt.Sprintf(`
You are generating clear %s guidance for a UK Universal Credit application.
Current Question: "%s"
User's input for this question: %s
Full form context: %s
Based on all user inputs (household, children, housing costs, savings, employment, health), provide tailored advice.
For the '%s', list specific documents like tenancy agreements, payslips, bank statements, or Fit Notes based on their answers.
For '%s', explain how to complete the online application on GOV.UK, report changes, and manage their journal.`,
		l.Name(), in.text(), in.value(), in.context, EvidenceKey(l), NextStepsKey(l))
}

func immigrationPrompt(in promptInput, _ questionnaire.Answers) string {
	l := in.lang
	return multiPartInstruction(l) + fmt.Sprintf(`
You are generating clear %s guidance for a UK Immigration application.
Current Question: "%s"
User's input for this question: %s
Full form context: %s
Tailor the guidance based on the application type (visa extension, settlement, citizenship).
For '%s', be specific. For Settlement, mention BRP, Life in the UK certificate, English test, and proof of residence. For visa extensions, mention financial documents and proof of ties.
For '%s', explain the online application process, booking biometrics, and typical waiting times. If they mention absences for ILR, explain the rules clearly.`,
		l.Name(), in.text(), in.value(), in.context, EvidenceKey(l), NextStepsKey(l))
}

func pipPrompt(in promptInput, _ questionnaire.Answers) string {
	l := in.lang
	return basicInstruction(l) + fmt.Sprintf(`
You are generating a %s response for a UK PIP (Personal Independence Payment) application.
Current Question: "%s"
Description: "%s"
User's requirement for the answer:
- Impact Strength: %d/6 (%s)
- Answer Length: %d/4 (%s)
Based on these requirements, generate a suitable response. The tone should be supportive but professional.`,
		l.Name(), in.text(), in.question.Description.Get(l),
		in.answer.Rating, impactPhrase(in.answer.Rating), in.answer.Length, lengthPhrase(in.answer.Length))
}

// selectFormTypePrompt is sent for branching modules before a form type
// has been chosen.
func selectFormTypePrompt(l i18n.Lang) string {
	return basicInstruction(l) + " Please select a form type to get started."
}

type contextEntry struct {
	Q string              `json:"q"`
	V questionnaire.Value `json:"v"`
}

// formContext renders every answer of m in question order.
func formContext(m *questionnaire.Module, all questionnaire.Answers) string {
	entries := make([]contextEntry, 0, len(m.Questions))
	for _, q := range m.Questions {
		a, ok := all[q.ID]
		if !ok {
			a = questionnaire.DefaultAnswer(q)
		}
		entries = append(entries, contextEntry{Q: q.ID, V: a.Value})
	}
	return jsonText(entries)
}

func jsonText(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimRight(buf.String(), "\n")
}
