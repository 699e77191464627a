package questionnaire

// Holds reports whether the condition is met by answers. Only scalar answers can
// satisfy a condition.
func (c Condition) Holds(answers Answers) bool {
	a, ok := answers[c.QuestionID]
	if !ok || a.Value.Shape() != ShapeScalar {
		return false
	}
	return a.Value.String() == c.Equals
}

// Visible reports whether q is shown given answers.
func (q *Question) Visible(answers Answers) bool {
	for _, c := range q.When {
		if !c.Holds(answers) {
			return false
		}
	}
	return true
}

// VisibleQuestions filters all down to the questions whose conditions hold,
// keeping their original order.
func VisibleQuestions(all []*Question, answers Answers) []*Question {
	out := make([]*Question, 0, len(all))
	for _, q := range all {
		if q.Visible(answers) {
			out = append(out, q)
		}
	}
	return out
}
