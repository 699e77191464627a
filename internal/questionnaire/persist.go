package questionnaire

import (
	"encoding/json"
	"fmt"
)

// savedAnswer is the durable part of an Answer. Files and responses are never
// written. Dials are pointers so an entry without them keeps the defaults.
type savedAnswer struct {
	QuestionID string          `json:"questionId"`
	Rating     *int            `json:"rating,omitempty"`
	Length     *int            `json:"length,omitempty"`
	Value      json.RawMessage `json:"value"`
}

// encodeProgress serializes answers in question order.
func encodeProgress(m *Module, answers Answers) (string, error) {
	out := make([]savedAnswer, 0, len(m.Questions))
	for _, q := range m.Questions {
		a, ok := answers[q.ID]
		if !ok {
			a = DefaultAnswer(q)
		}
		raw, err := json.Marshal(a.Value)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", q.ID, err)
		}
		out = append(out, savedAnswer{
			QuestionID: q.ID,
			Rating:     &a.Rating,
			Length:     &a.Length,
			Value:      raw,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeProgress overlays a saved blob onto fresh defaults. Entries for unknown
// questions are ignored. A field that does not fit the current definition keeps
// its default. The error is non-nil only when the blob as a whole is unreadable;
// the returned answers are usable either way.
func decodeProgress(m *Module, blob string) (Answers, error) {
	answers := Defaults(m)
	var saved []savedAnswer
	if err := json.Unmarshal([]byte(blob), &saved); err != nil {
		return answers, fmt.Errorf("decode progress: %w", err)
	}
	for _, s := range saved {
		q, ok := m.Question(s.QuestionID)
		if !ok {
			continue
		}
		a := answers[q.ID]
		if r := s.Rating; r != nil && *r >= MinRating && *r <= MaxRating {
			a.Rating = *r
		}
		if n := s.Length; n != nil && *n >= MinLength && *n <= MaxLength {
			a.Length = *n
		}
		if len(s.Value) > 0 {
			var v Value
			if err := json.Unmarshal(s.Value, &v); err == nil && q.Validate(v) == nil {
				a.Value = v
			}
		}
		answers[q.ID] = a
	}
	return answers, nil
}
