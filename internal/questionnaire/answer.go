package questionnaire

import "maps"

// Dial bounds.
const (
	MinRating = 0
	MaxRating = 6
	MinLength = 1
	MaxLength = 4
)

// File is an attachment chosen for a file question. It lives only in memory.
type File struct {
	Name string
	Path string
	Size int64
}

// Response is the last AI guidance attached to an answer. Fields holds the
// returned keys (answer_en, explanation_en, ...). Err is a localized error marker;
// when set, Fields may still carry fallback text to display.
type Response struct {
	Fields map[string]string
	Err    string
}

// Get returns one field of the response.
func (r *Response) Get(key string) string {
	if r == nil {
		return ""
	}
	return r.Fields[key]
}

// Failed reports whether the response carries an error marker.
func (r *Response) Failed() bool { return r != nil && r.Err != "" }

func (r *Response) clone() *Response {
	if r == nil {
		return nil
	}
	return &Response{Fields: maps.Clone(r.Fields), Err: r.Err}
}

// Answer is the state held for one question.
type Answer struct {
	QuestionID string
	Value      Value
	Rating     int
	Length     int
	Files      []File
	Response   *Response
}

// DefaultAnswer is the fresh state for q: an empty value, rating 1 when the
// impact dial is enabled (0 otherwise), and length 1.
func DefaultAnswer(q *Question) Answer {
	rating := 0
	if q.StarEnabled {
		rating = 1
	}
	return Answer{
		QuestionID: q.ID,
		Value:      DefaultValue(q.Kind),
		Rating:     rating,
		Length:     MinLength,
	}
}

// Answers maps question id to answer.
type Answers map[string]Answer

// Clone returns a copy whose answers share no mutable containers with a.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for id, ans := range a {
		ans.Files = append([]File(nil), ans.Files...)
		ans.Response = ans.Response.clone()
		out[id] = ans
	}
	return out
}

// Defaults builds fresh answers for every question of m.
func Defaults(m *Module) Answers {
	out := make(Answers, len(m.Questions))
	for _, q := range m.Questions {
		out[q.ID] = DefaultAnswer(q)
	}
	return out
}
