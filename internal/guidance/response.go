package guidance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
)

// ShouldSkip reports whether no request should be sent for the answer: a
// question with the impact dial waits for a non-zero rating, any other
// question waits for a value.
func ShouldSkip(q *questionnaire.Question, a questionnaire.Answer) bool {
	if q.StarEnabled {
		return a.Rating == 0
	}
	return a.Value.IsEmpty()
}

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// Parse turns raw model output into a Response. Code fences are stripped
// first. Output that is not a JSON object yields a Response carrying the
// localized invalid-response marker with the raw text, or the empty-response
// message, as the answer.
func Parse(raw string, l i18n.Lang) *questionnaire.Response {
	cleaned := strings.TrimSpace(fenceReplacer.Replace(raw))

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil || obj == nil {
		fallback := raw
		if strings.TrimSpace(fallback) == "" {
			fallback = i18n.T(l, i18n.MsgEmptyResponse)
		}
		return &questionnaire.Response{
			Err:    i18n.T(l, i18n.MsgInvalidResponse),
			Fields: map[string]string{AnswerKey(l): fallback},
		}
	}

	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := fieldText(v); ok {
			fields[k] = s
		}
	}
	return &questionnaire.Response{Fields: fields}
}

// Failure is the Response recorded when the provider call itself failed.
func Failure(l i18n.Lang) *questionnaire.Response {
	return &questionnaire.Response{Err: i18n.T(l, i18n.MsgGenerationError)}
}

// fieldText flattens one response value. Lists become '-' bulleted lines,
// the format the prompts ask for.
func fieldText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []any:
		lines := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := fieldText(item)
			if !ok {
				continue
			}
			if !strings.HasPrefix(s, "-") {
				s = "- " + s
			}
			lines = append(lines, s)
		}
		return strings.Join(lines, "\n"), true
	case map[string]any:
		return jsonText(x), true
	default:
		return fmt.Sprint(x), true
	}
}
