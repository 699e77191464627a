package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
)

// ErrUnknownQuestion is returned when a question id is not part of the module.
var ErrUnknownQuestion = errors.New("unknown question")

// Engine holds the answers for one module and a cursor over the visible questions.
// It is not safe for concurrent use; the UI loop owns it.
type Engine struct {
	module  *Module
	store   kv.Store
	logger  *log.Logger
	answers Answers
	visible []*Question
	cursor  int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger routes persistence warnings to l instead of the standard logger.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine with default answers. Call Restore to load saved progress.
func New(m *Module, store kv.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		module:  m,
		store:   store,
		logger:  log.Default(),
		answers: Defaults(m),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.recompute("")
	return e
}

// Module returns the module definition.
func (e *Engine) Module() *Module { return e.module }

// Restore replaces the answers with saved progress overlaid on defaults and
// moves the cursor to the first question. A missing or unreadable blob yields
// defaults.
func (e *Engine) Restore(ctx context.Context) Answers {
	e.answers = e.load(ctx)
	e.cursor = 0
	e.recompute("")
	return e.answers.Clone()
}

func (e *Engine) load(ctx context.Context) Answers {
	if e.store == nil {
		return Defaults(e.module)
	}
	blob, err := e.store.Get(ctx, kv.AnswersKey(e.module.ID))
	if errors.Is(err, kv.ErrNotFound) {
		return Defaults(e.module)
	}
	if err != nil {
		e.logger.Printf("questionnaire: read progress for %s: %v", e.module.ID, err)
		return Defaults(e.module)
	}
	answers, err := decodeProgress(e.module, blob)
	if err != nil {
		e.logger.Printf("questionnaire: saved progress for %s is unreadable, starting fresh: %v", e.module.ID, err)
	}
	return answers
}

// Persist writes the durable part of the answers. Failures are logged and
// otherwise ignored.
func (e *Engine) Persist(ctx context.Context) {
	if err := e.persist(ctx); err != nil {
		e.logger.Printf("questionnaire: save progress for %s: %v", e.module.ID, err)
	}
}

func (e *Engine) persist(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	blob, err := encodeProgress(e.module, e.answers)
	if err != nil {
		return err
	}
	return e.store.Set(ctx, kv.AnswersKey(e.module.ID), blob)
}

// Reset discards all answers, saves the defaults and rewinds the cursor.
func (e *Engine) Reset(ctx context.Context) {
	e.answers = Defaults(e.module)
	e.cursor = 0
	e.recompute("")
	e.Persist(ctx)
}

// update replaces the answer for id with the result of fn, recomputes
// visibility and persists.
func (e *Engine) update(ctx context.Context, id string, fn func(Answer) (Answer, error)) error {
	q, ok := e.module.Question(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	cur, ok := e.answers[id]
	if !ok {
		cur = DefaultAnswer(q)
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	focus := ""
	if shown, ok := e.Current(); ok {
		focus = shown.ID
	}
	answers := make(Answers, len(e.answers))
	for k, v := range e.answers {
		answers[k] = v
	}
	answers[id] = next
	e.answers = answers
	e.recompute(focus)
	e.Persist(ctx)
	return nil
}

// SetValue validates v against the question and stores it.
func (e *Engine) SetValue(ctx context.Context, id string, v Value) error {
	q, ok := e.module.Question(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	if err := q.Validate(v); err != nil {
		return err
	}
	return e.update(ctx, id, func(a Answer) (Answer, error) {
		a.Value = v
		return a, nil
	})
}

// SetRating stores the impact dial, clamped to [MinRating, MaxRating].
func (e *Engine) SetRating(ctx context.Context, id string, rating int) error {
	return e.update(ctx, id, func(a Answer) (Answer, error) {
		a.Rating = clamp(rating, MinRating, MaxRating)
		return a, nil
	})
}

// SetLength stores the length dial, clamped to [MinLength, MaxLength].
func (e *Engine) SetLength(ctx context.Context, id string, length int) error {
	return e.update(ctx, id, func(a Answer) (Answer, error) {
		a.Length = clamp(length, MinLength, MaxLength)
		return a, nil
	})
}

// SetFiles attaches files to a question. For file questions the value becomes
// the list of file names so the selection survives a restart.
func (e *Engine) SetFiles(ctx context.Context, id string, files []File) error {
	q, ok := e.module.Question(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	if q.Kind != KindFile && !q.AllowProof {
		return fmt.Errorf("%w: question %q does not accept files", ErrInvalidValue, id)
	}
	return e.update(ctx, id, func(a Answer) (Answer, error) {
		a.Files = append([]File(nil), files...)
		if q.Kind == KindFile {
			names := make([]string, 0, len(files))
			for _, f := range files {
				names = append(names, f.Name)
			}
			a.Value = List(names...)
		}
		return a, nil
	})
}

// SetResponse stores the latest AI guidance for a question; nil clears it.
func (e *Engine) SetResponse(ctx context.Context, id string, r *Response) error {
	return e.update(ctx, id, func(a Answer) (Answer, error) {
		a.Response = r.clone()
		return a, nil
	})
}

// Answer returns the current answer for id.
func (e *Engine) Answer(id string) (Answer, bool) {
	a, ok := e.answers[id]
	return a, ok
}

// Answers returns a copy of all answers.
func (e *Engine) Answers() Answers { return e.answers.Clone() }

// Visible returns the currently visible questions in order.
func (e *Engine) Visible() []*Question {
	return append([]*Question(nil), e.visible...)
}

// Empty reports whether no question is visible.
func (e *Engine) Empty() bool { return len(e.visible) == 0 }

// Cursor is the index of the current question within Visible.
func (e *Engine) Cursor() int { return e.cursor }

// Current returns the question under the cursor.
func (e *Engine) Current() (*Question, bool) {
	if len(e.visible) == 0 {
		return nil, false
	}
	return e.visible[e.cursor], true
}

// Advance moves to the next visible question. It reports whether the cursor moved.
func (e *Engine) Advance() bool {
	if e.cursor+1 >= len(e.visible) {
		return false
	}
	e.cursor++
	return true
}

// Retreat moves to the previous visible question. It reports whether the cursor moved.
func (e *Engine) Retreat() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// Progress returns the 1-based position and the number of visible questions.
func (e *Engine) Progress() (pos, total int) {
	if len(e.visible) == 0 {
		return 0, 0
	}
	return e.cursor + 1, len(e.visible)
}

// recompute refreshes the visible list and re-clamps the cursor. If focus is
// still visible the cursor follows it; if it was hidden the cursor moves to the
// nearest visible question before it.
func (e *Engine) recompute(focus string) {
	e.visible = VisibleQuestions(e.module.Questions, e.answers)
	if len(e.visible) == 0 {
		e.cursor = 0
		return
	}
	if focus != "" {
		if i := e.visibleIndex(focus); i >= 0 {
			e.cursor = i
			return
		}
		if i := e.precedingVisible(focus); i >= 0 {
			e.cursor = i
			return
		}
		e.cursor = 0
		return
	}
	e.cursor = clamp(e.cursor, 0, len(e.visible)-1)
}

func (e *Engine) visibleIndex(id string) int {
	for i, q := range e.visible {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) precedingVisible(id string) int {
	for j := e.module.IndexOf(id) - 1; j >= 0; j-- {
		if i := e.visibleIndex(e.module.Questions[j].ID); i >= 0 {
			return i
		}
	}
	return -1
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
