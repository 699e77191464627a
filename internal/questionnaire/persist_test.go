package questionnaire

import (
	"encoding/json"
	"io"
	"log"
	"testing"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() EngineOption {
	return WithLogger(log.New(io.Discard, "", 0))
}

func TestPersistRestore_RoundTrip(t *testing.T) {
	ctx := t.Context()
	m := childrenModule(t)
	store := kv.NewMemory()

	e := New(m, store)
	e.Restore(ctx)
	require.NoError(t, e.SetValue(ctx, "has_children", Scalar("yes")))
	require.NoError(t, e.SetValue(ctx, "child_ages", Scalar("4 and 9")))
	require.NoError(t, e.SetValue(ctx, "housing", List("rent", "mortgage")))
	require.NoError(t, e.SetValue(ctx, "costs", Fields(map[string]string{"rent": "650", "people": "3"})))
	require.NoError(t, e.SetRating(ctx, "notes", 5))
	require.NoError(t, e.SetLength(ctx, "notes", 3))
	require.NoError(t, e.SetResponse(ctx, "notes", &Response{Fields: map[string]string{"answer_en": "x"}}))

	saved := e.Answers()

	restored := New(m, store).Restore(ctx)
	for _, q := range m.Questions {
		got, want := restored[q.ID], saved[q.ID]
		assert.True(t, want.Value.Equal(got.Value), "value of %s", q.ID)
		assert.Equal(t, want.Rating, got.Rating, "rating of %s", q.ID)
		assert.Equal(t, want.Length, got.Length, "length of %s", q.ID)
	}
	assert.Nil(t, restored["notes"].Response, "responses are transient")

	household := restored["household"]
	assert.Equal(t, DefaultAnswer(m.Questions[0]), household, "untouched questions keep defaults")
}

func TestPersistRestore_Idempotent(t *testing.T) {
	ctx := t.Context()
	m := childrenModule(t)
	store := kv.NewMemory()
	e := New(m, store)
	require.NoError(t, e.SetValue(ctx, "household", Scalar("couple")))

	r := New(m, store)
	first := r.Restore(ctx)
	second := r.Restore(ctx)
	assert.Equal(t, first, second)
}

func TestPersist_DurableFieldsOnly(t *testing.T) {
	ctx := t.Context()
	m := childrenModule(t)
	store := kv.NewMemory()
	e := New(m, store)
	require.NoError(t, e.SetValue(ctx, "housing", List("rent")))
	require.NoError(t, e.SetResponse(ctx, "housing", &Response{Err: "boom"}))

	blob, err := store.Get(ctx, kv.AnswersKey("uc"))
	require.NoError(t, err)

	var entries []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(blob), &entries))
	require.Len(t, entries, len(m.Questions))
	for _, entry := range entries {
		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		assert.ElementsMatch(t, []string{"questionId", "rating", "length", "value"}, keys)
	}
	assert.JSONEq(t, `["rent"]`, string(entries[3]["value"]))
	assert.JSONEq(t, `{}`, string(entries[4]["value"]))
	assert.JSONEq(t, `""`, string(entries[0]["value"]))
}

func TestRestore_IgnoresOrphans(t *testing.T) {
	ctx := t.Context()
	m := childrenModule(t)
	store := kv.NewMemory()
	blob := `[
		{"questionId":"household","rating":0,"length":1,"value":"single"},
		{"questionId":"removed_question","rating":3,"length":2,"value":"stale"},
		{"questionId":"notes","rating":4,"length":2,"value":"hello"}
	]`
	require.NoError(t, store.Set(ctx, kv.AnswersKey("uc"), blob))

	answers := New(m, store, quietLogger()).Restore(ctx)
	assert.Len(t, answers, len(m.Questions))
	assert.NotContains(t, answers, "removed_question")
	assert.Equal(t, "single", answers["household"].Value.String())
	assert.Equal(t, 4, answers["notes"].Rating)
	assert.Equal(t, DefaultAnswer(m.Questions[3]), answers["housing"])
}

func TestRestore_CorruptOrMismatched(t *testing.T) {
	m := childrenModule(t)
	tests := []struct {
		name  string
		blob  string
		check func(t *testing.T, a Answers)
	}{
		{
			name:  "not json",
			blob:  `{{{not json`,
			check: func(t *testing.T, a Answers) { assert.Equal(t, Defaults(m), a) },
		},
		{
			name:  "object instead of list",
			blob:  `{"questionId":"household"}`,
			check: func(t *testing.T, a Answers) { assert.Equal(t, Defaults(m), a) },
		},
		{
			name:  "empty string",
			blob:  ``,
			check: func(t *testing.T, a Answers) { assert.Equal(t, Defaults(m), a) },
		},
		{
			name: "wrong value shape keeps default",
			blob: `[{"questionId":"housing","rating":0,"length":2,"value":"rent"}]`,
			check: func(t *testing.T, a Answers) {
				assert.True(t, a["housing"].Value.IsEmpty())
				assert.Equal(t, ShapeList, a["housing"].Value.Shape())
				assert.Equal(t, 2, a["housing"].Length, "valid dials still restored")
			},
		},
		{
			name: "option no longer offered",
			blob: `[{"questionId":"has_children","rating":0,"length":1,"value":"maybe"}]`,
			check: func(t *testing.T, a Answers) {
				assert.Equal(t, "", a["has_children"].Value.String())
			},
		},
		{
			name: "out of range dials",
			blob: `[{"questionId":"notes","rating":42,"length":-1,"value":"text"}]`,
			check: func(t *testing.T, a Answers) {
				assert.Equal(t, 1, a["notes"].Rating)
				assert.Equal(t, 1, a["notes"].Length)
				assert.Equal(t, "text", a["notes"].Value.String())
			},
		},
		{
			name: "missing dials keep defaults",
			blob: `[{"questionId":"notes","value":[1,2]},{"questionId":"household","value":"couple"}]`,
			check: func(t *testing.T, a Answers) {
				assert.Equal(t, 1, a["notes"].Rating, "a blob without a rating must not switch guidance off")
				assert.Equal(t, 1, a["notes"].Length)
				assert.Equal(t, "", a["notes"].Value.String())
				assert.Equal(t, 0, a["household"].Rating)
			},
		},
		{
			name: "numeric scalar accepted",
			blob: `[{"questionId":"costs","rating":0,"length":1,"value":{"rent":650,"people":"2"}}]`,
			check: func(t *testing.T, a Answers) {
				assert.Equal(t, "650", a["costs"].Value.Field("rent"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			store := kv.NewMemory()
			require.NoError(t, store.Set(ctx, kv.AnswersKey("uc"), tt.blob))
			tt.check(t, New(m, store, quietLogger()).Restore(ctx))
		})
	}
}

func TestRestore_MissingBlob(t *testing.T) {
	m := childrenModule(t)
	answers := New(m, kv.NewMemory()).Restore(t.Context())
	assert.Equal(t, Defaults(m), answers)
}

func TestRestore_KeyScopedByModule(t *testing.T) {
	ctx := t.Context()
	store := kv.NewMemory()
	uc := childrenModule(t)
	e := New(uc, store)
	require.NoError(t, e.SetValue(ctx, "household", Scalar("couple")))

	other, err := NewModule("pip", nil, nil, []*Question{{ID: "household", Kind: KindShortText}})
	require.NoError(t, err)
	answers := New(other, store).Restore(ctx)
	assert.Equal(t, "", answers["household"].Value.String())
}
