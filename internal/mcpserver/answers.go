package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
)

// SetAnswerTool handles set_answer.
type SetAnswerTool struct {
	deps Deps
}

// NewSetAnswerTool creates a SetAnswerTool.
func NewSetAnswerTool(d Deps) *SetAnswerTool {
	return &SetAnswerTool{deps: d}
}

// Definition returns the MCP tool definition for set_answer.
func (t *SetAnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("set_answer",
		mcp.WithDescription(
			"Record the answer to one question and save the module's progress. "+
				"Pass a string for text, number, date and single-select questions, an array of option values "+
				"for multi-select, and an object of field values for group questions. "+
				"Returns the questions visible afterwards.",
		),
		mcp.WithString("module", mcp.Required(), mcp.Description("Module id")),
		mcp.WithString("question", mcp.Required(), mcp.Description("Question id from visible_questions")),
		mcp.WithAny("value", mcp.Description("The answer value")),
		mcp.WithNumber("rating", mcp.Description("Impact dial, 0-6, for questions that have one"), mcp.Min(0), mcp.Max(6)),
		mcp.WithNumber("length", mcp.Description("Answer length dial, 1-4, for questions that have one"), mcp.Min(1), mcp.Max(4)),
		mcp.WithString("lang", mcp.Description("Language for the returned question list"), mcp.Enum("fa", "en", "uk")),
	)
}

// Handle processes the set_answer tool call.
func (t *SetAnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	moduleID := req.GetString("module", "")
	questionID := req.GetString("question", "")
	if moduleID == "" || questionID == "" {
		return mcp.NewToolResultError("'module' and 'question' are required"), nil
	}
	e, err := t.deps.openEngine(ctx, moduleID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v, ok, err := valueArg(req, "value")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid value: %v", err)), nil
	}
	if ok {
		if err := e.SetValue(ctx, questionID, v); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to set answer: %v", err)), nil
		}
	}
	if _, has := req.GetArguments()["rating"]; has {
		if err := e.SetRating(ctx, questionID, req.GetInt("rating", 0)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to set rating: %v", err)), nil
		}
	}
	if _, has := req.GetArguments()["length"]; has {
		if err := e.SetLength(ctx, questionID, req.GetInt("length", 1)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to set length: %v", err)), nil
		}
	}

	return mcp.NewToolResultText("Saved.\n\n" + renderVisible(e, langArg(req, t.deps.Lang))), nil
}

// DraftGuidanceTool handles draft_guidance.
type DraftGuidanceTool struct {
	deps Deps
}

// NewDraftGuidanceTool creates a DraftGuidanceTool.
func NewDraftGuidanceTool(d Deps) *DraftGuidanceTool {
	return &DraftGuidanceTool{deps: d}
}

// Definition returns the MCP tool definition for draft_guidance.
func (t *DraftGuidanceTool) Definition() mcp.Tool {
	return mcp.NewTool("draft_guidance",
		mcp.WithDescription(
			"Draft an answer for one question from the saved answers of its module. "+
				"Questions with an impact dial need a non-zero rating; others need a value.",
		),
		mcp.WithString("module", mcp.Required(), mcp.Description("Module id")),
		mcp.WithString("question", mcp.Required(), mcp.Description("Question id")),
		mcp.WithString("lang", mcp.Description("Language of the draft"), mcp.Enum("fa", "en", "uk")),
	)
}

// Handle processes the draft_guidance tool call.
func (t *DraftGuidanceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	moduleID := req.GetString("module", "")
	questionID := req.GetString("question", "")
	if moduleID == "" || questionID == "" {
		return mcp.NewToolResultError("'module' and 'question' are required"), nil
	}
	l := langArg(req, t.deps.Lang)
	if t.deps.Guidance == nil {
		return mcp.NewToolResultError("no language model is configured"), nil
	}
	if t.deps.Ledger != nil && !t.deps.Ledger.Unlocked(ctx, moduleID) {
		return mcp.NewToolResultError(i18n.T(l, i18n.MsgLocked)), nil
	}

	e, err := t.deps.openEngine(ctx, moduleID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	q, ok := e.Module().Question(questionID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown question %q", questionID)), nil
	}
	a, _ := e.Answer(questionID)

	resp := t.deps.Guidance.Draft(ctx, guidance.Input{
		Module:   e.Module(),
		Question: q,
		Answer:   a,
		All:      e.Answers(),
		Lang:     l,
	})
	if resp == nil {
		return mcp.NewToolResultText("Nothing to draft yet: answer the question (or set its impact rating) first."), nil
	}
	if resp.Failed() {
		msg := resp.Err
		if text := resp.Get(guidance.AnswerKey(l)); text != "" {
			msg += "\n\n" + text
		}
		return mcp.NewToolResultError(msg), nil
	}

	var sb strings.Builder
	sb.WriteString(resp.Get(guidance.AnswerKey(l)))
	for _, sec := range []struct{ title, key string }{
		{i18n.MsgEvidence, guidance.EvidenceKey(l)},
		{i18n.MsgNextSteps, guidance.NextStepsKey(l)},
		{i18n.MsgExplanation, guidance.ExplanationKey(l)},
	} {
		if text := resp.Get(sec.key); text != "" {
			fmt.Fprintf(&sb, "\n\n### %s\n\n%s", i18n.T(l, sec.title), text)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}
