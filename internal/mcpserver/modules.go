package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
)

// ListModulesTool handles list_modules.
type ListModulesTool struct {
	deps Deps
}

// NewListModulesTool creates a ListModulesTool.
func NewListModulesTool(d Deps) *ListModulesTool {
	return &ListModulesTool{deps: d}
}

// Definition returns the MCP tool definition for list_modules.
func (t *ListModulesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_modules",
		mcp.WithDescription("List the available form modules with their price and unlock status."),
		mcp.WithString("lang",
			mcp.Description("Language for names: fa, en or uk"),
			mcp.Enum("fa", "en", "uk"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the list_modules tool call.
func (t *ListModulesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l := langArg(req, t.deps.Lang)

	var sb strings.Builder
	sb.WriteString("## Modules\n\n")
	for _, e := range t.deps.Catalog.List() {
		status := "locked"
		if t.deps.Ledger != nil {
			rec, err := t.deps.Ledger.Status(ctx, e.ID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to read unlock status: %v", err)), nil
			}
			if rec.Unlocked {
				status = "unlocked"
				if e.Kind == content.KindChecker {
					status = i18n.T(i18n.English, i18n.MsgUsesLeft, rec.UsesLeft)
				}
			}
		}
		fmt.Fprintf(&sb, "- **%s** (`%s`): £%s, %s\n", e.Name.Get(l), e.ID, e.Price(), status)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// VisibleQuestionsTool handles visible_questions.
type VisibleQuestionsTool struct {
	deps Deps
}

// NewVisibleQuestionsTool creates a VisibleQuestionsTool.
func NewVisibleQuestionsTool(d Deps) *VisibleQuestionsTool {
	return &VisibleQuestionsTool{deps: d}
}

// Definition returns the MCP tool definition for visible_questions.
func (t *VisibleQuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("visible_questions",
		mcp.WithDescription("List the questions currently shown for a module, in order, with the saved answers."),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module id from list_modules, e.g. pip or uc"),
		),
		mcp.WithString("lang",
			mcp.Description("Language for question text: fa, en or uk"),
			mcp.Enum("fa", "en", "uk"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the visible_questions tool call.
func (t *VisibleQuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	moduleID := req.GetString("module", "")
	if moduleID == "" {
		return mcp.NewToolResultError("'module' is required"), nil
	}
	e, err := t.deps.openEngine(ctx, moduleID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(renderVisible(e, langArg(req, t.deps.Lang))), nil
}

func renderVisible(e *questionnaire.Engine, l i18n.Lang) string {
	if e.Empty() {
		return i18n.T(l, i18n.MsgNoQuestions)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", e.Module().Title.Get(l))
	for i, q := range e.Visible() {
		a, _ := e.Answer(q.ID)
		fmt.Fprintf(&sb, "%d. `%s` (%s) %s\n", i+1, q.ID, q.Kind, q.Text.Get(l))
		for _, o := range q.Options {
			fmt.Fprintf(&sb, "   - `%s`: %s\n", o.Value, o.Label.Get(l))
		}
		for _, c := range q.Children {
			fmt.Fprintf(&sb, "   - field `%s` (%s): %s\n", c.ID, c.Kind, c.Text.Get(l))
		}
		fmt.Fprintf(&sb, "   value: %s", valueText(a.Value))
		if q.StarEnabled {
			fmt.Fprintf(&sb, ", impact: %d/%d", a.Rating, questionnaire.MaxRating)
		}
		if q.BookEnabled {
			fmt.Fprintf(&sb, ", length: %d/%d", a.Length, questionnaire.MaxLength)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
