// Package mcpserver exposes the form engine and guidance as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

// Deps are the collaborators the tools share.
type Deps struct {
	Catalog *content.Catalog
	Store   kv.Store
	Ledger  *unlock.Ledger
	// Guidance is nil when no model is configured; draft_guidance then
	// reports an error.
	Guidance *guidance.Service
	Lang     i18n.Lang
}

// New creates the MCP server with every tool registered.
func New(d Deps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"ukpip",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	listTool := NewListModulesTool(d)
	s.AddTool(listTool.Definition(), listTool.Handle)

	visibleTool := NewVisibleQuestionsTool(d)
	s.AddTool(visibleTool.Definition(), visibleTool.Handle)

	setTool := NewSetAnswerTool(d)
	s.AddTool(setTool.Definition(), setTool.Handle)

	draftTool := NewDraftGuidanceTool(d)
	s.AddTool(draftTool.Definition(), draftTool.Handle)

	return s
}

// ServeStdio runs s on stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = `ukpip helps people fill in UK government forms (PIP, Universal Credit, Blue Badge, HMRC and more).
Call list_modules first, then visible_questions for a module. Record answers with set_answer; the set of
visible questions changes as answers change. draft_guidance returns an AI-drafted answer for one question
and needs the module to be unlocked.`
