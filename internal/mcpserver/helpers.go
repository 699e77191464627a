package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
)

func langArg(req mcp.CallToolRequest, fallback i18n.Lang) i18n.Lang {
	if s := req.GetString("lang", ""); s != "" {
		return i18n.Parse(s)
	}
	if fallback == "" {
		return i18n.Default
	}
	return fallback
}

// valueArg decodes a JSON-typed argument: strings and numbers become
// scalars, arrays lists and objects group values.
func valueArg(req mcp.CallToolRequest, key string) (questionnaire.Value, bool, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return questionnaire.Value{}, false, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return questionnaire.Value{}, true, err
	}
	var v questionnaire.Value
	if err := v.UnmarshalJSON(data); err != nil {
		return questionnaire.Value{}, true, err
	}
	return v, true, nil
}

// openEngine loads the module's saved progress.
func (d Deps) openEngine(ctx context.Context, moduleID string) (*questionnaire.Engine, error) {
	m, err := d.Catalog.Module(moduleID)
	if err != nil {
		return nil, err
	}
	e := questionnaire.New(m, d.Store)
	e.Restore(ctx)
	return e, nil
}

func valueText(v questionnaire.Value) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", v.String())
	}
	return string(data)
}
