package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rncdiscover/rnc/core"
	"github.com/rncdiscover/rnc/core/javasrc"
	"github.com/rncdiscover/rnc/core/method"
	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/internal/outwriter"
	"github.com/rncdiscover/rnc/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	parser  contract.JavaParser
}

// methodVerdict is the classify_method response.
type methodVerdict struct {
	Name          string                    `json:"name"`
	BusinessRule  bool                      `json:"business_rule"`
	Strategy      schema.ClassifierStrategy `json:"strategy"`
	CodeLines     int                       `json:"code_lines"`
	TreeAvailable bool                      `json:"tree_available"`
}

func (h *toolHandler) handleDiscoverProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateProjectPath(cfg, request.GetString("project_path", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid project_path: %v", err)), nil
	}
	if c := request.GetString("classifier", ""); c != "" {
		if err := contract.RevalidateClassifier(cfg, c); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	res, err := core.Discover(ctx, cfg, core.Deps{Parser: h.parser})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("discovery failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(outwriter.NewSummary(res, nil), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyMethod(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	body := strings.TrimSpace(request.GetString("body", ""))
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return mcp.NewToolResultError("body must be a braced method body"), nil
	}

	m := schema.Method{
		Name:      name,
		Modifiers: []string{"public"},
		HasBody:   true,
		BodyText:  body,
	}
	strategy := schema.TextStrategy
	if h.parser != nil {
		decls, err := h.parser.Parse(ctx, name+".java", javasrc.Snippet(name, body))
		if err == nil && len(decls) > 0 && len(decls[0].Methods) > 0 {
			m = decls[0].Methods[0]
			m.Name = name
			strategy = schema.TreeStrategy
		}
	}

	classifier, err := method.New(strategy, h.baseCfg.Thresholds)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	verdict := methodVerdict{
		Name:          name,
		BusinessRule:  classifier.Classify(m),
		Strategy:      classifier.Name(),
		CodeLines:     method.CountCodeLines(strings.TrimSuffix(strings.TrimPrefix(body, "{"), "}")),
		TreeAvailable: m.Body != nil,
	}
	jsonData, _ := json.MarshalIndent(verdict, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
