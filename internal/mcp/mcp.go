// Package mcp provides the runsum MCP server, letting agent callers
// run commands and test suites without ingesting raw output.
package mcp

import (
	"context"
	_ "embed"
	"net/url"
	"time"

	"github.com/deixis/runsum"
	"github.com/deixis/runsum/internal/config"
	"github.com/deixis/runsum/internal/report"
	"github.com/deixis/runsum/internal/runner"
	"github.com/deixis/runsum/internal/workflow"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	engine *workflow.Engine
	runner *runner.Runner // retained for updateWorkspaceFromRoots
	store  report.Store
}

// NewServer creates an MCP server with all runsum tools registered.
func NewServer(cfg *config.Config, r *runner.Runner, store report.Store, workspace string) *mcp.Server {
	h := &handler{
		engine: &workflow.Engine{
			Config:    cfg,
			Runner:    r,
			Workspace: workspace,
		},
		runner: r,
		store:  store,
	}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateWorkspaceFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "runsum", Version: runsum.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "run_command",
		Description: `Run a command with its output captured to a log file, returning a one-line structured summary.

Use this instead of running verbose build/install commands directly: the full output stays on disk
at the reported log path, and only status, counts and the first error line come back.`,
	}, h.commandHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "run_test",
		Description: `Run the project's test suite, auto-detecting the test runner (pytest, jest, go or cargo)
from marker files, and return pass/fail counts plus up to 5 failing-test identifiers.

The full runner output stays on disk at the reported log path.`,
	}, h.testHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "run_result",
		Description: `Fetch the structured summary of a previous run by its run ID.

Use the run ID printed by run_command or run_test to re-read a summary without re-running anything.`,
	}, h.resultHandler)

	return s
}

// updateWorkspaceFromRoots queries the client for MCP roots and updates
// the handler's engine and runner if a valid root is returned. This is
// called during session initialization, before any tool calls.
func (h *handler) updateWorkspaceFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil {
		return
	}
	if len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}
	workspace := u.Path

	loaded, err := config.Load(workspace)
	if err != nil {
		return
	}

	h.runner.LogDir = loaded.LogDir()
	h.engine.Config = loaded.Config
	h.engine.Workspace = workspace
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
