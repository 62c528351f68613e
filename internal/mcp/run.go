package mcp

import (
	"context"
	"fmt"

	"github.com/deixis/runsum/internal/detect"
	"github.com/deixis/runsum/internal/record"
	"github.com/deixis/runsum/internal/report"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type commandParams struct {
	Command []string `json:"command,omitempty" jsonschema:"The command and its arguments; the first element is the executable."`
	Label   string   `json:"label,omitempty" jsonschema:"Log file label; the log is written as <label>.log. Default: cmd."`
}

func (h *handler) commandHandler(ctx context.Context, req *sdkmcp.CallToolRequest, params commandParams) (*sdkmcp.CallToolResult, any, error) {
	label := params.Label
	if label == "" {
		label = "cmd"
	}

	rr, err := h.engine.RunCommand(ctx, params.Command, label)
	if err != nil {
		return errorResult(record.RenderError(err.Error()))
	}

	_ = h.store.Save(rr)
	return textResult(formatRun(rr))
}

type testParams struct {
	Runner string   `json:"runner,omitempty" jsonschema:"Test runner: pytest, jest, go, cargo or auto. Default: auto-detect from marker files."`
	Args   []string `json:"args,omitempty" jsonschema:"Extra arguments appended to the test-runner invocation."`
}

func (h *handler) testHandler(ctx context.Context, req *sdkmcp.CallToolRequest, params testParams) (*sdkmcp.CallToolResult, any, error) {
	kind, err := detect.ParseKind(params.Runner)
	if err != nil {
		return errorResult(record.RenderError(err.Error()))
	}

	rr, err := h.engine.RunTests(ctx, params.Args, kind)
	if err != nil {
		return errorResult(record.RenderError(err.Error()))
	}

	_ = h.store.Save(rr)
	return textResult(formatRun(rr))
}

type resultParams struct {
	RunID string `json:"run_id" jsonschema:"Run ID printed by a previous run_command or run_test call."`
}

func (h *handler) resultHandler(ctx context.Context, req *sdkmcp.CallToolRequest, params resultParams) (*sdkmcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult(record.RenderError("run_id is required"))
	}
	rr, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(record.RenderError(fmt.Sprintf("loading run %s: %v", params.RunID, err)))
	}
	return textResult(formatRun(rr))
}

// formatRun renders the structured record plus the run ID for later
// run_result lookups.
func formatRun(rr *report.RunResult) string {
	return record.Render(rr) + "\nrun: " + rr.ID
}
