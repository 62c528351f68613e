// Package workflow turns raw command executions into structured run
// results: it drives the runner, picks the right output analyzer, and
// assembles the summary a caller consumes instead of the raw log.
package workflow

import (
	"context"
	"fmt"
	"os"

	"github.com/deixis/runsum/internal/config"
	"github.com/deixis/runsum/internal/detect"
	"github.com/deixis/runsum/internal/report"
	"github.com/deixis/runsum/internal/runner"
)

// CommandRunner executes commands with output captured to a log file.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, logName string) (*runner.Result, error)
}

// Engine holds shared dependencies for all wrapper operations.
type Engine struct {
	Config    *config.Config
	Runner    CommandRunner
	Workspace string // runner detection inspects this directory
}

// RunCommand executes an arbitrary command, captures its output under
// the given label, and returns the generic-mode summary. A non-zero
// exit from the command is reported in the result, not as an error.
func (e *Engine) RunCommand(ctx context.Context, argv []string, label string) (*report.RunResult, error) {
	res, err := e.Runner.Run(ctx, argv, label)
	if err != nil {
		return nil, err
	}

	logText, err := os.ReadFile(res.LogPath)
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	summary := analyzeCommand(string(logText), res.ExitCode, e.Config.FirstErrorLimit())

	status := report.StatusSuccess
	if res.ExitCode != 0 {
		status = report.StatusFailed
	}

	return &report.RunResult{
		ID:         res.RunID,
		Kind:       report.Command,
		Status:     status,
		ExitCode:   res.ExitCode,
		Lines:      res.Lines,
		Errors:     summary.Errors,
		Warnings:   summary.Warnings,
		FirstError: summary.FirstError,
		Log:        res.LogPath,
	}, nil
}

// testLogName is the fixed log-file name for test-mode runs.
const testLogName = "test"

// RunTests executes the project's test suite. When override is the
// zero Kind the runner is auto-detected from the workspace; detection
// failures are reported before any subprocess is spawned.
func (e *Engine) RunTests(ctx context.Context, extraArgs []string, override detect.Kind) (*report.RunResult, error) {
	kind := override
	if kind == "" {
		desc, err := detect.Describe(e.Workspace)
		if err != nil {
			return nil, fmt.Errorf("describing workspace: %w", err)
		}
		kind, err = detect.Detect(desc, e.Workspace)
		if err != nil {
			return nil, err
		}
	}

	argv := e.testArgv(kind, extraArgs)

	res, err := e.Runner.Run(ctx, argv, testLogName)
	if err != nil {
		return nil, err
	}

	logText, err := os.ReadFile(res.LogPath)
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	summary := Analyze(kind, string(logText), res.ExitCode)

	status := report.StatusPass
	if res.ExitCode != 0 {
		status = report.StatusFail
	}

	return &report.RunResult{
		ID:       res.RunID,
		Kind:     report.Test,
		Status:   status,
		ExitCode: res.ExitCode,
		Runner:   string(kind),
		Passed:   summary.Passed,
		Failed:   summary.Failed,
		Total:    summary.Total,
		Duration: summary.Duration,
		Failures: summary.Failures,
		Lines:    res.Lines,
		Log:      res.LogPath,
	}, nil
}

// defaultTestArgv maps each runner kind to its base invocation.
var defaultTestArgv = map[detect.Kind][]string{
	detect.Pytest: {"pytest"},
	detect.Jest:   {"npx", "jest"},
	detect.GoTest: {"go", "test", "./..."},
	detect.Cargo:  {"cargo", "test"},
}

// testArgv builds the full test command: the configured or default
// base invocation, configured extra args, then caller-supplied args.
func (e *Engine) testArgv(kind detect.Kind, extra []string) []string {
	rc := e.Config.RunnerSettings(string(kind))

	base := rc.Command
	if len(base) == 0 {
		base = defaultTestArgv[kind]
	}

	argv := make([]string, 0, len(base)+len(rc.Args)+len(extra))
	argv = append(argv, base...)
	argv = append(argv, rc.Args...)
	argv = append(argv, extra...)
	return argv
}
