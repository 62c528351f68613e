// Package report defines the structured summary of a wrapped run and
// its persistence, so callers can re-query past runs by ID instead of
// re-reading raw logs.
package report

// Kind identifies the mode a run was executed in.
type Kind string

const (
	// Command is a generic command run.
	Command Kind = "command"
	// Test is a test-runner run.
	Test Kind = "test"
)

// Status values derived from the subprocess exit code. The status is
// never inferred from log content.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusPass    = "pass"
	StatusFail    = "fail"
)

// Store persists and retrieves run results.
type Store interface {
	Save(result *RunResult) error
	Load(runID string) (*RunResult, error)
}

// RunResult is the immutable structured summary of one invocation.
// The raw output stays on disk at Log; RunResult carries only what a
// caller needs to decide its next step.
type RunResult struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Status   string `json:"status"`
	ExitCode int    `json:"exit_code"`
	Log      string `json:"log"`

	// Command-mode fields.
	Lines      int    `json:"lines,omitempty"`
	Errors     int    `json:"errors,omitempty"`
	Warnings   int    `json:"warnings,omitempty"`
	FirstError string `json:"first_error,omitempty"`

	// Test-mode fields.
	Runner   string   `json:"runner,omitempty"`
	Passed   int      `json:"passed,omitempty"`
	Failed   int      `json:"failed,omitempty"`
	Total    int      `json:"total,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Failures []string `json:"failures,omitempty"` // at most 5 failing-test identifiers
}
