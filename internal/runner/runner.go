// Package runner executes commands with their combined output
// captured byte-for-byte to a log file on disk.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNoCommand is returned when Run is called with an empty argv.
// No subprocess is spawned and no log file is created in that case.
var ErrNoCommand = errors.New("no command given")

// Runner executes commands and writes their output under LogDir.
type Runner struct {
	LogDir string
}

// Run executes a command with the given argv. The first element is the
// binary name (resolved via PATH), and the rest are arguments. Combined
// stdout and stderr are streamed to <LogDir>/<logName>.log, truncating
// any previous file at that path.
//
// A non-zero exit from the command is a normal outcome and is reported
// through Result.ExitCode. Run returns an error only for wrapper-level
// failures: empty argv, an unwritable log directory, or a binary that
// cannot be started.
func (r *Runner) Run(ctx context.Context, argv []string, logName string) (*Result, error) {
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	if err := os.MkdirAll(r.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	logPath := filepath.Join(r.LogDir, logName+".log")
	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}

	runID := uuid.New().String()

	// Both streams share one writer so the log preserves the exact
	// interleaving the process produced.
	w := &lineCountWriter{dst: f}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = w
	cmd.Stderr = w

	runErr := cmd.Run()
	if closeErr := f.Close(); closeErr != nil {
		return nil, fmt.Errorf("closing log file: %w", closeErr)
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Binary not found or other exec error.
			return nil, fmt.Errorf("executing %s: %w", argv[0], runErr)
		}
	}

	return &Result{
		RunID:    runID,
		ExitCode: exitCode,
		LogPath:  logPath,
		Lines:    w.lines,
	}, nil
}

// lineCountWriter forwards writes to dst while counting newlines, so
// the log's line count is known without re-reading the file.
type lineCountWriter struct {
	dst   *os.File
	lines int
}

func (w *lineCountWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			w.lines++
		}
	}
	return w.dst.Write(p)
}
