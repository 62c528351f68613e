package workflow

import (
	"regexp"
	"strings"
)

// pytestSummaryLine matches the final tally, e.g.
//
//	47 passed, 2 failed in 3.21s
//	==== 1 failed, 3 passed, 1 error in 0.12s ====
var pytestSummaryLine = regexp.MustCompile(`\b\d+ (passed|failed|error)`)

var (
	pytestPassed   = regexp.MustCompile(`\b(\d+) passed\b`)
	pytestFailed   = regexp.MustCompile(`\b(\d+) failed\b`)
	pytestErrors   = regexp.MustCompile(`\b(\d+) error`)
	pytestDuration = regexp.MustCompile(`\bin (\d+(?:\.\d+)?)s\b`)
)

func analyzePytest(logText string, exitCode int) *TestSummary {
	s := &TestSummary{}

	if line, ok := lastLineMatching(pytestSummaryLine, logText); ok {
		passed, _ := extractCount(pytestPassed, line)
		failed, _ := extractCount(pytestFailed, line)
		// Collection and fixture errors count as failures.
		errored, _ := extractCount(pytestErrors, line)

		s.Passed = passed
		s.Failed = failed + errored
		s.Total = s.Passed + s.Failed

		if d, ok := extractToken(pytestDuration, line); ok {
			s.Duration = d + "s"
		}
	}

	for _, line := range strings.Split(logText, "\n") {
		id, ok := strings.CutPrefix(line, "FAILED ")
		if !ok {
			continue
		}
		if idx := strings.Index(id, " - "); idx >= 0 {
			id = id[:idx]
		}
		s.Failures = append(s.Failures, strings.TrimSpace(id))
		if len(s.Failures) == maxFailures {
			break
		}
	}

	return s
}
