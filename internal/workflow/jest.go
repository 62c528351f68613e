package workflow

import (
	"regexp"
	"strings"
)

// jestSummaryLine matches the final tally, e.g.
//
//	Tests:       2 failed, 47 passed, 49 total
var jestSummaryLine = regexp.MustCompile(`^\s*Tests:.*\btotal\b`)

var (
	jestPassed   = regexp.MustCompile(`\b(\d+) passed\b`)
	jestFailed   = regexp.MustCompile(`\b(\d+) failed\b`)
	jestTotal    = regexp.MustCompile(`\b(\d+) total\b`)
	jestTimeLine = regexp.MustCompile(`\bTime:`)
	jestDuration = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*s\b`)

	// jestFailureHeader matches per-test failure blocks, e.g.
	//
	//	● math › adds numbers
	jestFailureHeader = regexp.MustCompile(`^\s*● (.+)$`)
)

func analyzeJest(logText string, exitCode int) *TestSummary {
	s := &TestSummary{}

	if line, ok := lastLineMatching(jestSummaryLine, logText); ok {
		s.Passed, _ = extractCount(jestPassed, line)
		s.Failed, _ = extractCount(jestFailed, line)
		s.Total, _ = extractCount(jestTotal, line)
	}

	if line, ok := lastLineMatching(jestTimeLine, logText); ok {
		if d, ok := extractToken(jestDuration, line); ok {
			s.Duration = d + "s"
		}
	}

	// Failure headers repeat per assertion; keep the first occurrence
	// of each test name.
	seen := make(map[string]bool)
	for _, line := range strings.Split(logText, "\n") {
		m := jestFailureHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if seen[name] {
			continue
		}
		seen[name] = true
		s.Failures = append(s.Failures, name)
		if len(s.Failures) == maxFailures {
			break
		}
	}

	return s
}
