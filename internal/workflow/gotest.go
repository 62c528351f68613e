package workflow

import (
	"regexp"
	"strings"
)

// go test prints one line per package:
//
//	ok      example.com/pkg/foo     0.012s
//	FAIL    example.com/pkg/bar     0.034s
var (
	goTestOK       = regexp.MustCompile(`^ok\s`)
	goTestFail     = regexp.MustCompile(`^FAIL\s`)
	goTestDuration = regexp.MustCompile(`\b(\d+(?:\.\d+)?)s$`)
)

const goFailPrefix = "--- FAIL: "

func analyzeGoTest(logText string, exitCode int) *TestSummary {
	s := &TestSummary{}

	for _, line := range strings.Split(logText, "\n") {
		switch {
		case goTestOK.MatchString(line):
			s.Passed++
		case goTestFail.MatchString(line):
			s.Failed++
		}
		if d, ok := extractToken(goTestDuration, strings.TrimRight(line, " \t")); ok {
			s.Duration = d + "s"
		}
	}
	s.Total = s.Passed + s.Failed

	for _, line := range strings.Split(logText, "\n") {
		name, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), goFailPrefix)
		if !ok {
			continue
		}
		if idx := strings.Index(name, " ("); idx >= 0 {
			name = name[:idx]
		}
		s.Failures = append(s.Failures, strings.TrimSpace(name))
		if len(s.Failures) == maxFailures {
			break
		}
	}

	return s
}
