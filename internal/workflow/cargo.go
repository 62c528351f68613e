package workflow

import (
	"regexp"
	"strings"
)

// cargoResultLine matches the final tally, e.g.
//
//	test result: FAILED. 5 passed; 2 failed; 0 ignored; finished in 0.42s
var cargoResultLine = regexp.MustCompile(`\btest result:`)

var (
	cargoPassed   = regexp.MustCompile(`\b(\d+) passed\b`)
	cargoFailed   = regexp.MustCompile(`\b(\d+) failed\b`)
	cargoDuration = regexp.MustCompile(`\bfinished in (\d+(?:\.\d+)?)s\b`)

	// cargoFailureHeader matches the captured-output block of a failed
	// test, e.g.
	//
	//	---- tests::overflow stdout ----
	cargoFailureHeader = regexp.MustCompile(`^---- (.+) stdout ----$`)
)

func analyzeCargo(logText string, exitCode int) *TestSummary {
	s := &TestSummary{}

	if line, ok := lastLineMatching(cargoResultLine, logText); ok {
		s.Passed, _ = extractCount(cargoPassed, line)
		s.Failed, _ = extractCount(cargoFailed, line)
		s.Total = s.Passed + s.Failed

		if d, ok := extractToken(cargoDuration, line); ok {
			s.Duration = d + "s"
		}
	}

	for _, line := range strings.Split(logText, "\n") {
		m := cargoFailureHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		s.Failures = append(s.Failures, m[1])
		if len(s.Failures) == maxFailures {
			break
		}
	}

	return s
}
