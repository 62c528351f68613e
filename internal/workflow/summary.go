package workflow

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/deixis/runsum/internal/detect"
)

// TestSummary holds the test-mode portion of a run result, extracted
// from a runner's human-readable output.
type TestSummary struct {
	Passed   int
	Failed   int
	Total    int
	Duration string
	Failures []string // failing-test identifiers, at most maxFailures
}

// maxFailures caps the failing-test identifier list.
const maxFailures = 5

// analyzeFunc is the common adapter shape: log text plus exit code in,
// summary out. Adapters never fail — an absent or malformed summary
// line degrades to zero counts and an empty failure list.
type analyzeFunc func(logText string, exitCode int) *TestSummary

var analyzers = map[detect.Kind]analyzeFunc{
	detect.Pytest: analyzePytest,
	detect.Jest:   analyzeJest,
	detect.GoTest: analyzeGoTest,
	detect.Cargo:  analyzeCargo,
}

// Analyze runs the format adapter for the given runner kind.
func Analyze(kind detect.Kind, logText string, exitCode int) *TestSummary {
	fn, ok := analyzers[kind]
	if !ok {
		return &TestSummary{}
	}
	return fn(logText, exitCode)
}

// lastLineMatching returns the last line of text matched by re,
// reporting absence explicitly. Runners print intermediate progress
// before the final tally; only the last match is authoritative.
func lastLineMatching(re *regexp.Regexp, text string) (string, bool) {
	var match string
	found := false
	for _, line := range strings.Split(text, "\n") {
		if re.MatchString(line) {
			match = line
			found = true
		}
	}
	return match, found
}

// extractCount pulls the integer from re's first capture group in s.
// The second return distinguishes "pattern absent" from a genuine zero.
func extractCount(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractToken pulls the string from re's first capture group in s.
func extractToken(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}
