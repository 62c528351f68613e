package workflow

import "strings"

// CommandSummary holds the generic-mode analysis of a command log.
type CommandSummary struct {
	Errors     int
	Warnings   int
	FirstError string
}

// analyzeCommand scans a command log for error- and warning-shaped
// lines. When the command failed it also surfaces a first diagnosable
// line: the first error-matching line, or the last non-blank line when
// the tool's error format is unrecognised.
func analyzeCommand(logText string, exitCode, firstErrorLimit int) *CommandSummary {
	s := &CommandSummary{}

	var firstError, lastNonBlank string
	for _, line := range strings.Split(logText, "\n") {
		if strings.TrimSpace(line) != "" {
			lastNonBlank = line
		}
		if isErrorLine(line) {
			s.Errors++
			if firstError == "" {
				firstError = line
			}
		} else if isWarningLine(line) {
			s.Warnings++
		}
	}

	if exitCode != 0 {
		if firstError == "" {
			firstError = lastNonBlank
		}
		s.FirstError = truncate(strings.TrimSpace(firstError), firstErrorLimit)
	}

	return s
}

// isErrorLine reports whether a line matches the error-signature set.
// Matching is case-insensitive.
func isErrorLine(line string) bool {
	l := strings.ToLower(strings.TrimSpace(line))
	if strings.HasPrefix(l, "error:") || strings.HasPrefix(l, "error[") {
		return true
	}
	// The signatures are space-anchored; padding keeps line-start
	// matches like "fatal: ..." in scope.
	padded := " " + l
	for _, sig := range []string{" error:", " fatal:", " failed", "panic:"} {
		if strings.Contains(padded, sig) {
			return true
		}
	}
	return false
}

// isWarningLine reports whether a line matches the warning-signature
// set: warn/warning variants, bracketed or colon-terminated.
func isWarningLine(line string) bool {
	l := strings.ToLower(strings.TrimSpace(line))
	if strings.HasPrefix(l, "warning:") || strings.HasPrefix(l, "warn:") {
		return true
	}
	for _, sig := range []string{"warning:", "[warning]", "[warn]"} {
		if strings.Contains(l, sig) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
