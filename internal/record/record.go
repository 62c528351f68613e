// Package record renders a run result as one escaped, single-line
// structured record — the only output shape callers parse.
package record

import (
	"fmt"
	"strings"

	"github.com/deixis/runsum/internal/report"
)

// Escape makes arbitrary text safe to embed in a quoted record field.
// Backslashes are doubled first so the later substitutions are not
// double-escaped; then quotes are escaped, newlines and tabs become
// two-character escapes, and carriage returns are dropped.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// Unescape reverses Escape. Carriage returns are not restored; every
// other character of the original round-trips intact.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			// Covers \\ and \" — the escaped character itself.
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Render serializes a run result as a single line. Optional free-text
// fields are omitted entirely when empty rather than emitted as blank
// placeholders; duration is the one exception, always present in test
// mode even when extraction found nothing.
func Render(rr *report.RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "status=%s", rr.Status)

	switch rr.Kind {
	case report.Test:
		fmt.Fprintf(&b, " runner=%s", rr.Runner)
		fmt.Fprintf(&b, " passed=%d failed=%d total=%d", rr.Passed, rr.Failed, rr.Total)
		fmt.Fprintf(&b, " duration=%s", rr.Duration)
		if len(rr.Failures) > 0 {
			quoted := make([]string, len(rr.Failures))
			for i, f := range rr.Failures {
				quoted[i] = `"` + Escape(f) + `"`
			}
			fmt.Fprintf(&b, " errors=[%s]", strings.Join(quoted, ","))
		}
	default:
		fmt.Fprintf(&b, " exit_code=%d", rr.ExitCode)
		fmt.Fprintf(&b, " lines=%d", rr.Lines)
		fmt.Fprintf(&b, " errors=%d warnings=%d", rr.Errors, rr.Warnings)
		if rr.FirstError != "" {
			fmt.Fprintf(&b, ` first_error="%s"`, Escape(rr.FirstError))
		}
	}

	fmt.Fprintf(&b, " log=%s", rr.Log)
	return b.String()
}

// RenderError serializes a wrapper-level error (usage error, detection
// failure) as an error-shaped record for the error stream.
func RenderError(msg string) string {
	return fmt.Sprintf(`status=error message="%s"`, Escape(msg))
}
