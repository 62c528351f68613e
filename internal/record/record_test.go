package record

import (
	"strings"
	"testing"

	"github.com/deixis/runsum/internal/report"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"backslash", `a\b`, `a\\b`},
		{"quote", `say "hi"`, `say \"hi\"`},
		{"newline", "a\nb", `a\nb`},
		{"carriage return stripped", "a\r\nb", `a\nb`},
		{"tab", "a\tb", `a\tb`},
		{"backslash before quote", `\"`, `\\\"`},
		{"literal backslash-n stays doubled", `a\nb`, `a\\nb`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscape_RoundTrip(t *testing.T) {
	inputs := []string{
		"plain text",
		`back\slash and "quotes"`,
		"multi\nline\twith tabs",
		`tricky \n literal escape`,
		`\\" deeply \nested`,
	}
	for _, in := range inputs {
		got := Unescape(Escape(in))
		if got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}
}

func TestEscape_RoundTripDropsCarriageReturns(t *testing.T) {
	in := "line one\r\nline two\r"
	want := "line one\nline two"
	if got := Unescape(Escape(in)); got != want {
		t.Errorf("round trip of %q = %q, want %q", in, got, want)
	}
}

func TestRender_CommandSuccess(t *testing.T) {
	rr := &report.RunResult{
		Kind:     report.Command,
		Status:   report.StatusSuccess,
		ExitCode: 0,
		Lines:    42,
		Warnings: 2,
		Log:      "/tmp/logs/build.log",
	}
	got := Render(rr)
	want := "status=success exit_code=0 lines=42 errors=0 warnings=2 log=/tmp/logs/build.log"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_CommandFailureIncludesFirstError(t *testing.T) {
	rr := &report.RunResult{
		Kind:       report.Command,
		Status:     report.StatusFailed,
		ExitCode:   1,
		Lines:      2,
		Errors:     1,
		FirstError: "fatal: disk full",
		Log:        "/tmp/logs/install.log",
	}
	got := Render(rr)
	if !strings.Contains(got, `first_error="fatal: disk full"`) {
		t.Errorf("Render = %q, want first_error field", got)
	}
	if !strings.Contains(got, "exit_code=1") {
		t.Errorf("Render = %q, want exit_code=1", got)
	}
}

func TestRender_OmitsEmptyFirstError(t *testing.T) {
	rr := &report.RunResult{
		Kind:   report.Command,
		Status: report.StatusSuccess,
		Log:    "/l.log",
	}
	if got := Render(rr); strings.Contains(got, "first_error") {
		t.Errorf("Render = %q, want first_error omitted", got)
	}
}

func TestRender_TestMode(t *testing.T) {
	rr := &report.RunResult{
		Kind:     report.Test,
		Status:   report.StatusFail,
		ExitCode: 1,
		Runner:   "pytest",
		Passed:   47,
		Failed:   2,
		Total:    49,
		Duration: "3.21s",
		Failures: []string{"tests/test_x.py::test_a", "tests/test_y.py::test_b"},
		Log:      "/tmp/logs/test.log",
	}
	got := Render(rr)
	want := `status=fail runner=pytest passed=47 failed=2 total=49 duration=3.21s errors=["tests/test_x.py::test_a","tests/test_y.py::test_b"] log=/tmp/logs/test.log`
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_TestModeOmitsEmptyFailures(t *testing.T) {
	rr := &report.RunResult{
		Kind:   report.Test,
		Status: report.StatusPass,
		Runner: "go",
		Passed: 1,
		Total:  1,
		Log:    "/l.log",
	}
	got := Render(rr)
	if strings.Contains(got, "errors=[") {
		t.Errorf("Render = %q, want failing list omitted", got)
	}
	// Duration is always present in test mode, even when empty.
	if !strings.Contains(got, "duration=") {
		t.Errorf("Render = %q, want duration field", got)
	}
}

func TestRender_SingleLine(t *testing.T) {
	rr := &report.RunResult{
		Kind:       report.Command,
		Status:     report.StatusFailed,
		ExitCode:   2,
		FirstError: "error: bad\nthing \"here\"",
		Log:        "/l.log",
	}
	got := Render(rr)
	if strings.ContainsAny(got, "\n\r") {
		t.Errorf("Render = %q, want a single line", got)
	}
}

func TestRenderError(t *testing.T) {
	got := RenderError(`no command given`)
	want := `status=error message="no command given"`
	if got != want {
		t.Errorf("RenderError = %q, want %q", got, want)
	}
}
