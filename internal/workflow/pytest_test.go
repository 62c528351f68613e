package workflow

import (
	"strings"
	"testing"
)

func TestAnalyzePytest_MixedResult(t *testing.T) {
	log := strings.Join([]string{
		"collected 49 items",
		"tests/test_x.py::test_a FAILED",
		"FAILED tests/test_x.py::test_a - AssertionError",
		"FAILED tests/test_y.py::test_b",
		"47 passed, 2 failed in 3.21s",
	}, "\n")
	s := analyzePytest(log, 1)
	if s.Passed != 47 || s.Failed != 2 || s.Total != 49 {
		t.Errorf("counts = (%d, %d, %d), want (47, 2, 49)", s.Passed, s.Failed, s.Total)
	}
	if s.Duration != "3.21s" {
		t.Errorf("Duration = %q, want 3.21s", s.Duration)
	}
	want := []string{"tests/test_x.py::test_a", "tests/test_y.py::test_b"}
	if len(s.Failures) != 2 || s.Failures[0] != want[0] || s.Failures[1] != want[1] {
		t.Errorf("Failures = %v, want %v", s.Failures, want)
	}
}

func TestAnalyzePytest_ErrorsFoldIntoFailed(t *testing.T) {
	s := analyzePytest("1 failed, 3 passed, 2 errors in 0.12s\n", 1)
	if s.Failed != 3 {
		t.Errorf("Failed = %d, want 3 (failed + errors)", s.Failed)
	}
	if s.Total != 6 {
		t.Errorf("Total = %d, want 6", s.Total)
	}
}

func TestAnalyzePytest_LastSummaryLineWins(t *testing.T) {
	log := strings.Join([]string{
		"2 passed in 0.05s",
		"rerunning...",
		"5 passed in 0.40s",
	}, "\n")
	s := analyzePytest(log, 0)
	if s.Passed != 5 {
		t.Errorf("Passed = %d, want 5 (last tally line)", s.Passed)
	}
	if s.Duration != "0.40s" {
		t.Errorf("Duration = %q, want 0.40s", s.Duration)
	}
}

func TestAnalyzePytest_FailureCap(t *testing.T) {
	var lines []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		lines = append(lines, "FAILED tests/test_m.py::test_"+n)
	}
	s := analyzePytest(strings.Join(lines, "\n"), 1)
	if len(s.Failures) != 5 {
		t.Errorf("len(Failures) = %d, want 5", len(s.Failures))
	}
	if s.Failures[0] != "tests/test_m.py::test_a" {
		t.Errorf("Failures[0] = %q, want first failure preserved", s.Failures[0])
	}
}

func TestAnalyzePytest_NoSummaryLine(t *testing.T) {
	s := analyzePytest("some unrelated noise\nno tally here\n", 1)
	if s.Passed != 0 || s.Failed != 0 || s.Total != 0 {
		t.Errorf("counts = (%d, %d, %d), want zeros", s.Passed, s.Failed, s.Total)
	}
	if len(s.Failures) != 0 {
		t.Errorf("Failures = %v, want empty", s.Failures)
	}
	if s.Duration != "" {
		t.Errorf("Duration = %q, want empty", s.Duration)
	}
}

func TestAnalyzePytest_EmptyLog(t *testing.T) {
	s := analyzePytest("", 0)
	if s.Total != 0 || len(s.Failures) != 0 {
		t.Errorf("summary = %+v, want zero value", s)
	}
}
