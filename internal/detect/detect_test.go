package detect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func desc(markers ...string) *Descriptor {
	d := &Descriptor{Markers: make(map[string]bool)}
	for _, m := range markers {
		d.Markers[m] = true
	}
	return d
}

func TestDetect_Precedence(t *testing.T) {
	tests := []struct {
		name string
		d    *Descriptor
		want Kind
	}{
		{"go module", desc("go.mod"), GoTest},
		{"cargo", desc("Cargo.toml"), Cargo},
		{"pyproject", desc("pyproject.toml"), Pytest},
		{"pytest ini", desc("pytest.ini"), Pytest},
		{"conftest", desc("conftest.py"), Pytest},
		{"go beats cargo", desc("go.mod", "Cargo.toml"), GoTest},
		{"go beats pytest", desc("go.mod", "pyproject.toml"), GoTest},
		{"cargo beats pytest", desc("Cargo.toml", "setup.py"), Cargo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.d, "/project")
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect_JestBeatsEverything(t *testing.T) {
	d := desc("package.json", "go.mod", "Cargo.toml", "pyproject.toml")
	d.NodeTestFramework = true
	got, err := Detect(d, "/project")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got != Jest {
		t.Errorf("Detect = %q, want %q", got, Jest)
	}
}

func TestDetect_PackageJSONWithoutFramework(t *testing.T) {
	// A package.json that declares no test framework must not select jest.
	d := desc("package.json", "go.mod")
	got, err := Detect(d, "/project")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got != GoTest {
		t.Errorf("Detect = %q, want %q", got, GoTest)
	}
}

func TestDetect_PythonFallback(t *testing.T) {
	d := desc()
	d.HasPython = true
	got, err := Detect(d, "/project")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got != Pytest {
		t.Errorf("Detect = %q, want %q", got, Pytest)
	}
}

func TestDetect_NoMatch(t *testing.T) {
	_, err := Detect(desc(), "/project")
	var de *DetectionError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want DetectionError", err)
	}
}

func TestDetect_Idempotent(t *testing.T) {
	d := desc("go.mod", "pyproject.toml")
	first, err := Detect(d, "/project")
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		got, err := Detect(d, "/project")
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("Detect = %q on repeat, want %q", got, first)
		}
	}
}

func TestDescribe_Markers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"go.mod", "pytest.ini"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	d, err := Describe(dir)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !d.Markers["go.mod"] || !d.Markers["pytest.ini"] {
		t.Errorf("Markers = %v, want go.mod and pytest.ini", d.Markers)
	}
	if d.Markers["Cargo.toml"] {
		t.Error("Markers contains Cargo.toml, want absent")
	}
}

func TestDescribe_NodeTestFramework(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     bool
	}{
		{"jest dev dependency", `{"devDependencies":{"jest":"^29.0.0"}}`, true},
		{"vitest dependency", `{"dependencies":{"vitest":"^1.0.0"}}`, true},
		{"mocha test script", `{"scripts":{"test":"mocha spec/"}}`, true},
		{"no framework", `{"dependencies":{"express":"^4.0.0"}}`, false},
		{"malformed json", `{broken`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(tt.manifest), 0o644); err != nil {
				t.Fatal(err)
			}
			d, err := Describe(dir)
			if err != nil {
				t.Fatalf("Describe: %v", err)
			}
			if d.NodeTestFramework != tt.want {
				t.Errorf("NodeTestFramework = %v, want %v", d.NodeTestFramework, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if kind, err := ParseKind("auto"); err != nil || kind != "" {
		t.Errorf("ParseKind(auto) = (%q, %v), want no override", kind, err)
	}
	if kind, err := ParseKind("cargo"); err != nil || kind != Cargo {
		t.Errorf("ParseKind(cargo) = (%q, %v), want (cargo, nil)", kind, err)
	}
	if _, err := ParseKind("rspec"); err == nil {
		t.Error("ParseKind(rspec) = nil error, want unknown-runner error")
	}
}
