// Package detect selects the test-runner flavour for a project by
// inspecting marker files in its root directory.
package detect

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Kind identifies a supported test-runner output format.
type Kind string

const (
	// Generic is used for commands that are not test runners.
	Generic Kind = "generic"
	// Pytest covers pytest-style summary output.
	Pytest Kind = "pytest"
	// Jest covers jest/vitest-style summary output.
	Jest Kind = "jest"
	// GoTest covers `go test` package-line output.
	GoTest Kind = "go"
	// Cargo covers `cargo test` result-line output.
	Cargo Kind = "cargo"
)

// ParseKind resolves a runner name given on the command line.
// "auto" and "" return the zero Kind, meaning no override.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "auto":
		return "", nil
	case "pytest":
		return Pytest, nil
	case "jest":
		return Jest, nil
	case "go":
		return GoTest, nil
	case "cargo":
		return Cargo, nil
	}
	return "", fmt.Errorf("unknown runner %q (want pytest, jest, go, cargo or auto)", name)
}

// Descriptor is the ambient project state detection operates on. It is
// computed once from the filesystem so that Detect itself stays a pure
// function over data.
type Descriptor struct {
	// Markers holds the base names of marker files present in the
	// project root (go.mod, Cargo.toml, pytest.ini, ...).
	Markers map[string]bool
	// NodeTestFramework is true when package.json declares jest,
	// vitest or mocha in its dependencies or test script.
	NodeTestFramework bool
	// HasPython is true when a Python interpreter is on PATH.
	HasPython bool
}

// pytestMarkers are files whose presence indicates a Python project.
var pytestMarkers = []string{
	"pyproject.toml",
	"pytest.ini",
	"setup.py",
	"setup.cfg",
	"tox.ini",
	"conftest.py",
}

// Describe builds a Descriptor for the given directory.
func Describe(dir string) (*Descriptor, error) {
	d := &Descriptor{Markers: make(map[string]bool)}

	names := []string{"package.json", "go.mod", "Cargo.toml"}
	names = append(names, pytestMarkers...)
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			d.Markers[name] = true
		}
	}

	if d.Markers["package.json"] {
		d.NodeTestFramework = declaresNodeTestFramework(filepath.Join(dir, "package.json"))
	}

	for _, py := range []string{"python3", "python"} {
		if _, err := exec.LookPath(py); err == nil {
			d.HasPython = true
			break
		}
	}

	return d, nil
}

// DetectionError reports that no runner could be matched for a project.
type DetectionError struct {
	Dir string
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("cannot detect a test runner in %s: no recognised project markers and no python interpreter available", e.Dir)
}

// Detect resolves the runner kind from a Descriptor. The precedence is
// jest, then go, then cargo, then pytest, with Python-interpreter
// availability as the final pytest fallback.
func Detect(d *Descriptor, dir string) (Kind, error) {
	if d.NodeTestFramework {
		return Jest, nil
	}
	if d.Markers["go.mod"] {
		return GoTest, nil
	}
	if d.Markers["Cargo.toml"] {
		return Cargo, nil
	}
	for _, name := range pytestMarkers {
		if d.Markers[name] {
			return Pytest, nil
		}
	}
	if d.HasPython {
		return Pytest, nil
	}
	return "", &DetectionError{Dir: dir}
}

// packageManifest holds the package.json fields relevant to detection.
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

var nodeTestFrameworks = []string{"jest", "vitest", "mocha"}

func declaresNodeTestFramework(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var m packageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}

	for _, fw := range nodeTestFrameworks {
		if _, ok := m.Dependencies[fw]; ok {
			return true
		}
		if _, ok := m.DevDependencies[fw]; ok {
			return true
		}
	}
	for _, fw := range nodeTestFrameworks {
		if strings.Contains(m.Scripts["test"], fw) {
			return true
		}
	}
	return false
}
