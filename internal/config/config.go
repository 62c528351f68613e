// Package config loads and validates the optional .runsum YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for wrapper configuration.
const (
	DefaultLogDir          = ".runsum/logs"
	DefaultFirstErrorLimit = 200
)

// Config holds the parsed .runsum configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version            int        `yaml:"version"`
	RawLogDir          string     `yaml:"log_dir"`           // where run logs are written
	RawFirstErrorLimit int        `yaml:"first_error_limit"` // max chars of the first_error field
	Test               TestConfig `yaml:"test"`
}

// LogDir returns the configured log directory or the default.
func (c *Config) LogDir() string {
	if c.RawLogDir != "" {
		return c.RawLogDir
	}
	return DefaultLogDir
}

// FirstErrorLimit returns the configured first-error truncation length
// or the default.
func (c *Config) FirstErrorLimit() int {
	if c.RawFirstErrorLimit > 0 {
		return c.RawFirstErrorLimit
	}
	return DefaultFirstErrorLimit
}

// TestConfig holds per-runner invocation settings.
type TestConfig struct {
	Pytest RunnerSettings `yaml:"pytest"`
	Jest   RunnerSettings `yaml:"jest"`
	Go     RunnerSettings `yaml:"go"`
	Cargo  RunnerSettings `yaml:"cargo"`
}

// RunnerSettings customises how one test runner is invoked.
type RunnerSettings struct {
	Command []string `yaml:"command"` // replaces the built-in base invocation
	Args    []string `yaml:"args"`    // extra flags appended before caller args
}

// RunnerSettings returns the settings for a runner kind name; unknown
// names get the zero value.
func (c *Config) RunnerSettings(kind string) RunnerSettings {
	switch kind {
	case "pytest":
		return c.Test.Pytest
	case "jest":
		return c.Test.Jest
	case "go":
		return c.Test.Go
	case "cargo":
		return c.Test.Cargo
	}
	return RunnerSettings{}
}

// LoadResult holds the parsed config and the discovered project root.
type LoadResult struct {
	Config *Config
	Root   string // directory containing .runsum or go.mod; falls back to workspace
}

// LogDir returns the configured log directory, anchored at the
// discovered root when relative.
func (l *LoadResult) LogDir() string {
	dir := l.Config.LogDir()
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(l.Root, dir)
}

// Load reads the .runsum file from the project root. The root is
// discovered by walking upward from workspace looking for a .runsum or
// go.mod file. If no .runsum file exists, a default Config is returned.
func Load(workspace string) (*LoadResult, error) {
	root, err := findRoot(workspace)
	if err != nil {
		root = workspace
	}

	path := filepath.Join(root, ".runsum")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Config: &Config{}, Root: root}, nil
		}
		return nil, fmt.Errorf("reading .runsum: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .runsum: %w", err)
	}
	return &LoadResult{Config: cfg, Root: root}, nil
}

// findRoot walks upward from dir looking for a directory containing
// a .runsum file or, failing that, a go.mod.
func findRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for _, name := range []string{".runsum", "go.mod"} {
		d := dir
		for {
			if _, err := os.Stat(filepath.Join(d, name)); err == nil {
				return d, nil
			}
			parent := filepath.Dir(d)
			if parent == d {
				break
			}
			d = parent
		}
	}
	return "", fmt.Errorf("no .runsum or go.mod found")
}
