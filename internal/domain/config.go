package domain

import "time"

// Config represents the fnkit configuration loaded from fnkit.yaml.
type Config struct {
	Paths   PathsConfig
	Builtin bool
	Focus   Focus
	Invoke  InvokeConfig
}

type PathsConfig struct {
	SuitesDir string
	RunsDir   string
}

// Focus narrows a run to named suites and/or cases. Empty means everything.
type Focus struct {
	Suites []string `json:"suites,omitempty"`
	Tests  []string `json:"tests,omitempty"`
}

// IsZero reports whether no suite or test is focused.
func (f Focus) IsZero() bool {
	return len(f.Suites) == 0 && len(f.Tests) == 0
}

type InvokeConfig struct {
	Timeout time.Duration
}

// DefaultConfig provides sane defaults if fnkit.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			SuitesDir: "suites",
			RunsDir:   "runs",
		},
		Builtin: true,
		Invoke:  InvokeConfig{Timeout: 30 * time.Second},
	}
}

// WorkspaceSpec describes where a workspace should be scaffolded.
type WorkspaceSpec struct {
	Root string
}
