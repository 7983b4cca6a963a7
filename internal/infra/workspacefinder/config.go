package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/fnkit/internal/domain"
)

// ConfigFile is the workspace marker and configuration file.
const ConfigFile = "fnkit.yaml"

// LoadConfig loads fnkit.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrNotFound, err),
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, invalidConfig(path, err)
	}

	// Apply parsed values on top of defaults.
	if y.Fnkit.Paths.SuitesDir != "" {
		cfg.Paths.SuitesDir = y.Fnkit.Paths.SuitesDir
	}
	if y.Fnkit.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Fnkit.Paths.RunsDir
	}
	if y.Fnkit.Builtin != nil {
		cfg.Builtin = *y.Fnkit.Builtin
	}
	cfg.Focus.Suites = trimAll(y.Fnkit.Focus.Suites)
	cfg.Focus.Tests = trimAll(y.Fnkit.Focus.Tests)

	if s := strings.TrimSpace(y.Fnkit.Invoke.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return cfg, invalidConfig(path, fmt.Errorf("invoke.timeout: %w", err))
		}
		if d <= 0 {
			return cfg, invalidConfig(path, fmt.Errorf("invoke.timeout must be positive, got %s", d))
		}
		cfg.Invoke.Timeout = d
	}

	return cfg, nil
}

func invalidConfig(path string, err error) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err),
	}
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type yamlConfig struct {
	Fnkit struct {
		Paths struct {
			SuitesDir string `yaml:"suites_dir"`
			RunsDir   string `yaml:"runs_dir"`
		} `yaml:"paths"`

		Builtin *bool `yaml:"builtin"`

		Focus struct {
			Suites []string `yaml:"suites"`
			Tests  []string `yaml:"tests"`
		} `yaml:"focus"`

		Invoke struct {
			Timeout string `yaml:"timeout"`
		} `yaml:"invoke"`
	} `yaml:"fnkit"`
}
