package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/infinitepager/pkg/pager"
)

// FileName is the optional configuration file read from the project root.
const FileName = "pagersim.yaml"

// DefaultOffscreen is the number of pages kept on each side of the current
// one when the config does not say.
const DefaultOffscreen = 1

// Config represents the optional pagersim.yaml configuration.
type Config struct {
	Pager PagerConfig `yaml:"pager"`
	Log   LogConfig   `yaml:"log"`
}

// PagerConfig contains the simulated pager's settings.
type PagerConfig struct {
	Strategy    string `yaml:"strategy,omitempty"`
	Offscreen   int    `yaml:"offscreen,omitempty"`
	Plain       bool   `yaml:"plain,omitempty"`
	ContainerID string `yaml:"container_id,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	Strategy    pager.Strategy
	Offscreen   int
	Plain       bool
	ContainerID string
	LogLevel    zapcore.Level
	Verbose     bool
}

// LoadOptional reads pagersim.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads pagersim.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	strategy, err := pager.ParseStrategy(strings.TrimSpace(cfg.Pager.Strategy))
	if err != nil {
		return nil, fmt.Errorf("pager.strategy: %w", err)
	}

	offscreen := cfg.Pager.Offscreen
	if offscreen < 0 {
		return nil, fmt.Errorf("pager.offscreen must not be negative (got %d)", offscreen)
	}
	if offscreen == 0 {
		offscreen = DefaultOffscreen
	}

	level := zapcore.InfoLevel
	if name := strings.TrimSpace(cfg.Log.Level); name != "" {
		level, err = zapcore.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
	}

	modulePath := modulePath(dir)
	containerID := strings.TrimSpace(cfg.Pager.ContainerID)
	if containerID == "" {
		containerID = defaultContainerID(modulePath, dir)
	}
	if err := validateContainerID(containerID); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		Strategy:    strategy,
		Offscreen:   offscreen,
		Plain:       cfg.Pager.Plain,
		ContainerID: containerID,
		LogLevel:    level,
		Verbose:     cfg.Log.Verbose,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod. It
// falls back to the current directory outside a module.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "".
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultContainerID(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	return sanitize(base)
}

func sanitize(segment string) string {
	var out []rune
	for _, r := range strings.TrimSpace(segment) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '_' || r == '.':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "pager"
	}
	return string(out)
}

// validateContainerID rejects ids that would make retained content tags
// ambiguous.
func validateContainerID(id string) error {
	for _, r := range id {
		if r == ':' || r == ' ' {
			return fmt.Errorf("pager.container_id contains invalid character %q in %q", r, id)
		}
	}
	return nil
}
