// Package config resolves interpreter configuration from, in ascending
// precedence: built-in defaults, an optional mylang.yaml project file,
// MYLANG_*-prefixed environment variables, then CLI flags bound by
// cmd/mylang via cobra/pflag (highest precedence, applied last by the
// caller). Layering mirrors the teacher's Config/LoadFromEnv/
// LoadFromFlags precedence chain; the flag-parsing layer itself moved to
// cobra (cmd/mylang), so this package now only carries the data the CLI
// layer fills in, plus the file/env layers cobra doesn't cover.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds settings shared across every mylang subcommand.
type Config struct {
	SandboxRoot string
	StdlibPath  string
	HistoryFile string
	Prompt      string

	Quiet     bool
	Verbose   bool
	NoHistory bool
	NoWelcome bool
	TraceOn   bool
	NoPrint   bool
	ReadStdin bool
	Profile   bool
}

// NewConfig returns a Config with every field at its zero value;
// ApplyDefaults fills in the values that depend on the environment
// (cwd, home directory).
func NewConfig() *Config {
	return &Config{}
}

// fileConfig is the mylang.yaml shape. Every field is optional; a field
// absent from the file leaves the corresponding Config field untouched.
type fileConfig struct {
	SandboxRoot string `yaml:"sandbox_root"`
	StdlibPath  string `yaml:"stdlib_path"`
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
	Trace       *bool  `yaml:"trace"`
	Quiet       *bool  `yaml:"quiet"`
}

// LoadYAMLFile merges path's contents into c. A missing file is not an
// error -- mylang.yaml is optional project configuration, not a required
// one -- but a malformed file is.
func (c *Config) LoadYAMLFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if fc.SandboxRoot != "" {
		c.SandboxRoot = fc.SandboxRoot
	}
	if fc.StdlibPath != "" {
		c.StdlibPath = fc.StdlibPath
	}
	if fc.HistoryFile != "" {
		c.HistoryFile = fc.HistoryFile
	}
	if fc.Prompt != "" {
		c.Prompt = fc.Prompt
	}
	if fc.Trace != nil {
		c.TraceOn = *fc.Trace
	}
	if fc.Quiet != nil {
		c.Quiet = *fc.Quiet
	}
	return nil
}

// LoadEnv overlays MYLANG_*-prefixed environment variables.
func (c *Config) LoadEnv() error {
	if root := os.Getenv("MYLANG_SANDBOX_ROOT"); root != "" {
		c.SandboxRoot = root
	}
	if path := os.Getenv("MYLANG_STDLIB_PATH"); path != "" {
		c.StdlibPath = path
	}
	if history := os.Getenv("MYLANG_HISTORY_FILE"); history != "" {
		c.HistoryFile = history
	}
	if debug := os.Getenv("MYLANG_DEBUG"); debug == "1" || debug == "true" {
		c.TraceOn = true
	}
	return nil
}

// ApplyDefaults fills in values that need the environment to compute
// (current directory, home directory) and were left unset by the file
// and env layers.
func (c *Config) ApplyDefaults() error {
	if c.SandboxRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		c.SandboxRoot = cwd
	}
	if c.HistoryFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			c.HistoryFile = filepath.Join(home, ".mylang_history")
		}
	}
	return nil
}

// Load runs the full defaults -> mylang.yaml -> env layering in
// precedence order, leaving CLI flags (applied by the caller afterward)
// as the final, highest-precedence layer.
func Load(yamlPath string) (*Config, error) {
	c := NewConfig()
	if err := c.LoadYAMLFile(yamlPath); err != nil {
		return nil, err
	}
	if err := c.LoadEnv(); err != nil {
		return nil, err
	}
	if err := c.ApplyDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}
