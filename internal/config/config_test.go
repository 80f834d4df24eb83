package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAMLFileMissing(t *testing.T) {
	c := NewConfig()
	if err := c.LoadYAMLFile(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
}

func TestLoadYAMLFileOverlays(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mylang.yaml")
	content := "sandbox_root: /srv/scripts\nstdlib_path: /srv/stdlib\ntrace: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewConfig()
	if err := c.LoadYAMLFile(path); err != nil {
		t.Fatalf("LoadYAMLFile: %v", err)
	}
	if c.SandboxRoot != "/srv/scripts" {
		t.Errorf("SandboxRoot = %q", c.SandboxRoot)
	}
	if c.StdlibPath != "/srv/stdlib" {
		t.Errorf("StdlibPath = %q", c.StdlibPath)
	}
	if !c.TraceOn {
		t.Errorf("TraceOn should be true")
	}
}

func TestLoadEnvOverlays(t *testing.T) {
	t.Setenv("MYLANG_SANDBOX_ROOT", "/env/root")
	t.Setenv("MYLANG_DEBUG", "1")

	c := NewConfig()
	if err := c.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if c.SandboxRoot != "/env/root" {
		t.Errorf("SandboxRoot = %q", c.SandboxRoot)
	}
	if !c.TraceOn {
		t.Errorf("TraceOn should be true")
	}
}

func TestApplyDefaultsFillsSandboxRoot(t *testing.T) {
	c := NewConfig()
	if err := c.ApplyDefaults(); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if c.SandboxRoot == "" {
		t.Errorf("SandboxRoot should default to cwd")
	}
	if c.HistoryFile == "" {
		t.Errorf("HistoryFile should default under the home directory")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mylang.yaml")
	if err := os.WriteFile(path, []byte("sandbox_root: /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MYLANG_SANDBOX_ROOT", "/from/env")

	c := NewConfig()
	if err := c.LoadYAMLFile(path); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadEnv(); err != nil {
		t.Fatal(err)
	}
	if c.SandboxRoot != "/from/env" {
		t.Errorf("env should win over file, got %q", c.SandboxRoot)
	}
}
