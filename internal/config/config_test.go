package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDBPath, EnvLogFile, EnvLogLevel, EnvExportDir} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join(AppName, "katsayi.db")) {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if !strings.HasSuffix(cfg.LogFile, filepath.Join(AppName, "katsayi.log")) {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
}

func TestDefaultPath(t *testing.T) {
	if !strings.HasSuffix(DefaultPath(), filepath.Join(AppName, "config.yaml")) {
		t.Fatalf("DefaultPath = %q", DefaultPath())
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", "log_level: debug\nexport_dir: /srv/out\n")

	cfg, err := Load(file, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ExportDir != "/srv/out" {
		t.Fatalf("ExportDir = %q, want /srv/out", cfg.ExportDir)
	}
	if cfg.DBPath != Default().DBPath {
		t.Fatal("unset keys should keep their defaults")
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", "log_level: [unclosed\n")

	if _, err := Load(file, ""); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoadEnvFileOverridesYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yaml", "log_level: debug\nexport_dir: /srv/out\n")
	env := writeFile(t, dir, ".env", EnvLogLevel+"=WARN\n")

	cfg, err := Load(file, env)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.ExportDir != "/srv/out" {
		t.Fatalf("ExportDir = %q, want yaml value", cfg.ExportDir)
	}
}

func TestLoadProcessEnvWins(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", EnvExportDir+"=/from/dotenv\n")
	t.Setenv(EnvExportDir, "/from/env")
	t.Setenv(EnvDBPath, "/tmp/k.db")

	cfg, err := Load(writeFile(t, dir, "c.yaml", ""), env)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ExportDir != "/from/env" {
		t.Fatalf("ExportDir = %q, want /from/env", cfg.ExportDir)
	}
	if cfg.DBPath != "/tmp/k.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"no db", func(c *Config) { c.DBPath = "" }, "db_path"},
		{"no export dir", func(c *Config) { c.ExportDir = "" }, "export_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ExportDir = "/tmp"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Config{LogLevel: "loud"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"db_path", "export_dir", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should mention %s", err, want)
		}
	}
}
