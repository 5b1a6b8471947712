// Package config loads application settings from defaults, an optional YAML
// file and the environment (including an optional .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const AppName = "katsayi"

// Environment variables that override file values.
const (
	EnvDBPath    = "KATSAYI_DB_PATH"
	EnvLogFile   = "KATSAYI_LOG_FILE"
	EnvLogLevel  = "KATSAYI_LOG_LEVEL"
	EnvExportDir = "KATSAYI_EXPORT_DIR"
)

var validLevels = []string{"debug", "info", "warn", "error"}

type Config struct {
	DBPath    string `yaml:"db_path"`
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
	ExportDir string `yaml:"export_dir"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:    filepath.Join(xdg.DataHome, AppName, AppName+".db"),
		LogFile:   filepath.Join(xdg.StateHome, AppName, AppName+".log"),
		LogLevel:  "info",
		ExportDir: home,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/katsayi/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds a Config. Precedence, lowest first: defaults, the YAML file,
// the env file, the process environment.
//
// An empty file means DefaultPath, which may be absent. An explicitly named
// file must exist. An empty envFile means ".env" in the working directory,
// which may also be absent.
func Load(file, envFile string) (*Config, error) {
	cfg := Default()

	explicit := file != ""
	if !explicit {
		file = DefaultPath()
	}
	if err := loadYAML(file, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if envFile == "" {
		envFile = ".env"
	}
	vars, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
	}

	cfg.DBPath = lookup(vars, EnvDBPath, cfg.DBPath)
	cfg.LogFile = lookup(vars, EnvLogFile, cfg.LogFile)
	cfg.LogLevel = strings.ToLower(lookup(vars, EnvLogLevel, cfg.LogLevel))
	cfg.ExportDir = lookup(vars, EnvExportDir, cfg.ExportDir)

	return &cfg, nil
}

func loadYAML(file string, cfg *Config) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", file, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config %s: %w", file, err)
	}
	return nil
}

// lookup prefers the process environment over the env file.
func lookup(vars map[string]string, key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v, ok := vars[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "db_path must not be empty")
	}
	if c.ExportDir == "" {
		problems = append(problems, "export_dir must not be empty")
	}

	known := false
	for _, l := range validLevels {
		if c.LogLevel == l {
			known = true
			break
		}
	}
	if !known {
		problems = append(problems, fmt.Sprintf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(validLevels, ", ")))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
