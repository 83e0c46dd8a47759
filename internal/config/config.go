package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mprokopov/ledger-mcp/internal/ledger"
)

// LedgerConfig holds the ledger file layout and tool settings.
type LedgerConfig struct {
	BasePath string `yaml:"base_path"`
	Binary   string `yaml:"binary"`
	File     string `yaml:"file,omitempty"`
}

// Config holds ledger-mcp configuration.
type Config struct {
	Version string       `yaml:"version"`
	Ledger  LedgerConfig `yaml:"ledger"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	base := filepath.Join(".", "ledger")
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, "ledger")
	}
	return Config{
		Version: "1",
		Ledger: LedgerConfig{
			BasePath: base,
			Binary:   "ledger",
			File:     ledger.DefaultFile,
		},
	}
}

// Store represents a loaded LEDGER_MCP_HOME.
type Store struct {
	Home   string
	Config Config
}

// Issue represents a health check finding.
type Issue struct {
	Severity string // "warning" or "error"
	Message  string
}

// Home returns the LEDGER_MCP_HOME path, respecting the env var.
func Home() string {
	if h := os.Getenv("LEDGER_MCP_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".ledger-mcp")
	}
	return filepath.Join(home, ".ledger-mcp")
}

// Init creates the LEDGER_MCP_HOME directory with a default config.yaml.
func Init(home string, force bool) error {
	if _, err := os.Stat(home); err == nil && !force {
		return fmt.Errorf("LEDGER_MCP_HOME already exists at %s (use --force to reinitialize)", home)
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", home, err)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Load reads and validates an existing LEDGER_MCP_HOME.
// Missing config fields are filled from defaults.
func Load(home string) (*Store, error) {
	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config at %s: %w", cfgPath, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	return &Store{Home: home, Config: cfg}, nil
}

// SaveConfig writes the current config to config.yaml.
func (s *Store) SaveConfig() error {
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cfgPath := filepath.Join(s.Home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetConfigValue sets a config value by dot-path key (e.g. "ledger.base_path").
func (s *Store) SetConfigValue(key, value string) error {
	switch key {
	case "ledger.base_path":
		if value == "" {
			return fmt.Errorf("ledger.base_path must not be empty")
		}
		s.Config.Ledger.BasePath = value
	case "ledger.binary":
		if value == "" {
			return fmt.Errorf("ledger.binary must not be empty")
		}
		s.Config.Ledger.Binary = value
	case "ledger.file":
		s.Config.Ledger.File = value
	default:
		return fmt.Errorf("unknown config key: %s\nValid keys: ledger.base_path, ledger.binary, ledger.file", key)
	}
	return s.SaveConfig()
}

// Paths returns the ledger path resolver for the current config.
func (s *Store) Paths() ledger.Paths {
	return ledger.Paths{Base: s.Config.Ledger.BasePath, File: s.Config.Ledger.File}
}

// CheckHealth verifies the LEDGER_MCP_HOME structure and ledger layout.
func CheckHealth(home string) []Issue {
	var issues []Issue

	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("cannot read config.yaml: %v", err)})
		return issues
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		issues = append(issues, Issue{"error", fmt.Sprintf("config.yaml is not valid YAML: %v", err)})
		return issues
	}

	info, err := os.Stat(cfg.Ledger.BasePath)
	if err != nil {
		issues = append(issues, Issue{"warning", fmt.Sprintf("ledger base path does not exist: %s", cfg.Ledger.BasePath)})
	} else if !info.IsDir() {
		issues = append(issues, Issue{"error", fmt.Sprintf("ledger base path is not a directory: %s", cfg.Ledger.BasePath)})
	}

	return issues
}
