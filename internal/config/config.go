// Package config loads tagsum settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Neumenon/tagsum/tagsum"
)

// DefaultPath is where the CLI looks for configuration when --config is not given.
const DefaultPath = "tagsum.yaml"

// Config holds all tagsum configuration.
type Config struct {
	// Sentinel excludes objects that hold it as a direct entry.
	Sentinel string `yaml:"sentinel"`

	// Strict rejects characters outside the scanner grammar.
	Strict bool `yaml:"strict"`

	Logging LoggingConfig `yaml:"logging"`

	// Checks are inputs with known answers, run by `tagsum check`.
	Checks []Check `yaml:"checks"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Check is one input file with its expected sums. A nil expectation is not
// compared.
type Check struct {
	Name            string `yaml:"name"`
	File            string `yaml:"file"`
	Sentinel        string `yaml:"sentinel,omitempty"`
	ExpectAll       *int64 `yaml:"expect_all,omitempty"`
	ExpectExcluding *int64 `yaml:"expect_excluding,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sentinel: tagsum.DefaultSentinel,
		Strict:   true,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.resolveCheckPaths(filepath.Dir(path))

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if s := os.Getenv("TAGSUM_SENTINEL"); s != "" {
		c.Sentinel = s
	}
	if lvl := os.Getenv("TAGSUM_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// resolveCheckPaths makes relative check files relative to the config file.
func (c *Config) resolveCheckPaths(dir string) {
	for i := range c.Checks {
		f := c.Checks[i].File
		if f == "" || f == "-" || filepath.IsAbs(f) {
			continue
		}
		c.Checks[i].File = filepath.Join(dir, f)
	}
}

// ValidLevels lists the accepted log levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidateWord(c.Sentinel); err != nil {
		return fmt.Errorf("sentinel: %w", err)
	}

	validLevel := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (valid: console, json)", c.Logging.Format)
	}

	seen := make(map[string]bool, len(c.Checks))
	for i, chk := range c.Checks {
		if chk.Name == "" {
			return fmt.Errorf("check %d: missing name", i)
		}
		if seen[chk.Name] {
			return fmt.Errorf("check %s: duplicate name", chk.Name)
		}
		seen[chk.Name] = true
		if chk.File == "" {
			return fmt.Errorf("check %s: missing file", chk.Name)
		}
		if chk.Sentinel != "" {
			if err := ValidateWord(chk.Sentinel); err != nil {
				return fmt.Errorf("check %s: sentinel: %w", chk.Name, err)
			}
		}
	}
	return nil
}

// SentinelFor returns the sentinel a check runs with.
func (c *Config) SentinelFor(chk Check) string {
	if chk.Sentinel != "" {
		return chk.Sentinel
	}
	return c.Sentinel
}

// ValidateWord ensures a sentinel can actually be produced by the scanner:
// a non-empty run of lowercase letters.
func ValidateWord(w string) error {
	if w == "" {
		return tagsum.ErrEmptySentinel
	}
	if strings.TrimLeft(w, "abcdefghijklmnopqrstuvwxyz") != "" {
		return fmt.Errorf("%q must be lowercase letters only", w)
	}
	return nil
}
