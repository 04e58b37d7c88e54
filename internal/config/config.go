package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/githubnext/stratcalc/internal/logger"
)

var logConfig = logger.New("config:config")

const (
	// DefaultLogFileName is the name of the text log inside LogDir
	DefaultLogFileName = "stratcalc.log"

	// DefaultJournalFileName is the name of the calculation journal inside LogDir
	DefaultJournalFileName = "calculations.jsonl"
)

// Config represents the stratcalc configuration
type Config struct {
	Locale      string        `toml:"locale"`
	StrictInput bool          `toml:"strict_input"`
	LogDir      string        `toml:"log_dir"`
	Journal     JournalConfig `toml:"journal"`
}

// JournalConfig controls the JSONL calculation journal
type JournalConfig struct {
	Enabled  bool   `toml:"enabled"`
	FileName string `toml:"file_name"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Locale: "en",
		Journal: JournalConfig{
			Enabled:  true,
			FileName: DefaultJournalFileName,
		},
	}
}

// JournalActive reports whether calculations should be written to the journal
func (c *Config) JournalActive() bool {
	return c.LogDir != "" && c.Journal.Enabled
}

// LoadFromFile loads configuration from a TOML file.
// Keys missing from the file keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	logConfig.Printf("Loading config from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates TOML configuration data
func Parse(data []byte) (*Config, error) {
	// Decode generically first so the schema sees exactly what the user wrote
	var raw map[string]interface{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert configuration to JSON: %w", err)
	}
	if err := validateJSONSchema(rawJSON); err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}

	logConfig.Printf("Config loaded: locale=%s strict_input=%v log_dir=%q journal=%v",
		cfg.Locale, cfg.StrictInput, cfg.LogDir, cfg.JournalActive())
	return cfg, nil
}
