package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"tnef2ics/internal/fsutil"
)

const (
	ZonePolicyUTC    = "utc"
	ZonePolicyOffset = "offset"

	DefaultProductID = "-//tnef2ics//TNEF to ICS converter//EN"
	DefaultOutput    = "invite.ics"
	DefaultCharset   = "windows-1252"
)

// Config is the top-level converter configuration.
type Config struct {
	// ProductID is written as the calendar PRODID.
	ProductID string `yaml:"product_id"`

	// Output is the .ics path used when none is given on the command line.
	Output string `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ZonePolicy controls which zone is attached to extracted timestamps:
	//   - "utc" (default): always UTC, the stated zone is informational only
	//   - "offset": fixed zone parsed from the "UTC±HH:MM" description
	ZonePolicy string `yaml:"zone_policy"`

	// Charset decodes 8-bit MAPI strings and HTML bodies that carry no
	// charset of their own. Any WHATWG encoding label is accepted.
	Charset string `yaml:"charset"`
}

// Overrides carries command-line values; empty fields do not override.
type Overrides struct {
	ProductID  string
	LogLevel   string
	ZonePolicy string
	Charset    string
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProductID:  DefaultProductID,
		Output:     DefaultOutput,
		LogLevel:   "info",
		ZonePolicy: ZonePolicyUTC,
		Charset:    DefaultCharset,
	}
}

// Normalize fills in missing values so partially-filled files still work.
func (c *Config) Normalize() {
	if c.ProductID == "" {
		c.ProductID = DefaultProductID
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.ZonePolicy = strings.ToLower(strings.TrimSpace(c.ZonePolicy))
	if c.ZonePolicy == "" {
		c.ZonePolicy = ZonePolicyUTC
	}
	if c.Charset == "" {
		c.Charset = DefaultCharset
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.ZonePolicy {
	case ZonePolicyUTC, ZonePolicyOffset:
	default:
		return fmt.Errorf("zone_policy must be %q or %q, got %q", ZonePolicyUTC, ZonePolicyOffset, c.ZonePolicy)
	}
	if _, err := c.Encoding(); err != nil {
		return err
	}
	return nil
}

// Encoding resolves Charset to a text encoding.
func (c *Config) Encoding() (encoding.Encoding, error) {
	enc, err := htmlindex.Get(c.Charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", c.Charset, err)
	}
	return enc, nil
}

// LoadFile reads a YAML config file without applying env or overrides.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Load builds the effective configuration with the following precedence
// (highest to lowest):
//  1. Command-line overrides
//  2. Environment variables (TNEF2ICS_*)
//  3. Config file, if path is non-empty
//  4. Defaults
func Load(path string, ov Overrides) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	applyEnv(cfg)
	applyOverrides(cfg, ov)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TNEF2ICS_PRODUCT_ID"); v != "" {
		cfg.ProductID = v
	}
	if v := os.Getenv("TNEF2ICS_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("TNEF2ICS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TNEF2ICS_ZONE_POLICY"); v != "" {
		cfg.ZonePolicy = v
	}
	if v := os.Getenv("TNEF2ICS_CHARSET"); v != "" {
		cfg.Charset = v
	}
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.ProductID != "" {
		cfg.ProductID = ov.ProductID
	}
	if ov.LogLevel != "" {
		cfg.LogLevel = ov.LogLevel
	}
	if ov.ZonePolicy != "" {
		cfg.ZonePolicy = ov.ZonePolicy
	}
	if ov.Charset != "" {
		cfg.Charset = ov.Charset
	}
}

// Save writes cfg to path as YAML.
//
// The parent directory is created if needed and the file is replaced
// atomically with 0600 perms.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fsutil.WriteFile(path, data, 0o600)
}
