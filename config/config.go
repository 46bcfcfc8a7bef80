// Package config loads the analyzer settings from YAML: where the CTY
// database and the dataset store live, and the calendar rule for each
// supported contest.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"contestlog/calendar"
)

// Config represents the complete analyzer configuration.
type Config struct {
	CTY      CTYConfig                `yaml:"cty"`
	Store    StoreConfig              `yaml:"store"`
	GeoCache GeoCacheConfig           `yaml:"geocache"`
	Contests map[string]calendar.Rule `yaml:"contests"`
}

// CTYConfig locates the CTY prefix database.
type CTYConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig locates the processed dataset store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// GeoCacheConfig controls the persistent callsign lookup cache.
type GeoCacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads the configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.CTY.Path == "" {
		c.CTY.Path = "cty.plist"
	}
	if c.Store.Path == "" {
		c.Store.Path = "contestlog.db"
	}
	if c.GeoCache.Path == "" {
		c.GeoCache.Path = "geocache"
	}
	if c.Contests == nil {
		c.Contests = map[string]calendar.Rule{}
	}
	defaults := map[string]calendar.Rule{
		"cqww":   {Month: time.November, Week: calendar.LastWeekend},
		"cqwpx":  {Month: time.May, Week: calendar.LastWeekend},
		"iaru":   {Month: time.July, Week: 2},
		"arrldx": {Month: time.February, Week: 3},
	}
	for name, rule := range defaults {
		if _, ok := c.Contests[name]; !ok {
			c.Contests[name] = rule
		}
	}
}

// Validate checks the calendar rules for values no year can satisfy.
func (c *Config) Validate() error {
	for name, rule := range c.Contests {
		if rule.Month < time.January || rule.Month > time.December {
			return fmt.Errorf("config: contest %s: month %d out of range", name, rule.Month)
		}
		if rule.Week != calendar.LastWeekend && (rule.Week < 1 || rule.Week > 5) {
			return fmt.Errorf("config: contest %s: week %d out of range", name, rule.Week)
		}
	}
	return nil
}

// ContestRule returns the calendar rule for a contest name (case-insensitive).
func (c *Config) ContestRule(contest string) (calendar.Rule, bool) {
	rule, ok := c.Contests[strings.ToLower(strings.TrimSpace(contest))]
	return rule, ok
}

// ContestNames returns the configured contest names, sorted.
func (c *Config) ContestNames() []string {
	names := make([]string, 0, len(c.Contests))
	for name := range c.Contests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
