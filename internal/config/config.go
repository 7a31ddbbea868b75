// Package config loads flexagonator settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every environment variable Load looks at.
const EnvPrefix = "FLEXAGON_"

const maxConfigFileSize = 1024 * 1024

// Config holds every setting.
type Config struct {
	Search SearchConfig `koanf:"search"`
	Log    LogConfig    `koanf:"log"`
	Flexes FlexesConfig `koanf:"flexes"`
}

// SearchConfig bounds the search engines.
type SearchConfig struct {
	// MaxStates stops exploration beyond this many states; 0 means no limit.
	MaxStates int `koanf:"max_states" validate:"gte=0"`
	// CycleCap bounds cycle-length and group-order measurements.
	CycleCap int `koanf:"cycle_cap" validate:"gte=1,lte=1000000"`
	// Flip also tries every move with the flexagon turned over.
	Flip bool `koanf:"flip"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console auto"`
}

// FlexesConfig points at user flex definitions.
type FlexesConfig struct {
	// Definitions is a YAML file with a "flexes:" list; empty for none.
	Definitions string `koanf:"definitions"`
}

const defaults = `
search:
  max_states: 0
  cycle_cap: 1000
  flip: true
log:
  level: info
  format: console
flexes:
  definitions: ""
`

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in settings.
func Default() *Config {
	cfg, err := LoadBytes(nil)
	if err != nil {
		panic(err) // defaults are constant
	}
	return cfg
}

// Load reads settings from the YAML file at path (skipped when empty), then
// overrides them with environment variables.
//
// Precedence (highest to lowest):
//  1. FLEXAGON_* environment variables, e.g. FLEXAGON_SEARCH_CYCLE_CAP -> search.cycle_cap
//  2. the YAML file
//  3. built-in defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadBytes(nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s is larger than %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadBytes(content)
}

// LoadBytes is Load with the YAML content supplied directly; nil means no file.
func LoadBytes(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(defaults)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps FLEXAGON_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}
