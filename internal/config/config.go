// Package config provides configuration loading and validation for the CLI
// and the API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultPort              = 8000
	DefaultGraphFile         = "data/graph_data.json"
	DefaultRosterSemester    = "FA25"
	DefaultRateLimitRPS      = 10.0
	DefaultRateLimitBurst    = 20
	DefaultMaterialsCacheTTL = "168h"
)

// DefaultCORSOrigins are the browser origins allowed when none are configured.
var DefaultCORSOrigins = []string{"http://localhost:3000"}

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment
// variables or CLI flags.
type Config struct {
	// Server
	Port        int      `json:"port,omitempty"`         // HTTP listen port
	CORSOrigins []string `json:"cors_origins,omitempty"` // Allowed browser origins

	// Data
	GraphFile      string `json:"graph_file,omitempty"`      // Node-link course graph snapshot
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	RosterSemester string `json:"roster_semester,omitempty"` // Roster code such as FA25

	// Providers
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`      // Chat and timeline generation
	OpenAIAPIKey      string `json:"openai_api_key,omitempty"`      // Study materials
	MaterialsCacheTTL string `json:"materials_cache_ttl,omitempty"` // Go duration; "0" never expires

	// Limits
	RateLimitRPS   float64 `json:"rate_limit_rps,omitempty"`   // Default requests per second per client
	RateLimitBurst int     `json:"rate_limit_burst,omitempty"` // Default burst per client

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Debug logging
}

// Defaults returns a configuration holding every default value.
func Defaults() Config {
	return Config{
		Port:              DefaultPort,
		CORSOrigins:       append([]string(nil), DefaultCORSOrigins...),
		GraphFile:         DefaultGraphFile,
		RosterSemester:    DefaultRosterSemester,
		MaterialsCacheTTL: DefaultMaterialsCacheTTL,
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFiles loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// ApplyEnv overrides fields from environment variables. Unparseable numeric
// values are reported as errors.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT: %w", err)
		}
		c.Port = port
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	setString(&c.GraphFile, "GRAPH_FILE")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RosterSemester, "ROSTER_SEMESTER")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.MaterialsCacheTTL, "MATERIALS_CACHE_TTL")
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config error: RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimitBurst = burst
	}
	if v := os.Getenv("VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Verbose = b
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("config error: 'rate_limit_rps' must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit_burst' must be non-negative")
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	for _, o := range c.CORSOrigins {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("config error: 'cors_origins' contains an empty origin")
		}
	}
	return nil
}

// CacheTTL parses MaterialsCacheTTL. Empty means the default.
func (c *Config) CacheTTL() (time.Duration, error) {
	v := c.MaterialsCacheTTL
	if v == "" {
		v = DefaultMaterialsCacheTTL
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config error: 'materials_cache_ttl': %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'materials_cache_ttl' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GraphFile == "" {
		result.GraphFile = defaults.GraphFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RosterSemester == "" {
		result.RosterSemester = defaults.RosterSemester
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.MaterialsCacheTTL == "" {
		result.MaterialsCacheTTL = defaults.MaterialsCacheTTL
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = append([]string(nil), defaults.CORSOrigins...)
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Load reads path (when non-empty), overlays the environment and fills the
// remaining gaps with Defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
