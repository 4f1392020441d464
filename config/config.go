// Package config loads WikiPipe configuration from the environment with an
// optional YAML file overlay. Precedence: defaults < file < environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI needs to wire the pipeline.
type Config struct {
	// Confluence credentials.
	ConfluenceURL      string `yaml:"confluence_url"`
	ConfluenceUsername string `yaml:"confluence_username"`
	ConfluenceAPIToken string `yaml:"confluence_api_token"`

	// Paths.
	OutputDir string `yaml:"output_dir"`
	CacheDir  string `yaml:"cache_dir"`

	// Request throttling.
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`

	// Processing.
	StageTimeout time.Duration `yaml:"stage_timeout"`

	// Observability.
	MetricsEnabled bool `yaml:"metrics_enabled"`

	// Security.
	JWTSecret      string   `yaml:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		OutputDir:      "output",
		RateLimit:      100,
		RateWindow:     time.Minute,
		StageTimeout:   30 * time.Second,
		MetricsEnabled: true,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (when
// non-empty), then environment variables. A .env file in the working
// directory is read into the environment first, if present.
func Load(path string) (Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() error {
	setString(&c.ConfluenceURL, "CONFLUENCE_URL")
	setString(&c.ConfluenceUsername, "CONFLUENCE_USERNAME")
	setString(&c.ConfluenceAPIToken, "CONFLUENCE_API_TOKEN")
	setString(&c.OutputDir, "OUTPUT_DIR")
	setString(&c.CacheDir, "CACHE_DIR")
	setString(&c.JWTSecret, "JWT_SECRET")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitOrigins(v)
	}
	if v := os.Getenv("ENABLE_METRICS"); v != "" {
		c.MetricsEnabled = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		c.RateLimit = n
	}
	if v := os.Getenv("RATE_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_WINDOW %q: %w", v, err)
		}
		c.RateWindow = d
	}
	if v := os.Getenv("STAGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STAGE_TIMEOUT %q: %w", v, err)
		}
		c.StageTimeout = d
	}
	return nil
}

// Validate checks that required credentials are present.
func (c Config) Validate() error {
	var missing []string
	if c.ConfluenceURL == "" {
		missing = append(missing, "CONFLUENCE_URL")
	}
	if c.ConfluenceUsername == "" {
		missing = append(missing, "CONFLUENCE_USERNAME")
	}
	if c.ConfluenceAPIToken == "" {
		missing = append(missing, "CONFLUENCE_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required Confluence credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
