package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/fernwald/rtcgate/internal/core"
	"github.com/fernwald/rtcgate/internal/validation"
)

const (
	DefaultTokenTTL      = time.Hour
	DefaultVerifyTimeout = 10 * time.Second
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Identity IdentityConfig `yaml:"identity"`
	CORS     CORSConfig     `yaml:"cors"`
	Rules    []core.Rule    `yaml:"rules"`
	Audit    AuditConfig    `yaml:"audit"`
}

// AppConfig holds the media application credentials used for signing.
// The certificate is a secret and must never appear in logs or responses.
type AppConfig struct {
	// ID is the public application identifier.
	ID string `yaml:"id"`

	// Certificate is the application certificate shared with the media
	// provider. Can also be supplied via RTCGATE_APP_CERTIFICATE.
	Certificate string `yaml:"certificate"`

	// TokenTTL is the lifetime of issued credentials. Defaults to 1 hour.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// IdentityConfig holds configuration for the upstream identity verifier.
type IdentityConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`    // e.g., "gotrue", "jwt", "oidc", "static"
	Config map[string]any `yaml:",inline"` // Capture remaining fields
}

// CORSConfig holds the browser cross-origin policy.
type CORSConfig struct {
	// AllowedOrigins is the list of origins allowed to call the issuer
	// from browser code. The first entry is the fallback for requests
	// whose Origin does not match any entry.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"` // e.g., "file", "memory"
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

// applyEnv fills secrets and deploy-specific values from the environment,
// so they can be kept out of the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("RTCGATE_APP_ID"); v != "" {
		c.App.ID = v
	}
	if v := os.Getenv("RTCGATE_APP_CERTIFICATE"); v != "" {
		c.App.Certificate = v
	}
	if v := os.Getenv("RTCGATE_CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.CORS.AllowedOrigins = origins
	}
}

func (c *Config) applyDefaults() {
	if c.App.TokenTTL <= 0 {
		c.App.TokenTTL = DefaultTokenTTL
	}
}

func (c *Config) Validate() error {
	if c.Identity.Type == "" {
		return fmt.Errorf("identity verifier not configured")
	}
	if c.Identity.Name == "" {
		c.Identity.Name = c.Identity.Type
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("cors.allowed_origins must contain at least one origin")
	}
	for i, origin := range c.CORS.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors.allowed_origins[%d] is empty", i)
		}
		if origin == "*" {
			return fmt.Errorf("cors.allowed_origins must not contain a wildcard")
		}
	}

	// Missing app credentials are deliberately not fatal here: the server
	// starts and reports the misconfiguration as a 500 on each request,
	// matching how the hosted edge function behaved.

	validRules, err := validation.ValidateRules(c.Rules)
	if err != nil {
		return fmt.Errorf("validating rules: %w", err)
	}
	c.Rules = validRules

	return nil
}
