package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"billingform/internal/engine/transparent"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Site      SiteConfig      `mapstructure:"site"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Issuance  IssuanceConfig  `mapstructure:"issuance"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// SiteConfig describes the billing provider site forms are signed for.
type SiteConfig struct {
	Subdomain     string `mapstructure:"subdomain"`
	Environment   string `mapstructure:"environment"`
	PrivateKey    string `mapstructure:"private_key"`
	SandboxURL    string `mapstructure:"sandbox_url"`
	ProductionURL string `mapstructure:"production_url"`
}

type DatabaseConfig struct {
	Path           string `mapstructure:"path"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type AuthConfig struct {
	Secret         string         `mapstructure:"secret"`
	AccessTokenTTL time.Duration  `mapstructure:"access_token_ttl"`
	Clients        []ClientConfig `mapstructure:"clients"`
}

// ClientConfig is an integrator backend allowed to request signed forms.
// SecretHash is a bcrypt hash of the client secret.
type ClientConfig struct {
	ID         string `mapstructure:"id"`
	SecretHash string `mapstructure:"secret_hash"`
}

type RateLimitConfig struct {
	FormsPerMinute int `mapstructure:"forms_per_minute"`
}

type IssuanceConfig struct {
	Retention     time.Duration `mapstructure:"retention"`
	PruneSchedule string        `mapstructure:"prune_schedule"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

const (
	DefaultSandboxURL    = "https://api-sandbox.recurly.com"
	DefaultProductionURL = "https://api-production.recurly.com"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("site.subdomain", "")
	v.SetDefault("site.environment", string(transparent.Sandbox))
	v.SetDefault("site.private_key", "")
	v.SetDefault("site.sandbox_url", DefaultSandboxURL)
	v.SetDefault("site.production_url", DefaultProductionURL)

	v.SetDefault("database.path", "data/issuances.db")
	v.SetDefault("database.max_connections", 4)

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)

	v.SetDefault("rate_limit.forms_per_minute", 600)

	v.SetDefault("issuance.retention", 30*24*time.Hour)
	v.SetDefault("issuance.prune_schedule", "@hourly")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "")
}

// Load reads the YAML file at path. A .env file in the working directory is
// loaded first, and environment variables (SITE_PRIVATE_KEY, AUTH_SECRET, ...)
// override file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is required")
	}
	for i, client := range c.Auth.Clients {
		if client.ID == "" || client.SecretHash == "" {
			return fmt.Errorf("auth.clients[%d]: id and secret_hash are required", i)
		}
	}
	return nil
}

// Validate checks the site settings that cannot be fixed at signing time.
// An empty private key is allowed here; signing reports it.
func (c SiteConfig) Validate() error {
	if c.Subdomain == "" {
		return errors.New("site.subdomain is required")
	}
	if _, err := transparent.ParseEnvironment(c.Environment); err != nil {
		return err
	}
	return nil
}

// Site returns the transparent.Site for the configured environment.
func (c SiteConfig) Site() (transparent.StaticSite, error) {
	env, err := transparent.ParseEnvironment(c.Environment)
	if err != nil {
		return transparent.StaticSite{}, err
	}

	base := c.SandboxURL
	if env == transparent.Production {
		base = c.ProductionURL
	}

	return transparent.StaticSite{
		SiteSubdomain:   c.Subdomain,
		SiteEnvironment: env,
		SiteKey:         c.PrivateKey,
		SiteBaseURL:     base,
	}, nil
}
