// Package config loads runtime parameters from the environment and an
// optional config file. Environment variables are prefixed with DURGASOS_ and
// override file values.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config captures the gateway runtime parameters.
type Config struct {
	HTTPAddress string `mapstructure:"http_address"`
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"environment"`

	// CORSOrigins doubles as the WebSocket origin allow-list.
	CORSOrigins []string `mapstructure:"-"`

	Database Database `mapstructure:"database"`

	VectorDBURL    string `mapstructure:"vector_db_url"`
	VectorDBAPIKey string `mapstructure:"vector_db_api_key"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	SecretKey    string `mapstructure:"secret_key"`
}

// Database describes the relational store. Either URL or the individual
// parameters may be provided; URL wins.
type Database struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

const (
	defaultHTTPAddress = ":8080"
	defaultLogLevel    = "info"
	defaultEnvironment = "development"
	defaultVectorDBURL = "http://localhost:8000"
)

var defaultOrigins = []string{"http://localhost:3000"}

// Load reads configuration from the provided file path (if any) and the
// environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DURGASOS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("http_address", defaultHTTPAddress)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("environment", defaultEnvironment)
	v.SetDefault("vector_db_url", defaultVectorDBURL)
	v.SetDefault("database.port", 5432)

	// Viper only unmarshals env-backed keys it knows about; register the rest.
	for _, key := range []string{
		"cors_origins", "vector_db_api_key", "gemini_api_key", "secret_key",
		"database.url", "database.host", "database.name", "database.user", "database.password",
	} {
		v.SetDefault(key, "")
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = parseOrigins(v.Get("cors_origins"))

	if cfg.Environment != "development" && cfg.Environment != "production" {
		return Config{}, fmt.Errorf("invalid environment %q", cfg.Environment)
	}

	return cfg, nil
}

// parseOrigins accepts a list, a JSON array string, or a comma-separated
// string, and falls back to the localhost default when nothing usable is
// configured.
func parseOrigins(raw any) []string {
	switch val := raw.(type) {
	case nil:
		return defaultOrigins
	case []string:
		if len(val) == 0 {
			return defaultOrigins
		}
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		if len(out) == 0 {
			return defaultOrigins
		}
		return out
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return defaultOrigins
		}
		var parsed []any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			out := make([]string, 0, len(parsed))
			for _, item := range parsed {
				out = append(out, fmt.Sprint(item))
			}
			if len(out) > 0 {
				return out
			}
			return defaultOrigins
		}
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return defaultOrigins
		}
		return out
	default:
		return defaultOrigins
	}
}

// ConnString resolves the relational store connection string. An entirely
// unconfigured database yields "" with no error; a partially configured one is
// an error.
func (d Database) ConnString() (string, error) {
	if s := strings.TrimSpace(d.URL); s != "" {
		return s, nil
	}
	if d.Host == "" && d.Name == "" && d.User == "" && d.Password == "" {
		return "", nil
	}
	if d.Host == "" || d.Name == "" || d.User == "" || d.Password == "" {
		return "", fmt.Errorf("database config incomplete: need url, or all of host, name, user, password")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		d.User, url.QueryEscape(d.Password), d.Host, d.Port, d.Name), nil
}
