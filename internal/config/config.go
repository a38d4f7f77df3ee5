package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig describes the running application
type AppConfig struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Environment string `yaml:"environment" json:"environment"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins" json:"allowed_origins"`
}

// JWTConfig represents token signing configuration
type JWTConfig struct {
	Secret        string `yaml:"secret_key" json:"-"`
	Algorithm     string `yaml:"algorithm" json:"algorithm"`
	ExpireMinutes int    `yaml:"access_token_expire_minutes" json:"access_token_expire_minutes"`
}

// AuthConfig holds the single static credential pair
type AuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
}

// CoinGeckoConfig represents upstream provider configuration
type CoinGeckoConfig struct {
	BaseURL          string        `yaml:"base_url" json:"base_url"`
	APIKeyHeaderName string        `yaml:"api_key_header_name" json:"api_key_header_name"`
	APIKey           string        `yaml:"api_key" json:"-"`
	Timeout          time.Duration `yaml:"timeout" json:"timeout"`
	PingTimeout      time.Duration `yaml:"ping_timeout" json:"ping_timeout"`
}

// Config represents the application configuration. It is built once at
// startup and handed to constructors; nothing reads it from a global.
type Config struct {
	App       AppConfig       `yaml:"app" json:"app"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	LogLevel  string          `yaml:"log_level" json:"log_level"`
	JWT       JWTConfig       `yaml:"jwt" json:"jwt"`
	Auth      AuthConfig      `yaml:"auth" json:"auth"`
	CoinGecko CoinGeckoConfig `yaml:"coingecko" json:"coingecko"`
	Tracing   struct {
		Enabled bool `yaml:"enabled" json:"enabled"`
	} `yaml:"tracing" json:"tracing"`
}

// VersionInfo is the payload of the version endpoint
type VersionInfo struct {
	AppName     string `json:"app_name"`
	AppVersion  string `json:"app_version"`
	Environment string `json:"environment"`
}

// envBindings maps configuration keys onto their environment variables
var envBindings = map[string]string{
	"app.environment":                 "ENVIRONMENT",
	"server.port":                     "SERVER_PORT",
	"server.allowed_origins":          "CORS_ALLOWED_ORIGINS",
	"log_level":                       "LOG_LEVEL",
	"jwt.secret_key":                  "JWT_SECRET_KEY",
	"jwt.algorithm":                   "JWT_ALGORITHM",
	"jwt.access_token_expire_minutes": "ACCESS_TOKEN_EXPIRE_MINUTES",
	"auth.username":                   "API_USERNAME",
	"auth.password":                   "API_PASSWORD",
	"coingecko.base_url":              "COINGECKO_BASE_URL",
	"coingecko.api_key_header_name":   "COINGECKO_API_KEY_HEADER_NAME",
	"coingecko.api_key":               "COINGECKO_API_KEY",
	"coingecko.timeout":               "COINGECKO_TIMEOUT",
	"coingecko.ping_timeout":          "COINGECKO_PING_TIMEOUT",
	"tracing.enabled":                 "TRACING_ENABLED",
}

// setDefaults registers the local/demo defaults. None of them is safe for production.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Vetty Crypto Market API")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "dev")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", "*")

	v.SetDefault("log_level", "info")

	v.SetDefault("jwt.secret_key", "change-this-in-production")
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.access_token_expire_minutes", 60)

	v.SetDefault("auth.username", "vetty")
	v.SetDefault("auth.password", "password")

	v.SetDefault("coingecko.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("coingecko.api_key_header_name", "x-cg-demo-api-key")
	v.SetDefault("coingecko.api_key", "")
	v.SetDefault("coingecko.timeout", 10*time.Second)
	v.SetDefault("coingecko.ping_timeout", 5*time.Second)

	v.SetDefault("tracing.enabled", false)
}

// LoadConfig loads the application configuration from defaults, environment
// variables and an optional YAML file. When configPaths is empty the file is
// searched as config.yaml in ".", "./config" and "/etc/marketgw".
func LoadConfig(configPaths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigType("yaml")
	if path := firstExisting(configPaths); path != "" {
		v.SetConfigFile(path)
	} else if len(configPaths) == 0 {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/marketgw")
	}

	if len(configPaths) == 0 || v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Version:     v.GetString("app.version"),
			Environment: v.GetString("app.environment"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			AllowedOrigins:  splitList(v.GetString("server.allowed_origins")),
		},
		LogLevel: v.GetString("log_level"),
		JWT: JWTConfig{
			Secret:        v.GetString("jwt.secret_key"),
			Algorithm:     v.GetString("jwt.algorithm"),
			ExpireMinutes: v.GetInt("jwt.access_token_expire_minutes"),
		},
		Auth: AuthConfig{
			Username: v.GetString("auth.username"),
			Password: v.GetString("auth.password"),
		},
		CoinGecko: CoinGeckoConfig{
			BaseURL:          strings.TrimRight(v.GetString("coingecko.base_url"), "/"),
			APIKeyHeaderName: v.GetString("coingecko.api_key_header_name"),
			APIKey:           v.GetString("coingecko.api_key"),
			Timeout:          v.GetDuration("coingecko.timeout"),
			PingTimeout:      v.GetDuration("coingecko.ping_timeout"),
		},
	}
	cfg.Tracing.Enabled = v.GetBool("tracing.enabled")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the services cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt secret must not be empty"))
	}
	if c.JWT.ExpireMinutes <= 0 {
		errs = append(errs, fmt.Errorf("access token expiry must be positive, got %d", c.JWT.ExpireMinutes))
	}
	if c.Auth.Username == "" || c.Auth.Password == "" {
		errs = append(errs, errors.New("api username and password must be set"))
	}
	if c.CoinGecko.BaseURL == "" {
		errs = append(errs, errors.New("coingecko base url must not be empty"))
	}
	if c.CoinGecko.Timeout <= 0 || c.CoinGecko.PingTimeout <= 0 {
		errs = append(errs, errors.New("coingecko timeouts must be positive"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// TokenTTL returns the lifetime of issued access tokens
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpireMinutes) * time.Minute
}

// VersionInfo returns the application metadata served by the version endpoint
func (c *Config) VersionInfo() VersionInfo {
	return VersionInfo{
		AppName:     c.App.Name,
		AppVersion:  c.App.Version,
		Environment: c.App.Environment,
	}
}

func firstExisting(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
