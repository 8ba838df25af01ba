package server

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all zentaskd configuration, loaded from environment
// variables with the ZENTASK_ prefix.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Store  StoreConfig  `mapstructure:"store"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// AuthConfig holds token signing settings. The secret must be long
// enough to resist brute force against the HMAC.
type AuthConfig struct {
	JWTSecret              string `mapstructure:"jwt_secret"               validate:"required,min=32"`
	AccessLifetimeMinutes  int    `mapstructure:"access_lifetime_minutes"  validate:"required,gt=0"`
	RefreshLifetimeMinutes int    `mapstructure:"refresh_lifetime_minutes" validate:"required,gt=0"`
}

// StoreConfig holds persistence settings. An empty path keeps all data
// in memory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoadConfig loads configuration from environment variables, applies
// defaults, and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.access_lifetime_minutes", 15)
	v.SetDefault("auth.refresh_lifetime_minutes", 10080)
	v.SetDefault("store.path", "zentask.json")

	v.SetEnvPrefix("ZENTASK")
	v.AutomaticEnv()

	// AutomaticEnv does not pick up nested keys without explicit binds.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"auth.jwt_secret",
		"auth.access_lifetime_minutes",
		"auth.refresh_lifetime_minutes",
		"store.path",
	} {
		env := "ZENTASK_" + envKey(key)
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func envKey(key string) string {
	out := make([]byte, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c == '.':
			c = '_'
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
