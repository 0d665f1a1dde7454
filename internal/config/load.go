package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for namespaced environment variables,
// e.g. PROPERTY_SERVER_PORT.
const EnvPrefix = "PROPERTY"

// envAliases maps config keys to the un-prefixed variable names that common
// hosting platforms set. They are consulted after the prefixed name.
var envAliases = map[string][]string{
	"server.port":              {"PORT"},
	"server.log_level":         {"LOG_LEVEL"},
	"server.lazy_connect":      {},
	"database.driver":          {},
	"database.url":             {"MONGODB_URI", "DATABASE_URL"},
	"database.name":            {},
	"database.connect_timeout": {},
	"database.auto_migrate":    {},
	"auth.jwt_secret":          {"JWT_SECRET"},
	"auth.token_lifetime":      {},
	"auth.bcrypt_cost":         {},
	"redis.url":                {"REDIS_URL"},
	"redis.ttl":                {},
	"pagination.default_limit": {},
	"pagination.max_limit":     {},
	"cors.allowed_origins":     {"CORS_ORIGIN"},
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a Config against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.lazy_connect", false)
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.name", "property_listing")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.token_lifetime", "24h")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("redis.ttl", "5m")
	v.SetDefault("pagination.default_limit", 10)
	v.SetDefault("pagination.max_limit", 100)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func bindEnv(v *viper.Viper) error {
	replacer := strings.NewReplacer(".", "_")
	for key, aliases := range envAliases {
		names := append([]string{EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}
