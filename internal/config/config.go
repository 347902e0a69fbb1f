// Package config loads the process configuration from file and
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/email"
	"github.com/agendou/agendou-api/internal/middleware"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Firebase  auth.FirebaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	SMTP      email.Config
	RateLimit middleware.RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// AuthConfig selects how bearer tokens are verified. Mode "firebase"
// verifies ID tokens against the identity provider; mode "static" accepts
// HS256 tokens signed with DevSecret and exists for emulator and test
// runs only.
type AuthConfig struct {
	Mode      string `mapstructure:"mode"`
	DevSecret string `mapstructure:"dev_secret"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("AGENDOU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("auth.mode", "firebase")
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; environment and defaults suffice.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Auth.Mode == "static" && config.Auth.DevSecret == "" {
		return nil, fmt.Errorf("auth.dev_secret is required in static mode")
	}

	return &config, nil
}
