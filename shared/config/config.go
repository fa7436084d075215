// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/inmohub/listings/shared/constants"
)

type DatabaseConfig struct {
	Driver       string
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type AuthConfig struct {
	JWTSecret    string
	JWTIssuer    string
	Provisioning string
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

// Enabled reports whether enough is configured to send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Port != "" && s.User != "" && s.Password != ""
}

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	CORSOrigins []string
	Database    DatabaseConfig
	Auth        AuthConfig
	SMTP        SMTPConfig
}

func setDefaults(v *viper.Viper, defaultPort string) {
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "root")
	v.SetDefault("DB_NAME", "listings")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("IDENTITY_PROVISIONING", constants.ProvisioningDisabled)
}

// Load reads envFile if it exists, then the process environment.
// defaultPort is used when PORT is unset.
func Load(envFile, defaultPort string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			slog.Debug("env file not loaded", "path", envFile, "error", err)
		}
	}

	v := viper.New()
	setDefaults(v, defaultPort)
	v.AutomaticEnv()

	cfg := &Config{
		Port:     v.GetString("PORT"),
		GinMode:  v.GetString("GIN_MODE"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			URL:          v.GetString("DATABASE_URL"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSL_MODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Auth: AuthConfig{
			JWTSecret:    v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer:    v.GetString("AUTH_JWT_ISSUER"),
			Provisioning: strings.ToLower(v.GetString("IDENTITY_PROVISIONING")),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASSWORD"),
		},
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Auth.Provisioning {
	case constants.ProvisioningDisabled, constants.ProvisioningBootstrap:
	default:
		return fmt.Errorf("unsupported IDENTITY_PROVISIONING %q", c.Auth.Provisioning)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
