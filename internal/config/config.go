package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultSessionSecret = "secret_key_change_me"
	DefaultAdminPassword = "admin123"
	defaultDSN           = "host=localhost user=postgres password=postgres dbname=heartsupport port=5432 sslmode=disable"
)

type Config struct {
	Port          int
	DatabaseURL   string
	SessionSecret string
	AdminEmail    string
	AdminPassword string
	BcryptCost    int
	LogLevel      string
	LogFormat     string
	TemplatesDir  string
	GinMode       string
}

// Load reads envFile (if present) and then the process environment.
// A missing .env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("no env file found, using system environment", "file", envFile)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", defaultDSN)
	v.SetDefault("session_secret", DefaultSessionSecret)
	v.SetDefault("admin_email", "admin@heartsupport.com")
	v.SetDefault("admin_password", DefaultAdminPassword)
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("templates_dir", "./web/templates")
	v.SetDefault("gin_mode", "")

	// AutomaticEnv upper-cases keys, so PORT, DATABASE_URL etc. are picked up.
	cfg := &Config{
		Port:          v.GetInt("port"),
		DatabaseURL:   v.GetString("database_url"),
		SessionSecret: v.GetString("session_secret"),
		AdminEmail:    strings.ToLower(strings.TrimSpace(v.GetString("admin_email"))),
		AdminPassword: v.GetString("admin_password"),
		BcryptCost:    v.GetInt("bcrypt_cost"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		TemplatesDir:  v.GetString("templates_dir"),
		GinMode:       v.GetString("gin_mode"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.AdminEmail == "" {
		return errors.New("ADMIN_EMAIL must not be empty")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// WarnInsecureDefaults logs when the shipped secrets are still in use.
func (c *Config) WarnInsecureDefaults(logger *slog.Logger) {
	if c.SessionSecret == DefaultSessionSecret {
		logger.Warn("SESSION_SECRET is not set, using the built-in default")
	}
	if c.AdminPassword == DefaultAdminPassword {
		logger.Warn("ADMIN_PASSWORD is not set, seeding the admin with the default password")
	}
}
