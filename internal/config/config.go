package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration. It is built once in main and
// passed to collaborators; nothing below main reads the environment.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// DatabaseConfig contains connection and pool settings.
type DatabaseConfig struct {
	Host        string        `envconfig:"DB_HOST" default:"localhost"`
	Port        string        `envconfig:"DB_PORT" default:"5432"`
	User        string        `envconfig:"DB_USER" required:"true"`
	Password    string        `envconfig:"DB_PASSWORD" required:"true"`
	Name        string        `envconfig:"DB_NAME" default:"proyecto_blog"`
	MaxConns    int32         `envconfig:"DB_POOL_MAX" default:"10"`
	MinConns    int32         `envconfig:"DB_POOL_MIN" default:"0"`
	IdleTimeout time.Duration `envconfig:"DB_POOL_IDLE_TIMEOUT" default:"30s"`
}

// AuthConfig contains token signing settings.
type AuthConfig struct {
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	TokenTTL      time.Duration `envconfig:"JWT_EXPIRES_IN" default:"1h"`
	DefaultRoleID int64         `envconfig:"DEFAULT_ROLE_ID" default:"2"`
}

// LogConfig contains logger settings. When File is empty logs go to the
// console; otherwise to a rotated JSON file.
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	File       string `envconfig:"LOG_FILE" default:""`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"28"`
}

// DSN builds the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for token signing")
	}
	return &cfg, nil
}
