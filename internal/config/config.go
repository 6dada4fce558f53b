package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the service looks for its YAML file when no path is given.
const DefaultPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT" validate:"required,numeric"`
		Mode         string `yaml:"mode" env:"SERVER_MODE" validate:"oneof=development production test"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" validate:"required"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" validate:"required"`
		IdleTimeout  string `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" validate:"required"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST" validate:"required"`
		Port            string `yaml:"port" env:"DB_PORT" validate:"required,numeric"`
		User            string `yaml:"user" env:"DB_USER" validate:"required"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME" validate:"required"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" validate:"gte=1"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"omitempty,oneof=json text"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and env still apply.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional, real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if configPath == "" {
		configPath = DefaultPath
	}

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.IdleTimeout = "120s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "students"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.AutoMigrate = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

var validate = validator.New()

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return err
	}

	durations := map[string]string{
		"server.read_timeout":        config.Server.ReadTimeout,
		"server.write_timeout":       config.Server.WriteTimeout,
		"server.idle_timeout":        config.Server.IdleTimeout,
		"database.conn_max_lifetime": config.Database.ConnMaxLifetime,
	}
	for key, value := range durations {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", key, err)
		}
	}

	if config.Database.MaxIdleConns > config.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) exceeds database.max_open_conns (%d)",
			config.Database.MaxIdleConns, config.Database.MaxOpenConns)
	}

	return nil
}

// IsProduction reports whether gin should run in release mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production"
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return dsn.String()
}
