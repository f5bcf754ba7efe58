package config

import (
	"os"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "config.yaml"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	FrontendURL               string        `koanf:"frontend_url"`
	GoogleBooksBaseURL        string        `koanf:"google_books_base_url"`
	GoogleBooksRateLimit      float64       `koanf:"google_books_rate_limit"`
	GoogleBooksTimeout        time.Duration `koanf:"google_books_timeout"`
	Hostname                  string        `koanf:"hostname"`
	JWTSecret                 string        `koanf:"jwt_secret"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

// New loads configuration from an optional YAML file (pointed to by the
// CONFIG_FILE environment variable) and then from environment variables, with
// environment variables taking precedence over file values.
func New() (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"database_busy_timeout":        "5s",
		"database_connect_retry_count": 5,
		"database_connect_retry_delay": "2s",
		"database_max_retries":         5,
		"google_books_base_url":        "https://www.googleapis.com/books/v1",
		"google_books_rate_limit":      5.0,
		"google_books_timeout":         "10s",
		"server_host":                  "0.0.0.0",
		"server_port":                  3689,
	}
	for key, value := range defaults {
		err := k.Set(key, value)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		err = k.Load(file.Provider(configFile), yaml.Parser())
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config file")
		}
	}

	// Environment variables override file values. DATABASE_FILE_PATH maps to
	// database_file_path.
	err := k.Load(env.Provider("", ".", toSnakeCase), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load environment variables")
	}

	cfg := &Config{}
	err = k.Unmarshal("", cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		cfg.Hostname = hostname
	}

	required := []struct {
		name  string
		value string
	}{
		{"DatabaseFilePath", cfg.DatabaseFilePath},
		{"JWTSecret", cfg.JWTSecret},
	}
	for _, field := range required {
		if field.value == "" {
			snake := toSnakeCase(field.name)
			envName := strings.ToUpper(snake)
			return nil, errors.Errorf("missing required config: %s (%s)", envName, snake)
		}
	}

	return cfg, nil
}

// NewForTest returns a config suitable for tests: an in-memory database and a
// loopback server host.
func NewForTest() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 10 * time.Millisecond,
		DatabaseFilePath:          ":memory:",
		DatabaseMaxRetries:        5,
		GoogleBooksBaseURL:        "https://www.googleapis.com/books/v1",
		GoogleBooksRateLimit:      5.0,
		GoogleBooksTimeout:        10 * time.Second,
		Hostname:                  "test",
		JWTSecret:                 "test-secret-key",
		ServerHost:                "127.0.0.1",
		ServerPort:                3689,
	}
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
