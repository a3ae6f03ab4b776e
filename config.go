package goenvironments

import (
	"errors"
	"strings"
)

// ErrHTTPAddrRequired indicates the server address is missing.
var ErrHTTPAddrRequired = errors.New("environments config: http addr is required")

// ErrStorageDriverUnknown indicates an unsupported storage driver.
var ErrStorageDriverUnknown = errors.New("environments config: storage driver is invalid")

// ErrStorageDSNRequired indicates a database driver without a DSN.
var ErrStorageDSNRequired = errors.New("environments config: storage dsn is required when a driver is set")

// ErrAPIKeySizeInvalid indicates an out-of-range key size.
var ErrAPIKeySizeInvalid = errors.New("environments config: api key size must be zero or positive")

var ErrLoggingLevelInvalid = errors.New("environments config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("environments config: logging format is invalid")

// Config aggregates runtime settings for the environments module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	HTTP    HTTPConfig    `envPrefix:"HTTP_"`
	Storage StorageConfig `envPrefix:"DB_"`
	APIKeys APIKeyConfig  `envPrefix:"API_KEY_"`
	Logging LoggingConfig `envPrefix:"LOG_"`
}

// HTTPConfig captures the listener and mount point for the HTTP API.
type HTTPConfig struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	BasePath string `env:"BASE_PATH" envDefault:"/environments"`
}

// StorageConfig selects the persistence backend. An empty driver keeps
// repositories in memory.
type StorageConfig struct {
	Driver string `env:"DRIVER"`
	DSN    string `env:"DSN"`
}

// APIKeyConfig tunes key material generation.
type APIKeyConfig struct {
	Size int `env:"SIZE"`
}

// LoggingConfig mirrors the go-logger settings the module forwards to its provider.
type LoggingConfig struct {
	Level     string `env:"LEVEL" envDefault:"info"`
	Format    string `env:"FORMAT" envDefault:"console"`
	AddSource bool   `env:"ADD_SOURCE"`
}

// DefaultConfig returns a configuration suitable for local development.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/environments",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "", "sqlite3", "postgres":
	default:
		return ErrStorageDriverUnknown
	}
	if strings.TrimSpace(c.Storage.Driver) != "" && strings.TrimSpace(c.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if c.APIKeys.Size < 0 {
		return ErrAPIKeySizeInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "text", "json":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}
