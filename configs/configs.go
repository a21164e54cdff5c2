// Package configs parses the host application configuration from the
// environment.
package configs

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Host string `env:"SETTINGS_API_HOST"`
	Port int    `env:"SETTINGS_API_PORT" envDefault:"3000"`

	// Path of the settings file the store binds to at startup.
	SettingsFile string `env:"SETTINGS_API_SETTINGS_FILE" envDefault:"settings.conf"`

	// Create SettingsFile at startup when it does not exist yet.
	CreateMissing bool `env:"SETTINGS_API_CREATE_MISSING" envDefault:"true"`

	LogLevel             string        `env:"SETTINGS_API_LOG_LEVEL" envDefault:"info"`
	ServerRequestTimeout time.Duration `env:"SETTINGS_API_REQUEST_TIMEOUT" envDefault:"60s"`

	// Settings file writes per second allowed through the API,
	// 0 for unlimited.
	SaveRateLimit int `env:"SETTINGS_API_SAVE_RATE_LIMIT" envDefault:"0"`

	DisableCors     bool `env:"SETTINGS_API_DISABLE_CORS" envDefault:"false"`
	DisableCompress bool `env:"SETTINGS_API_DISABLE_COMPRESS" envDefault:"false"`
}

type Options struct {
	EnvFilePath string
}

// Parse parses the configuration from the environment, on top of an
// optional .env file in the working directory.
func Parse() (*Config, error) {
	return ParseWithOpts(Options{})
}

func ParseWithOpts(opts Options) (*Config, error) {
	if opts.EnvFilePath != "" {
		if err := godotenv.Load(opts.EnvFilePath); err != nil {
			return nil, err
		}
	} else {
		// Load a default .env file if one exists
		godotenv.Load() // nolint
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseTestConfig parses the configuration for tests, ignoring any
// .env file.
func ParseTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		t.Fatal(err)
	}

	return &cfg
}

// ConfigureLogger sets the global logging level uniformly for the
// application.
func ConfigureLogger(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
		log.Warnf("invalid log level %q, defaulting to %q", level, lvl)
	}

	log.SetLevel(lvl)
	log.SetFormatter(&log.JSONFormatter{})
}
