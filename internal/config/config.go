// Package config loads the runtime configuration from the environment.
package config

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Every field can be set through the
// environment variable named in its envconfig tag.
type Config struct {
	// Public base URL of the API, used to construct resource links
	APIURL string `envconfig:"API_URL" default:"http://localhost:8080"`

	// Path of the SQLite database file
	DBPath string `envconfig:"DB_PATH" default:"data/gorm.db"`

	// Mode gin runs in. The default is release for security reasons
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	// Set to "human" for human readable log output. Defaults to human
	// readable in debug mode and JSON otherwise
	LogFormat string `envconfig:"LOG_FORMAT"`

	// Space separated list of origins that are allowed to use the API
	// with CORS. CORS headers are not sent when this is empty
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS"`

	// Registers the pprof profiling routes when true
	EnablePprof bool `envconfig:"ENABLE_PPROF" default:"false"`

	// Maximum size of uploaded CSV files in bytes
	MaxUploadSize int64 `envconfig:"MAX_UPLOAD_SIZE" default:"10485760"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("could not load configuration from the environment: %w", err)
	}

	if _, err := url.Parse(cfg.APIURL); err != nil {
		return Config{}, fmt.Errorf("API_URL must be a valid URL: %w", err)
	}

	return cfg, nil
}

// BaseURL returns the parsed API base URL.
func (c Config) BaseURL() *url.URL {
	// Load already verified that this parses
	u, _ := url.Parse(c.APIURL)
	return u
}
