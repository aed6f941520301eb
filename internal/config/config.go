// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/loader"
)

// Environment variable names.
const (
	EnvAddr        = "XLCOMPARE_ADDR"
	EnvLogLevel    = "XLCOMPARE_LOG_LEVEL"
	EnvLogFormat   = "XLCOMPARE_LOG_FORMAT"
	EnvMaxUploadMB = "XLCOMPARE_MAX_UPLOAD_MB"
	EnvFormat      = "XLCOMPARE_FORMAT"
)

// Config holds settings shared by the CLI and the HTTP server.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// LogLevel is a logrus level name.
	LogLevel string
	// LogFormat is "text" or "json".
	LogFormat string
	// MaxUploadMB caps the size of one multipart request.
	MaxUploadMB int64
	// Format forces the container format of inputs.
	Format loader.Format
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		LogLevel:    "info",
		LogFormat:   "text",
		MaxUploadMB: 32,
		Format:      loader.FormatAuto,
	}
}

// Load reads an optional .env file, then overrides defaults from the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	cfg := Default()
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvMaxUploadMB); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvMaxUploadMB, v, err)
		}
		cfg.MaxUploadMB = n
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = loader.Format(strings.ToLower(v))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is required")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q (must be text or json)", c.LogFormat)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadMB)
	}
	if _, err := loader.ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return nil
}

// NewLogger builds a logrus logger from the log settings.
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
