package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Run modes.
const (
	CommandInspect = "inspect"
	CommandServe   = "serve"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string   `validate:"required,oneof=inspect serve"`
	Paths   []string // files or directories with .hcl, .json, .yaml inputs

	// inspect
	Target string `validate:"required_if=Command inspect"`
	Raw    bool

	// serve
	Addr      string `validate:"required_if=Command serve"`
	CacheSize int    `validate:"gte=0"`

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DefaultCacheSize is the number of query results the server keeps.
const DefaultCacheSize = 1024
