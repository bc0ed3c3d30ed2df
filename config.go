package ingest

import (
	"context"
	"io"
	"log/slog"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config holds all configuration options for the ingestion process.
//
// The registry of ingestors itself is static; Config only carries the
// ambient concerns (logging, telemetry) and the limits applied while
// expanding archives.
type Config struct {
	// logger stream for ingestion
	logger logger

	// maxFiles is the maximum number of files extracted from an archive.
	// Set value to -1 to disable the check.
	maxFiles int64

	// overwrite defines if files should be overwritten in the extraction destination
	overwrite bool

	// telemetryHook is a function pointer to consume telemetry data after a finished ingestion
	telemetryHook TelemetryHook
}

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style
func NewConfig(opts ...ConfigOption) *Config {
	const (
		maxFiles  = 1000
		overwrite = false
	)

	// disable logging by default
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	config := &Config{
		logger:    logger,
		maxFiles:  maxFiles,
		overwrite: overwrite,
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// Logger returns the logger for ingestion
func (c *Config) Logger() logger {
	return c.logger
}

// WithLogger options pattern function to set a custom logger
func WithLogger(l logger) ConfigOption {
	return func(c *Config) {
		c.logger = l
	}
}

// MaxFiles returns the maximum number of files extracted from an archive
func (c *Config) MaxFiles() int64 {
	return c.maxFiles
}

// WithMaxFiles options pattern function to set the maximum number of
// extracted files (-1 to disable check)
func WithMaxFiles(maxFiles int64) ConfigOption {
	return func(c *Config) {
		c.maxFiles = maxFiles
	}
}

// Overwrite returns true if files should be overwritten in the destination
func (c *Config) Overwrite() bool {
	return c.overwrite
}

// WithOverwrite options pattern function to enable overwrite of existing files
func WithOverwrite(enable bool) ConfigOption {
	return func(c *Config) {
		c.overwrite = enable
	}
}

// TelemetryHook returns the telemetry hook, never nil
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return func(ctx context.Context, td *TelemetryData) {}
	}
	return c.telemetryHook
}

// WithTelemetryHook options pattern function to set a telemetry hook that
// consumes the telemetry data after a finished ingestion
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}
