package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath names the root manifest file, or a directory containing
	// a manifest.hcl.
	ManifestPath string
	// OutputPath names the lock file to write. Empty means stdout.
	OutputPath string

	LogFormat string
	LogLevel  string
	// Watch keeps the process alive and re-evaluates the manifest whenever
	// a watched file changes.
	Watch bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.Watch && cfg.OutputPath == "" {
		return nil, errors.New("watch mode requires an output path, writing repeatedly to stdout is not supported")
	}

	return &cfg, nil
}
