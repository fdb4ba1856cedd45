package app

import (
	"podshell/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug level logging regardless of logging.level.
	Debug bool

	// Podshell is the merged file and flag configuration.
	Podshell *config.PodshellConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, podshellCfg config.PodshellConfig) *Config {
	return &Config{
		Debug:    debug,
		Podshell: &podshellCfg,
	}
}
