package config

import (
	"errors"
	"fmt"

	"podshell/internal/session"
	"podshell/pkg/logging"
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() PodshellConfig {
	return PodshellConfig{
		Session: SessionConfig{
			InputMode:    string(session.InputModeRaw),
			WatcherGrace: session.DefaultWatcherGrace,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Validate reports every invalid setting at once.
func (c PodshellConfig) Validate() error {
	var errs []error
	if _, err := session.ParseInputMode(c.Session.InputMode); err != nil {
		errs = append(errs, fmt.Errorf("session.inputMode: %w", err))
	}
	if c.Session.WatcherGrace < 0 {
		errs = append(errs, fmt.Errorf("session.watcherGrace: must not be negative, got %s", c.Session.WatcherGrace))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if len(c.Session.Command) > 0 && c.Session.Command[0] == "" {
		errs = append(errs, errors.New("session.command: executable must not be empty"))
	}
	return errors.Join(errs...)
}
