package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"podshell/internal/picker"
	"podshell/pkg/logging"
)

// Application is the main application structure that bootstraps and runs podshell
type Application struct {
	config   *Config
	cluster  Cluster
	selector Selector
	sessions SessionFactory

	// interrupts derives the context of one session; the interrupt signal
	// cancels it without ending the program.
	interrupts func(context.Context) (context.Context, context.CancelFunc)
	stderr     io.Writer
	logFile    *os.File
}

// newKubeClusterFunc is mockable for tests.
var newKubeClusterFunc = newKubeCluster

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	logFile, err := initLogging(cfg)
	if err != nil {
		return nil, err
	}

	cluster, err := newKubeClusterFunc(cfg.Podshell)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to create Kubernetes client")
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}

	return &Application{
		config:     cfg,
		cluster:    cluster,
		selector:   picker.New(),
		sessions:   stdioSessions{cfg: cfg.Podshell.Session},
		interrupts: signalInterrupts,
		stderr:     os.Stderr,
		logFile:    logFile,
	}, nil
}

// initLogging sends logs to logging.file when set, else stderr.
func initLogging(cfg *Config) (*os.File, error) {
	level, err := logging.ParseLevel(cfg.Podshell.Logging.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		level = logging.LevelDebug
	}

	if cfg.Podshell.Logging.File == "" {
		logging.Init(level, os.Stderr)
		return nil, nil
	}

	f, err := os.OpenFile(cfg.Podshell.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Podshell.Logging.File, err)
	}
	logging.Init(level, f)
	return f, nil
}

func signalInterrupts(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// Close releases the log file, if any.
func (a *Application) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}
