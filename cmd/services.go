package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/todo-cli/internal/adapters/storage"
	"github.com/xvierd/todo-cli/internal/config"
	"github.com/xvierd/todo-cli/internal/logging"
	"github.com/xvierd/todo-cli/internal/ports"
	"github.com/xvierd/todo-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config      *config.Config
	logger      *log.Logger
	logCloser   io.Closer
	storage     ports.Storage
	todos       *services.TodoService
	editor      *services.Editor
	completions *services.Completions
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over file and environment.
	if storeFlag != "" {
		cfg.Storage.Backend = storeFlag
	}
	if logFileFlag != "" {
		cfg.Logging.File = logFileFlag
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.config = cfg

	app.logger, app.logCloser, err = logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	app.storage, err = storage.New(cfg.Storage.Backend)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.todos = services.NewTodoService(app.storage)
	app.todos.SetLogger(app.logger)

	app.editor = services.NewEditor(app.todos)
	app.editor.SetLogger(app.logger)

	app.completions = services.NewCompletions(app.todos, time.Duration(cfg.Completion.FadeDuration))

	app.logger.Debug("services initialized", "store", cfg.Storage.Backend)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var errs []error
	if app.storage != nil {
		errs = append(errs, app.storage.Close())
		app.storage = nil
	}
	if app.logCloser != nil {
		errs = append(errs, app.logCloser.Close())
		app.logCloser = nil
	}
	return errors.Join(errs...)
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
