package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/desertwitch/fsitem/internal/configuration"
	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/desertwitch/fsitem/internal/schema"
	"github.com/desertwitch/fsitem/internal/tempfile"
)

// App holds the providers, handlers and settings shared by all commands.
type App struct {
	osHandler     *schema.OS
	unixHandler   *schema.Unix
	configHandler *configuration.Handler
	fsHandler     *filesystem.Handler
	config        *configuration.Config
	logManager    *SlogManager
	logFile       *os.File

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewApp returns a pointer to a new [App]. It is not usable before
// [App.Setup] was called.
func NewApp(stdin io.Reader, stdout io.Writer, stderr io.Writer) *App {
	return &App{
		osHandler:     &schema.OS{},
		unixHandler:   &schema.Unix{},
		configHandler: configuration.NewHandler(&configuration.GodotenvProvider{}),
		logManager:    NewSlogManager(),
		stdin:         stdin,
		stdout:        stdout,
		stderr:        stderr,
	}
}

// Setup loads the configuration, applies the global flags on top of it and
// establishes logging and the filesystem handler.
func (app *App) Setup(flags *globalFlags) error {
	cfg, err := app.configHandler.Load(flags.configFile)
	if err != nil {
		return fmt.Errorf("(app-setup) %w", err)
	}

	if flags.logLevel != "" {
		level, err := configuration.ParseLogLevel(flags.logLevel)
		if err != nil {
			return fmt.Errorf("(app-setup) %w", err)
		}
		cfg.LogLevel = level
	}

	if flags.statCache {
		cfg.StatCache = true
	}

	app.config = cfg

	if err := app.setupLogging(flags.logFile); err != nil {
		return err
	}

	var opts []filesystem.Option
	if cfg.StatCache {
		opts = append(opts, filesystem.WithStatCache())
	}
	app.fsHandler = filesystem.NewHandler(app.osHandler, app.unixHandler, opts...)

	slog.Debug("Application set up",
		"config", flags.configFile,
		"statCache", cfg.StatCache,
		"maxMemory", cfg.MaxMemory,
	)

	return nil
}

func (app *App) setupLogging(logFile string) error {
	app.logManager.AddHandler(consoleHandlerName, newConsoleHandler(app.stderr, app.config.LogLevel))

	if logFile != "" {
		fh, err := app.osHandler.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644) //nolint:mnd
		if err != nil {
			return fmt.Errorf("(app-setup) failed to open log file: %w", err)
		}
		app.logFile = fh
		app.logManager.AddHandler(fileHandlerName, slog.NewJSONHandler(fh, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	slog.SetDefault(slog.New(app.logManager))

	return nil
}

// NewTempFile returns a new [tempfile.TempFile] configured from the
// application configuration.
func (app *App) NewTempFile() *tempfile.TempFile {
	opts := []tempfile.Option{tempfile.WithPrefix(app.config.TempPrefix)}
	if app.config.TempDir != "" {
		opts = append(opts, tempfile.WithDirectory(app.config.TempDir))
	}

	return tempfile.New(app.fsHandler, app.osHandler, opts...)
}

// NewBufferedTempFile returns a new [tempfile.BufferedTempFile] holding up
// to maxMemory bytes in memory, or the configured amount for maxMemory <= 0.
func (app *App) NewBufferedTempFile(maxMemory int64) *tempfile.BufferedTempFile {
	if maxMemory <= 0 {
		maxMemory = app.config.MaxMemory
	}

	return tempfile.NewBuffered(app.fsHandler, app.osHandler, maxMemory)
}

// Close releases the resources held by the [App].
func (app *App) Close() {
	if app.logFile == nil {
		return
	}

	app.logManager.RemoveHandler(fileHandlerName)

	if err := app.logFile.Close(); err != nil {
		slog.Warn("Failed to close log file", "err", err)
	}
	app.logFile = nil
}
