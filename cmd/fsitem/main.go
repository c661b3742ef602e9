// Package main implements fsitem, a command-line tool for inspecting and
// manipulating files and directories on the local filesystem.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

const (
	consoleHandlerName = "console"
	fileHandlerName    = "file"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  = "dev"
)

// newConsoleHandler returns the colorized handler for human-readable output.
func newConsoleHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

func setupLogging() {
	slog.SetDefault(slog.New(newConsoleHandler(os.Stderr, slog.LevelInfo)))
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	setupLogging()

	app := NewApp(os.Stdin, os.Stdout, os.Stderr)
	defer app.Close()

	if err := newRootCommand(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		ExitCode = 1
	}
}
