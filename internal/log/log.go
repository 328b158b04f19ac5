// Package log provides structured logging for the wallet CLI.
//
// Logs go to stderr so stdout carries only the command report.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps the CLI quiet unless something goes wrong.
const DefaultLevel = "warn"

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers for different parts of the wallet.
var (
	Wallet zerolog.Logger
	API    zerolog.Logger
	Txn    zerolog.Logger
	CLI    zerolog.Logger
)

func init() {
	Logger = NewConsoleLogger(os.Stderr, DefaultLevel)
	initComponentLoggers()
}

// Init reconfigures the global logger. When file is non-empty, logs are
// also appended to it as JSON.
func Init(level string, jsonOutput bool, file string) error {
	var console io.Writer = os.Stderr
	if !jsonOutput {
		console = consoleWriter(os.Stderr)
	}

	out := console
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		out = zerolog.MultiLevelWriter(console, f)
	}

	Logger = zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()
	initComponentLoggers()
	return nil
}

// NewConsoleLogger creates a colored console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(consoleWriter(w)).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
}

// ValidLevel reports whether level names a supported log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error", "disabled":
		return true
	}
	return false
}

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

func initComponentLoggers() {
	Wallet = WithComponent("wallet")
	API = WithComponent("api")
	Txn = WithComponent("txn")
	CLI = WithComponent("cli")
}

// WithComponent returns a logger with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}
