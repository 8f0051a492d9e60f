package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls the process-wide logger
type Config struct {
	// Level is the minimum level that gets written; unknown values fall
	// back to info
	Level string
	// Pretty enables human-readable console output instead of JSON
	Pretty bool
	// Output is the output writer (defaults to os.Stdout)
	Output io.Writer
}

// Configure sets up the global logger. It is called once at startup and
// again by tests that want to capture output.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	return log.Logger.Debug()
}

// Info logs an informational message
func Info() *zerolog.Event {
	return log.Logger.Info()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	return log.Logger.Warn()
}

// Error logs an error message
func Error() *zerolog.Event {
	return log.Logger.Error()
}

// Fatal logs a fatal message and exits
func Fatal() *zerolog.Event {
	return log.Logger.Fatal()
}

func init() {
	Configure(Config{Level: "info", Pretty: true})
}
