package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "console" or "json"
	TimeFormat string `yaml:"time_format"`
	Output     string `yaml:"output"` // "stdout", "stderr", or file path
}

func DefaultConfig() *Config {
	return &Config{
		Level:      "warn",
		Format:     "console",
		TimeFormat: time.RFC3339,
		Output:     "stderr",
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init configures the global logger. User-facing output should not go through it.
// The returned closer releases the log file, if any; the caller must close it.
func Init(config *Config) (io.Closer, error) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	if config.Format != "console" && config.Format != "json" {
		return nil, fmt.Errorf("invalid log format %q (use console or json)", config.Format)
	}

	var output io.Writer
	var closer io.Closer = nopCloser{}
	switch config.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
		closer = file
	}

	if config.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: config.TimeFormat,
		}
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = config.TimeFormat
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	return closer, nil
}

func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
