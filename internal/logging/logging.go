// Package logging builds the host's logrus logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	JSONFormat = "json"
	TextFormat = "text"

	EnvLogLevel  = "JOLT_LOG_LEVEL"
	EnvLogFormat = "JOLT_LOG_FORMAT"
)

var (
	ErrInvalidFormat = errors.New("log format must be one of: text, json")
	ErrInvalidLevel  = errors.New("invalid log level")
)

// Options configures New.
type Options struct {
	Level  logrus.Level
	Format string
	Output io.Writer
}

// New creates a logger writing to opts.Output.
func New(opts Options) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(opts.Output)
	l.SetFormatter(CreateFormatter(opts.Format))
	l.SetLevel(opts.Level)
	return l
}

// CreateFormatter creates a logrus formatter by name. Unknown names fall back
// to text.
func CreateFormatter(logFormat string) logrus.Formatter {
	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return &logrus.JSONFormatter{}
	default:
		return &logrus.TextFormatter{
			FullTimestamp: true,
		}
	}
}

// ParseFormat normalizes a format name; empty means text.
func ParseFormat(input string) (string, error) {
	switch format := strings.ToLower(strings.TrimSpace(input)); format {
	case "", TextFormat:
		return TextFormat, nil
	case JSONFormat:
		return JSONFormat, nil
	default:
		return "", fmt.Errorf("%w, got: %s", ErrInvalidFormat, input)
	}
}

// ParseLevel parses a logrus level name; empty means info.
func ParseLevel(input string) (logrus.Level, error) {
	if strings.TrimSpace(input) == "" {
		return logrus.InfoLevel, nil
	}

	level, err := logrus.ParseLevel(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, input)
	}
	return level, nil
}
