// Package log builds the structured loggers used by the boids commands.
package log

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a textual log level as found in config files.
type Level string

const (
	LevelDebug  Level = "debug"
	LevelInfo   Level = "info"
	LevelWarn   Level = "warn"
	LevelError  Level = "error"
	LevelSilent Level = "silent"
)

// ParseLevel returns the zap level for l.
// LevelSilent maps to a level above every message.
func ParseLevel(l Level) (zapcore.Level, error) {
	switch Level(strings.ToLower(string(l))) {
	case LevelDebug:
		return zap.DebugLevel, nil
	case LevelInfo, "":
		return zap.InfoLevel, nil
	case LevelWarn:
		return zap.WarnLevel, nil
	case LevelError:
		return zap.ErrorLevel, nil
	case LevelSilent:
		return zapcore.InvalidLevel, nil
	default:
		return zap.InfoLevel, errors.Errorf("log: unknown level %q", l)
	}
}

// New returns a JSON logger writing to stderr.
func New(l Level) (*zap.Logger, error) {
	level, err := ParseLevel(l)
	if err != nil {
		return nil, err
	}
	if level == zapcore.InvalidLevel {
		return zap.NewNop(), nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "log: build logger")
	}
	return logger, nil
}

// Fatal logs err and exits with a non-zero status.
// A nil logger falls back to a production logger.
func Fatal(logger *zap.Logger, err error) {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	logger.Fatal(err.Error(), zap.Error(err))
}
