package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewLogger creates a zap logger writing to stderr. The console format is meant for
// people, json for log collectors. level is one of debug, info, warn, error and
// defaults to warn.
func NewLogger(format string, level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch format {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole, "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, errors.Errorf(`NewLogger error: unknown format "%s"`, format)
	}

	if level == "" {
		level = "warn"
	}
	var zapLevel zapcore.Level
	err := zapLevel.UnmarshalText([]byte(level))
	if err != nil {
		return nil, errors.Wrapf(err, `NewLogger error: invalid level "%s"`, level)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, errors.Wrap(err, "NewLogger error: build logger")
	}
	return l, nil
}
