package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetupLogger builds a zap logger for the given format ("console" or
// "json") and level.
func SetupLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// Install builds the logger and replaces the zap globals with it.
// The returned function restores the previous globals and flushes.
func Install(format, level string) (func(), error) {
	l, err := SetupLogger(format, level)
	if err != nil {
		return nil, err
	}
	undo := zap.ReplaceGlobals(l)
	return func() {
		_ = l.Sync()
		undo()
	}, nil
}
