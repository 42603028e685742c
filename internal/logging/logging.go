// Package logging holds the process-wide zap logger used for console
// diagnostics. Diagnostics go to stderr so the snapshot stream and any
// progress line stay clean.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init builds the global logger. With verbose set, debug-level output is
// enabled; otherwise only warnings and errors are shown, which covers the
// per-path skip diagnostics.
func Init(verbose bool) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}

// L returns the global logger. Before Init it is a nop logger, so library
// code can log unconditionally.
func L() *zap.Logger {
	return logger
}

// With creates a child logger and adds structured context to it.
func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}
