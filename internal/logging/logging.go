// Package logging sets up the daemon logger. Only --watch mode logs;
// the interactive surfaces stay quiet on stdout like any well-behaved
// terminal tool.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger returns a production-encoded zap logger writing to a
// size-rotated file. Rotation keeps a handful of small files; a symbol
// path watcher produces a trickle of events, not a firehose.
func NewFileLogger(path string) *zap.Logger {
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		writer,
		zap.InfoLevel,
	)
	return zap.New(core)
}

// NewConsoleLogger returns a human-readable logger for --watch runs
// attached to a terminal (no log file configured).
func NewConsoleLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
