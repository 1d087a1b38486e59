// Package graphlog is a thin structured-logging facade over zap, giving
// the store package and cmd/graphctl a consistent logger without each one
// constructing its own.
package graphlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger; embedding lets callers use zap's full method
// set (Info, Warn, Error, With, ...) directly.
type Logger struct {
	*zap.Logger
}

// Option configures logger construction.
type Option func(*zapcore.EncoderConfig, *[]zap.Option)

// New builds a production-profile JSON logger at the given level (one of
// zapcore.DebugLevel..zapcore.FatalLevel), with component="graphcore" and
// any caller-supplied fields attached.
func New(level zapcore.Level, fields ...zap.Field) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	l := base.With(append([]zap.Field{zap.String("component", "graphcore")}, fields...)...)
	return &Logger{Logger: l}, nil
}

// NewNop returns a logger that discards everything — the default for tests
// and for embedders who don't want the store's internals on stdout.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a child logger scoped to subsystem (e.g. "store", "mvcc").
func (l *Logger) Named(subsystem string) *Logger {
	return &Logger{Logger: l.Logger.Named(subsystem)}
}

// Sync flushes any buffered log entries; callers should defer this at
// process shutdown. Errors from Sync on stdout/stderr are expected on some
// platforms and are safe to ignore.
func (l *Logger) Sync() error { return l.Logger.Sync() }
