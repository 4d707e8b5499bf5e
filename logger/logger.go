// Package logger provides the structured logging used across the
// buffer pool subsystem. It wraps a single package-level logrus
// instance the way the wider corpus's own logger package does,
// trimmed to the handful of levels the pool actually emits.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance. Components log through the
// package-level helpers below rather than holding their own
// *logrus.Logger, so a single SetLevel/SetOutput call affects the
// whole subsystem.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}

// SetLevel adjusts the minimum level emitted. Tests that want quiet
// output during eviction storms call SetLevel(logrus.WarnLevel).
func SetLevel(level logrus.Level) {
	Log.SetLevel(level)
}

func Debugf(format string, args ...interface{}) {
	Log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Log.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	Log.Errorf(format, args...)
}

// WithField mirrors logrus.WithField for call sites that want
// structured key/value pairs instead of a formatted message.
func WithField(key string, value interface{}) *logrus.Entry {
	return Log.WithField(key, value)
}
