package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// std is the process-wide logger. InitLog rewires it to tee into a file;
// before that everything goes to stderr only.
var (
	std     = logrus.New()
	logFile *os.File
)

func init() {
	std.SetOutput(os.Stderr)
	std.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if lvl, err := logrus.ParseLevel(os.Getenv("PARLEY_LOG_LEVEL")); err == nil {
		std.SetLevel(lvl)
	}
}

// InitLog starts writing log output to the given file in addition to stderr.
func InitLog(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	logFile = f
	std.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// FlushLog closes the log file, if one was opened.
func FlushLog() {
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
		std.SetOutput(os.Stderr)
	}
}

// SetLevel changes the log level at runtime ("debug", "info", "warn", "error").
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }
func Info(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(format string, args ...interface{}) { std.Errorf(format, args...) }
func Fatal(format string, args ...interface{}) { std.Fatalf(format, args...) }

// The X variants tag the entry with the emitting module name.

func DebugX(module, format string, args ...interface{}) {
	std.WithField("module", module).Debugf(format, args...)
}

func InfoX(module, format string, args ...interface{}) {
	std.WithField("module", module).Infof(format, args...)
}

func WarnX(module, format string, args ...interface{}) {
	std.WithField("module", module).Warnf(format, args...)
}

func ErrorX(module, format string, args ...interface{}) {
	std.WithField("module", module).Errorf(format, args...)
}
