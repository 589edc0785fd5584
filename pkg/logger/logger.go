package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// Options selects the level, encoding and destination of the process logger.
// Output is "stdout", "stderr" or a file path opened for append.
type Options struct {
	Level  string
	Format string
	Output string
}

// Log is usable before Init so library code and tests never see nil.
var Log = logrus.New()

// Init replaces Log. On error the previous logger stays in place.
func Init(opts Options) error {
	out, err := destination(opts.Output)
	if err != nil {
		return fmt.Errorf("open log output %q: %w", opts.Output, err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(formatter(opts.Format))

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	Log = l
	return nil
}

func formatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
	return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: timestampFormat}
}

func destination(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	return os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Discard silences Log.
func Discard() {
	Log.SetOutput(io.Discard)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}

func Info(args ...interface{}) {
	Log.Info(args...)
}

func Error(args ...interface{}) {
	Log.Error(args...)
}

func Debug(args ...interface{}) {
	Log.Debug(args...)
}
