package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// New returns a JSON logger writing to stdout at the given level.
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	switch Level(level) {
	case LevelDebug:
		logger.SetLevel(logrus.DebugLevel)
	case LevelInfo, "":
		logger.SetLevel(logrus.InfoLevel)
	case LevelWarn, "warning":
		logger.SetLevel(logrus.WarnLevel)
	case LevelError:
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
		logger.WithField("logLevel", level).Warn("Unknown log level, defaulting to info")
	}

	return logger
}
