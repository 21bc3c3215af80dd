package utils

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger the same way the teacher's utils.Logger
// does: JSON output, LOG_LEVEL-driven level, structured field helpers.
type Logger struct {
	*logrus.Logger
}

// Fields is a structured set of log fields.
type Fields map[string]any

var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger()
}

// NewLogger builds a logger reading LOG_LEVEL from the environment,
// defaulting to info.
func NewLogger() *Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetOutput(os.Stdout)

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return &Logger{Logger: logger}
}

// GetLogger returns the process-wide default logger.
func GetLogger() *Logger {
	return defaultLogger
}

// WithFields adds structured fields to the log entry.
func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}
