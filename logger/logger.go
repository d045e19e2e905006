package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry so components log with their own preset fields
type Logger struct {
	entry *logrus.Entry
}

// Init configures the global logrus formatter, output and level.
// An unknown level falls back to info.
func Init(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// SetOutput redirects the global logger, e.g. to stderr for CLI runs
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// New creates a Logger tagged with the component name
func New(component string) *Logger {
	return &Logger{
		entry: logrus.WithField("component", component),
	}
}

// Discard returns a Logger that drops everything, for tests and quiet CLI runs
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{entry: logrus.NewEntry(l)}
}

// WithField returns a copy of the logger with an extra field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithFields returns a copy of the logger with extra fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithError returns a copy of the logger carrying the error
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

// Debug logs at debug level
func (l *Logger) Debug(message string) {
	l.entry.Debug(message)
}

// Info logs at info level
func (l *Logger) Info(message string) {
	l.entry.Info(message)
}

// Warn logs at warning level
func (l *Logger) Warn(message string) {
	l.entry.Warn(message)
}

// Error logs at error level
func (l *Logger) Error(message string) {
	l.entry.Error(message)
}

// Fatal logs the message and terminates the process
func (l *Logger) Fatal(message string) {
	l.entry.Fatal(message)
}
