package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	ConsoleEncoding = "console"
	JSONEncoding    = "json"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level and encoding.
// The first call initializes the logger; subsequent calls ignore the arguments
// and return the already initialized instance.
func Get(level, encoding string) *Logger {
	once.Do(func() {
		globalLogger = New(level, encoding)
	})
	return globalLogger
}

// New builds a standalone logger; most callers want Get.
func New(level, encoding string) *Logger {
	return newZapLogger(level, encoding)
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Printf lets the logger stand in for the migration tool's logger.
func (l *Logger) Printf(format string, args ...any) {
	l.Infof(format, args...)
}
