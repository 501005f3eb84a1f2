package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// Unknown level strings log everything.
const defaultZapLevel = zapcore.DebugLevel

func toZapLevel(levelStr string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(levelStr))
	if err != nil {
		return defaultZapLevel
	}
	return lvl
}

func newEncoder(encoding string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if encoding == JSONEncoding {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// newZapLogger writes errors and above to stderr and everything else to stdout.
func newZapLogger(levelStr, encoding string) *Logger {
	min := zap.NewAtomicLevelAt(toZapLevel(levelStr))
	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return min.Enabled(l) && l < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return min.Enabled(l) && l >= zapcore.ErrorLevel
	})

	enc := newEncoder(encoding)
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), low),
		zapcore.NewCore(enc.Clone(), zapcore.Lock(os.Stderr), high),
	)
	return &Logger{SugaredLogger: zap.New(core, zap.AddCaller()).Sugar()}
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(kv...)}
}
