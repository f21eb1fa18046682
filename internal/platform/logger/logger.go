package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so the rest of the service depends on a
// single logging surface.
type Logger struct {
	*zap.Logger
	config *LoggerConfig
}

var (
	global *Logger
	once   sync.Once
)

// NewLogger builds the process-wide logger from the LOG_* environment
// variables. The first call wins; later calls return the same instance.
func NewLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()

		zapConfig := encoderConfig(cfg)
		zapConfig.Level = zap.NewAtomicLevelAt(cfg.ToZapLevel())
		zapConfig.OutputPaths, zapConfig.ErrorOutputPaths = outputPaths(cfg)

		zl, err := zapConfig.Build(zap.AddCallerSkip(1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build logger (%v), using production defaults\n", err)
			zl, _ = zap.NewProduction()
		}

		global = &Logger{Logger: zl, config: cfg}
		global.Info("Logger initialized", zap.String("level", cfg.Level), zap.String("format", cfg.Format))
	})
	return global
}

// encoderConfig picks the base zap configuration for the requested
// format: console/text gets the colored development encoder, anything
// else is production JSON with ISO-8601 timestamps.
func encoderConfig(cfg *LoggerConfig) zap.Config {
	switch strings.ToLower(cfg.Format) {
	case "console", "text":
		c := zap.NewDevelopmentConfig()
		c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return c
	default:
		c := zap.NewProductionConfig()
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return c
	}
}

// outputPaths resolves where log lines go. A file target is combined
// with stdout/stderr so container logs stay useful; an uncreatable log
// directory falls back to stdout rather than failing startup.
func outputPaths(cfg *LoggerConfig) ([]string, []string) {
	switch cfg.OutputFile {
	case "stdout", "stderr":
		return []string{cfg.OutputFile}, []string{"stderr"}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create log directory for %q (%v), using stdout\n", cfg.OutputFile, err)
		return []string{"stdout"}, []string{"stderr"}
	}
	return []string{cfg.OutputFile, "stdout"}, []string{cfg.OutputFile, "stderr"}
}

// NewNop returns a logger that discards everything; handy in tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: DefaultConfig()}
}

// Named adds a new path segment to the logger's name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// With adds structured context to the logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}
