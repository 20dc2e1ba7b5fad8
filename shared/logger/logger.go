// Package logger provides the process-wide structured logger.
//
// Development builds log to the console at debug level; production builds
// (ENV=production) log JSON at info level. LOG_LEVEL overrides the level and
// LOG_FILE adds a size-rotated file sink.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// Init initialises the global logger once. Later calls are no-ops.
func Init() error {
	var initErr error
	once.Do(func() {
		var l *zap.Logger
		if getEnv("ENV", "development") == "production" {
			l, initErr = newProductionLogger()
		} else {
			l, initErr = newDevelopmentLogger()
		}
		if initErr != nil {
			return
		}
		logger = l
	})
	return initErr
}

func newDevelopmentLogger() (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.999"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := parseLevel(getEnv("LOG_LEVEL", "debug"), zapcore.DebugLevel)

	return build(zapcore.NewConsoleEncoder(encoderConfig), level, zap.Development())
}

func newProductionLogger() (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	level := parseLevel(getEnv("LOG_LEVEL", "info"), zapcore.InfoLevel)

	return build(zapcore.NewJSONEncoder(encoderConfig), level)
}

func build(encoder zapcore.Encoder, level zapcore.Level, opts ...zap.Option) (*zap.Logger, error) {
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}

	if logFile := getEnv("LOG_FILE", ""); logFile != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), zap.NewAtomicLevelAt(level))
	opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return zap.New(core, opts...), nil
}

func parseLevel(value string, fallback zapcore.Level) zapcore.Level {
	level, err := zapcore.ParseLevel(value)
	if err != nil {
		return fallback
	}
	return level
}

// Get returns the global logger, initialising a development logger if needed.
func Get() *zap.Logger {
	if logger == nil {
		if err := Init(); err != nil || logger == nil {
			return zap.NewNop()
		}
	}
	return logger
}

// Replace swaps the global logger. Tests use it to capture output.
func Replace(l *zap.Logger) func() {
	previous := logger
	logger = l
	return func() { logger = previous }
}

// Sync flushes buffered log entries.
func Sync() error {
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

func Debug(msg string, fields ...zap.Field) { Get().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { Get().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { Get().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { Get().Error(msg, fields...) }

func Fatal(msg string, fields ...zap.Field) { Get().Fatal(msg, fields...) }

// With creates a child logger with preset fields.
func With(fields ...zap.Field) *zap.Logger {
	return Get().WithOptions(zap.AddCallerSkip(-1)).With(fields...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
