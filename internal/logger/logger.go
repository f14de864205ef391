package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Global logger instance
	logger *zap.Logger
	// Global sugared logger instance
	sugar *zap.SugaredLogger
	// Ensure initialization happens only once
	once sync.Once
)

// Init initializes the global logger with the given log level.
// Valid levels: debug, info, warn, error, dpanic, panic, fatal.
// When filePath is non-empty, entries are also written to that file
// with rotation (10 MB per file, 3 backups, 28 days retention).
func Init(level, filePath string) {
	once.Do(func() {
		var zapLevel zapcore.Level
		if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
			zapLevel = zap.InfoLevel
		}

		encoderConfig := zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}

		sink := zapcore.AddSync(os.Stdout)
		if filePath != "" {
			rotated := zapcore.AddSync(&lumberjack.Logger{
				Filename:   filePath,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			})
			sink = zapcore.NewMultiWriteSyncer(sink, rotated)
		}

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			sink,
			zapLevel,
		)

		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
		sugar = logger.Sugar()
	})
}

// Sugar returns the global sugared logger, initializing at info level
// if Init was never called.
func Sugar() *zap.SugaredLogger {
	if sugar == nil {
		Init("info", "")
	}
	return sugar
}

// GetLogger returns the global zap logger.
func GetLogger() *zap.Logger {
	if logger == nil {
		Init("info", "")
	}
	return logger
}

// Sync flushes any buffered log entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// Debug logs a message at debug level.
func Debug(args ...interface{}) {
	Sugar().Debug(args...)
}

// Info logs a message at info level.
func Info(args ...interface{}) {
	Sugar().Info(args...)
}

// Warn logs a message at warn level.
func Warn(args ...interface{}) {
	Sugar().Warn(args...)
}

// Error logs a message at error level.
func Error(args ...interface{}) {
	Sugar().Error(args...)
}

// Fatal logs a message at fatal level and then calls os.Exit(1).
func Fatal(args ...interface{}) {
	Sugar().Fatal(args...)
}

// Debugf logs a formatted message at debug level.
func Debugf(template string, args ...interface{}) {
	Sugar().Debugf(template, args...)
}

// Infof logs a formatted message at info level.
func Infof(template string, args ...interface{}) {
	Sugar().Infof(template, args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(template string, args ...interface{}) {
	Sugar().Warnf(template, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(template string, args ...interface{}) {
	Sugar().Errorf(template, args...)
}

// Fatalf logs a formatted message at fatal level and then calls os.Exit(1).
func Fatalf(template string, args ...interface{}) {
	Sugar().Fatalf(template, args...)
}
