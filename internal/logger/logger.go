// Package logger holds the global structured logger of the command-line tool.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It discards everything until [Initialize] is
// called.
var Logger = zap.NewNop().Sugar()

// Initialize sets up the global logger. JSON output is meant for machines and
// console output for humans. Both write to stderr so that expanded code on
// stdout stays clean. verbose enables debug messages.
func Initialize(jsonOutput, verbose bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var zapLogger *zap.Logger
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}

		var err error
		zapLogger, err = config.Build()
		if err != nil {
			return err
		}
	} else {
		zapLogger = zap.New(zapcore.NewCore(newConsoleEncoder(), zapcore.Lock(os.Stderr), level))
	}

	Logger = zapLogger.Sugar()
	return nil
}

// Set replaces the global logger. A nil logger discards everything.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l.Sugar()
}

// newConsoleEncoder returns a calm encoder: no timestamps and no callers,
// just the level and the message with its fields.
func newConsoleEncoder() zapcore.Encoder {
	config := zap.NewDevelopmentEncoderConfig()
	config.TimeKey = ""
	config.CallerKey = ""
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(config)
}

func Debugw(msg string, keysAndValues ...any) { Logger.Debugw(msg, keysAndValues...) }
func Infow(msg string, keysAndValues ...any)  { Logger.Infow(msg, keysAndValues...) }
func Warnw(msg string, keysAndValues ...any)  { Logger.Warnw(msg, keysAndValues...) }
func Errorw(msg string, keysAndValues ...any) { Logger.Errorw(msg, keysAndValues...) }
