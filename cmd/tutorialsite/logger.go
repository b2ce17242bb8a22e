package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a console logger on w without timestamps.
// --verbose enables debug output; --quiet keeps errors only.
func newLogger(w io.Writer, flags commonFlags) *zap.Logger {
	level := zapcore.InfoLevel
	switch {
	case flags.quiet:
		level = zapcore.ErrorLevel
	case flags.verbose:
		level = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}
