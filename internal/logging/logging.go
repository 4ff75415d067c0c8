// Package logging builds the zap logger used by the command line tool.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. Verbose enables debug
// output with caller information; otherwise only info and above is shown.
func New(verbose bool) *zap.Logger {
	level := zap.InfoLevel

	config := zap.NewProductionEncoderConfig()
	if verbose {
		level = zap.DebugLevel
		config = zap.NewDevelopmentEncoderConfig()
	}

	config.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.Lock(os.Stderr),
		level,
	)

	var opts []zap.Option
	if verbose {
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	}

	return zap.New(core, opts...)
}
