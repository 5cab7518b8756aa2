package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level, encoding and destination of the process logger.
type Options struct {
	Level  string
	Format string // "json" or "console"
	File   string // extra output path, stderr is always written
}

// NewLogger builds a production logger. Unknown levels fall back to info and
// unknown formats to json.
func NewLogger(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	l, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		l = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(l)

	if opts.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.File != "" {
		config.OutputPaths = append(config.OutputPaths, opts.File)
	}

	return config.Build()
}
