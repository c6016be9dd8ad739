package logging

import (
	"fmt"
	"github.com/thluiz/vox/internal/domain/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"os"
	"strings"
)

// New builds the process logger. Progress goes to stdout; error and above go
// to stderr.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg config.LogConfig, out, errOut io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	enc, err := encoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(out)), low),
		zapcore.NewCore(enc.Clone(), zapcore.Lock(zapcore.AddSync(errOut)), high),
	)
	return zap.New(core), nil
}

func encoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "", "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.TimeKey = ""
		ec.CallerKey = ""
		ec.NameKey = "logger"
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
