// Package logger builds the zap logger; the terminal owns stdout, so logs go to a file
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level string
	File  string
}

// ParseLevel maps a level name to zap, defaulting to info
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a JSON file logger, or a no-op logger when no file is configured
func New(cfg Config) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(f),
		ParseLevel(cfg.Level),
	)

	return zap.New(core, zap.AddCaller()), nil
}
