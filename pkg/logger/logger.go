package logger

import (
	"fmt"

	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Debugf(template string, args ...interface{})
}

func New(cfg config.Logger) (Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse level error: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)

	if len(cfg.Output) != 0 {
		zc.OutputPaths = cfg.Output
	}

	if len(cfg.ErrOutput) != 0 {
		zc.ErrorOutputPaths = cfg.ErrOutput
	}

	zl, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger error: %w", err)
	}

	return zl.Sugar(), nil
}
