package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	formatJSON    = "json"
	formatConsole = "console"
)

// Prm groups parameters of the logger.
type Prm struct {
	// Level of the logger, see zap.ParseAtomicLevel for supported values.
	Level string

	// Encoding is "console" or "json".
	Encoding string

	// Timestamp turns on ISO8601 timestamps of the records.
	Timestamp bool

	// File is a path of the rotated log file. Records are written
	// to stdout if empty.
	File string

	// Rotation settings, see lumberjack.Logger.
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// New builds zap logger from the parameters.
func New(prm Prm) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(prm.Level)
	if err != nil {
		return nil, err
	}

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = prm.Encoding
	c.Sampling = nil

	if prm.Timestamp {
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		c.EncoderConfig.EncodeTime = func(_ time.Time, _ zapcore.PrimitiveArrayEncoder) {}
	}

	opts := []zap.Option{
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	}

	if prm.File == "" {
		return c.Build(opts...)
	}

	var enc zapcore.Encoder

	switch prm.Encoding {
	case formatConsole:
		enc = zapcore.NewConsoleEncoder(c.EncoderConfig)
	case formatJSON:
		enc = zapcore.NewJSONEncoder(c.EncoderConfig)
	default:
		return nil, fmt.Errorf("unsupported logger encoding %q", prm.Encoding)
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   prm.File,
		MaxSize:    prm.MaxSize,
		MaxBackups: prm.MaxBackups,
		MaxAge:     prm.MaxAge,
		Compress:   prm.Compress,
	})

	return zap.New(zapcore.NewCore(enc, w, lvl), opts...), nil
}
