package zap

import (
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const tag = "[PARTYROCK]"

var (
	infoTag  = color.New(color.BgBlue).Sprint(tag)
	alertTag = color.New(color.BgRed).Sprint(tag)
)

// taggedEncoder writes "<tag> <LEVEL> | <time> | " in front of every console entry.
type taggedEncoder struct {
	zapcore.Encoder
	cfg  zapcore.EncoderConfig
	pool buffer.Pool
}

func newTaggedEncoder(cfg zapcore.EncoderConfig) *taggedEncoder {
	return &taggedEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
		cfg:     cfg,
		pool:    buffer.NewPool(),
	}
}

func (e *taggedEncoder) Clone() zapcore.Encoder {
	return &taggedEncoder{
		Encoder: e.Encoder.Clone(),
		cfg:     e.cfg,
		pool:    e.pool,
	}
}

func (e *taggedEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer line.Free()

	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	buf := e.pool.Get()
	buf.AppendString(entryTag(entry.Level))
	buf.AppendByte(' ')
	buf.AppendString(entry.Level.CapitalString())
	buf.AppendString(" | ")
	buf.AppendString(ts.Format(time.RFC3339))
	buf.AppendString(" | ")

	if _, err := buf.Write(line.Bytes()); err != nil {
		buf.Free()
		return nil, err
	}

	return buf, nil
}

func entryTag(lvl zapcore.Level) string {
	if lvl == zapcore.InfoLevel {
		return infoTag
	}

	return alertTag
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
	}
}

// NewLogger returns a JSON logger at info level in production mode and a colored
// console logger at debug level otherwise.
func NewLogger(mode string) *zap.Logger {
	cfg := encoderConfig()

	if mode == "production" {
		return zap.Must(zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
			Encoding:         "json",
			EncoderConfig:    cfg,
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		}.Build())
	}

	cfg.LevelKey = zapcore.OmitKey

	return zap.New(zapcore.NewCore(
		newTaggedEncoder(cfg),
		zapcore.AddSync(colorable.NewColorableStdout()),
		zapcore.DebugLevel,
	))
}
