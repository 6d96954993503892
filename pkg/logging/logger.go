package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a supported log level name
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format is a supported log encoding
type Format string

const (
	// FormatStructured writes JSON lines
	FormatStructured Format = "structured"
	// FormatConsole writes human readable lines
	FormatConsole Format = "console"
)

var levels = map[Level]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

// Factory builds zap loggers with consistent configuration
type Factory struct {
	out io.Writer
}

// NewFactory creates a factory writing to stderr
func NewFactory() *Factory {
	return &Factory{out: os.Stderr}
}

// NewFactoryWithWriter creates a factory writing to w
func NewFactoryWithWriter(w io.Writer) *Factory {
	return &Factory{out: w}
}

// ParseLevel validates a level name
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levels[level]; !ok {
		return "", fmt.Errorf("unsupported log level: %s", s)
	}
	return level, nil
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatStructured, FormatConsole:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported log format: %s", s)
	}
}

// CreateLogger produces a logger honoring the requested level and format
func (f *Factory) CreateLogger(level Level, format Format) (*zap.Logger, error) {
	zapLevel, ok := levels[level]
	if !ok {
		return nil, fmt.Errorf("unsupported log level: %s", level)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case FormatStructured:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case FormatConsole:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(f.out)), zap.NewAtomicLevelAt(zapLevel))
	return zap.New(core), nil
}

// FromStrings parses level and format names and builds a logger
func (f *Factory) FromStrings(level, format string) (*zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	fm, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return f.CreateLogger(l, fm)
}
