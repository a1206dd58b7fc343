// Package logger builds the application's zap logger and provides field
// helpers shared by the pipeline, server, and CLI.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured log field keys shared across components.
const (
	// FieldHash is the SHA-256 digest of the posting under analysis.
	FieldHash = "posting_hash"
	// FieldSource names where the posting came from (file path, "stdin",
	// or a request ID).
	FieldSource = "source"
)

// New builds the process logger. json selects the JSON encoding over
// console output; debug lowers the level to Debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields,
// trimming whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger. A nil logger
// becomes a no-op logger so callers never have to guard their log sites.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AnalysisFields returns the standard fields identifying one posting
// analysis. Empty values are omitted.
func AnalysisFields(hash, source string) []zap.Field {
	return StringFields(
		StringField{Key: FieldHash, Value: hash},
		StringField{Key: FieldSource, Value: source},
	)
}

// WithAnalysis attaches the standard analysis fields to the logger.
func WithAnalysis(logger *zap.Logger, hash, source string) *zap.Logger {
	return WithFields(logger, AnalysisFields(hash, source)...)
}
