package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// Setup builds the service logger. Production encoder, info level,
// wrapped with otelzap so log lines carry the active trace context.
func Setup() *otelzap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}

	return otelzap.New(logger, otelzap.WithMinLevel(zapcore.InfoLevel))
}
