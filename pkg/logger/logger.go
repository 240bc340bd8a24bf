package logger

import (
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	ServiceName string
	Level       string
	LokiURL     string
}

// Logger is the otelzap logger used across the app. Logging through
// Ctx(ctx) attaches the active trace to each entry.
type Logger struct {
	*otelzap.Logger

	loki *LokiWriter
}

func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel

	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)

		if err != nil {
			return nil, err
		}

		level = parsed
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "timestamp"

	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	var loki *LokiWriter

	if opts.LokiURL != "" {
		loki = NewLokiWriter(opts.LokiURL, map[string]string{"service": opts.ServiceName})
		cores = append(cores, zapcore.NewCore(encoder, loki, level))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).
		With(zap.String("service", opts.ServiceName))

	return &Logger{
		Logger: otelzap.New(zapLogger),
		loki:   loki,
	}, nil
}

func NewNop() *Logger {
	return &Logger{Logger: otelzap.New(zap.NewNop())}
}

// Sync flushes zap and stops the Loki shipper, if any.
func (l *Logger) Sync() error {
	err := l.Logger.Sync()

	if l.loki != nil {
		l.loki.Close()
	}

	return err
}
