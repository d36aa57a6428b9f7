package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type correlationIDKey struct{}

// WithCorrelationID returns ctx carrying cid for log enrichment.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}

// CorrelationIDFromContext returns the request's correlation ID, if any.
func CorrelationIDFromContext(ctx context.Context) string {
	if cid, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return cid
	}
	return ""
}

// Logger is the structured logging interface used across the application.
type Logger interface {
	Info(ctx context.Context, message string, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})
	Debug(ctx context.Context, message string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

type Config struct {
	Level       string
	Format      string // json or text
	ServiceName string
	// Silent discards all output; set for the test environment so request
	// failures do not pollute test runs.
	Silent bool
}

type structuredLogger struct {
	logger *logrus.Logger
	fields map[string]interface{}
}

func NewStructuredLogger(config Config) Logger {
	logrusLogger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrusLogger.SetLevel(level)

	if config.Format == "text" {
		logrusLogger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	} else {
		logrusLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	if config.Silent {
		logrusLogger.SetOutput(io.Discard)
	} else {
		logrusLogger.SetOutput(os.Stdout)
	}

	return &structuredLogger{
		logger: logrusLogger,
		fields: map[string]interface{}{
			"service": config.ServiceName,
		},
	}
}

func (l *structuredLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Info(message)
}

func (l *structuredLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Warn(message)
}

func (l *structuredLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	l.entry(ctx, err, fields).Error(message)
}

func (l *structuredLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, nil, fields).Debug(message)
}

func (l *structuredLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &structuredLogger{logger: l.logger, fields: merged}
}

func (l *structuredLogger) entry(ctx context.Context, err error, fields map[string]interface{}) *logrus.Entry {
	logrusFields := logrus.Fields{}
	for k, v := range l.fields {
		logrusFields[k] = v
	}
	for k, v := range fields {
		logrusFields[k] = v
	}
	if cid := CorrelationIDFromContext(ctx); cid != "" {
		logrusFields["correlation_id"] = cid
	}
	if err != nil {
		logrusFields["error"] = err.Error()
	}
	return l.logger.WithFields(logrusFields)
}
