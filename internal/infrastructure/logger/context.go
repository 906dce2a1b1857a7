package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type (
	loggerKey      struct{}
	correlationKey struct{}
)

// correlation is what a request carries for log lines. It is never used for
// authorization.
type correlation struct {
	requestID string
	userID    string
	branchID  string
}

func correlationFrom(ctx context.Context) correlation {
	c, _ := ctx.Value(correlationKey{}).(correlation)
	return c
}

func withCorrelation(ctx context.Context, update func(*correlation)) context.Context {
	c := correlationFrom(ctx)
	update(&c)
	return context.WithValue(ctx, correlationKey{}, c)
}

func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext falls back to a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withCorrelation(ctx, func(c *correlation) { c.requestID = requestID })
}

// WithUser records the authenticated caller. branchID is empty for admins.
func WithUser(ctx context.Context, userID, branchID string) context.Context {
	return withCorrelation(ctx, func(c *correlation) {
		c.userID = userID
		c.branchID = branchID
	})
}

func GetRequestID(ctx context.Context) string { return correlationFrom(ctx).requestID }
func GetUserID(ctx context.Context) string    { return correlationFrom(ctx).userID }
func GetBranchID(ctx context.Context) string  { return correlationFrom(ctx).branchID }

// L returns the request logger with correlation fields attached.
//
//	logger.L(ctx).Info("Invoice created", zap.String("invoice_id", id))
func L(ctx context.Context) *zap.Logger {
	return Enrich(ctx, FromContext(ctx))
}

// Enrich attaches trace, request and caller fields found in ctx to l.
func Enrich(ctx context.Context, l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	fields := correlationFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func correlationFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.Stringer("trace_id", sc.TraceID()),
			zap.Stringer("span_id", sc.SpanID()),
		)
	}
	c := correlationFrom(ctx)
	for _, f := range []struct{ key, value string }{
		{"request_id", c.requestID},
		{"user_id", c.userID},
		{"branch_id", c.branchID},
	} {
		if f.value != "" {
			fields = append(fields, zap.String(f.key, f.value))
		}
	}
	return fields
}
