package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	SkipPaths   []string // e.g. probes
}

// TracingWithConfig starts a server span per request named after the matched
// route ("GET /api/v1/stock/:id"). Requests to SkipPaths are not traced.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}
	return otelgin.Middleware(cfg.ServiceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !skip[r.URL.Path]
	}))
}

// TracingAttributeInjector tags the request span with the request ID and
// the authenticated caller. It must run after JWTAuth.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			span.SetAttributes(callerAttributes(c)...)
		}
		c.Next()
	}
}

func callerAttributes(c *gin.Context) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if requestID := c.GetString(RequestIDKey); requestID != "" {
		attrs = append(attrs, attribute.String("request_id", requestID))
	}
	p, ok := GetPrincipal(c)
	if !ok {
		return attrs
	}
	attrs = append(attrs,
		telemetry.AttrUserID.String(p.UserID.String()),
		attribute.String("role", string(p.Role)),
	)
	if p.BranchID != nil {
		attrs = append(attrs, telemetry.AttrBranchID.String(p.BranchID.String()))
	}
	return attrs
}

// SpanErrorMarker records the outcome of a failed request on its span. Every
// 4xx and 5xx marks the span failed; when a handler reported a domain error
// its kind and code are attached so rejected sales or transfers can be found
// by code.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		status := c.Writer.Status()
		if !span.IsRecording() || status < http.StatusBadRequest {
			return
		}
		span.SetStatus(codes.Error, http.StatusText(status))
		span.SetAttributes(telemetry.AttrHTTPStatusCode.Int(status))
		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last().Err
		span.SetAttributes(attribute.String("error.message", last.Error()))
		if de := domainError(last); de != nil {
			span.SetAttributes(
				attribute.String("error.kind", string(de.Kind)),
				attribute.String("error.code", de.Code),
			)
		}
	}
}

func domainError(err error) *shared.DomainError {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
