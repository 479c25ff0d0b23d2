package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// manualTraceIDPrefix marks trace ids generated without an active span.
const manualTraceIDPrefix = "man-"

// GetStartingTraceID returns the trace id of the span in ctx.
// Without a valid span it generates a prefixed uuid, so logs can still be correlated
// when otel tracing is not initialized.
func GetStartingTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}
	return manualTraceIDPrefix + uuid.NewString()
}
