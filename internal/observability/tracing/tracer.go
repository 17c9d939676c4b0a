package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the service-wide tracer; spans created here pick up whatever
// provider main configures.
var tracer = otel.Tracer("portfolio-backend")

// GetTracer exposes the tracer for code that opens its own spans, such as
// the source fetch fan-out:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "fetch-sources")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
