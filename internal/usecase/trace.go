package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("fantasy-statline/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan opens a child span only when ctx already carries a valid parent.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func sportAttrs(sp sport.Sport) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("statline.sport", string(sp))}
}

func sportDayAttrs(sp sport.Sport, day time.Time) []attribute.KeyValue {
	return append(sportAttrs(sp), attribute.String("statline.date", day.Format(time.DateOnly)))
}
