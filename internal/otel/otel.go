// Package otel exports schema build spans over OTLP.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hanpama/resourcegraph/internal/eventbus"
	"github.com/hanpama/resourcegraph/internal/events"
)

// Setup configures OpenTelemetry and attaches a span subscriber to b.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string, b *eventbus.Bus) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe := Attach(b, tp.Tracer("resourcegraph"))
	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

// Attach opens a schema.build span for every build published on b.
func Attach(b *eventbus.Bus, tracer trace.Tracer) (unsubscribe func()) {
	s := &subscriber{tracer: tracer}
	return s.register(b)
}

type subscriber struct {
	tracer trace.Tracer
	spans  sync.Map // build id -> trace.Span
}

func (s *subscriber) register(b *eventbus.Bus) func() {
	unsubs := []func(){
		eventbus.On(b, func(ctx context.Context, e events.SchemaBuildStart) {
			_, span := s.tracer.Start(ctx, "schema.build")
			span.SetAttributes(
				attribute.String("resourcegraph.build_id", e.BuildID),
				attribute.Int("resourcegraph.resource_count", e.Resources),
			)
			s.spans.Store(e.BuildID, span)
		}),
		eventbus.On(b, func(ctx context.Context, e events.TypeRegistered) {
			v, ok := s.spans.Load(e.BuildID)
			if !ok {
				return
			}
			v.(trace.Span).AddEvent("type.registered", trace.WithAttributes(
				attribute.String("graphql.type.name", e.Name),
				attribute.String("graphql.type.kind", e.Kind),
			))
		}),
		eventbus.On(b, func(ctx context.Context, e events.SchemaBuildFinish) {
			v, ok := s.spans.LoadAndDelete(e.BuildID)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int("resourcegraph.type_count", e.Types))
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
			}
			span.End()
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
