package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/hanpama/resourcegraph/internal/eventbus"
	"github.com/hanpama/resourcegraph/internal/events"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup("", "resourcegraph", eventbus.New())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestAttach(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	bus := eventbus.New()
	defer Attach(bus, tp.Tracer("test"))()
	ctx := context.Background()

	eventbus.Emit(ctx, bus, events.SchemaBuildStart{BuildID: "b1", Resources: 2})
	eventbus.Emit(ctx, bus, events.TypeRegistered{BuildID: "b1", Name: "Book", Kind: "OBJECT"})
	eventbus.Emit(ctx, bus, events.SchemaBuildFinish{BuildID: "b1", Resources: 2, Types: 7})
	eventbus.Emit(ctx, bus, events.SchemaBuildStart{BuildID: "b2"})
	eventbus.Emit(ctx, bus, events.SchemaBuildFinish{BuildID: "b2", Err: errors.New("boom")})
	eventbus.Emit(ctx, bus, events.SchemaBuildFinish{BuildID: "unknown"})

	spans := rec.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "schema.build", ok.Name())
	assert.Contains(t, ok.Attributes(), attribute.String("resourcegraph.build_id", "b1"))
	assert.Contains(t, ok.Attributes(), attribute.Int("resourcegraph.type_count", 7))
	require.Len(t, ok.Events(), 1)
	assert.Equal(t, "type.registered", ok.Events()[0].Name)
	assert.Equal(t, codes.Unset, ok.Status().Code)

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "boom", failed.Status().Description)
}
