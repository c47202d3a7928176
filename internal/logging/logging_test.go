package logging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hanpama/resourcegraph/internal/config"
	"github.com/hanpama/resourcegraph/internal/eventbus"
	"github.com/hanpama/resourcegraph/internal/events"
)

func TestNew(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = New(config.LogConfig{Disabled: true})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))

	_, err = New(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestSubscribe(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := eventbus.New()
	unsubscribe := Subscribe(bus, zap.New(core))
	ctx := context.Background()

	eventbus.Emit(ctx, bus, events.SchemaBuildStart{BuildID: "b1", Resources: 2})
	eventbus.Emit(ctx, bus, events.TypeRegistered{BuildID: "b1", Name: "Book", Kind: "OBJECT"})
	eventbus.Emit(ctx, bus, events.SchemaBuildFinish{BuildID: "b1", Resources: 2, Types: 9, Duration: time.Millisecond})
	eventbus.Emit(ctx, bus, events.SchemaBuildFinish{BuildID: "b2", Err: errors.New("boom")})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "schema build started", entries[0].Message)
	assert.Equal(t, int64(2), entries[0].ContextMap()["resources"])
	assert.Equal(t, "schema build finished", entries[1].Message)
	assert.Equal(t, int64(9), entries[1].ContextMap()["types"])
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])

	unsubscribe()
	eventbus.Emit(ctx, bus, events.SchemaBuildStart{BuildID: "b3"})
	assert.Equal(t, 3, logs.Len())
}

func TestSubscribeDebugTypes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := eventbus.New()
	defer Subscribe(bus, zap.New(core))()

	eventbus.Emit(context.Background(), bus, events.TypeRegistered{BuildID: "b1", Name: "Book", Kind: "OBJECT"})
	entries := logs.FilterMessage("type registered").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "Book", entries[0].ContextMap()["type"])
}
