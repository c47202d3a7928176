// Package logging builds the zap logger and logs schema build events.
package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hanpama/resourcegraph/internal/config"
	"github.com/hanpama/resourcegraph/internal/eventbus"
	"github.com/hanpama/resourcegraph/internal/events"
)

// New builds a logger from cfg. A disabled config yields a no-op logger.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Disabled {
		return zap.NewNop(), nil
	}
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// Subscribe logs the build events published on b. The returned function
// detaches the logger.
func Subscribe(b *eventbus.Bus, logger *zap.Logger) (unsubscribe func()) {
	unsubs := []func(){
		eventbus.On(b, func(ctx context.Context, e events.SchemaBuildStart) {
			logger.Info("schema build started",
				zap.String("buildID", e.BuildID),
				zap.Int("resources", e.Resources),
			)
		}),
		eventbus.On(b, func(ctx context.Context, e events.SchemaBuildFinish) {
			fields := []zap.Field{
				zap.String("buildID", e.BuildID),
				zap.Int("resources", e.Resources),
				zap.Int("types", e.Types),
				zap.Duration("duration", e.Duration),
			}
			if e.Err != nil {
				logger.Error("schema build failed", append(fields, zap.Error(e.Err))...)
				return
			}
			logger.Info("schema build finished", fields...)
		}),
		eventbus.On(b, func(ctx context.Context, e events.TypeRegistered) {
			if ce := logger.Check(zapcore.DebugLevel, "type registered"); ce != nil {
				ce.Write(
					zap.String("buildID", e.BuildID),
					zap.String("type", e.Name),
					zap.String("kind", e.Kind),
				)
			}
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
