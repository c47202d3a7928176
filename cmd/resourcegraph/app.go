package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hanpama/resourcegraph/internal/config"
	"github.com/hanpama/resourcegraph/internal/eventbus"
	"github.com/hanpama/resourcegraph/internal/filter"
	"github.com/hanpama/resourcegraph/internal/logging"
	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/otel"
	"github.com/hanpama/resourcegraph/internal/provider"
	"github.com/hanpama/resourcegraph/internal/resolver"
	"github.com/hanpama/resourcegraph/internal/schema"
)

// app wires configuration, observers and the schema provider for a single
// command invocation.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider *provider.Provider
	closers  []func(context.Context) error
}

func newApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	v := config.New(configPath)
	for key, name := range map[string]string{
		"resources":      "resources",
		"log.level":      "log-level",
		"name_converter": "name-converter",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	bus := eventbus.New()
	eventbus.Use(bus)
	a := &app{cfg: cfg, logger: logger}
	unsubscribe := logging.Subscribe(bus, logger)
	a.closers = append(a.closers, func(context.Context) error {
		unsubscribe()
		eventbus.Use(nil)
		_ = logger.Sync()
		return nil
	})

	shutdown, err := otel.Setup(cfg.Otel.Endpoint, cfg.Otel.Service, bus)
	if err != nil {
		_ = a.close(context.Background())
		return nil, fmt.Errorf("otel setup: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	a.provider = provider.New(provider.BuilderFunc(a.build))
	return a, nil
}

func (a *app) build(ctx context.Context) (*schema.Schema, error) {
	doc, err := metadata.LoadPath(ctx, a.cfg.Resources)
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	filters, err := filter.FromDeclarations(doc.Filters, doc.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load filters: %w", err)
	}
	policy := a.cfg.Policy()
	store := resolver.NewMemoryStore()
	return schema.NewBuilder(schema.Options{
		Metadata:         doc.Catalog,
		Filters:          filters,
		NameConverter:    a.cfg.Converter(),
		Resolvers:        resolver.Defaults(store, store, policy, a.cfg.MercureHub),
		Pagination:       policy,
		NestingSeparator: a.cfg.NestingSeparator,
	}).Build(ctx)
}

// close runs the closers in reverse order and returns the first error.
func (a *app) close(ctx context.Context) error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
