package schema

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/buildid"
	"github.com/hanpama/resourcegraph/internal/eventbus"
	"github.com/hanpama/resourcegraph/internal/events"
	"github.com/hanpama/resourcegraph/internal/filter"
	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/naming"
	"github.com/hanpama/resourcegraph/internal/pagination"
	"github.com/hanpama/resourcegraph/internal/resolver"
)

// Options configures a Builder.
type Options struct {
	Metadata         metadata.Source
	Filters          filter.Locator
	NameConverter    naming.NameConverter
	Resolvers        resolver.Factories
	Pagination       pagination.Policy
	NestingSeparator string
	// Types are hand-authored types registered before any resource type.
	// BuiltinTypes are always registered first.
	Types []TypeProvider
}

// Builder synthesizes GraphQL schemas from resource metadata.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder. A zero pagination policy is replaced by
// pagination.DefaultPolicy.
func NewBuilder(opts Options) *Builder {
	if opts.Pagination == (pagination.Policy{}) {
		opts.Pagination = pagination.DefaultPolicy()
	}
	return &Builder{opts: opts}
}

// Build runs one synthesis pass. Every call starts from an empty registry.
func (b *Builder) Build(ctx context.Context) (*Schema, error) {
	if b.opts.Metadata == nil {
		return nil, fmt.Errorf("schema builder requires metadata")
	}
	ctx, id := buildid.NewContext(ctx)
	classes := b.opts.Metadata.ResourceClasses()
	started := time.Now()
	eventbus.Publish(ctx, events.SchemaBuildStart{BuildID: id, Resources: len(classes)})

	s, err := b.build(ctx, id, classes)

	finish := events.SchemaBuildFinish{BuildID: id, Resources: len(classes), Err: err, Duration: time.Since(started)}
	if s != nil {
		finish.Types = len(s.registry.Names())
	}
	eventbus.Publish(ctx, finish)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Builder) build(ctx context.Context, id string, classes []string) (*Schema, error) {
	registry := NewRegistry()
	registry.OnSet(func(name string, t graphql.Type) {
		eventbus.Publish(ctx, events.TypeRegistered{BuildID: id, Name: name, Kind: KindOf(t)})
	})

	collected, err := Collect(append(BuiltinTypes(), b.opts.Types...))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(collected))
	for name := range collected {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		registry.Set(name, collected[name])
	}

	types := NewTypeBuilder(registry, b.opts.Metadata, b.opts.Pagination)
	converter := NewConverter(types, registry, b.opts.Metadata)
	fields := NewFieldsBuilder(FieldsBuilderConfig{
		Metadata:         b.opts.Metadata,
		Types:            types,
		Converter:        converter,
		Filters:          b.opts.Filters,
		NameConverter:    b.opts.NameConverter,
		Resolvers:        b.opts.Resolvers,
		Pagination:       b.opts.Pagination,
		NestingSeparator: b.opts.NestingSeparator,
	})
	types.SetFieldsBuilder(fields)

	query := fields.GetNodeQueryFields()
	mutation := graphql.Fields{}
	subscription := graphql.Fields{}

	for _, class := range classes {
		res, err := b.opts.Metadata.Resource(class)
		if err != nil {
			return nil, err
		}
		for _, op := range res.Operations {
			var (
				f      graphql.Fields
				target graphql.Fields
			)
			switch op.Kind {
			case metadata.KindQueryCollection:
				f, err = fields.GetCollectionQueryFields(res.Class, op, res.FieldConfig(op))
				target = query
			case metadata.KindQuery:
				f, err = fields.GetItemQueryFields(res.Class, op, res.FieldConfig(op))
				target = query
			case metadata.KindSubscription:
				f, err = fields.GetSubscriptionFields(res.Class, op)
				target = subscription
			case metadata.KindMutation:
				f, err = fields.GetMutationFields(res.Class, op)
				target = mutation
			}
			if err != nil {
				return nil, err
			}
			mergeFields(target, f)
		}
	}

	s := &Schema{registry: registry}
	s.Query = graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: query})
	registry.Set("Query", s.Query)
	if len(mutation) > 0 {
		s.Mutation = graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutation})
		registry.Set("Mutation", s.Mutation)
	}
	if len(subscription) > 0 {
		s.Subscription = graphql.NewObject(graphql.ObjectConfig{Name: "Subscription", Fields: subscription})
		registry.Set("Subscription", s.Subscription)
	}

	executable, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:        s.Query,
		Mutation:     s.Mutation,
		Subscription: s.Subscription,
		Types:        registeredTypes(registry),
	})
	if err := types.Err(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assemble schema: %w", err)
	}
	s.executable = &executable
	return s, nil
}

// mergeFields adds src to dst. The first field registered under a name wins.
func mergeFields(dst, src graphql.Fields) {
	for name, f := range src {
		if _, ok := dst[name]; !ok {
			dst[name] = f
		}
	}
}

func registeredTypes(r *Registry) []graphql.Type {
	all := r.All()
	out := make([]graphql.Type, 0, len(all))
	for _, name := range r.SortedNames() {
		out = append(out, all[name])
	}
	return out
}

// KindOf returns the introspection kind of a named type.
func KindOf(t graphql.Type) string {
	switch t.(type) {
	case *graphql.Object:
		return "OBJECT"
	case *graphql.InputObject:
		return "INPUT_OBJECT"
	case *graphql.Interface:
		return "INTERFACE"
	case *graphql.Enum:
		return "ENUM"
	case *graphql.Scalar:
		return "SCALAR"
	case *graphql.Union:
		return "UNION"
	}
	return "UNKNOWN"
}
