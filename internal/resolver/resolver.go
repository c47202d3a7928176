// Package resolver produces the field resolvers attached to synthesized
// schema fields.
package resolver

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/pagination"
)

// ItemResourceClassKey marks a resolved item with its resource class. The
// Node interface reads it to pick the concrete type.
const ItemResourceClassKey = "#itemResourceClass"

// Factory returns a resolver bound to a resource class, the class of the
// root field, and the operation in play.
type Factory interface {
	Resolver(resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn

func (f FactoryFunc) Resolver(resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn {
	return f(resourceClass, rootClass, op)
}

// Factories groups the resolver factories the schema builder consumes.
type Factories struct {
	Item         Factory
	Collection   Factory
	Mutation     Factory
	Subscription Factory
}

// Defaults wires the default factories over a provider and processor.
func Defaults(p Provider, proc Processor, policy pagination.Policy, hub string) Factories {
	return Factories{
		Item:         ItemFactory(p),
		Collection:   CollectionFactory(p, policy),
		Mutation:     MutationFactory(proc),
		Subscription: SubscriptionFactory(p, hub),
	}
}

// Provider reads resource state. An empty class matches any resource.
type Provider interface {
	Item(ctx context.Context, class, id string) (map[string]any, error)
	Collection(ctx context.Context, class string, op *metadata.Operation, filters map[string]any) ([]map[string]any, error)
}

// Processor applies a mutation. It returns the resulting item, or nil when
// the item was removed.
type Processor interface {
	Process(ctx context.Context, class string, op *metadata.Operation, id string, input map[string]any) (map[string]any, error)
}

// Mark returns a copy of item carrying the resource class marker. Items that
// already carry a marker keep it.
func Mark(item map[string]any, class string) map[string]any {
	if item == nil {
		return nil
	}
	out := make(map[string]any, len(item)+1)
	for k, v := range item {
		out[k] = v
	}
	if _, ok := out[ItemResourceClassKey]; !ok && class != "" {
		out[ItemResourceClassKey] = class
	}
	return out
}

// ClassOf returns the resource class marker of value.
func ClassOf(value any) (string, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return "", false
	}
	class, ok := m[ItemResourceClassKey].(string)
	return class, ok && class != ""
}

// isItem reports whether source is a resolved item rather than a root value.
func isItem(source any) (map[string]any, bool) {
	m, ok := source.(map[string]any)
	if !ok {
		return nil, false
	}
	_, marked := m[ItemResourceClassKey]
	return m, marked
}
