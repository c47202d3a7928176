// Package filter describes the query arguments collection operations accept.
package filter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hanpama/resourcegraph/internal/metadata"
)

// Description describes one argument contributed by a filter. Type is a
// builtin type name or a class name.
type Description struct {
	Type     string
	Required bool
}

// Filter describes the arguments it accepts for a resource class. Keys use
// the query-string grammar: "prop", "prop[]", "prop[sub]", "a.b[c.d]".
type Filter interface {
	Describe(resourceClass string) map[string]Description
}

// Func adapts a function to Filter.
type Func func(resourceClass string) map[string]Description

func (f Func) Describe(resourceClass string) map[string]Description { return f(resourceClass) }

// Locator finds filters by id.
type Locator interface {
	Has(id string) bool
	Get(id string) (Filter, bool)
}

// Registry is a Locator backed by a map.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

var _ Locator = (*Registry)(nil)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{filters: make(map[string]Filter)}
}

// Register stores f under id, replacing any previous filter.
func (r *Registry) Register(id string, f Filter) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[id] = f
	return r
}

func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.filters[id]
	return ok
}

func (r *Registry) Get(id string) (Filter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.filters[id]
	return f, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.filters))
	for id := range r.filters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FromDeclarations builds a Registry from declared filters. Property types
// are read from meta.
func FromDeclarations(decls []metadata.FilterDeclaration, meta metadata.PropertyMetadataFactory) (*Registry, error) {
	r := NewRegistry()
	for _, d := range decls {
		props := sortedKeys(d.Properties)
		var f Filter
		switch d.Type {
		case "search":
			f = &SearchFilter{Properties: d.Properties, Metadata: meta}
		case "boolean":
			f = &BooleanFilter{Properties: props}
		case "date":
			f = &DateFilter{Properties: props}
		case "range":
			f = &RangeFilter{Properties: props}
		case "order":
			f = &OrderFilter{Properties: props}
		case "exists":
			f = &ExistsFilter{Properties: props}
		case "numeric":
			f = &NumericFilter{Properties: props, Metadata: meta}
		default:
			return nil, fmt.Errorf("filter %q: unknown filter type %q", d.ID, d.Type)
		}
		r.Register(d.ID, f)
	}
	return r, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
