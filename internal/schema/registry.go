package schema

import (
	"sort"
	"sync"

	"github.com/graphql-go/graphql"
)

// Registry maps type names to their single constructed instance. Entries are
// inserted before their fields are evaluated, so recursive lookups during
// construction find the type under construction.
type Registry struct {
	mu    sync.RWMutex
	types map[string]graphql.Type
	order []string
	onSet func(name string, t graphql.Type)
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]graphql.Type)}
}

// OnSet installs a hook called after every Set.
func (r *Registry) OnSet(fn func(name string, t graphql.Type)) {
	r.mu.Lock()
	r.onSet = fn
	r.mu.Unlock()
}

// Set registers t under name. An existing entry is replaced; callers check
// Has first.
func (r *Registry) Set(name string, t graphql.Type) {
	r.mu.Lock()
	if _, ok := r.types[name]; !ok {
		r.order = append(r.order, name)
	}
	r.types[name] = t
	hook := r.onSet
	r.mu.Unlock()
	if hook != nil {
		hook(name, t)
	}
}

// Get returns the type registered under name.
func (r *Registry) Get(name string) (graphql.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return nil, &TypeNotFoundError{Name: name}
	}
	return t, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// All returns every registered type, reachable from a root or not.
func (r *Registry) All() map[string]graphql.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]graphql.Type, len(r.types))
	for k, v := range r.types {
		out[k] = v
	}
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// SortedNames returns the registered names in lexical order.
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

// named strips list and non-null wrappers.
func named(t graphql.Type) graphql.Type {
	for {
		switch w := t.(type) {
		case *graphql.NonNull:
			t = w.OfType
		case *graphql.List:
			t = w.OfType
		default:
			return t
		}
	}
}
