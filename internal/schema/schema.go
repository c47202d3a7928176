// Package schema synthesizes GraphQL schemas from resource metadata.
//
// A build walks every resource operation, creating named types on demand in
// a Registry. Resource types resolve their fields lazily so cyclic resource
// graphs terminate: a type is registered before its fields are evaluated,
// and any later reference returns the registered instance.
package schema

import (
	"github.com/graphql-go/graphql"
)

// Schema is the result of a build.
type Schema struct {
	Query        *graphql.Object
	Mutation     *graphql.Object
	Subscription *graphql.Object

	registry   *Registry
	executable *graphql.Schema
}

// Type returns the type registered under name.
func (s *Schema) Type(name string) (graphql.Type, error) {
	return s.registry.Get(name)
}

// HasType reports whether a type is registered under name.
func (s *Schema) HasType(name string) bool {
	return s.registry.Has(name)
}

// Object returns the object type registered under name.
func (s *Schema) Object(name string) (*graphql.Object, error) {
	t, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	obj, ok := t.(*graphql.Object)
	if !ok {
		return nil, errNotObject(name)
	}
	return obj, nil
}

// Types returns every registered type, including the ones no root field
// reaches, keyed by name.
func (s *Schema) Types() map[string]graphql.Type {
	return s.registry.All()
}

// TypeNames returns the registered type names in lexical order.
func (s *Schema) TypeNames() []string {
	return s.registry.SortedNames()
}

// Executable returns the graphql-go schema for execution.
func (s *Schema) Executable() *graphql.Schema {
	return s.executable
}
