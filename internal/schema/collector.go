package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"
)

// TypeProvider supplies a hand-authored named type.
type TypeProvider interface {
	Name() string
	Type() graphql.Type
}

type typeProvider struct {
	name string
	typ  graphql.Type
}

func (p typeProvider) Name() string       { return p.name }
func (p typeProvider) Type() graphql.Type { return p.typ }

// Provide wraps a named type as a TypeProvider.
func Provide(t graphql.Type) TypeProvider {
	return typeProvider{name: t.Name(), typ: t}
}

// Collect gathers provided types by name. Later providers replace earlier
// ones of the same name.
func Collect(providers []TypeProvider) (map[string]graphql.Type, error) {
	out := make(map[string]graphql.Type, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		t := p.Type()
		if t == nil {
			return nil, fmt.Errorf("type provider %q returned no type", p.Name())
		}
		out[p.Name()] = t
	}
	return out, nil
}
