// Package introspection runs the standard introspection query against a
// built schema.
package introspection

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"

	"github.com/hanpama/resourcegraph/internal/schema"
)

// Query is the introspection query used by GraphQL tooling.
const Query = schemaQuery + fragments

const schemaQuery = `
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types { ...FullType }
    directives {
      name
      description
      locations
      args { ...InputValue }
    }
  }
}
`

const fragments = `
fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args { ...InputValue }
    type { ...TypeRef }
    isDeprecated
    deprecationReason
  }
  inputFields { ...InputValue }
  interfaces { ...TypeRef }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes { ...TypeRef }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`

const typeQuery = `
query TypeQuery($name: String!) {
  __type(name: $name) {
    ...FullType
  }
}
`

// Result is the data of an introspection query.
type Result struct {
	Data map[string]any
}

// JSON encodes the result as {"data": ...}.
func (r *Result) JSON(indent bool) ([]byte, error) {
	out := map[string]any{"data": r.Data}
	if indent {
		return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(out)
}

// Run executes Query against s.
func Run(ctx context.Context, s *schema.Schema) (*Result, error) {
	return execute(ctx, s, Query, nil)
}

// Type introspects the single type registered under name. The data is
// {"__type": null} when no such type exists.
func Type(ctx context.Context, s *schema.Schema, name string) (*Result, error) {
	return execute(ctx, s, typeQuery+fragments, map[string]any{"name": name})
}

func execute(ctx context.Context, s *schema.Schema, query string, vars map[string]any) (*Result, error) {
	if s == nil || s.Executable() == nil {
		return nil, fmt.Errorf("introspection requires a built schema")
	}
	res := graphql.Do(graphql.Params{
		Schema:         *s.Executable(),
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
	if res.HasErrors() {
		errs := make([]error, len(res.Errors))
		for i, e := range res.Errors {
			errs[i] = e
		}
		return nil, fmt.Errorf("introspection failed: %w", errors.Join(errs...))
	}
	data, _ := res.Data.(map[string]any)
	return &Result{Data: data}, nil
}
