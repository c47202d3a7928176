package schema

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// IterableName names the scalar used for untyped arrays.
const IterableName = "Iterable"

// Iterable carries arbitrary lists and maps unchanged.
var Iterable = graphql.NewScalar(graphql.ScalarConfig{
	Name:        IterableName,
	Description: "The `Iterable` scalar type represents an array or a Traversable with any kind of data.",
	Serialize:   func(value any) any { return value },
	ParseValue:  func(value any) any { return value },
	ParseLiteral: func(valueAST ast.Value) any {
		return literalValue(valueAST)
	},
})

// BuiltinTypes returns the custom types every schema carries.
func BuiltinTypes() []TypeProvider {
	return []TypeProvider{Provide(Iterable)}
}

func literalValue(v ast.Value) any {
	switch v := v.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.EnumValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		if n, err := strconv.Atoi(v.Value); err == nil {
			return n
		}
		return nil
	case *ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
		return nil
	case *ast.ListValue:
		out := make([]any, 0, len(v.Values))
		for _, item := range v.Values {
			out = append(out, literalValue(item))
		}
		return out
	case *ast.ObjectValue:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name.Value] = literalValue(f.Value)
		}
		return out
	}
	return nil
}
