package resolver

import (
	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/metadata"
)

// ItemFactory resolves single items. Root fields read the id argument;
// nested fields read the embedded value or IRI from the parent item.
func ItemFactory(p Provider) Factory {
	return FactoryFunc(func(resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn {
		return func(rp graphql.ResolveParams) (any, error) {
			if parent, ok := isItem(rp.Source); ok {
				return resolveNested(rp, p, resourceClass, parent[rp.Info.FieldName])
			}
			id, _ := rp.Args["id"].(string)
			if id == "" {
				return nil, nil
			}
			item, err := p.Item(rp.Context, resourceClass, id)
			if err != nil || item == nil {
				return nil, err
			}
			return Mark(item, resourceClass), nil
		}
	})
}

func resolveNested(rp graphql.ResolveParams, p Provider, class string, value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return Mark(v, class), nil
	case string:
		item, err := p.Item(rp.Context, class, v)
		if err != nil || item == nil {
			return nil, err
		}
		return Mark(item, class), nil
	}
	return value, nil
}
