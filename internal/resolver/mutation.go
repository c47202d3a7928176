package resolver

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/naming"
)

// MutationFactory applies mutations through p and returns their payload.
func MutationFactory(p Processor) Factory {
	return FactoryFunc(func(resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn {
		return func(rp graphql.ResolveParams) (any, error) {
			input, _ := rp.Args["input"].(map[string]any)
			data := make(map[string]any, len(input))
			for k, v := range input {
				if k != "clientMutationId" {
					data[k] = v
				}
			}
			id, _ := input["id"].(string)
			item, err := p.Process(rp.Context, resourceClass, op, id, data)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", op.Name, op.ShortName, err)
			}
			payload := map[string]any{"clientMutationId": input["clientMutationId"]}
			if item == nil && id != "" {
				item = map[string]any{"id": id}
			}
			payload[naming.LcFirst(op.ShortName)] = Mark(item, resourceClass)
			return payload, nil
		}
	})
}
