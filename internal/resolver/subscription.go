package resolver

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/naming"
)

// SubscriptionFactory returns the current state of the subscribed item and,
// when hub is set, the URL clients listen on for updates.
func SubscriptionFactory(p Provider, hub string) Factory {
	return FactoryFunc(func(resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn {
		return func(rp graphql.ResolveParams) (any, error) {
			input, _ := rp.Args["input"].(map[string]any)
			id, _ := input["id"].(string)
			item, err := p.Item(rp.Context, resourceClass, id)
			if err != nil {
				return nil, err
			}
			payload := map[string]any{
				naming.LcFirst(op.ShortName): Mark(item, resourceClass),
				"clientSubscriptionId":       input["clientSubscriptionId"],
			}
			if op.Mercure && hub != "" {
				payload["mercureUrl"] = hub + "?topic=" + url.QueryEscape(uuid.NewString())
			}
			return payload, nil
		}
	})
}
