package resolver

import (
	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/pagination"
)

var cursorArgs = []string{"first", "last", "before", "after"}

// CollectionFactory resolves collections and shapes them into the
// connection type of the operation's pagination strategy.
func CollectionFactory(p Provider, policy pagination.Policy) Factory {
	return FactoryFunc(func(resourceClass, rootClass string, op *metadata.Operation) graphql.FieldResolveFn {
		return func(rp graphql.ResolveParams) (any, error) {
			var items []map[string]any
			if parent, ok := isItem(rp.Source); ok {
				list, _ := parent[rp.Info.FieldName].([]any)
				for _, v := range list {
					item, err := resolveNested(rp, p, resourceClass, v)
					if err != nil {
						return nil, err
					}
					if m, ok := item.(map[string]any); ok {
						items = append(items, m)
					}
				}
			} else {
				var err error
				items, err = p.Collection(rp.Context, resourceClass, op, filterArgs(rp.Args, policy))
				if err != nil {
					return nil, err
				}
				for i := range items {
					items[i] = Mark(items[i], resourceClass)
				}
			}
			if !policy.IsEnabled(op) {
				return toList(items), nil
			}
			if policy.TypeOf(op) == metadata.PaginationPage {
				return pagePayload(items, rp.Args, op, policy), nil
			}
			return cursorPayload(items, rp.Args, policy.Limit(op, 0))
		}
	})
}

func filterArgs(args map[string]any, policy pagination.Policy) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	for _, k := range cursorArgs {
		delete(out, k)
	}
	delete(out, policy.PageParameter())
	delete(out, policy.ItemsPerPageParameter())
	return out
}

func toList(items []map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func cursorPayload(items []map[string]any, args map[string]any, limit int) (map[string]any, error) {
	total := len(items)
	start, end := 0, total
	if after, ok := args["after"].(string); ok {
		offset, err := DecodeCursor(after)
		if err != nil {
			return nil, err
		}
		start = offset + 1
	}
	if before, ok := args["before"].(string); ok {
		offset, err := DecodeCursor(before)
		if err != nil {
			return nil, err
		}
		end = offset
	}
	first, hasFirst := args["first"].(int)
	last, hasLast := args["last"].(int)
	if hasFirst {
		end = min(end, start+first)
	}
	if hasLast {
		start = max(start, end-last)
	}
	if !hasFirst && !hasLast {
		end = min(end, start+limit)
	}
	start = min(max(start, 0), total)
	end = min(max(end, start), total)

	edges := make([]any, 0, end-start)
	for i := start; i < end; i++ {
		edges = append(edges, map[string]any{"node": items[i], "cursor": EncodeCursor(i)})
	}
	pageInfo := map[string]any{
		"hasNextPage":     end < total,
		"hasPreviousPage": start > 0,
	}
	if end > start {
		pageInfo["startCursor"] = EncodeCursor(start)
		pageInfo["endCursor"] = EncodeCursor(end - 1)
	}
	return map[string]any{
		"edges":      edges,
		"pageInfo":   pageInfo,
		"totalCount": total,
	}, nil
}

func pagePayload(items []map[string]any, args map[string]any, op *metadata.Operation, policy pagination.Policy) map[string]any {
	requested, _ := args[policy.ItemsPerPageParameter()].(int)
	limit := policy.Limit(op, requested)
	page, _ := args[policy.PageParameter()].(int)
	if page < 1 {
		page = 1
	}
	total := len(items)
	lastPage := max((total+limit-1)/limit, 1)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	return map[string]any{
		"collection": toList(items[start:end]),
		"paginationInfo": map[string]any{
			"itemsPerPage": limit,
			"lastPage":     lastPage,
			"totalCount":   total,
		},
	}
}
