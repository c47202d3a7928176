package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/naming"
)

// PaginatedCollectionType returns the connection type wrapping item for the
// pagination strategy of op.
func (b *TypeBuilder) PaginatedCollectionType(item graphql.Type, op *metadata.Operation) graphql.Type {
	itemName := named(item).Name()
	paginationType := b.policy.TypeOf(op)
	name := itemName + naming.UcFirst(paginationType) + "Connection"
	if t, err := b.registry.Get(name); err == nil {
		return t
	}

	var fields graphql.Fields
	if paginationType == metadata.PaginationPage {
		fields = graphql.Fields{
			"collection":     &graphql.Field{Name: "collection", Type: graphql.NewList(item)},
			"paginationInfo": &graphql.Field{Name: "paginationInfo", Type: graphql.NewNonNull(b.paginationInfoType(itemName))},
		}
	} else {
		fields = graphql.Fields{
			"edges":      &graphql.Field{Name: "edges", Type: graphql.NewList(b.edgeType(itemName, item))},
			"pageInfo":   &graphql.Field{Name: "pageInfo", Type: graphql.NewNonNull(b.pageInfoType(itemName))},
			"totalCount": &graphql.Field{Name: "totalCount", Type: graphql.NewNonNull(graphql.Int)},
		}
	}
	t := graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: fmt.Sprintf("Connection for %s.", itemName),
		Fields:      fields,
	})
	b.registry.Set(name, t)
	return t
}

func (b *TypeBuilder) edgeType(itemName string, item graphql.Type) graphql.Type {
	name := itemName + "Edge"
	if t, err := b.registry.Get(name); err == nil {
		return t
	}
	t := graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: fmt.Sprintf("Edge of %s.", itemName),
		Fields: graphql.Fields{
			"node":   &graphql.Field{Name: "node", Type: item},
			"cursor": &graphql.Field{Name: "cursor", Type: graphql.NewNonNull(graphql.String)},
		},
	})
	b.registry.Set(name, t)
	return t
}

func (b *TypeBuilder) pageInfoType(itemName string) graphql.Type {
	name := itemName + "PageInfo"
	if t, err := b.registry.Get(name); err == nil {
		return t
	}
	t := graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: "Information about the current page.",
		Fields: graphql.Fields{
			"endCursor":       &graphql.Field{Name: "endCursor", Type: graphql.String},
			"startCursor":     &graphql.Field{Name: "startCursor", Type: graphql.String},
			"hasNextPage":     &graphql.Field{Name: "hasNextPage", Type: graphql.NewNonNull(graphql.Boolean)},
			"hasPreviousPage": &graphql.Field{Name: "hasPreviousPage", Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})
	b.registry.Set(name, t)
	return t
}

func (b *TypeBuilder) paginationInfoType(itemName string) graphql.Type {
	name := itemName + "PaginationInfo"
	if t, err := b.registry.Get(name); err == nil {
		return t
	}
	t := graphql.NewObject(graphql.ObjectConfig{
		Name:        name,
		Description: "Information about the pagination.",
		Fields: graphql.Fields{
			"itemsPerPage": &graphql.Field{Name: "itemsPerPage", Type: graphql.NewNonNull(graphql.Int)},
			"lastPage":     &graphql.Field{Name: "lastPage", Type: graphql.NewNonNull(graphql.Int)},
			"totalCount":   &graphql.Field{Name: "totalCount", Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	b.registry.Set(name, t)
	return t
}
