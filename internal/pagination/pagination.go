// Package pagination holds the collection paging policy.
package pagination

import "github.com/hanpama/resourcegraph/internal/metadata"

// Policy carries the paging defaults. Operations may override each of them.
type Policy struct {
	Enabled                   bool
	Type                      string
	ClientItemsPerPage        bool
	ItemsPerPage              int
	MaximumItemsPerPage       int
	PageParameterName         string
	ItemsPerPageParameterName string
}

// DefaultPolicy returns cursor pagination of 30 items per page.
func DefaultPolicy() Policy {
	return Policy{
		Enabled:                   true,
		Type:                      metadata.PaginationCursor,
		ItemsPerPage:              30,
		PageParameterName:         "page",
		ItemsPerPageParameterName: "itemsPerPage",
	}
}

// IsEnabled reports whether collection fields of op are paginated.
func (p Policy) IsEnabled(op *metadata.Operation) bool {
	if op != nil && op.PaginationEnabled != nil {
		return *op.PaginationEnabled
	}
	return p.Enabled
}

// TypeOf returns the pagination strategy of op.
func (p Policy) TypeOf(op *metadata.Operation) string {
	if op != nil && op.PaginationType != "" {
		return op.PaginationType
	}
	if p.Type == "" {
		return metadata.PaginationCursor
	}
	return p.Type
}

// ClientItemsPerPageOf reports whether clients may choose the page size.
func (p Policy) ClientItemsPerPageOf(op *metadata.Operation) bool {
	if op != nil && op.PaginationClientItemsPerPage != nil {
		return *op.PaginationClientItemsPerPage
	}
	return p.ClientItemsPerPage
}

// PageParameter returns the name of the page argument.
func (p Policy) PageParameter() string {
	if p.PageParameterName == "" {
		return "page"
	}
	return p.PageParameterName
}

// ItemsPerPageParameter returns the name of the page size argument.
func (p Policy) ItemsPerPageParameter() string {
	if p.ItemsPerPageParameterName == "" {
		return "itemsPerPage"
	}
	return p.ItemsPerPageParameterName
}

// Limit returns the page size for op, applying a client-requested size when
// allowed and clamping to the maximum.
func (p Policy) Limit(op *metadata.Operation, requested int) int {
	limit := p.ItemsPerPage
	if op != nil && op.PaginationItemsPerPage > 0 {
		limit = op.PaginationItemsPerPage
	}
	if requested > 0 && p.ClientItemsPerPageOf(op) {
		limit = requested
	}
	maximum := p.MaximumItemsPerPage
	if op != nil && op.PaginationMaximumItemsPerPage > 0 {
		maximum = op.PaginationMaximumItemsPerPage
	}
	if maximum > 0 && limit > maximum {
		limit = maximum
	}
	if limit <= 0 {
		limit = 30
	}
	return limit
}
