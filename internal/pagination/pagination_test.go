package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanpama/resourcegraph/internal/metadata"
)

func boolPtr(b bool) *bool { return &b }

func TestPolicyOverrides(t *testing.T) {
	p := DefaultPolicy()
	op := &metadata.Operation{}
	assert.True(t, p.IsEnabled(op))
	assert.Equal(t, metadata.PaginationCursor, p.TypeOf(op))
	assert.False(t, p.ClientItemsPerPageOf(op))

	op = &metadata.Operation{
		PaginationEnabled:            boolPtr(false),
		PaginationType:               metadata.PaginationPage,
		PaginationClientItemsPerPage: boolPtr(true),
	}
	assert.False(t, p.IsEnabled(op))
	assert.Equal(t, metadata.PaginationPage, p.TypeOf(op))
	assert.True(t, p.ClientItemsPerPageOf(op))
}

func TestPolicyLimit(t *testing.T) {
	p := DefaultPolicy()
	p.MaximumItemsPerPage = 50
	op := &metadata.Operation{}
	assert.Equal(t, 30, p.Limit(op, 10))

	p.ClientItemsPerPage = true
	assert.Equal(t, 10, p.Limit(op, 10))
	assert.Equal(t, 50, p.Limit(op, 500))

	op.PaginationItemsPerPage = 5
	assert.Equal(t, 5, p.Limit(op, 0))
}

func TestParameterNames(t *testing.T) {
	assert.Equal(t, "page", Policy{}.PageParameter())
	assert.Equal(t, "itemsPerPage", Policy{}.ItemsPerPageParameter())
	assert.Equal(t, "p", Policy{PageParameterName: "p"}.PageParameter())
}
