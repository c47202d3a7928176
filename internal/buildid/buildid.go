// Package buildid tags schema builds with an identifier carried in the
// context.
package buildid

import (
	"context"

	"github.com/google/uuid"
)

type key struct{}

// NewContext returns a copy of parent carrying a new build id, and the id.
// A parent that already carries one keeps it.
func NewContext(parent context.Context) (context.Context, string) {
	if id, ok := FromContext(parent); ok {
		return parent, id
	}
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the build id from ctx.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok && id != ""
}
