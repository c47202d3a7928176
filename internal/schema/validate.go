package schema

import (
	"fmt"

	"github.com/hanpama/resourcegraph/internal/language"
)

// Validate renders s to SDL and checks it with an independent GraphQL
// validator.
func Validate(s *Schema) (*language.Schema, error) {
	sdl := Render(s)
	loaded, err := language.LoadSchema("schema.graphql", sdl)
	if err != nil {
		return nil, fmt.Errorf("rendered schema is invalid: %w", err)
	}
	return loaded, nil
}
