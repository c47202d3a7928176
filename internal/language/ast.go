package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	Type   = ast.Type
	Schema = ast.Schema
)
