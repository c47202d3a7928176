// Package language wraps gqlparser for SDL loading, query validation and
// type reference parsing.
package language

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// LoadSchema parses and validates SDL together with the GraphQL prelude.
func LoadSchema(name, source string) (*Schema, error) {
	s, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ValidateQuery parses query and validates it against s.
func ValidateQuery(s *Schema, query string) error {
	_, errs := gqlparser.LoadQuery(s, query)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseTypeReference parses a type reference such as "[String!]!".
func ParseTypeReference(ref string) (*Type, error) {
	if strings.TrimSpace(ref) == "" || strings.IndexFunc(ref, invalidTypeRune) >= 0 {
		return nil, gqlerror.Errorf("unexpected character in type reference %q", ref)
	}
	doc, err := parser.ParseQuery(&ast.Source{Input: fmt.Sprintf("query ($t: %s) { __typename }", ref)})
	if err != nil {
		return nil, err
	}
	if len(doc.Operations) != 1 || len(doc.Operations[0].VariableDefinitions) != 1 {
		return nil, gqlerror.Errorf("invalid type reference %q", ref)
	}
	return doc.Operations[0].VariableDefinitions[0].Type, nil
}

func invalidTypeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '_', r == '!', r == '[', r == ']', r == ' ', r == '\t':
		return false
	}
	return true
}
