package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeReference(t *testing.T) {
	cases := map[string]string{
		"String":     "String",
		"String!":    "String!",
		"[Int]":      "[Int]",
		"[Int!]!":    "[Int!]!",
		" [ID ] ! ":  "[ID]!",
		"BookFilter": "BookFilter",
	}
	for ref, want := range cases {
		typ, err := ParseTypeReference(ref)
		require.NoError(t, err, ref)
		assert.Equal(t, want, typ.String(), ref)
	}
}

func TestParseTypeReferenceRejectsMalformed(t *testing.T) {
	for _, ref := range []string{"", "[String", "String]", "String!!", "a type", "String) { x } query (", "$x"} {
		_, err := ParseTypeReference(ref)
		assert.Error(t, err, ref)
	}
}

func TestLoadSchemaAndValidateQuery(t *testing.T) {
	s, err := LoadSchema("test.graphql", "type Query { hello(name: String!): String }")
	require.NoError(t, err)
	require.NoError(t, ValidateQuery(s, `{ hello(name: "x") }`))
	require.Error(t, ValidateQuery(s, `{ goodbye }`))

	_, err = LoadSchema("broken.graphql", "type Query { hello: Missing }")
	require.Error(t, err)
}
