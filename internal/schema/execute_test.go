package schema

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/resourcegraph/internal/resolver"
)

func seededLibrary(t *testing.T) *Schema {
	t.Helper()
	store := resolver.NewMemoryStore()
	store.Put(authorClass, map[string]any{"id": "a1", "name": "Ursula", "books": []any{"b1"}})
	store.Put(bookClass, map[string]any{"id": "b1", "title": "The Dispossessed", "genre": "fiction", "author": "a1"})
	store.Put(bookClass, map[string]any{"id": "b2", "title": "Notes", "genre": "essay", "author": "a1"})
	return mustBuild(t, libraryOptions(libraryCatalog(), store))
}

func execute(t *testing.T, s *Schema, query string) string {
	t.Helper()
	result := graphql.Do(graphql.Params{
		Schema:        *s.Executable(),
		RequestString: query,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(result.Data)
	require.NoError(t, err)
	return string(out)
}

func TestExecuteQueries(t *testing.T) {
	s := seededLibrary(t)

	actual := execute(t, s, `{
		book(id: "b1") { id title genre author { name } }
		books(first: 1) { totalCount edges { cursor node { title } } pageInfo { hasNextPage endCursor } }
		node(id: "a1") { id ... on Author { name books { totalCount edges { node { title } } } } }
	}`)

	assert.JSONEq(t, `{
		"book": {"id": "b1", "title": "The Dispossessed", "genre": "FICTION", "author": {"name": "Ursula"}},
		"books": {
			"totalCount": 2,
			"edges": [{"cursor": "MA==", "node": {"title": "The Dispossessed"}}],
			"pageInfo": {"hasNextPage": true, "endCursor": "MA=="}
		},
		"node": {"id": "a1", "name": "Ursula", "books": {"totalCount": 1, "edges": [{"node": {"title": "The Dispossessed"}}]}}
	}`, actual)
}

func TestExecuteMissingItem(t *testing.T) {
	s := seededLibrary(t)
	assert.JSONEq(t, `{"book": null, "node": null}`, execute(t, s, `{ book(id: "nope") { id } node(id: "nope") { id } }`))
}

func TestExecuteCreateMutation(t *testing.T) {
	s := seededLibrary(t)

	actual := execute(t, s, `mutation {
		createBook(input: {title: "Dune", genre: FICTION, author: "a1", clientMutationId: "m1"}) {
			clientMutationId
			book { title genre author { name } }
		}
	}`)

	assert.JSONEq(t, `{
		"createBook": {
			"clientMutationId": "m1",
			"book": {"title": "Dune", "genre": "FICTION", "author": {"name": "Ursula"}}
		}
	}`, actual)

	assert.JSONEq(t, `{"books": {"totalCount": 3}}`, execute(t, s, `{ books { totalCount } }`))
}
