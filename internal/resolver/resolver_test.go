package resolver

import (
	"context"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/resourcegraph/internal/metadata"
	"github.com/hanpama/resourcegraph/internal/pagination"
)

const bookClass = `App\Entity\Book`

func seededStore(t *testing.T, n int) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	for i := 0; i < n; i++ {
		s.Put(bookClass, map[string]any{"id": string(rune('a' + i)), "title": strings.Repeat("x", i+1)})
	}
	return s
}

func params(args map[string]any) graphql.ResolveParams {
	return graphql.ResolveParams{Context: context.Background(), Args: args}
}

func TestCursorRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 42} {
		got, err := DecodeCursor(EncodeCursor(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
	_, err := DecodeCursor("not base64!")
	require.Error(t, err)
}

func TestItemFactory(t *testing.T) {
	s := seededStore(t, 2)
	resolve := ItemFactory(s).Resolver(bookClass, bookClass, &metadata.Operation{Name: metadata.OperationItemQuery})

	v, err := resolve(params(map[string]any{"id": "b"}))
	require.NoError(t, err)
	item := v.(map[string]any)
	assert.Equal(t, "xx", item["title"])
	assert.Equal(t, bookClass, item[ItemResourceClassKey])

	v, err = resolve(params(map[string]any{"id": "zz"}))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestItemFactoryNestedReference(t *testing.T) {
	s := seededStore(t, 1)
	resolve := ItemFactory(s).Resolver(bookClass, "Author", &metadata.Operation{Name: metadata.OperationItemQuery})
	rp := params(nil)
	rp.Source = map[string]any{ItemResourceClassKey: "Author", "book": "a"}
	rp.Info = graphql.ResolveInfo{FieldName: "book"}

	v, err := resolve(rp)
	require.NoError(t, err)
	class, ok := ClassOf(v)
	require.True(t, ok)
	assert.Equal(t, bookClass, class)
}

func TestNodeLookupIgnoresClass(t *testing.T) {
	s := seededStore(t, 1)
	resolve := ItemFactory(s).Resolver("", "", &metadata.Operation{Name: metadata.OperationItemQuery})
	v, err := resolve(params(map[string]any{"id": "a"}))
	require.NoError(t, err)
	class, ok := ClassOf(v)
	require.True(t, ok)
	assert.Equal(t, bookClass, class)
}

func TestCollectionFactoryCursor(t *testing.T) {
	s := seededStore(t, 5)
	op := &metadata.Operation{Name: metadata.OperationCollectionQuery, Kind: metadata.KindQueryCollection}
	resolve := CollectionFactory(s, pagination.DefaultPolicy()).Resolver(bookClass, bookClass, op)

	v, err := resolve(params(map[string]any{"first": 2, "after": EncodeCursor(0)}))
	require.NoError(t, err)
	conn := v.(map[string]any)
	assert.Equal(t, 5, conn["totalCount"])
	edges := conn["edges"].([]any)
	require.Len(t, edges, 2)
	assert.Equal(t, EncodeCursor(1), edges[0].(map[string]any)["cursor"])
	info := conn["pageInfo"].(map[string]any)
	assert.Equal(t, true, info["hasNextPage"])
	assert.Equal(t, true, info["hasPreviousPage"])
	assert.Equal(t, EncodeCursor(2), info["endCursor"])

	v, err = resolve(params(map[string]any{"last": 2}))
	require.NoError(t, err)
	edges = v.(map[string]any)["edges"].([]any)
	require.Len(t, edges, 2)
	assert.Equal(t, EncodeCursor(3), edges[0].(map[string]any)["cursor"])
}

func TestCollectionFactoryPage(t *testing.T) {
	s := seededStore(t, 5)
	policy := pagination.DefaultPolicy()
	policy.ClientItemsPerPage = true
	op := &metadata.Operation{Name: metadata.OperationCollectionQuery, Kind: metadata.KindQueryCollection, PaginationType: metadata.PaginationPage}
	resolve := CollectionFactory(s, policy).Resolver(bookClass, bookClass, op)

	v, err := resolve(params(map[string]any{"page": 3, "itemsPerPage": 2}))
	require.NoError(t, err)
	conn := v.(map[string]any)
	assert.Len(t, conn["collection"].([]any), 1)
	assert.Equal(t, map[string]any{"itemsPerPage": 2, "lastPage": 3, "totalCount": 5}, conn["paginationInfo"])
}

func TestCollectionFactoryFilters(t *testing.T) {
	s := seededStore(t, 3)
	disabled := false
	op := &metadata.Operation{Name: metadata.OperationCollectionQuery, Kind: metadata.KindQueryCollection, PaginationEnabled: &disabled}
	resolve := CollectionFactory(s, pagination.DefaultPolicy()).Resolver(bookClass, bookClass, op)

	v, err := resolve(params(map[string]any{"title": "xx"}))
	require.NoError(t, err)
	require.Len(t, v.([]any), 1)

	v, err = resolve(params(map[string]any{"title_list": []any{"x", "xxx"}}))
	require.NoError(t, err)
	require.Len(t, v.([]any), 2)
}

func TestMutationFactory(t *testing.T) {
	s := NewMemoryStore()
	create := &metadata.Operation{Name: metadata.OperationCreate, Kind: metadata.KindMutation, ShortName: "Book"}
	resolve := MutationFactory(s).Resolver(bookClass, bookClass, create)

	v, err := resolve(params(map[string]any{"input": map[string]any{"title": "Dune", "clientMutationId": "c1"}}))
	require.NoError(t, err)
	payload := v.(map[string]any)
	assert.Equal(t, "c1", payload["clientMutationId"])
	book := payload["book"].(map[string]any)
	assert.Equal(t, "Dune", book["title"])
	id := book["id"].(string)
	assert.NotEmpty(t, id)

	del := &metadata.Operation{Name: metadata.OperationDelete, Kind: metadata.KindMutation, ShortName: "Book"}
	v, err = MutationFactory(s).Resolver(bookClass, bookClass, del)(params(map[string]any{"input": map[string]any{"id": id}}))
	require.NoError(t, err)
	assert.Equal(t, id, v.(map[string]any)["book"].(map[string]any)["id"])

	item, err := s.Item(context.Background(), bookClass, id)
	require.NoError(t, err)
	assert.Nil(t, item)

	_, err = MutationFactory(s).Resolver(bookClass, bookClass, del)(params(map[string]any{"input": map[string]any{"id": id}}))
	require.EqualError(t, err, `delete Book: item "`+id+`" not found`)
}

func TestSubscriptionFactory(t *testing.T) {
	s := seededStore(t, 1)
	op := &metadata.Operation{Name: "update_subscription", Kind: metadata.KindSubscription, ShortName: "Book", Mercure: true}
	resolve := SubscriptionFactory(s, "https://hub.example/.well-known/mercure").Resolver(bookClass, bookClass, op)

	v, err := resolve(params(map[string]any{"input": map[string]any{"id": "a", "clientSubscriptionId": "s1"}}))
	require.NoError(t, err)
	payload := v.(map[string]any)
	assert.Equal(t, "s1", payload["clientSubscriptionId"])
	assert.True(t, strings.HasPrefix(payload["mercureUrl"].(string), "https://hub.example/.well-known/mercure?topic="))
	assert.Equal(t, "x", payload["book"].(map[string]any)["title"])
}
