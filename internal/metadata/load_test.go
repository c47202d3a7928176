package metadata

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPath(t *testing.T) {
	doc, err := LoadPath(context.Background(), "testdata/library.yaml")
	require.NoError(t, err)
	c := doc.Catalog

	assert.Equal(t, []string{`App\Entity\Book`, `App\Entity\Author`}, c.ResourceClasses())

	book, err := c.Resource(`App\Entity\Book`)
	require.NoError(t, err)
	assert.Equal(t, "Book", book.ShortName)
	require.Len(t, book.Operations, 6)

	item, ok := book.Operation(OperationItemQuery)
	require.True(t, ok)
	assert.Equal(t, KindQuery, item.Kind)
	assert.Equal(t, []string{"book:read"}, item.NormalizationContext.Groups)
	assert.Nil(t, item.Filters)

	coll, ok := book.Operation(OperationCollectionQuery)
	require.True(t, ok)
	assert.Equal(t, []string{"book.search", "book.published"}, coll.Filters)
	assert.Equal(t, PaginationPage, coll.PaginationType)
	require.NotNil(t, coll.PaginationClientItemsPerPage)
	assert.True(t, *coll.PaginationClientItemsPerPage)

	create, ok := book.Operation(OperationCreate)
	require.True(t, ok)
	assert.Equal(t, KindMutation, create.Kind)
	assert.Equal(t, []string{"book:write"}, create.DenormalizationContext.Groups)

	sub, ok := book.Operation("update_subscription")
	require.True(t, ok)
	assert.Equal(t, KindSubscription, sub.Kind)
	assert.True(t, sub.Mercure)

	summary, ok := book.Operation("summary")
	require.True(t, ok)
	assert.Equal(t, `App\Dto\BookSummary`, summary.Output.Class)
	assert.Equal(t, Arg{Type: "String!"}, summary.Args["slug"])

	author, err := c.Resource(`App\Entity\Author`)
	require.NoError(t, err)
	assert.Len(t, author.Operations, 5)

	id, err := c.Property(`App\Entity\Book`, "id", Options{})
	require.NoError(t, err)
	assert.True(t, id.Identifier)
	assert.False(t, id.Writable)
	assert.True(t, id.Readable)

	books, err := c.Property(`App\Entity\Author`, "books", Options{})
	require.NoError(t, err)
	require.Len(t, books.Types, 1)
	assert.Equal(t, `App\Entity\Book`, books.Types[0].MemberClass())

	headline, err := c.Property(`App\Dto\BookSummary`, "headline", Options{})
	require.NoError(t, err)
	assert.Equal(t, BuiltinString, headline.Types[0].Builtin)

	genre, ok := c.Enum(`App\Enum\Genre`)
	require.True(t, ok)
	assert.Equal(t, "Genre", genre.ShortName)
	require.Len(t, genre.Cases, 2)
	assert.Equal(t, "fiction", genre.Cases[0].Value)

	require.Len(t, doc.Filters, 2)
	assert.Equal(t, "book.published", doc.Filters[0].ID)
	assert.Equal(t, "boolean", doc.Filters[0].Type)
}

func TestLoadReportsViolations(t *testing.T) {
	disc := NewInMemoryDiscovery(InMemoryDocument{
		Name: "broken.yaml",
		Content: `resources:
  - shortName: Orphan
  - class: Book
    paginationType: offset
    operations:
      - name: item_query
      - name: item_query
      - name: publish
    properties:
      - name: title
        type: "string["
      - type: int
`,
	})
	_, err := Load(context.Background(), disc)
	var verr ValidationError
	require.True(t, errors.As(err, &verr))

	messages := make([]string, 0, len(verr))
	for _, v := range verr {
		assert.Equal(t, "broken.yaml", v.File)
		assert.NotZero(t, v.Line)
		messages = append(messages, v.Message)
	}
	assert.Equal(t, []string{
		`resource is missing required key "class"`,
		`unknown pagination type "offset" in resource Book; expected "cursor" or "page"`,
		`duplicate operation "item_query"`,
		`unknown kind "" for operation "publish"`,
		`property "title": invalid type declaration "string[": unexpected character in "string["`,
		`property of Book is missing required key "name"`,
	}, messages)
}

func TestFileSystemDiscoveryWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir+"/nested", 0o755))
	require.NoError(t, os.WriteFile(dir+"/a.yaml", []byte("resources:\n  - class: A\n"), 0o644))
	require.NoError(t, os.WriteFile(dir+"/nested/b.yml", []byte("resources:\n  - class: B\n"), 0o644))
	require.NoError(t, os.WriteFile(dir+"/notes.txt", []byte("ignored"), 0o644))

	disc, err := NewFileSystemDiscovery(dir)
	require.NoError(t, err)
	names, err := disc.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "nested/b.yml"}, names)

	doc, err := Load(context.Background(), disc)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, doc.Catalog.ResourceClasses())
}
