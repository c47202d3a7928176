package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/resourcegraph/internal/metadata"
)

func testCatalog() *metadata.Catalog {
	c := metadata.NewCatalog()
	c.AddProperties("Book",
		&metadata.Property{Name: "title", Types: []*metadata.Type{metadata.Scalar(metadata.BuiltinString, false)}},
		&metadata.Property{Name: "pages", Types: []*metadata.Type{metadata.Scalar(metadata.BuiltinInt, false)}},
		&metadata.Property{Name: "rating", Types: []*metadata.Type{metadata.Scalar(metadata.BuiltinFloat, true)}},
		&metadata.Property{Name: "author", Types: []*metadata.Type{metadata.Object("Author", true)}},
	)
	c.AddProperties("Author",
		&metadata.Property{Name: "age", Types: []*metadata.Type{metadata.Scalar(metadata.BuiltinInt, false)}},
	)
	return c
}

func TestFromDeclarations(t *testing.T) {
	reg, err := FromDeclarations([]metadata.FilterDeclaration{
		{ID: "search", Type: "search", Properties: map[string]string{"title": "partial", "pages": "exact"}},
		{ID: "numeric", Type: "numeric", Properties: map[string]string{"rating": "", "author.age": ""}},
		{ID: "date", Type: "date", Properties: map[string]string{"publishedAt": ""}},
		{ID: "order", Type: "order", Properties: map[string]string{"title": ""}},
		{ID: "exists", Type: "exists", Properties: map[string]string{"author": ""}},
		{ID: "range", Type: "range", Properties: map[string]string{"pages": ""}},
		{ID: "bool", Type: "boolean", Properties: map[string]string{"published": ""}},
	}, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, []string{"bool", "date", "exists", "numeric", "order", "range", "search"}, reg.IDs())

	cases := map[string]map[string]Description{
		"search": {
			"title":   {Type: "string"},
			"pages":   {Type: "int"},
			"pages[]": {Type: "int"},
		},
		"numeric": {
			"rating":       {Type: "float"},
			"rating[]":     {Type: "float"},
			"author.age":   {Type: "int"},
			"author.age[]": {Type: "int"},
		},
		"date": {
			"publishedAt[before]":          {Type: "DateTimeInterface"},
			"publishedAt[strictly_before]": {Type: "DateTimeInterface"},
			"publishedAt[after]":           {Type: "DateTimeInterface"},
			"publishedAt[strictly_after]":  {Type: "DateTimeInterface"},
		},
		"order":  {"order[title]": {Type: "string"}},
		"exists": {"exists[author]": {Type: "bool"}},
		"bool":   {"published": {Type: "bool"}},
	}
	for id, want := range cases {
		f, ok := reg.Get(id)
		require.True(t, ok, id)
		if diff := cmp.Diff(want, f.Describe("Book")); diff != "" {
			t.Errorf("%s description mismatch (-want +got):\n%s", id, diff)
		}
	}

	r, _ := reg.Get("range")
	assert.Len(t, r.Describe("Book"), 5)
}

func TestFromDeclarationsRejectsUnknownType(t *testing.T) {
	_, err := FromDeclarations([]metadata.FilterDeclaration{{ID: "geo", Type: "geo"}}, nil)
	require.EqualError(t, err, `filter "geo": unknown filter type "geo"`)
}

func TestRegistryLocator(t *testing.T) {
	reg := NewRegistry().Register("custom", Func(func(string) map[string]Description {
		return map[string]Description{"q": {Type: "string", Required: true}}
	}))
	assert.True(t, reg.Has("custom"))
	assert.False(t, reg.Has("missing"))
	f, ok := reg.Get("custom")
	require.True(t, ok)
	assert.Equal(t, Description{Type: "string", Required: true}, f.Describe("Book")["q"])
}
