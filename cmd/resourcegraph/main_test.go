package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RESOURCEGRAPH_LOG_DISABLED", "true")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--resources", filepath.Join("testdata", "library.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()
	assert.Equal(t, "resourcegraph", cmd.Use)
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"sdl", "introspect", "validate", "types"} {
		assert.Contains(t, names, want)
	}
}

func TestSDLCommand(t *testing.T) {
	out, err := execute(t, "sdl")
	require.NoError(t, err)
	assert.Contains(t, out, "type Book implements Node {\n")
	assert.Contains(t, out, "enum Genre {\n")
	assert.Contains(t, out, "  books(after: String, before: String, first: Int, last: Int, title: String, title_list: [String]): BookCursorConnection\n")
}

func TestSDLCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.graphql")
	out, err := execute(t, "sdl", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "type Author implements Node {\n"))
}

func TestIntrospectCommand(t *testing.T) {
	out, err := execute(t, "introspect", "--type", "Genre", "--compact")
	require.NoError(t, err)

	var res struct {
		Data struct {
			Type struct {
				Kind       string `json:"kind"`
				EnumValues []struct {
					Name string `json:"name"`
				} `json:"enumValues"`
			} `json:"__type"`
		} `json:"data"`
	}
	require.NoError(t, jsoniter.UnmarshalFromString(out, &res))
	assert.Equal(t, "ENUM", res.Data.Type.Kind)
	assert.Len(t, res.Data.Type.EnumValues, 2)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "schema is valid: "))
	assert.True(t, strings.HasSuffix(out, " types, 0 operation documents\n"))

	dir := t.TempDir()
	good := filepath.Join(dir, "good.graphql")
	require.NoError(t, os.WriteFile(good, []byte(`{ books(first: 2) { edges { node { title genre } } } }`), 0644))
	out, err = execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, " types, 1 operation documents\n")

	bad := filepath.Join(dir, "bad.graphql")
	require.NoError(t, os.WriteFile(bad, []byte(`{ books { pages } }`), 0644))
	_, err = execute(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.graphql")
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, "types", "--kind", "enum")
	require.NoError(t, err)
	assert.Equal(t, "ENUM         Genre\n", out)

	out, err = execute(t, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "SCALAR       Iterable\n")
	assert.Contains(t, out, "INPUT_OBJECT createBookInput\n")
	assert.Contains(t, out, "INTERFACE    Node\n")
}

func TestMissingResources(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"sdl", "--resources", filepath.Join(t.TempDir(), "missing")})
	t.Setenv("RESOURCEGRAPH_LOG_DISABLED", "true")
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load metadata")
}
