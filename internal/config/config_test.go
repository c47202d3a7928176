package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/resourcegraph/internal/naming"
	"github.com/hanpama/resourcegraph/internal/pagination"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "resources", cfg.Resources)
	assert.Equal(t, "__", cfg.NestingSeparator)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "resourcegraph", cfg.Otel.Service)
	assert.Equal(t, pagination.DefaultPolicy(), cfg.Policy())
	assert.Equal(t, "title", cfg.Converter().Normalize("title", ""))
}

func TestLoadFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := `
resources: api/resources
name_converter: snake_case
pagination:
  type: page
  items_per_page: 10
  client_items_per_page: true
log:
  level: debug
  development: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resourcegraph.yaml"), []byte(content), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "api/resources", cfg.Resources)
	assert.Equal(t, "published_at", cfg.Converter().Normalize("publishedAt", ""))
	assert.Equal(t, "page", cfg.Policy().Type)
	assert.Equal(t, 10, cfg.Policy().ItemsPerPage)
	assert.True(t, cfg.Policy().ClientItemsPerPage)
	assert.True(t, cfg.Policy().Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoadExplicitPathAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name_converter: camel_case\n"), 0644))
	t.Setenv("RESOURCEGRAPH_PAGINATION_ITEMS_PER_PAGE", "5")
	t.Setenv("RESOURCEGRAPH_OTEL_ENDPOINT", "collector:4317")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, naming.CamelCase.Normalize("published_at", ""), cfg.Converter().Normalize("published_at", ""))
	assert.Equal(t, 5, cfg.Pagination.ItemsPerPage)
	assert.Equal(t, "collector:4317", cfg.Otel.Endpoint)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	cases := map[string]string{
		"RESOURCEGRAPH_NAME_CONVERTER":            "name_converter must be one of identity, snake_case, camel_case, got: kebab",
		"RESOURCEGRAPH_PAGINATION_TYPE":           "pagination.type must be cursor or page, got: kebab",
		"RESOURCEGRAPH_PAGINATION_ITEMS_PER_PAGE": "pagination.items_per_page must be positive, got: 0",
	}
	values := map[string]string{
		"RESOURCEGRAPH_NAME_CONVERTER":            "kebab",
		"RESOURCEGRAPH_PAGINATION_TYPE":           "kebab",
		"RESOURCEGRAPH_PAGINATION_ITEMS_PER_PAGE": "0",
	}
	for env, want := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, values[env])
			_, err := Load("")
			require.EqualError(t, err, want)
		})
	}
}
