package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"categories": [
			{"slug": "hagearbeid", "name": "Hagearbeid", "emoji": "🌱"},
			{"slug": "snømåking", "name": "Snømåking", "emoji": "❄️"}
		]
	}`), 0o644))

	registry, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, registry.Exists("hagearbeid"))
	assert.True(t, registry.Exists("Hagearbeid"))
	assert.False(t, registry.Exists("fisking"))

	all := registry.All()
	require.Len(t, all, 2)
	assert.Equal(t, "hagearbeid", all[0].Slug)
	assert.Equal(t, "snømåking", all[1].Slug)

	cat := registry.Get("snømåking")
	require.NotNil(t, cat)
	assert.Equal(t, "Snømåking", cat.Name)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile("/finnes/ikke/categories.json")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{ikke json"), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestRegisterDeduplicatesBySlug(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&Category{Slug: "maling", Name: "Maling"})
	registry.Register(&Category{Slug: "MALING", Name: "Maling og lakk"})

	all := registry.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Maling og lakk", all[0].Name)
}
