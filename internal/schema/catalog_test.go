package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinNames(t *testing.T) {
	c := NewCatalog("")

	names, err := c.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"asset", "dandiset", "organization", "person"}, names)
}

func TestLoadBuiltin(t *testing.T) {
	c := NewCatalog("")

	raw, err := c.Load("dandiset")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Dandiset", doc["title"])
	assert.Equal(t, "object", doc["type"])
}

func TestLoadUnknown(t *testing.T) {
	c := NewCatalog("")

	_, err := c.Load("nwbfile")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "extra"), 0o755))

	custom := []byte(`{"title":"Custom","type":"object","required":["path"],"properties":{"path":{"type":"string"}}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.schema.json"), custom, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra", "session.schema.json"), custom, 0o644))

	c := NewCatalog(dir)

	names, err := c.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"custom", "session"}, names, "nested directories are scanned")

	raw, err := c.Load("custom")
	require.NoError(t, err)
	assert.JSONEq(t, string(custom), string(raw))

	_, err = c.Load("dandiset")
	assert.ErrorIs(t, err, ErrUnknownSchema, "override replaces the bundled set")
}
