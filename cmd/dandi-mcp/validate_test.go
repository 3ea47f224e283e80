package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandi/dandi-mcp/internal/schema"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func withSchemaFlag(t *testing.T, name string) {
	t.Helper()
	old := validateSchemaName
	validateSchemaName = name
	t.Cleanup(func() { validateSchemaName = old })
}

func TestExpandPatternsPassesPlainPaths(t *testing.T) {
	paths, err := expandPatterns([]string{"a.json", "missing/b.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "missing/b.json"}, paths)
}

func TestExpandPatternsGlob(t *testing.T) {
	dir := t.TempDir()
	one := writeFile(t, dir, "one.json", `{}`)
	two := writeFile(t, dir, "sub/two.json", `{}`)
	writeFile(t, dir, "sub/note.txt", "not metadata")

	paths, err := expandPatterns([]string{filepath.Join(dir, "**", "*.json")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{one, two}, paths)
}

func TestExpandPatternsBadPattern(t *testing.T) {
	_, err := expandPatterns([]string{"["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad pattern")
}

func TestValidateFileValid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "meta.json", `{
		"name": "Test dataset",
		"description": "A dataset used in validation tests.",
		"contributor": [{"name": "Doe, Jane", "schemaKey": "Person"}],
		"license": ["spdx:CC0-1.0"]
	}`)

	violations, err := validateFile(schema.NewCatalog(""), path)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateFileReportsViolations(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "meta.json", `{"name": "Missing everything else"}`)

	violations, err := validateFile(schema.NewCatalog(""), path)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}

func TestValidateFileUnknownSchema(t *testing.T) {
	withSchemaFlag(t, "nwbfile")
	dir := t.TempDir()
	path := writeFile(t, dir, "meta.json", `{}`)

	_, err := validateFile(schema.NewCatalog(""), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateFileMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "meta.json", `{"name":`)

	_, err := validateFile(schema.NewCatalog(""), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
