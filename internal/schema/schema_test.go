package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type getInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Six-digit Dandiset identifier"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API endpoint"`
}

type listInput struct {
	Page     *int   `json:"page,omitempty" jsonschema:"description=Page number"`
	PageSize *int   `json:"page_size,omitempty" jsonschema:"description=Results per page"`
	Search   string `json:"search,omitempty" jsonschema:"description=Search terms"`
	Embargo  *bool  `json:"embargo,omitempty" jsonschema:"description=Restrict to embargoed Dandisets"`
}

type updateInput struct {
	DandisetID string         `json:"dandiset_id" jsonschema:"required"`
	Metadata   map[string]any `json:"metadata" jsonschema:"required,description=Full replacement metadata document"`
}

func decodeSchema(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestInputRequiredAndOptional(t *testing.T) {
	m := decodeSchema(t, Input[getInput]())

	assert.Equal(t, "object", m["type"])

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)

	id, ok := props["dandiset_id"].(map[string]any)
	require.True(t, ok, "dandiset_id should exist")
	assert.Equal(t, "string", id["type"])
	assert.Equal(t, "Six-digit Dandiset identifier", id["description"])

	_, hasAPIURL := props["api_url"]
	assert.True(t, hasAPIURL)

	required, ok := m["required"].([]any)
	require.True(t, ok)
	assert.Contains(t, required, "dandiset_id")
	assert.NotContains(t, required, "api_url")
}

func TestInputAllOptional(t *testing.T) {
	m := decodeSchema(t, Input[listInput]())

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)

	for _, name := range []string{"page", "page_size", "search", "embargo"} {
		_, has := props[name]
		assert.True(t, has, "%s should be in properties", name)
	}

	page, ok := props["page"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "integer", page["type"], "pointer fields carry the non-null type")

	embargo, ok := props["embargo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boolean", embargo["type"])

	_, hasRequired := m["required"]
	assert.False(t, hasRequired, "no required key when nothing is required")
}

func TestInputObjectField(t *testing.T) {
	m := decodeSchema(t, Input[updateInput]())

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)

	md, ok := props["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", md["type"])

	required, ok := m["required"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"dandiset_id", "metadata"}, required)
}

func TestInputIsValidJSON(t *testing.T) {
	raw := Input[getInput]()
	assert.True(t, json.Valid(raw))
}
