package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func violationPaths(violations []Violation) []string {
	paths := make([]string, len(violations))
	for i, v := range violations {
		paths[i] = v.Path
	}
	return paths
}

func TestValidateConformingDandiset(t *testing.T) {
	doc := decodeDoc(t, `{
		"name": "Electrophysiology of mouse visual cortex",
		"description": "Extracellular recordings from V1 during visual stimulation.",
		"contributor": [
			{"schemaKey": "Person", "name": "Doe, Jane", "roleName": ["dcite:ContactPerson"]}
		],
		"license": ["spdx:CC-BY-4.0"]
	}`)

	violations, err := NewCatalog("").Validate("dandiset", doc)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	// Two independent problems: name has the wrong type and license is
	// missing entirely. Both must be reported.
	doc := decodeDoc(t, `{
		"name": 123,
		"description": "Extracellular recordings.",
		"contributor": [{"schemaKey": "Person", "name": "Doe, Jane"}]
	}`)

	violations, err := NewCatalog("").Validate("dandiset", doc)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(violations), 2)

	paths := violationPaths(violations)
	assert.Contains(t, paths, "/name")
	assert.Contains(t, paths, "/", "missing required properties are reported at the root")

	var mentionsLicense bool
	for _, v := range violations {
		if strings.Contains(v.Message, "license") {
			mentionsLicense = true
		}
	}
	assert.True(t, mentionsLicense)
}

func TestValidateNestedViolationPath(t *testing.T) {
	doc := decodeDoc(t, `{
		"name": "A study",
		"description": "A description.",
		"contributor": [{"roleName": ["dcite:Author"]}],
		"license": ["spdx:CC0-1.0"]
	}`)

	violations, err := NewCatalog("").Validate("dandiset", doc)
	require.NoError(t, err)
	require.NotEmpty(t, violations)

	var nested bool
	for _, v := range violations {
		if strings.HasPrefix(v.Path, "/contributor/0") {
			nested = true
		}
	}
	assert.True(t, nested, "violations point into the failing element, got %v", violationPaths(violations))
}

func TestValidateAssetSchema(t *testing.T) {
	valid := decodeDoc(t, `{
		"path": "sub-01/sub-01_ecephys.nwb",
		"encodingFormat": "application/x-nwb",
		"contentSize": 1024,
		"digest": {"dandi:sha2-256": "deadbeef"}
	}`)

	violations, err := NewCatalog("").Validate("asset", valid)
	require.NoError(t, err)
	assert.Empty(t, violations)

	invalid := decodeDoc(t, `{
		"path": "sub-01/sub-01_ecephys.nwb",
		"encodingFormat": "application/x-nwb",
		"contentSize": "large",
		"digest": {"dandi:sha2-256": "deadbeef"}
	}`)

	violations, err = NewCatalog("").Validate("asset", invalid)
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Contains(t, violationPaths(violations), "/contentSize")
}

func TestValidateUnknownSchema(t *testing.T) {
	_, err := NewCatalog("").Validate("nwbfile", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestViolationString(t *testing.T) {
	v := Violation{Path: "/name", Message: "expected string, but got number"}
	assert.Equal(t, "/name: expected string, but got number", v.String())
}
