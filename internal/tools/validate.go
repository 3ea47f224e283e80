package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/registry"
	"github.com/dandi/dandi-mcp/internal/schema"
)

// ValidateMetadataInput defines the input for the validate_metadata tool.
type ValidateMetadataInput struct {
	Metadata   map[string]any `json:"metadata" jsonschema:"required,description=Metadata document to validate"`
	SchemaName string         `json:"schema_name,omitempty" jsonschema:"description=Catalog schema to validate against (defaults to dandiset)"`
}

// ValidateMetadataTool checks a metadata document against one of the DANDI
// JSON Schemas without touching the archive.
type ValidateMetadataTool struct {
	Schemas *schema.Catalog
}

var _ registry.Operation[ValidateMetadataInput] = (*ValidateMetadataTool)(nil)

func (t *ValidateMetadataTool) Name() string { return "validate_metadata" }
func (t *ValidateMetadataTool) Description() string {
	return "Validate a metadata document against a DANDI JSON Schema"
}

func (t *ValidateMetadataTool) Execute(_ context.Context, input ValidateMetadataInput) (*registry.Result, error) {
	if input.Metadata == nil {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "metadata is required")
	}

	name := input.SchemaName
	if name == "" {
		name = "dandiset"
	}

	violations, err := t.Schemas.Validate(name, input.Metadata)
	if errors.Is(err, schema.ErrUnknownSchema) {
		if names, namesErr := t.Schemas.Names(); namesErr == nil {
			return nil, dandi.Errorf(dandi.CategoryInvalidArguments,
				"unknown schema %q (available: %s)", name, strings.Join(names, ", "))
		}
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "unknown schema %q", name)
	}
	if err != nil {
		return nil, dandi.Errorf(dandi.CategoryInternalFailure, "validating metadata: %v", err)
	}
	if len(violations) > 0 {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments,
			"metadata failed validation against the %q schema:\n%s", name, violationList(violations))
	}
	return registry.TextResult(fmt.Sprintf("Metadata is valid against the %q schema.", name)), nil
}
