package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/enhance"
	"github.com/dandi/dandi-mcp/internal/registry"
)

// EnhanceMetadataInput defines the input for the enhance_metadata tool.
type EnhanceMetadataInput struct {
	Instructions string         `json:"instructions" jsonschema:"required,description=Description of the changes or improvements to make"`
	DandisetID   string         `json:"dandiset_id,omitempty" jsonschema:"description=Dandiset whose draft metadata is fetched and enhanced"`
	Metadata     map[string]any `json:"metadata,omitempty" jsonschema:"description=Metadata document to enhance (used instead of fetching when supplied)"`
	APIURL       string         `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// EnhanceMetadataTool sends a metadata document through the generative
// enhancer and returns the revised document. It never writes the result
// back to the archive.
type EnhanceMetadataTool struct {
	Client   *dandi.Client
	Enhancer *enhance.Enhancer
}

var _ registry.Operation[EnhanceMetadataInput] = (*EnhanceMetadataTool)(nil)

func (t *EnhanceMetadataTool) Name() string { return "enhance_metadata" }
func (t *EnhanceMetadataTool) Description() string {
	return "Improve dandiset metadata with a generative model (never writes back)"
}

func (t *EnhanceMetadataTool) Execute(ctx context.Context, input EnhanceMetadataInput) (*registry.Result, error) {
	if input.Instructions == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "instructions is required")
	}

	metadata := input.Metadata
	source := "provided directly"
	if metadata == nil {
		if input.DandisetID == "" {
			return nil, dandi.Errorf(dandi.CategoryInvalidArguments,
				"either metadata or dandiset_id is required")
		}
		id := normalizeDandisetID(input.DandisetID)

		body, err := t.Client.Call(ctx, &dandi.Request{
			Method:   http.MethodGet,
			Path:     fmt.Sprintf("/dandisets/%s/versions/draft/", id),
			Endpoint: input.APIURL,
		})
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &metadata); err != nil {
			return nil, dandi.Errorf(dandi.CategoryUpstreamFailure,
				"archive returned unparseable metadata: %v", err)
		}
		if len(metadata) == 0 {
			return nil, dandi.Errorf(dandi.CategoryUpstreamFailure,
				"draft of dandiset %s has no metadata", id)
		}
		source = fmt.Sprintf("dandiset %s (draft)", id)
	}

	enhanced, err := t.Enhancer.Enhance(ctx, metadata, input.Instructions)
	if err != nil {
		return nil, err
	}

	doc, err := json.MarshalIndent(enhanced, "", "  ")
	if err != nil {
		return nil, dandi.Errorf(dandi.CategoryInternalFailure, "encoding enhanced metadata: %v", err)
	}
	return registry.TextResult(fmt.Sprintf("Enhanced metadata (source: %s):\n\n%s", source, doc)), nil
}
