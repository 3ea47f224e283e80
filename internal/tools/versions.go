package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/registry"
	"github.com/dandi/dandi-mcp/internal/schema"
)

// ListVersionsInput defines the input for the list_versions tool.
type ListVersionsInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	Page       int    `json:"page,omitempty" jsonschema:"description=Page number of the result listing"`
	PageSize   int    `json:"page_size,omitempty" jsonschema:"description=Number of results per page"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// ListVersionsTool lists the versions of a dandiset.
type ListVersionsTool struct {
	Client *dandi.Client
}

var _ registry.Operation[ListVersionsInput] = (*ListVersionsTool)(nil)

func (t *ListVersionsTool) Name() string        { return "list_versions" }
func (t *ListVersionsTool) Description() string { return "List the versions of a dandiset" }

func (t *ListVersionsTool) Execute(ctx context.Context, input ListVersionsInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	q := url.Values{}
	setInt(q, "page", input.Page)
	setInt(q, "page_size", input.PageSize)

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/dandisets/%s/versions/", id),
		Query:    q,
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// GetVersionInput defines the input for the get_version tool.
type GetVersionInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	Version    string `json:"version" jsonschema:"required,description=Version identifier such as draft or 0.210831.2033"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// GetVersionTool retrieves the metadata of one dandiset version.
type GetVersionTool struct {
	Client *dandi.Client
}

var _ registry.Operation[GetVersionInput] = (*GetVersionTool)(nil)

func (t *GetVersionTool) Name() string { return "get_version" }
func (t *GetVersionTool) Description() string {
	return "Get the metadata of one version of a dandiset"
}

func (t *GetVersionTool) Execute(ctx context.Context, input GetVersionInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	if input.Version == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "version is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/dandisets/%s/versions/%s/", id, input.Version),
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// UpdateVersionInput defines the input for the update_version tool.
type UpdateVersionInput struct {
	DandisetID string         `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	Metadata   map[string]any `json:"metadata" jsonschema:"required,description=Complete metadata document that replaces the draft metadata"`
	Name       string         `json:"name,omitempty" jsonschema:"description=Dandiset name (defaults to the name field inside metadata)"`
	Version    string         `json:"version,omitempty" jsonschema:"description=Accepted for compatibility; the draft version is always the target"`
	APIURL     string         `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// UpdateVersionTool replaces the draft metadata of a dandiset. Published
// versions are immutable upstream, so the write always targets the draft
// no matter which version the caller names. The document is checked against
// the dandiset schema first; any violation blocks the write.
type UpdateVersionTool struct {
	Client  *dandi.Client
	Schemas *schema.Catalog
}

var _ registry.Operation[UpdateVersionInput] = (*UpdateVersionTool)(nil)

func (t *UpdateVersionTool) Name() string { return "update_version" }
func (t *UpdateVersionTool) Description() string {
	return "Replace the draft metadata of a dandiset after schema validation"
}

func (t *UpdateVersionTool) Execute(ctx context.Context, input UpdateVersionInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	if input.Metadata == nil {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "metadata is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	name := input.Name
	if name == "" {
		name, _ = input.Metadata["name"].(string)
	}
	if name == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments,
			"name is required (pass it directly or as a name field inside metadata)")
	}

	violations, err := t.Schemas.Validate("dandiset", input.Metadata)
	if err != nil {
		return nil, dandi.Errorf(dandi.CategoryInternalFailure, "validating metadata: %v", err)
	}
	if len(violations) > 0 {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments,
			"metadata failed dandiset schema validation:\n%s", violationList(violations))
	}

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/dandisets/%s/versions/draft/", id),
		Body: map[string]any{
			"name":     name,
			"metadata": input.Metadata,
		},
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(fmt.Sprintf("Draft of dandiset %s updated:\n\n%s", id, pretty(body))), nil
}

// PublishVersionInput defines the input for the publish_version tool.
type PublishVersionInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// PublishVersionTool publishes the draft version of a dandiset.
type PublishVersionTool struct {
	Client *dandi.Client
}

var _ registry.Operation[PublishVersionInput] = (*PublishVersionTool)(nil)

func (t *PublishVersionTool) Name() string        { return "publish_version" }
func (t *PublishVersionTool) Description() string { return "Publish the draft version of a dandiset" }

func (t *PublishVersionTool) Execute(ctx context.Context, input PublishVersionInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/dandisets/%s/versions/draft/publish/", id),
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(fmt.Sprintf("Dandiset %s published:\n\n%s", id, pretty(body))), nil
}
