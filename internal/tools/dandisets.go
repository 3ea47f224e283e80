package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/registry"
)

// ListDandisetsInput defines the input for the list_dandisets tool.
type ListDandisetsInput struct {
	Search    string `json:"search,omitempty" jsonschema:"description=Search terms to match against dandiset name and metadata"`
	Ordering  string `json:"ordering,omitempty" jsonschema:"description=Sort field such as id or name or modified (prefix with - to reverse)"`
	Page      int    `json:"page,omitempty" jsonschema:"description=Page number of the result listing"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"description=Number of results per page"`
	Draft     *bool  `json:"draft,omitempty" jsonschema:"description=Include dandisets that only have a draft version (default true)"`
	Empty     *bool  `json:"empty,omitempty" jsonschema:"description=Include dandisets with no assets (default true)"`
	Embargoed *bool  `json:"embargoed,omitempty" jsonschema:"description=Include embargoed dandisets (default false)"`
	Starred   *bool  `json:"starred,omitempty" jsonschema:"description=Limit results to dandisets starred by the current user"`
	APIURL    string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// ListDandisetsTool lists dandisets with optional search and filters.
type ListDandisetsTool struct {
	Client *dandi.Client
}

var _ registry.Operation[ListDandisetsInput] = (*ListDandisetsTool)(nil)

func (t *ListDandisetsTool) Name() string { return "list_dandisets" }
func (t *ListDandisetsTool) Description() string {
	return "List dandisets in the DANDI Archive with optional search and filters"
}

func (t *ListDandisetsTool) Execute(ctx context.Context, input ListDandisetsInput) (*registry.Result, error) {
	q := url.Values{}
	setString(q, "search", input.Search)
	setString(q, "ordering", input.Ordering)
	setInt(q, "page", input.Page)
	setInt(q, "page_size", input.PageSize)
	setBool(q, "draft", input.Draft)
	setBool(q, "empty", input.Empty)
	setBool(q, "embargoed", input.Embargoed)
	setBool(q, "starred", input.Starred)

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     "/dandisets/",
		Query:    q,
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// GetDandisetInput defines the input for the get_dandiset tool.
type GetDandisetInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// GetDandisetTool retrieves a single dandiset.
type GetDandisetTool struct {
	Client *dandi.Client
}

var _ registry.Operation[GetDandisetInput] = (*GetDandisetTool)(nil)

func (t *GetDandisetTool) Name() string        { return "get_dandiset" }
func (t *GetDandisetTool) Description() string { return "Get a dandiset by identifier" }

func (t *GetDandisetTool) Execute(ctx context.Context, input GetDandisetInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/dandisets/%s/", id),
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// CreateDandisetInput defines the input for the create_dandiset tool.
type CreateDandisetInput struct {
	Name     string         `json:"name" jsonschema:"required,description=Name of the new dandiset"`
	Metadata map[string]any `json:"metadata" jsonschema:"required,description=Initial metadata document for the dandiset"`
	Embargo  bool           `json:"embargo,omitempty" jsonschema:"description=Create the dandiset under embargo"`
	APIURL   string         `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// CreateDandisetTool registers a new dandiset with the archive.
type CreateDandisetTool struct {
	Client *dandi.Client
}

var _ registry.Operation[CreateDandisetInput] = (*CreateDandisetTool)(nil)

func (t *CreateDandisetTool) Name() string { return "create_dandiset" }
func (t *CreateDandisetTool) Description() string {
	return "Create a new dandiset with the given name and metadata"
}

func (t *CreateDandisetTool) Execute(ctx context.Context, input CreateDandisetInput) (*registry.Result, error) {
	if input.Name == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "name is required")
	}
	if input.Metadata == nil {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "metadata is required")
	}

	q := url.Values{}
	if input.Embargo {
		q.Set("embargo", "true")
	}

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method: http.MethodPost,
		Path:   "/dandisets/",
		Query:  q,
		Body: map[string]any{
			"name":     input.Name,
			"metadata": input.Metadata,
		},
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult("Dandiset created:\n\n" + pretty(body)), nil
}

// DeleteDandisetInput defines the input for the delete_dandiset tool.
type DeleteDandisetInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// DeleteDandisetTool removes a dandiset from the archive.
type DeleteDandisetTool struct {
	Client *dandi.Client
}

var _ registry.Operation[DeleteDandisetInput] = (*DeleteDandisetTool)(nil)

func (t *DeleteDandisetTool) Name() string { return "delete_dandiset" }
func (t *DeleteDandisetTool) Description() string {
	return "Delete a dandiset (requires owner permissions)"
}

func (t *DeleteDandisetTool) Execute(ctx context.Context, input DeleteDandisetInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	_, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodDelete,
		Path:     fmt.Sprintf("/dandisets/%s/", id),
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(fmt.Sprintf("Dandiset %s deleted.", id)), nil
}

// StarDandisetInput defines the input for the star_dandiset tool.
type StarDandisetInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	Star       *bool  `json:"star" jsonschema:"required,description=true to star the dandiset and false to remove the star"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// StarDandisetTool stars or unstars a dandiset for the current user.
type StarDandisetTool struct {
	Client *dandi.Client
}

var _ registry.Operation[StarDandisetInput] = (*StarDandisetTool)(nil)

func (t *StarDandisetTool) Name() string { return "star_dandiset" }
func (t *StarDandisetTool) Description() string {
	return "Star or unstar a dandiset for the current user"
}

func (t *StarDandisetTool) Execute(ctx context.Context, input StarDandisetInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	if input.Star == nil {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "star is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	action := "unstar"
	if *input.Star {
		action = "star"
	}

	_, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/dandisets/%s/%s/", id, action),
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}

	if *input.Star {
		return registry.TextResult(fmt.Sprintf("Dandiset %s starred.", id)), nil
	}
	return registry.TextResult(fmt.Sprintf("Dandiset %s unstarred.", id)), nil
}
