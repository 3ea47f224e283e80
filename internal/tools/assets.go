package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/registry"
)

// ListAssetsInput defines the input for the list_assets tool.
type ListAssetsInput struct {
	DandisetID string `json:"dandiset_id" jsonschema:"required,description=Dandiset identifier such as 000026 (a DANDI: prefix is accepted)"`
	Version    string `json:"version" jsonschema:"required,description=Version identifier such as draft or 0.210831.2033"`
	Glob       string `json:"glob,omitempty" jsonschema:"description=Path glob filter such as *.nwb"`
	Order      string `json:"order,omitempty" jsonschema:"description=Sort field for assets such as path or created or modified"`
	Metadata   *bool  `json:"metadata,omitempty" jsonschema:"description=Include each asset's full metadata document in the listing"`
	Page       int    `json:"page,omitempty" jsonschema:"description=Page number of the result listing"`
	PageSize   int    `json:"page_size,omitempty" jsonschema:"description=Number of results per page"`
	APIURL     string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// ListAssetsTool lists the assets of a dandiset version.
type ListAssetsTool struct {
	Client *dandi.Client
}

var _ registry.Operation[ListAssetsInput] = (*ListAssetsTool)(nil)

func (t *ListAssetsTool) Name() string        { return "list_assets" }
func (t *ListAssetsTool) Description() string { return "List the assets of a dandiset version" }

func (t *ListAssetsTool) Execute(ctx context.Context, input ListAssetsInput) (*registry.Result, error) {
	if input.DandisetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "dandiset_id is required")
	}
	if input.Version == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "version is required")
	}
	id := normalizeDandisetID(input.DandisetID)

	q := url.Values{}
	setString(q, "glob", input.Glob)
	setString(q, "order", input.Order)
	setBool(q, "metadata", input.Metadata)
	setInt(q, "page", input.Page)
	setInt(q, "page_size", input.PageSize)

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/dandisets/%s/versions/%s/assets/", id, input.Version),
		Query:    q,
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// GetAssetInput defines the input for the get_asset tool.
type GetAssetInput struct {
	AssetID string `json:"asset_id" jsonschema:"required,description=Asset identifier (UUID)"`
	APIURL  string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// GetAssetTool retrieves a single asset.
type GetAssetTool struct {
	Client *dandi.Client
}

var _ registry.Operation[GetAssetInput] = (*GetAssetTool)(nil)

func (t *GetAssetTool) Name() string        { return "get_asset" }
func (t *GetAssetTool) Description() string { return "Get an asset by identifier" }

func (t *GetAssetTool) Execute(ctx context.Context, input GetAssetInput) (*registry.Result, error) {
	if input.AssetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "asset_id is required")
	}

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/assets/%s/", input.AssetID),
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// AssetDownloadURLInput defines the input for the get_asset_download_url tool.
type AssetDownloadURLInput struct {
	AssetID string `json:"asset_id" jsonschema:"required,description=Asset identifier (UUID)"`
	APIURL  string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// AssetDownloadURLTool resolves the direct download location of an asset.
// The archive answers the download path with a permanent redirect whose
// Location header points at the blob store; that header is the result, so
// redirect following is suppressed and 301 is the only success status.
type AssetDownloadURLTool struct {
	Client *dandi.Client
}

var _ registry.Operation[AssetDownloadURLInput] = (*AssetDownloadURLTool)(nil)

func (t *AssetDownloadURLTool) Name() string { return "get_asset_download_url" }
func (t *AssetDownloadURLTool) Description() string {
	return "Resolve the direct download URL of an asset"
}

func (t *AssetDownloadURLTool) Execute(ctx context.Context, input AssetDownloadURLInput) (*registry.Result, error) {
	if input.AssetID == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "asset_id is required")
	}

	resp, err := t.Client.Do(ctx, &dandi.Request{
		Method:     http.MethodGet,
		Path:       fmt.Sprintf("/assets/%s/download/", input.AssetID),
		Endpoint:   input.APIURL,
		NoRedirect: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.Status >= 400 {
		return nil, dandi.ResponseError(resp.Status, resp.Body)
	}
	if resp.Status != http.StatusMovedPermanently {
		return nil, dandi.Errorf(dandi.CategoryUpstreamFailure,
			"expected a redirect to the download location, got HTTP %d", resp.Status)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return nil, dandi.Errorf(dandi.CategoryUpstreamFailure, "redirect response is missing the Location header")
	}
	return registry.TextResult(fmt.Sprintf("Download URL for asset %s:\n%s", input.AssetID, location)), nil
}
