package tools

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandi/dandi-mcp/internal/dandi"
)

func TestListAssets(t *testing.T) {
	stub, client := newArchive(t, nil)
	tool := &ListAssetsTool{Client: client}

	_, err := tool.Execute(context.Background(), ListAssetsInput{
		DandisetID: "DANDI:000026",
		Version:    "draft",
		Glob:       "*.nwb",
		Metadata:   boolPtr(true),
		PageSize:   25,
	})

	require.NoError(t, err)
	req := stub.last()
	assert.Equal(t, "/dandisets/000026/versions/draft/assets/", req.path)
	assert.Equal(t, "*.nwb", req.query.Get("glob"))
	assert.Equal(t, "true", req.query.Get("metadata"))
	assert.Equal(t, "25", req.query.Get("page_size"))
	assert.False(t, req.query.Has("order"))
	assert.False(t, req.query.Has("page"))
}

func TestListAssetsRequiresVersion(t *testing.T) {
	stub, client := newArchive(t, nil)
	tool := &ListAssetsTool{Client: client}

	_, err := tool.Execute(context.Background(), ListAssetsInput{DandisetID: "000026"})

	requireCategory(t, err, dandi.CategoryInvalidArguments)
	assert.Zero(t, stub.count())
}

func TestGetAsset(t *testing.T) {
	stub, client := newArchive(t, jsonHandler(http.StatusOK, `{"asset_id":"8a94-11ec","path":"sub-01/sub-01.nwb"}`))
	tool := &GetAssetTool{Client: client}

	res, err := tool.Execute(context.Background(), GetAssetInput{AssetID: "8a94-11ec"})

	require.NoError(t, err)
	assert.Equal(t, "/assets/8a94-11ec/", stub.last().path)
	assert.Contains(t, resultText(res), "sub-01/sub-01.nwb")
}

func TestGetAssetRequiresID(t *testing.T) {
	stub, client := newArchive(t, nil)
	tool := &GetAssetTool{Client: client}

	_, err := tool.Execute(context.Background(), GetAssetInput{})

	requireCategory(t, err, dandi.CategoryInvalidArguments)
	assert.Zero(t, stub.count())
}

func TestAssetDownloadURL(t *testing.T) {
	const blobURL = "https://dandiarchive.s3.amazonaws.com/blobs/8a9/411/8a9411ec"

	stub, client := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", blobURL)
		w.WriteHeader(http.StatusMovedPermanently)
	})
	tool := &AssetDownloadURLTool{Client: client}

	res, err := tool.Execute(context.Background(), AssetDownloadURLInput{AssetID: "8a9411ec"})

	require.NoError(t, err)
	assert.Equal(t, "/assets/8a9411ec/download/", stub.last().path)
	assert.Contains(t, resultText(res), blobURL)
}

func TestAssetDownloadURLRejectsDirectBody(t *testing.T) {
	_, client := newArchive(t, jsonHandler(http.StatusOK, `binary bytes`))
	tool := &AssetDownloadURLTool{Client: client}

	_, err := tool.Execute(context.Background(), AssetDownloadURLInput{AssetID: "8a9411ec"})

	de := requireCategory(t, err, dandi.CategoryUpstreamFailure)
	assert.Contains(t, de.Message, "expected a redirect")
}

func TestAssetDownloadURLMissingLocation(t *testing.T) {
	_, client := newArchive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMovedPermanently)
	})
	tool := &AssetDownloadURLTool{Client: client}

	_, err := tool.Execute(context.Background(), AssetDownloadURLInput{AssetID: "8a9411ec"})

	de := requireCategory(t, err, dandi.CategoryUpstreamFailure)
	assert.Contains(t, de.Message, "Location")
}

func TestAssetDownloadURLNotFound(t *testing.T) {
	_, client := newArchive(t, jsonHandler(http.StatusNotFound, `{"detail":"Not found."}`))
	tool := &AssetDownloadURLTool{Client: client}

	_, err := tool.Execute(context.Background(), AssetDownloadURLInput{AssetID: "missing"})

	requireCategory(t, err, dandi.CategoryNotFound)
}
