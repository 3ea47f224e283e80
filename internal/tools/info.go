package tools

import (
	"context"
	"net/http"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/registry"
)

// InfoInput defines the input for the get_info tool.
type InfoInput struct {
	APIURL string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// InfoTool reports archive deployment information.
type InfoTool struct {
	Client *dandi.Client
}

var _ registry.Operation[InfoInput] = (*InfoTool)(nil)

func (t *InfoTool) Name() string        { return "get_info" }
func (t *InfoTool) Description() string { return "Get archive deployment information" }

func (t *InfoTool) Execute(ctx context.Context, input InfoInput) (*registry.Result, error) {
	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     "/info/",
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// StatsInput defines the input for the get_stats tool.
type StatsInput struct {
	APIURL string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// StatsTool reports archive-wide statistics.
type StatsTool struct {
	Client *dandi.Client
}

var _ registry.Operation[StatsInput] = (*StatsTool)(nil)

func (t *StatsTool) Name() string        { return "get_stats" }
func (t *StatsTool) Description() string { return "Get archive-wide statistics" }

func (t *StatsTool) Execute(ctx context.Context, input StatsInput) (*registry.Result, error) {
	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     "/stats/",
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}
