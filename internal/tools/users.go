package tools

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/registry"
)

// CurrentUserInput defines the input for the get_current_user tool.
type CurrentUserInput struct {
	APIURL string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// CurrentUserTool returns the account the configured API key belongs to.
type CurrentUserTool struct {
	Client *dandi.Client
}

var _ registry.Operation[CurrentUserInput] = (*CurrentUserTool)(nil)

func (t *CurrentUserTool) Name() string { return "get_current_user" }
func (t *CurrentUserTool) Description() string {
	return "Get the user account that owns the configured API key"
}

func (t *CurrentUserTool) Execute(ctx context.Context, input CurrentUserInput) (*registry.Result, error) {
	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     "/users/me/",
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}

// SearchUsersInput defines the input for the search_users tool.
type SearchUsersInput struct {
	Username string `json:"username" jsonschema:"required,description=Username fragment to search for"`
	APIURL   string `json:"api_url,omitempty" jsonschema:"description=Override the archive API base URL for this call"`
}

// SearchUsersTool searches archive users by username.
type SearchUsersTool struct {
	Client *dandi.Client
}

var _ registry.Operation[SearchUsersInput] = (*SearchUsersTool)(nil)

func (t *SearchUsersTool) Name() string        { return "search_users" }
func (t *SearchUsersTool) Description() string { return "Search archive users by username" }

func (t *SearchUsersTool) Execute(ctx context.Context, input SearchUsersInput) (*registry.Result, error) {
	if input.Username == "" {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "username is required")
	}

	q := url.Values{}
	q.Set("username", input.Username)

	body, err := t.Client.Call(ctx, &dandi.Request{
		Method:   http.MethodGet,
		Path:     "/users/search/",
		Query:    q,
		Endpoint: input.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return registry.TextResult(pretty(body)), nil
}
