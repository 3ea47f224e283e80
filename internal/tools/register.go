package tools

import (
	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/enhance"
	"github.com/dandi/dandi-mcp/internal/registry"
	"github.com/dandi/dandi-mcp/internal/schema"
)

// Deps carries the collaborators shared by the archive tools.
type Deps struct {
	Client   *dandi.Client
	Schemas  *schema.Catalog
	Enhancer *enhance.Enhancer
}

// RegisterAll registers every archive operation into the registry, in the
// order they are declared to callers.
func RegisterAll(r *registry.Registry, deps Deps) {
	registry.Register(r, &ListDandisetsTool{Client: deps.Client})
	registry.Register(r, &GetDandisetTool{Client: deps.Client})
	registry.Register(r, &CreateDandisetTool{Client: deps.Client})
	registry.Register(r, &DeleteDandisetTool{Client: deps.Client})
	registry.Register(r, &StarDandisetTool{Client: deps.Client})
	registry.Register(r, &ListVersionsTool{Client: deps.Client})
	registry.Register(r, &GetVersionTool{Client: deps.Client})
	registry.Register(r, &UpdateVersionTool{Client: deps.Client, Schemas: deps.Schemas})
	registry.Register(r, &PublishVersionTool{Client: deps.Client})
	registry.Register(r, &ListAssetsTool{Client: deps.Client})
	registry.Register(r, &GetAssetTool{Client: deps.Client})
	registry.Register(r, &AssetDownloadURLTool{Client: deps.Client})
	registry.Register(r, &CurrentUserTool{Client: deps.Client})
	registry.Register(r, &SearchUsersTool{Client: deps.Client})
	registry.Register(r, &InfoTool{Client: deps.Client})
	registry.Register(r, &StatsTool{Client: deps.Client})
	registry.Register(r, &EnhanceMetadataTool{Client: deps.Client, Enhancer: deps.Enhancer})
	registry.Register(r, &ValidateMetadataTool{Schemas: deps.Schemas})
}
