// Package server wires the archive client, schema catalog, enhancer, and
// operation registry together and exposes them over MCP stdio.
//
// This is the composition root: it creates the concrete collaborators and
// injects them into the tools. No operation logic lives here.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dandi/dandi-mcp/internal/config"
	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/enhance"
	"github.com/dandi/dandi-mcp/internal/registry"
	"github.com/dandi/dandi-mcp/internal/schema"
	"github.com/dandi/dandi-mcp/internal/tools"
)

// Name identifies the server to MCP clients.
const Name = "dandi-mcp"

// Server is the composed MCP server.
type Server struct {
	srv    *server.MCPServer
	ops    *registry.Registry
	logger *slog.Logger
}

// New builds the full server from settings. All collaborators are
// constructed here once and shared across invocations.
func New(cfg *config.Settings, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	client := dandi.NewClient(
		dandi.WithAPIKey(cfg.APIKey),
		dandi.WithBaseURL(cfg.APIURL),
		dandi.WithTimeout(cfg.Timeout()),
		dandi.WithRateLimit(cfg.RateLimit),
		dandi.WithLogger(logger),
	)

	model := anthropic.Model(cfg.Model)
	var gen enhance.Generator
	if cfg.AnthropicAPIKey != "" {
		gen = enhance.NewAnthropicGenerator(cfg.AnthropicAPIKey, model)
	} else {
		logger.Warn("ANTHROPIC_API_KEY is not set; enhance_metadata will fail until it is")
	}
	enhancer := enhance.New(gen, model,
		enhance.WithLogger(logger),
		enhance.WithTracker(enhance.NewTracker(enhance.DefaultPricing)),
	)

	ops := registry.New()
	tools.RegisterAll(ops, tools.Deps{
		Client:   client,
		Schemas:  schema.NewCatalog(cfg.SchemaDir),
		Enhancer: enhancer,
	})

	s := &Server{
		ops:    ops,
		logger: logger,
	}

	srv := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions()),
	)
	for _, d := range ops.Descriptors() {
		srv.AddTool(mcp.NewToolWithRawSchema(d.Name, d.Description, d.InputSchema), s.handler(d.Name))
	}
	s.srv = srv

	return s
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
// Log output goes to stderr; stdout belongs to the protocol.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving", "name", Name, "tools", len(s.ops.Names()))
	return server.ServeStdio(s.srv)
}

// handler adapts one registered operation to the MCP tool contract. Failures
// become error results, never protocol errors, so the client always receives
// the category and message.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := s.logger.With("call_id", generateID("call"), "tool", name)

		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			e := dandi.Errorf(dandi.CategoryInvalidArguments, "invalid arguments: %v", err)
			return mcp.NewToolResultError(e.Error()), nil
		}

		start := time.Now()
		res, err := s.ops.Dispatch(ctx, name, args)
		if err != nil {
			e := dandi.Normalize(err)
			log.Warn("operation failed",
				"category", e.Category.String(),
				"error", e.Message,
				"duration", time.Since(start))
			return mcp.NewToolResultError(e.Error()), nil
		}
		log.Debug("operation completed", "duration", time.Since(start))

		return toolResult(res), nil
	}
}

// toolResult converts a registry result into MCP content blocks.
func toolResult(res *registry.Result) *mcp.CallToolResult {
	if res == nil || len(res.Content) == 0 {
		return mcp.NewToolResultText("")
	}
	if len(res.Content) == 1 {
		return mcp.NewToolResultText(res.Content[0])
	}
	content := make([]mcp.Content, len(res.Content))
	for i, text := range res.Content {
		content[i] = mcp.NewTextContent(text)
	}
	return &mcp.CallToolResult{Content: content}
}

// instructions returns the usage guidance sent to MCP clients.
func instructions() string {
	return `You have access to the DANDI Archive (https://dandiarchive.org), a public
repository of neurophysiology datasets called dandisets.

Conventions:
- Dandiset identifiers are six digits such as 000026. A DANDI: prefix is
  accepted everywhere an identifier is.
- Versions are "draft" or publish stamps such as 0.210831.2033. Only the
  draft is mutable; update_version and publish_version always operate on
  the draft no matter which version is named.
- Listing tools accept page and page_size and return raw archive JSON.
- get_asset_download_url resolves a direct blob-store URL without
  downloading any data.
- Write operations (create_dandiset, delete_dandiset, star_dandiset,
  update_version, publish_version) need a DANDI API key with permission on
  the dandiset.
- update_version checks the document against the dandiset JSON Schema
  before writing and reports every violation; fix all of them and retry.
- enhance_metadata drafts improved metadata with a generative model. It
  never writes back: review the result and apply it with update_version.
- validate_metadata checks a document against the bundled schemas without
  contacting the archive.`
}
