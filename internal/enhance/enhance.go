// Package enhance rewrites Dandiset metadata with a generative model.
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dandi/dandi-mcp/internal/dandi"
)

const (
	// defaultMaxTokens bounds one generation; a full Dandiset metadata
	// document fits comfortably.
	defaultMaxTokens = 8192

	systemPrompt = `You are a metadata curator for the DANDI Archive, a public repository of neurophysiology datasets. You improve Dandiset metadata documents while preserving their factual content.

Rules:
- Return the complete updated metadata document as a single JSON object.
- Keep every existing field unless the instructions say otherwise; refine and extend rather than discard.
- Follow DANDI metadata conventions: schemaKey discriminators on nested objects, contributor names as "Last, First", spdx license identifiers.
- Never invent factual claims such as contributors, funding sources, or publications.
- Reply with JSON only. No commentary and no code fences.`

	defaultInstructions = "Improve the completeness and clarity of this metadata. Fill in recommended fields that can be derived from the existing content, expand the description where it is thin, and add relevant keywords."
)

// Generator produces one text completion for a system/user prompt pair.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, Usage, error)
}

// AnthropicGenerator calls the Anthropic Messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicGenerator creates a generator for the given model.
func NewAnthropicGenerator(apiKey string, model anthropic.Model, opts ...option.RequestOption) *AnthropicGenerator {
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(all...)
	return &AnthropicGenerator{
		client: &client,
		model:  model,
	}
}

// Generate runs one completion and returns the concatenated text blocks.
func (g *AnthropicGenerator) Generate(ctx context.Context, system, prompt string) (string, Usage, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", Usage{}, fmt.Errorf("anthropic generate: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(b.Text)
		}
	}

	return text.String(), Usage{
		InputTokens:              int(msg.Usage.InputTokens),
		OutputTokens:             int(msg.Usage.OutputTokens),
		CacheReadInputTokens:     int(msg.Usage.CacheReadInputTokens),
		CacheCreationInputTokens: int(msg.Usage.CacheCreationInputTokens),
	}, nil
}

// Enhancer runs metadata documents through a generative model and parses
// the reply back into a document.
type Enhancer struct {
	gen     Generator
	model   anthropic.Model
	tracker *Tracker
	logger  *slog.Logger
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithLogger sets the logger for usage reporting.
func WithLogger(l *slog.Logger) Option {
	return func(e *Enhancer) {
		e.logger = l
	}
}

// WithTracker sets a shared usage tracker.
func WithTracker(t *Tracker) Option {
	return func(e *Enhancer) {
		e.tracker = t
	}
}

// New creates an Enhancer. A nil generator is allowed and makes Enhance
// fail with a configuration error, so the caller can wire the server
// without an Anthropic credential.
func New(gen Generator, model anthropic.Model, opts ...Option) *Enhancer {
	e := &Enhancer{
		gen:     gen,
		model:   model,
		tracker: NewTracker(DefaultPricing),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance rewrites metadata according to instructions and returns the
// complete updated document. Empty instructions ask for general enrichment.
func (e *Enhancer) Enhance(ctx context.Context, metadata map[string]any, instructions string) (map[string]any, error) {
	if e.gen == nil {
		return nil, dandi.Errorf(dandi.CategoryInternalFailure,
			"generative backend not configured (set ANTHROPIC_API_KEY)")
	}
	if instructions == "" {
		instructions = defaultInstructions
	}

	current, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "metadata is not serializable: %v", err)
	}

	reply, usage, err := e.gen.Generate(ctx, systemPrompt, buildPrompt(current, instructions))
	if err != nil {
		var de *dandi.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, dandi.Errorf(dandi.CategoryUpstreamFailure, "generative backend: %v", err)
	}

	e.tracker.Record(e.model, usage)
	e.logger.Debug("metadata enhancement",
		"model", e.model,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"total_cost_usd", e.tracker.TotalCost())

	doc, err := parseReply(reply)
	if err != nil {
		return nil, dandi.Errorf(dandi.CategoryInternalFailure, "unusable model reply: %v", err)
	}
	return doc, nil
}

func buildPrompt(current []byte, instructions string) string {
	var b strings.Builder
	b.WriteString("Current metadata:\n\n")
	b.Write(current)
	b.WriteString("\n\nInstructions:\n\n")
	b.WriteString(instructions)
	b.WriteString("\n\nReturn the complete updated metadata document as a single JSON object.")
	return b.String()
}

// parseReply extracts the JSON object from a model reply. Replies sometimes
// arrive wrapped in prose or a code fence despite the system prompt, so the
// text between the first and last brace is what gets parsed.
func parseReply(reply string) (map[string]any, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON object in reply")
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
