// Package registry holds the named operations exposed by the server and
// dispatches invocations to them.
package registry

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dandi/dandi-mcp/internal/dandi"
	"github.com/dandi/dandi-mcp/internal/schema"
)

// Operation is the generic interface for archive operations. The type
// parameter T defines the input struct deserialized from the caller's
// JSON arguments.
type Operation[T any] interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input T) (*Result, error)
}

// Result is the successful output of an operation: an ordered sequence of
// text payloads.
type Result struct {
	Content []string
}

// TextResult is a convenience constructor for a single-text result.
func TextResult(text string) *Result {
	return &Result{Content: []string{text}}
}

// entry is the type-erased wrapper stored in the registry.
type entry struct {
	name        string
	description string
	schema      json.RawMessage
	execute     func(ctx context.Context, raw json.RawMessage) (*Result, error)
}

// Registry manages registered operations. It is concurrent-safe.
type Registry struct {
	mu    sync.RWMutex
	ops   map[string]*entry
	order []string // preserve registration order
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		ops: make(map[string]*entry),
	}
}

// Register adds an operation to the registry. The input type T is used to
// derive the operation's argument schema.
func Register[T any](r *Registry, op Operation[T]) {
	e := &entry{
		name:        op.Name(),
		description: op.Description(),
		schema:      schema.Input[T](),
		execute: func(ctx context.Context, raw json.RawMessage) (*Result, error) {
			if len(raw) == 0 {
				raw = json.RawMessage(`{}`)
			}
			var input T
			if err := json.Unmarshal(raw, &input); err != nil {
				return nil, dandi.Errorf(dandi.CategoryInvalidArguments, "invalid arguments: %v", err)
			}
			return op.Execute(ctx, input)
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[e.name]; !exists {
		r.order = append(r.order, e.name)
	}
	r.ops[e.name] = e
}

// Dispatch runs an operation by name with the given raw JSON arguments.
// Every error coming out of Dispatch is categorized.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) (*Result, error) {
	r.mu.RLock()
	e, ok := r.ops[name]
	r.mu.RUnlock()

	if !ok {
		return nil, dandi.Errorf(dandi.CategoryInternalFailure, "unknown operation: %s", name)
	}

	res, err := e.execute(ctx, args)
	if err != nil {
		return nil, dandi.Normalize(err)
	}
	return res, nil
}

// Descriptor describes one registered operation for transport declaration.
type Descriptor struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Descriptors returns the registered operations in registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		e := r.ops[name]
		out = append(out, Descriptor{
			Name:        e.name,
			Description: e.description,
			InputSchema: e.schema,
		})
	}
	return out
}

// Names returns the names of all registered operations in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
