// Package schema derives JSON Schemas for tool inputs from Go struct types,
// and resolves and applies the DANDI metadata schemas bundled with the server.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Input produces the JSON Schema for a tool input struct T as a raw schema
// document. Struct tags (json, jsonschema) drive the result.
func Input[T any]() json.RawMessage {
	var zero T
	s := jsonschema.Reflect(&zero)

	// The top-level schema wraps the actual type; extract properties and
	// required from the root definition.
	root := extractRoot(s)

	props := schemaProperties(root)
	if props == nil {
		props = map[string]any{}
	}

	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(root.Required) > 0 {
		doc["required"] = root.Required
	}

	data, _ := json.Marshal(doc)
	return data
}

// extractRoot resolves the root schema, following $ref to $defs if needed.
func extractRoot(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Ref != "" && s.Definitions != nil {
		// invopop/jsonschema puts the actual type under $defs with a ref
		// like "#/$defs/TypeName".
		for _, def := range s.Definitions {
			if def.Type == "object" {
				return def
			}
		}
	}
	return s
}

// schemaProperties converts an ordered map of properties into a plain
// map[string]any ready for serialization.
func schemaProperties(s *jsonschema.Schema) map[string]any {
	if s.Properties == nil {
		return nil
	}
	props := make(map[string]any)
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = propertySchema(pair.Value)
	}
	return props
}

// propertySchema converts a single property schema to a serializable map.
func propertySchema(s *jsonschema.Schema) map[string]any {
	m := make(map[string]any)

	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Default != nil {
		m["default"] = s.Default
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}

	// Pointer fields reflect as anyOf with a null branch; surface the
	// non-null type.
	if len(s.AnyOf) > 0 {
		for _, sub := range s.AnyOf {
			if sub.Type != "null" && sub.Type != "" {
				m["type"] = sub.Type
				break
			}
		}
	}

	// Nested object properties
	if s.Properties != nil {
		m["type"] = "object"
		m["properties"] = schemaProperties(s)
		if len(s.Required) > 0 {
			m["required"] = s.Required
		}
	}

	// Array items
	if s.Items != nil {
		m["items"] = propertySchema(s.Items)
	}

	return m
}
