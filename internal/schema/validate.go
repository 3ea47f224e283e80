package schema

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Violation is one schema violation at a specific location in a document.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a decoded metadata document against the named schema and
// returns every violation found. An empty result means the document
// conforms. The error return covers catalog and compilation problems, not
// document problems.
func (c *Catalog) Validate(name string, doc any) ([]Violation, error) {
	raw, err := c.Load(name)
	if err != nil {
		return nil, err
	}

	resource := name + schemaSuffix
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(resource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", name, err)
	}
	sch, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating against %s: %w", name, err)
	}

	var out []Violation
	collect(ve, &out)
	return out, nil
}

// collect flattens a validation error tree into its leaf violations, so
// callers see each concrete problem rather than the summarizing root.
func collect(ve *jsonschema.ValidationError, out *[]Violation) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Violation{
			Path:    instancePath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, out)
	}
}

func instancePath(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}
