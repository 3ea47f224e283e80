package schema

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

//go:embed schemas/*.schema.json
var builtin embed.FS

const schemaSuffix = ".schema.json"

// ErrUnknownSchema indicates the requested schema name is not in the catalog.
var ErrUnknownSchema = errors.New("schema: unknown schema name")

// Catalog resolves DANDI metadata schemas by name. Schemas live in files
// named <name>.schema.json; with no directory override the bundled set is
// served.
type Catalog struct {
	dir string
}

// NewCatalog creates a catalog backed by dir, or by the bundled schemas
// when dir is empty.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

func (c *Catalog) source() (fs.FS, error) {
	if c.dir == "" {
		return fs.Sub(builtin, "schemas")
	}
	return os.DirFS(c.dir), nil
}

// Names lists the available schema names, sorted.
func (c *Catalog) Names() ([]string, error) {
	fsys, err := c.source()
	if err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(fsys, "**/*"+schemaSuffix)
	if err != nil {
		return nil, fmt.Errorf("scanning schema catalog: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), schemaSuffix))
	}
	sort.Strings(names)
	return names, nil
}

// Load returns the raw schema document for name.
func (c *Catalog) Load(name string) ([]byte, error) {
	fsys, err := c.source()
	if err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(fsys, "**/"+name+schemaSuffix)
	if err != nil {
		return nil, fmt.Errorf("scanning schema catalog: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	data, err := fs.ReadFile(fsys, matches[0])
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	return data, nil
}
