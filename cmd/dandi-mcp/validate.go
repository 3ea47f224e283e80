package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/dandi/dandi-mcp/internal/config"
	"github.com/dandi/dandi-mcp/internal/schema"
)

// validateSchemaName selects which bundled schema to validate against.
var validateSchemaName string

func init() {
	validateCmd.Flags().StringVar(&validateSchemaName, "schema", "dandiset", "Schema to validate against (see the schemas command)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file|pattern>...",
	Short: "Validate metadata files against a bundled schema",
	Long: `Validate JSON metadata documents against one of the bundled DANDI
schemas without contacting the archive. Arguments are file paths or glob
patterns such as 'drafts/**/*.json'.

Exits 2 when any document fails validation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultPaths()...)
	if err != nil {
		return err
	}
	catalog := schema.NewCatalog(cfg.SchemaDir)

	paths, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no files matched")
	}

	failed := 0
	for _, path := range paths {
		violations, err := validateFile(catalog, path)
		if err != nil {
			return err
		}
		if len(violations) == 0 {
			fmt.Printf("%s: valid\n", path)
			continue
		}
		failed++
		fmt.Printf("%s: %d violation(s)\n", path, len(violations))
		for _, v := range violations {
			fmt.Printf("  - %s\n", v)
		}
	}

	if failed > 0 {
		os.Exit(ExitInvalid)
	}
	return nil
}

func validateFile(catalog *schema.Catalog, path string) ([]schema.Violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	violations, err := catalog.Validate(validateSchemaName, doc)
	if errors.Is(err, schema.ErrUnknownSchema) {
		return nil, fmt.Errorf("unknown schema %q; run the schemas command to list them", validateSchemaName)
	}
	if err != nil {
		return nil, err
	}
	return violations, nil
}

// expandPatterns resolves arguments to file paths. Plain paths pass through
// untouched so missing files still surface a read error by name.
func expandPatterns(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
