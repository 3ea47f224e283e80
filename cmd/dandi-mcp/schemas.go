package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dandi/dandi-mcp/internal/config"
	"github.com/dandi/dandi-mcp/internal/schema"
)

func init() {
	rootCmd.AddCommand(schemasCmd)
}

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the bundled metadata schemas",
	Long: `List the schema names accepted by validate and by the
validate_metadata tool. DANDI_SCHEMA_DIR overrides the bundled set.`,
	RunE: runSchemas,
}

func runSchemas(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultPaths()...)
	if err != nil {
		return err
	}

	names, err := schema.NewCatalog(cfg.SchemaDir).Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
