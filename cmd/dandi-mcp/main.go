// Package main provides the dandi-mcp entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dandi-mcp",
	Short: "MCP server for the DANDI Archive",
	Long: `dandi-mcp exposes the DANDI Archive (https://dandiarchive.org) to MCP
clients over stdio: browsing dandisets, versions, and assets, editing and
publishing draft metadata, and validating documents against the DANDI
schemas.

Run with no arguments to serve. Credentials come from the environment
(DANDI_API_KEY, ANTHROPIC_API_KEY), a .env file in the working
directory, or a settings file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	// Load .env if present (for DANDI_API_KEY / ANTHROPIC_API_KEY)
	_ = godotenv.Load()

	rootCmd.Version = Version
}
