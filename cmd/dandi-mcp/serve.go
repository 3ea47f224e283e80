package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dandi/dandi-mcp/internal/config"
	"github.com/dandi/dandi-mcp/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over stdio",
	Long: `Serve the MCP protocol on stdin/stdout until the client disconnects.
This is the default when dandi-mcp runs without a subcommand.

Logging goes to stderr; stdout carries the protocol.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultPaths()...)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	return server.New(cfg, Version, logger).ServeStdio()
}
