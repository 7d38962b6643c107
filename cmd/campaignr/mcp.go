package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/campaignr/internal/mcpserver"
	"github.com/mark3labs/campaignr/internal/store"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	http bool
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve stored campaigns to agents over MCP",
	Long: `Serve stored campaigns to agents over the Model Context Protocol.

The tools list_campaigns, get_campaign and preview_campaign are read-only.
By default the server speaks MCP on stdin/stdout; --http serves streamable
HTTP on a random local port instead and prints its URL.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpFlags.http, "http", false, "Serve over HTTP instead of stdio")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cmd.Context(), cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open campaign store: %w", err)
	}
	defer func() { _ = st.Close() }()

	srv := mcpserver.New(st, version)
	if !mcpFlags.http {
		return srv.ServeStdio()
	}

	if _, err := srv.Start(cmd.Context()); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	defer func() { _ = srv.Stop() }()
	fmt.Printf("MCP server listening on %s\n", srv.URL())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
		fmt.Println("\nShutting down...")
	case <-cmd.Context().Done():
	}
	return nil
}
