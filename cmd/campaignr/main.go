package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/campaignr/internal/config"
	"github.com/mark3labs/campaignr/internal/logger"
	"github.com/mark3labs/campaignr/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▀ ▄▀█ █▀▄▀█ █▀█ ▄▀█ █ █▀▀ █▄ █ █▀█"
	logoText2 = "█▄▄ █▀█ █ ▀ █ █▀▀ █▀█ █ █▄█ █ ▀█ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	dataDir string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "campaignr",
	Short: "Configure job-search outreach campaigns from the terminal",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

// loadConfig loads the configuration and points the logger at it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return cfg, nil
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

campaignr walks you through configuring an outreach campaign: who to reach,
the mailbox to send from, how messages are written, and what to attach.
Finished campaigns are stored in an embedded NATS JetStream log and can be
listed, inspected, previewed, or served to agents over MCP.

Configuration is loaded from multiple sources with the following precedence:
  CLI flags > Environment variables > Project config > Global config > Defaults

Project config: ./campaignr.yml
Global config: ~/.config/campaignr/campaignr.yml`

	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory for the campaign store (default from config)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(mcpCmd)
}
