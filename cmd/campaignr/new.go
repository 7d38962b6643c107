package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/config"
	"github.com/mark3labs/campaignr/internal/services"
	"github.com/mark3labs/campaignr/internal/store"
	"github.com/mark3labs/campaignr/internal/tui/campaignwizard"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a campaign with the interactive wizard",
	Long: `Create a campaign with the interactive wizard.

The wizard collects targeting, checks the outreach mailbox, chooses how
messages are generated, and stores the finished campaign. The ID of the
stored campaign is printed on success.`,
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open campaign store: %w", err)
	}
	defer func() { _ = st.Close() }()

	client := newClient(cfg)
	lang, err := campaign.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}

	id, err := campaignwizard.Run(ctx, campaignwizard.Options{
		Mailbox:          client,
		Generator:        client,
		Audience:         client,
		Store:            st,
		Catalog:          attachmentCatalog(cfg, client),
		Places:           client,
		EstimateDebounce: cfg.EstimateDebounce,
		Language:         lang,
		ConnectURL:       cfg.APIURL + "/settings/mailbox",
		Now:              time.Now,
	})
	if errors.Is(err, campaignwizard.ErrCancelled) {
		fmt.Println("Cancelled, nothing was saved.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Campaign created: %s\n", id)
	return nil
}

func newClient(cfg *config.Config) *services.Client {
	return services.NewClient(services.Options{
		BaseURL:      cfg.APIURL,
		APIKey:       cfg.APIKey,
		Timeout:      cfg.RequestTimeout,
		EstimateRate: cfg.EstimateRate,
	})
}

// attachmentCatalog prefers a local catalog file over the backend listing.
func attachmentCatalog(cfg *config.Config, client *services.Client) campaign.AttachmentCatalog {
	if cfg.CatalogFile != "" {
		return services.FileCatalog{Path: cfg.CatalogFile}
	}
	return client
}
