package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/estimator"
	"github.com/spf13/cobra"
)

var estimateFlags struct {
	titles       []string
	locations    []string
	seniorities  []string
	companySizes []string
	industries   []string
	priority     []string
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the audience for some targeting",
	Long: `Estimate how many contacts match some targeting, without creating a
campaign. At least one title and one location are required.

Example:
  campaignr estimate --title "Backend Engineer" --location Berlin --location Remote`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringSliceVarP(&estimateFlags.titles, "title", "t", nil, "Job title (repeatable)")
	f.StringSliceVarP(&estimateFlags.locations, "location", "l", nil, "Location (repeatable)")
	f.StringSliceVar(&estimateFlags.seniorities, "seniority", nil, "Seniority level (repeatable)")
	f.StringSliceVar(&estimateFlags.companySizes, "company-size", nil, "Company size bucket, e.g. 51-200 (repeatable)")
	f.StringSliceVar(&estimateFlags.industries, "industry", nil, "Industry (repeatable)")
	f.StringSliceVar(&estimateFlags.priority, "priority-company", nil, "Priority company (repeatable)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var t campaign.Targeting
	t.Titles.Replace(estimateFlags.titles)
	t.Locations.Replace(estimateFlags.locations)
	t.Seniorities.Replace(estimateFlags.seniorities)
	t.CompanySizes.Replace(estimateFlags.companySizes)
	t.Industries.Replace(estimateFlags.industries)
	t.PriorityCompanies.Replace(estimateFlags.priority)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	est, err := estimator.Once(ctx, newClient(cfg), t.Criteria())
	if err != nil {
		return fmt.Errorf("estimating audience: %w", err)
	}

	fmt.Printf("~%s contacts\n", estimator.FormatCount(est.TotalAvailable))
	return nil
}
