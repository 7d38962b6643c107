package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/store"
	"github.com/spf13/cobra"
)

var previewFlags struct {
	hook   int
	body   int
	cta    int
	random bool
}

var previewCmd = &cobra.Command{
	Use:   "preview <id>",
	Short: "Print the message a recipient of a stored campaign would get",
	Long: `Print the message a recipient of a stored campaign would get.

For A/B test campaigns, --hook, --body and --cta pick the combination
(1-based), or --random picks one. Template campaigns print their template.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewFlags.hook, "hook", 1, "Hook number")
	previewCmd.Flags().IntVar(&previewFlags.body, "body", 1, "Body number")
	previewCmd.Flags().IntVar(&previewFlags.cta, "cta", 1, "CTA number")
	previewCmd.Flags().BoolVarP(&previewFlags.random, "random", "r", false, "Pick a random combination")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cmd.Context(), cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open campaign store: %w", err)
	}
	defer func() { _ = st.Close() }()

	rec, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	switch rec.Mode {
	case campaign.ModeTemplate:
		if rec.Template == nil {
			return fmt.Errorf("campaign %s has no template", rec.ID)
		}
		fmt.Printf("Subject: %s\n\n%s\n", rec.Template.Subject, rec.Template.Body)
		return nil
	case campaign.ModeABTest:
		if rec.Variants == nil {
			return fmt.Errorf("campaign %s has no variants", rec.ID)
		}
	default:
		fmt.Println("Messages for this campaign are written per recipient; there is nothing to preview.")
		return nil
	}

	v := rec.Variants
	if len(v.Hooks) == 0 || len(v.Bodies) == 0 || len(v.CTAs) == 0 {
		return fmt.Errorf("campaign %s has an empty variant section", rec.ID)
	}
	hook, body, cta := previewFlags.hook-1, previewFlags.body-1, previewFlags.cta-1
	if previewFlags.random {
		hook, body, cta = rand.IntN(len(v.Hooks)), rand.IntN(len(v.Bodies)), rand.IntN(len(v.CTAs))
	}

	text, err := v.Preview(hook, body, cta)
	if err != nil {
		return err
	}
	fmt.Printf("hook %d · body %d · CTA %d of %d combination(s)\n\n%s\n",
		hook+1, body+1, cta+1, len(v.Hooks)*len(v.Bodies)*len(v.CTAs), text)
	return nil
}
