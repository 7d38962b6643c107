package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mark3labs/campaignr/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored campaigns",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cmd.Context(), cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open campaign store: %w", err)
	}
	defer func() { _ = st.Close() }()

	records, err := st.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list campaigns: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No campaigns yet. Run 'campaignr new' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tMODE\tNAME\tTITLES\tLOCATIONS")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Mode,
			rec.Name,
			strings.Join(rec.Targeting.Titles, ", "),
			strings.Join(rec.Targeting.Locations, ", "),
		)
	}
	return w.Flush()
}
