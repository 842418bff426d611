package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/exitbase/listing-engine/internal/catalog"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Fetch, filter, and print the public catalog",
	Long: `Fetches the catalog, applies the status gate and the filter
specification built from flags, and prints one page of results.

Examples:
  # First page with defaults
  browse

  # SaaS listings under $50k generating revenue
  browse --niche SaaS --max-price 50000 --revenue-generating yes

  # US-audience listings at least 2 years old, from the last snapshot
  browse --offline --target-country "United States" --age 2,20`,
	RunE: runBrowse,
}

func init() {
	addFilterFlags(browseCmd)
	f := browseCmd.Flags()
	f.Bool("offline", false, "use the latest stored snapshot instead of fetching")
	f.Int("page", 1, "result page, 1-based")
	f.Int("page-size", 0, "page size (default from config)")
	f.String("format", "table", "output format: table or json")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}

	offline, _ := cmd.Flags().GetBool("offline")
	listings, err := loadCatalog(ctx, offline)
	if err != nil {
		return eris.Wrap(err, "browse")
	}

	views := catalog.BuildViews(listings, spec, time.Now().UTC())

	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("page-size")
	if size == 0 {
		size = cfg.Filter.PageSize
	}
	paged := catalog.Page(views, page, size)

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(paged), "browse: encode json")
	}

	if len(paged) == 0 {
		fmt.Fprintln(os.Stderr, "No listings matched.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tPRICE\tLOCATION\tAGE\tREVENUE/MO\tPROFIT MULTIPLE")
	for _, v := range paged {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.BusinessName,
			v.CategoryName,
			v.PriceLabel,
			v.Location,
			v.AgeLabel,
			catalog.FormatMoney(v.MonthlyRevenue),
			v.ProfitMultiple,
		)
	}
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "browse: flush output")
	}

	fmt.Fprintf(os.Stderr, "\nPage %d, %d of %d matching listing(s).\n", page, len(paged), len(views))
	return nil
}
