package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exitbase/listing-engine/internal/catalog"
	"github.com/exitbase/listing-engine/internal/filter"
	"github.com/exitbase/listing-engine/internal/model"
	"github.com/exitbase/listing-engine/internal/store"
)

// catalogOptions builds client options from configuration.
func catalogOptions() catalog.ClientOptions {
	return catalog.ClientOptions{
		BaseURL:    cfg.Catalog.BaseURL,
		AuthToken:  cfg.Catalog.AuthToken,
		Timeout:    time.Duration(cfg.Catalog.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Catalog.MaxRetries,
		RatePerSec: cfg.Catalog.RatePerSec,
	}
}

func newCatalogClient() *catalog.Client {
	return catalog.NewClient(catalogOptions())
}

// initStore opens the configured snapshot store and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// loadCatalog returns the raw catalog, either from the remote source
// or from the most recent stored snapshot when offline is set.
func loadCatalog(ctx context.Context, offline bool) ([]model.Listing, error) {
	if offline {
		st, err := initStore(ctx)
		if err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck

		snap, err := st.LatestSnapshot(ctx, cfg.Catalog.BaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "no snapshot for configured catalog source")
		}
		zap.L().Info("using stored snapshot",
			zap.String("snapshot_id", snap.ID),
			zap.Time("fetched_at", snap.FetchedAt),
		)
		return snap.Listings, nil
	}

	if err := cfg.Validate("catalog"); err != nil {
		return nil, err
	}
	return newCatalogClient().Fetch(ctx)
}

// addFilterFlags registers the filter specification flags shared by
// browse and export.
func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("search", "", "substring match against name, category, location")
	f.String("niche", "all", "exact category name, or 'all'")
	f.String("revenue-generating", "all", "yes, no, or all")
	f.Float64("min-price", filter.DefaultPriceRange.Lo, "minimum asking price")
	f.Float64("max-price", filter.DefaultPriceRange.Hi, "maximum asking price")
	f.String("location", "all", "business location, or 'all'")
	f.String("target-country", "all", "audience country, or 'all'")
	f.Float64("target-country-pct", 0, "minimum audience percentage for --target-country")
	f.Float64Slice("age", nil, "business age range in years, e.g. --age 2,10")
	f.Float64Slice("monthly-revenue", nil, "monthly revenue range, e.g. --monthly-revenue 1000,20000")
	f.Float64Slice("monthly-profit", nil, "monthly profit range")
	f.Float64Slice("pageviews", nil, "monthly pageview range")
	f.Float64Slice("revenue-multiple", nil, "revenue multiple range")
	f.Float64Slice("profit-multiple", nil, "profit multiple range")
}

// specFromFlags assembles a filter specification from command flags.
// Range flags left unset stay at their full span and remain inert.
func specFromFlags(cmd *cobra.Command) (filter.Spec, error) {
	spec := filter.DefaultSpec()
	f := cmd.Flags()

	spec.Search, _ = f.GetString("search")
	spec.Niche, _ = f.GetString("niche")
	spec.RevenueGenerating, _ = f.GetString("revenue-generating")
	spec.BusinessLocation, _ = f.GetString("location")
	spec.PriceRange.Lo, _ = f.GetFloat64("min-price")
	spec.PriceRange.Hi, _ = f.GetFloat64("max-price")
	spec.Advanced.TargetCountry, _ = f.GetString("target-country")
	spec.Advanced.TargetCountryPercentage, _ = f.GetFloat64("target-country-pct")

	ranges := []struct {
		flag string
		dst  *filter.Range
	}{
		{"age", &spec.Advanced.AgeRange},
		{"monthly-revenue", &spec.Advanced.MonthlyRevenue},
		{"monthly-profit", &spec.Advanced.MonthlyProfit},
		{"pageviews", &spec.Advanced.MonthlyPageviews},
		{"revenue-multiple", &spec.Advanced.RevenueMultiple},
		{"profit-multiple", &spec.Advanced.ProfitMultiple},
	}
	for _, r := range ranges {
		vals, _ := f.GetFloat64Slice(r.flag)
		if len(vals) == 0 {
			continue
		}
		if len(vals) != 2 {
			return spec, eris.Errorf("--%s wants exactly two values, got %d", r.flag, len(vals))
		}
		r.dst.Lo, r.dst.Hi = vals[0], vals[1]
	}

	return spec, nil
}
