package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/exitbase/listing-engine/internal/catalog"
)

var (
	snapshotSources []string
	snapshotLimit   int
	pruneAge        string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture catalog snapshots for offline use",
	Long: `Fetches the raw catalog from one or more sources and stores each
payload as a snapshot. Snapshots back the --offline flag of browse
and export.

Examples:
  listing-engine snapshot
  listing-engine snapshot --source https://api.example.com --source https://backup.example.com
  listing-engine snapshot list
  listing-engine snapshot prune --older-than 720h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sources := snapshotSources
		if len(sources) == 0 {
			if err := cfg.Validate("catalog"); err != nil {
				return err
			}
			sources = []string{cfg.Catalog.BaseURL}
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for _, source := range sources {
			source := source
			g.Go(func() error {
				opts := catalogOptions()
				opts.BaseURL = source
				client := catalog.NewClient(opts)

				listings, err := client.Fetch(gctx)
				if err != nil {
					return eris.Wrapf(err, "snapshot: fetch %s", source)
				}

				snap, err := st.SaveSnapshot(gctx, source, listings)
				if err != nil {
					return eris.Wrapf(err, "snapshot: save %s", source)
				}

				zap.L().Info("snapshot saved",
					zap.String("id", snap.ID),
					zap.String("source", source),
					zap.Int("listings", len(listings)))
				return nil
			})
		}

		return g.Wait()
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		snaps, err := st.ListSnapshots(ctx, snapshotLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tLISTINGS\tFETCHED AT")
		for _, s := range snaps {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				s.ID, s.Source, len(s.Listings), s.FetchedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var snapshotPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete snapshots older than a duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		age, err := time.ParseDuration(pruneAge)
		if err != nil {
			return eris.Wrap(err, "snapshot: parse --older-than")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		deleted, err := st.DeleteOlderThan(ctx, time.Now().UTC().Add(-age))
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "deleted %d snapshot(s)\n", deleted)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringSliceVar(&snapshotSources, "source", nil, "catalog base URL (repeatable; default from config)")
	snapshotListCmd.Flags().IntVar(&snapshotLimit, "limit", 20, "max snapshots to list")
	snapshotPruneCmd.Flags().StringVar(&pruneAge, "older-than", "720h", "delete snapshots older than this duration")
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotPruneCmd)
	rootCmd.AddCommand(snapshotCmd)
}
