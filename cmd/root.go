package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exitbase/listing-engine/internal/config"
	"github.com/exitbase/listing-engine/internal/country"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "listing-engine",
	Short: "Listing catalog normalization and filtering engine",
	Long:  "Fetches business-for-sale listings, normalizes question/answer banks and financial records into canonical figures, and evaluates filter specifications over the catalog.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if path := cfg.Filter.AliasesPath; path != "" {
			n, err := country.LoadAliases(path)
			if err != nil {
				return fmt.Errorf("load country aliases: %w", err)
			}
			zap.L().Debug("loaded country aliases", zap.Int("count", n))
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
