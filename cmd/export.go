package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/exitbase/listing-engine/internal/catalog"
)

var (
	exportOut     string
	exportOffline bool
)

var exportHeader = []string{
	"Name", "Category", "Asking Price", "Location", "Age",
	"Monthly Revenue", "Monthly Net Profit", "Profit Multiple",
	"Revenue Multiple", "Monthly Pageviews", "Managed",
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered catalog to a spreadsheet",
	Long: `Applies the filter flags to the published catalog and writes the
result to an .xlsx or .csv file, chosen by the output extension.

Examples:
  listing-engine export --out listings.xlsx
  listing-engine export --out saas.csv --niche SaaS --min-price 10000
  listing-engine export --out cheap.xlsx --offline --max-price 50000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		spec, err := specFromFlags(cmd)
		if err != nil {
			return err
		}

		listings, err := loadCatalog(ctx, exportOffline)
		if err != nil {
			return err
		}

		views := catalog.BuildViews(listings, spec, time.Now().UTC())

		switch {
		case strings.HasSuffix(exportOut, ".xlsx"):
			err = writeXLSX(exportOut, views)
		case strings.HasSuffix(exportOut, ".csv"):
			err = writeCSV(exportOut, views)
		default:
			return eris.Errorf("export: unsupported output extension %q, want .xlsx or .csv", exportOut)
		}
		if err != nil {
			return err
		}

		zap.L().Info("export complete", zap.String("path", exportOut), zap.Int("rows", len(views)))
		fmt.Fprintf(os.Stderr, "wrote %d listing(s) to %s\n", len(views), exportOut)
		return nil
	},
}

func init() {
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "listings.xlsx", "output path (.xlsx or .csv)")
	exportCmd.Flags().BoolVar(&exportOffline, "offline", false, "use the latest stored snapshot instead of fetching")
	rootCmd.AddCommand(exportCmd)
}

func writeXLSX(path string, views []catalog.View) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Listings")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().SetString(h)
	}

	for _, v := range views {
		row := sheet.AddRow()
		row.AddCell().SetString(v.BusinessName)
		row.AddCell().SetString(v.CategoryName)
		row.AddCell().SetFloat(v.AskingPrice)
		row.AddCell().SetString(v.Location)
		row.AddCell().SetString(v.AgeLabel)
		row.AddCell().SetFloat(v.MonthlyRevenue)
		row.AddCell().SetFloat(v.MonthlyNetProfit)
		row.AddCell().SetString(v.ProfitMultiple)
		row.AddCell().SetString(v.RevenueMultiple)
		row.AddCell().SetFloat(v.MonthlyPageviews)
		row.AddCell().SetBool(v.ManagedByEx)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func writeCSV(path string, views []catalog.View) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, v := range views {
		record := []string{
			v.BusinessName,
			v.CategoryName,
			strconv.FormatFloat(v.AskingPrice, 'f', -1, 64),
			v.Location,
			v.AgeLabel,
			strconv.FormatFloat(v.MonthlyRevenue, 'f', 2, 64),
			strconv.FormatFloat(v.MonthlyNetProfit, 'f', 2, 64),
			v.ProfitMultiple,
			v.RevenueMultiple,
			strconv.FormatFloat(v.MonthlyPageviews, 'f', -1, 64),
			strconv.FormatBool(v.ManagedByEx),
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "export: flush")
}
