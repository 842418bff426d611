package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exitbase/listing-engine/internal/catalog"
	"github.com/exitbase/listing-engine/internal/filter"
	"github.com/exitbase/listing-engine/internal/model"
)

var servePort int

// fetchFunc loads the raw catalog for a request.
type fetchFunc func(ctx context.Context) ([]model.Listing, error)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the filtered catalog over HTTP",
	Long: `Starts an HTTP server exposing the published catalog. Filter
parameters mirror the browse flags as query parameters.

Endpoints:
  GET /health
  GET /api/listings?search=&niche=&minPrice=&maxPrice=&age=lo,hi&page=&pageSize=`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("catalog"); err != nil {
			return err
		}
		client := newCatalogClient()

		router := buildRouter(client.Fetch, cfg.Filter.PageSize)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort()),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", serverPort()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func serverPort() int {
	if servePort != 0 {
		return servePort
	}
	return cfg.Server.Port
}

func buildRouter(fetch fetchFunc, defaultPageSize int) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/listings", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()

		spec, err := specFromQuery(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		listings, err := fetch(req.Context())
		if err != nil {
			zap.L().Error("serve: catalog fetch failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "catalog fetch failed"})
			return
		}

		views := catalog.BuildViews(listings, spec, time.Now().UTC())

		page := queryInt(q, "page", 1)
		size := queryInt(q, "pageSize", defaultPageSize)
		writeJSON(w, http.StatusOK, map[string]any{
			"data":     catalog.Page(views, page, size),
			"total":    len(views),
			"page":     page,
			"pageSize": size,
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// specFromQuery assembles a filter specification from URL query
// parameters. Absent parameters keep their full-span defaults.
func specFromQuery(q url.Values) (filter.Spec, error) {
	spec := filter.DefaultSpec()

	if v := q.Get("search"); v != "" {
		spec.Search = v
	}
	if v := q.Get("niche"); v != "" {
		spec.Niche = v
	}
	if v := q.Get("revenueGenerating"); v != "" {
		spec.RevenueGenerating = v
	}
	if v := q.Get("location"); v != "" {
		spec.BusinessLocation = v
	}
	if v := q.Get("minPrice"); v != "" {
		spec.PriceRange.Lo = queryFloat(v)
	}
	if v := q.Get("maxPrice"); v != "" {
		spec.PriceRange.Hi = queryFloat(v)
	}
	if v := q.Get("targetCountry"); v != "" {
		spec.Advanced.TargetCountry = v
	}
	if v := q.Get("targetCountryPct"); v != "" {
		spec.Advanced.TargetCountryPercentage = queryFloat(v)
	}

	ranges := []struct {
		param string
		dst   *filter.Range
	}{
		{"age", &spec.Advanced.AgeRange},
		{"monthlyRevenue", &spec.Advanced.MonthlyRevenue},
		{"monthlyProfit", &spec.Advanced.MonthlyProfit},
		{"pageviews", &spec.Advanced.MonthlyPageviews},
		{"revenueMultiple", &spec.Advanced.RevenueMultiple},
		{"profitMultiple", &spec.Advanced.ProfitMultiple},
	}
	for _, r := range ranges {
		v := q.Get(r.param)
		if v == "" {
			continue
		}
		parts := strings.SplitN(v, ",", 2)
		if len(parts) != 2 {
			return spec, eris.Errorf("%s wants lo,hi", r.param)
		}
		r.dst.Lo = queryFloat(parts[0])
		r.dst.Hi = queryFloat(parts[1])
	}

	return spec, nil
}

func queryFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func queryInt(q url.Values, key string, fallback int) int {
	v := q.Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
