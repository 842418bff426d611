// Package catalog fetches the raw listing catalog and orchestrates the
// normalization and filtering engine over it.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/exitbase/listing-engine/internal/model"
)

// ClientOptions configures the catalog client. AuthToken is threaded
// in explicitly; there is no process-global session state.
type ClientOptions struct {
	BaseURL    string
	AuthToken  string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
}

// Client reads the remote catalog endpoint with retry and rate
// limiting. The engine itself never performs I/O; everything past
// Fetch is pure computation.
type Client struct {
	http    *http.Client
	opts    ClientOptions
	limiter *rate.Limiter
}

// NewClient creates a catalog client with the given options.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "listing-engine/1.0"
	}
	if opts.RatePerSec == 0 {
		opts.RatePerSec = 10
	}
	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), int(math.Max(1, opts.RatePerSec))),
	}
}

// Fetch retrieves the full raw catalog. The endpoint returns either a
// bare listing array or a {data: [...]} envelope; a null data field is
// an empty catalog, not an error.
func (c *Client) Fetch(ctx context.Context) ([]model.Listing, error) {
	endpoint := strings.TrimRight(c.opts.BaseURL, "/") + "/listings"

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: fetch listings")
	}

	listings, err := decodeCatalog(body)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: decode listings")
	}

	zap.L().Info("catalog: fetched",
		zap.String("endpoint", endpoint),
		zap.Int("listings", len(listings)),
	)
	return listings, nil
}

// decodeCatalog normalizes both response shapes to a listing slice.
func decodeCatalog(body []byte) ([]model.Listing, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return []model.Listing{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var listings []model.Listing
		if err := json.Unmarshal(body, &listings); err != nil {
			return nil, err
		}
		return listings, nil
	}

	var envelope struct {
		Data []model.Listing `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []model.Listing{}, nil
	}
	return envelope.Data, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrap(err, "create request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if c.opts.AuthToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.AuthToken)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			zap.L().Warn("catalog: request failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("http %d from %s", resp.StatusCode, url)
			zap.L().Warn("catalog: retryable status",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			c.backoff(ctx, attempt)
			continue
		}
		return body, nil
	}
	return nil, eris.Wrap(lastErr, "all retries exhausted")
}

func (c *Client) backoff(ctx context.Context, attempt int) {
	base := 500 * time.Millisecond
	maxBackoff := 15 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int63n(int64(d)/2 + 1))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
