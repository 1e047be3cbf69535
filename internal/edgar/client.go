package edgar

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Client is a rate-limited SEC EDGAR API client
type Client struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	baseURL      string
	tickerMapURL string
	userAgent    string
	workers      int
	logger       *slog.Logger
}

// NewClient creates a new EDGAR client from configuration
func NewClient(cfg config.EDGARConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		tickerMapURL: cfg.TickerMapURL,
		userAgent:    cfg.UserAgent,
		workers:      cfg.Workers,
		logger:       logger,
	}
}

// get performs a rate-limited GET and returns the response body.
// A 404 maps to apperrors.ErrNotFound so callers can treat missing firms as
// expected.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, apperrors.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode)
	}

	// Setting Accept-Encoding ourselves disables net/http's transparent
	// decompression, so decode gzip bodies explicitly.
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// FetchTickerMapping downloads the SEC's official ticker-to-CIK mapping.
// Tickers are normalized to upper case with surrounding whitespace stripped.
func (c *Client) FetchTickerMapping(ctx context.Context) ([]domain.TickerMapping, error) {
	c.logger.Info("Downloading SEC ticker-to-CIK mapping", slog.String("url", c.tickerMapURL))

	body, err := c.get(ctx, c.tickerMapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticker mapping: %w", err)
	}

	// The file is a JSON object keyed by row index:
	// {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}
	var raw map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ticker mapping: %w", err)
	}

	mappings := make([]domain.TickerMapping, 0, len(raw))
	for _, entry := range raw {
		ticker := strings.ToUpper(strings.TrimSpace(entry.Ticker))
		if ticker == "" || entry.CIK == 0 {
			continue
		}
		mappings = append(mappings, domain.TickerMapping{
			CIK:         entry.CIK,
			Ticker:      ticker,
			CompanyName: entry.Title,
		})
	}

	sort.Slice(mappings, func(i, j int) bool {
		if mappings[i].CIK != mappings[j].CIK {
			return mappings[i].CIK < mappings[j].CIK
		}
		return mappings[i].Ticker < mappings[j].Ticker
	})

	c.logger.Info("Ticker mapping downloaded", slog.Int("entries", len(mappings)))
	return mappings, nil
}

// CompanyFacts fetches the XBRL companyfacts document for one CIK
func (c *Client) CompanyFacts(ctx context.Context, cik int) (*CompanyFacts, error) {
	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%010d.json", c.baseURL, cik)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var facts CompanyFacts
	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, fmt.Errorf("cik %d: failed to parse companyfacts: %w", cik, err)
	}
	return &facts, nil
}

// PullIncomeFacts downloads companyfacts for every target CIK and extracts
// the annual pre-tax income facts. A small worker pool shares the client's
// limiter, so the aggregate request rate never exceeds the configured cap.
// Firms without a companyfacts document (404) are skipped.
func (c *Client) PullIncomeFacts(ctx context.Context, ciks []int, sample config.SampleConfig) ([]domain.FactRow, error) {
	c.logger.Info("Downloading CompanyFacts",
		slog.Int("firms", len(ciks)),
		slog.Int("workers", c.workers))

	var (
		mu       sync.Mutex
		allRows  []domain.FactRow
		errCount int
		done     int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, cik := range ciks {
		cik := cik
		g.Go(func() error {
			facts, err := c.CompanyFacts(gctx, cik)

			mu.Lock()
			defer mu.Unlock()
			done++
			if done%200 == 0 {
				c.logger.Info("CompanyFacts progress",
					slog.Int("done", done),
					slog.Int("total", len(ciks)))
			}

			if err != nil {
				if apperrors.Is(err, apperrors.ErrNotFound) {
					return nil
				}
				// Context cancellation aborts the pull; anything else is
				// logged and the firm skipped.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				errCount++
				if errCount <= 5 {
					c.logger.Warn("CompanyFacts request failed",
						slog.Int("cik", cik),
						slog.String("error", err.Error()))
				}
				return nil
			}

			allRows = append(allRows, ExtractIncomeFacts(facts, cik, sample)...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic order regardless of worker scheduling
	sort.Slice(allRows, func(i, j int) bool {
		a, b := allRows[i], allRows[j]
		if a.CIK != b.CIK {
			return a.CIK < b.CIK
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Tag != b.Tag {
			return a.Tag < b.Tag
		}
		return a.Filed > b.Filed
	})

	c.logger.Info("CompanyFacts download complete",
		slog.Int("raw_records", len(allRows)),
		slog.Int("errors", errCount))
	return allRows, nil
}
