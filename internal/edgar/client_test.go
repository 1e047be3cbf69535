package edgar

import (
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

func testSample() config.SampleConfig {
	return config.SampleConfig{
		FYMin:           2015,
		FYMax:           2024,
		MinDurationDays: 300,
		MaxDurationDays: 400,
	}
}

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.EDGARConfig{
		BaseURL:        server.URL,
		TickerMapURL:   server.URL + "/files/company_tickers.json",
		UserAgent:      "test-agent test@example.com",
		RequestsPerSec: 1000,
		Burst:          10,
		Workers:        4,
		Timeout:        5 * time.Second,
	}
	return NewClient(cfg, nil), server
}

func TestFetchTickerMapping(t *testing.T) {
	var gotUserAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{
			"0": {"cik_str": 320193, "ticker": "aapl ", "title": "Apple Inc."},
			"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"},
			"2": {"cik_str": 0, "ticker": "BAD", "title": "No CIK"},
			"3": {"cik_str": 1018724, "ticker": "", "title": "No ticker"}
		}`)
	})

	client, _ := testClient(t, mux)
	mappings, err := client.FetchTickerMapping(context.Background())
	require.NoError(t, err)

	require.Len(t, mappings, 2, "entries without CIK or ticker are dropped")
	assert.Equal(t, domain.TickerMapping{CIK: 320193, Ticker: "AAPL", CompanyName: "Apple Inc."}, mappings[0])
	assert.Equal(t, "MSFT", mappings[1].Ticker)
	assert.Equal(t, "test-agent test@example.com", gotUserAgent)
}

// gzipHandler compresses the payload when the client advertises gzip, the
// way data.sec.gov's CDN serves every response.
func gzipHandler(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			fmt.Fprint(w, payload)
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		fmt.Fprint(gz, payload)
	}
}

func TestFetchTickerMappingGzip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", gzipHandler(`{
		"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}
	}`))

	client, _ := testClient(t, mux)
	mappings, err := client.FetchTickerMapping(context.Background())
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, 320193, mappings[0].CIK)
}

func TestCompanyFactsGzip(t *testing.T) {
	unit := `{
		"start": "2019-01-01", "end": "2019-12-31", "val": 1500000,
		"accn": "0000320193-20-000010", "fy": 2019, "fp": "FY",
		"form": "10-K", "filed": "2020-02-01"
	}`

	mux := http.NewServeMux()
	mux.HandleFunc("/api/xbrl/companyfacts/CIK0000320193.json",
		gzipHandler(companyFactsJSON("Apple Inc.", unit)))

	client, _ := testClient(t, mux)
	facts, err := client.CompanyFacts(context.Background(), 320193)
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", facts.EntityName)
}

func TestFetchTickerMappingServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := testClient(t, mux)
	_, err := client.FetchTickerMapping(context.Background())
	assert.Error(t, err)
}

func companyFactsJSON(entityName string, units string) string {
	return fmt.Sprintf(`{
		"cik": 320193,
		"entityName": %q,
		"facts": {
			"us-gaap": {
				"IncomeLossFromContinuingOperationsBeforeIncomeTaxesForeign": {
					"label": "Foreign pre-tax income",
					"units": {"USD": [%s]}
				}
			}
		}
	}`, entityName, units)
}

func TestPullIncomeFacts(t *testing.T) {
	unit := `{
		"start": "2019-01-01", "end": "2019-12-31", "val": 1500000,
		"accn": "0000320193-20-000010", "fy": 2019, "fp": "FY",
		"form": "10-K", "filed": "2020-02-01"
	}`

	mux := http.NewServeMux()
	mux.HandleFunc("/api/xbrl/companyfacts/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, companyFactsJSON("Apple Inc.", unit))
	})
	// CIK 99 has no companyfacts document; the pull must skip it quietly.

	client, _ := testClient(t, mux)
	rows, err := client.PullIncomeFacts(context.Background(), []int{99, 320193}, testSample())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 320193, rows[0].CIK)
	assert.Equal(t, 2019, rows[0].Year)
	assert.Equal(t, domain.TagForeign, rows[0].Tag)
	assert.Equal(t, 1500000.0, rows[0].Value)
	assert.Equal(t, "2020-02-01", rows[0].Filed)
}

func TestCompanyFactsNotFound(t *testing.T) {
	client, _ := testClient(t, http.NotFoundHandler())
	_, err := client.CompanyFacts(context.Background(), 12345)
	assert.Error(t, err)
}
