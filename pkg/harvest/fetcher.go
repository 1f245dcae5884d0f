package harvest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

const userAgent = "job-scout-agent/1.0 (+github.com/jobscout/agent)"

// Fetcher is the shared HTTP helper for scrapers. Requests across all
// scrapers share one concurrency budget so a harvest run cannot hammer
// the boards.
type Fetcher struct {
	client *http.Client
	sem    *semaphore.Weighted
	log    zerolog.Logger
}

func NewFetcher(timeout time.Duration, maxConcurrency int, log zerolog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if maxConcurrency <= 0 {
		maxConcurrency = 6
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		sem:    semaphore.NewWeighted(int64(maxConcurrency)),
		log:    log,
	}
}

// GetJSON fetches url and decodes the body into v. A 404 or any fetch
// failure is tolerated: the scraper just skips that board. Only a nil
// error with ok=true means v was populated.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v any) (ok bool, err error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer f.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn().Str("url", url).Err(err).Msg("scraper fetch failed")
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		f.log.Info().Str("url", url).Msg("board not found, skipping")
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		f.log.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("scraper fetch rejected")
		return false, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		f.log.Warn().Str("url", url).Err(err).Msg("scraper body read failed")
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		f.log.Warn().Str("url", url).Err(err).Msg("scraper payload not JSON")
		return false, nil
	}
	return true, nil
}
