package harvest

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jobscout/agent/pkg/job"
)

// Stats counts ingest outcomes for one scraper in one run.
type Stats struct {
	Created int `json:"created"`
	Exists  int `json:"exists"`
	Failed  int `json:"failed"`
}

// RunResult maps scraper name to its stats.
type RunResult struct {
	Stats map[string]Stats `json:"stats"`
}

// Options tunes one run. Empty fields fall back to the configured
// defaults.
type Options struct {
	Sources     []string
	Query       string
	WindowHours int
	DryRun      bool
}

// Runner fans a harvest out across scrapers and ingests everything they
// return. One scraper failing never fails the run.
type Runner struct {
	scrapers    []Scraper
	jobs        job.UseCase
	query       string
	windowHours int
	log         zerolog.Logger
}

func NewRunner(scrapers []Scraper, jobs job.UseCase, query string, windowHours int, log zerolog.Logger) *Runner {
	if windowHours <= 0 {
		windowHours = 24
	}
	return &Runner{
		scrapers:    scrapers,
		jobs:        jobs,
		query:       query,
		windowHours: windowHours,
		log:         log,
	}
}

func (r *Runner) selectScrapers(sources []string) []Scraper {
	if len(sources) == 0 {
		return r.scrapers
	}
	want := make(map[string]bool, len(sources))
	for _, s := range sources {
		want[s] = true
	}
	var out []Scraper
	for _, s := range r.scrapers {
		if want[s.Name()] {
			out = append(out, s)
		}
	}
	return out
}

// Run harvests all selected scrapers concurrently and returns per-scraper
// stats. The error is non-nil only when the context is canceled.
func (r *Runner) Run(ctx context.Context, opts Options) (RunResult, error) {
	scrapers := r.selectScrapers(opts.Sources)
	result := RunResult{Stats: map[string]Stats{}}
	if len(scrapers) == 0 {
		return result, nil
	}
	query := opts.Query
	if query == "" {
		query = r.query
	}
	window := opts.WindowHours
	if window <= 0 {
		window = r.windowHours
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range scrapers {
		g.Go(func() error {
			st := r.runOne(ctx, s, query, window, opts.DryRun)
			mu.Lock()
			result.Stats[s.Name()] = st
			mu.Unlock()
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	return result, err
}

func (r *Runner) runOne(ctx context.Context, s Scraper, query string, windowHours int, dryRun bool) Stats {
	var st Stats
	items, err := s.Harvest(ctx, query, windowHours)
	if err != nil {
		st.Failed++
		r.log.Error().Str("scraper", s.Name()).Err(err).Msg("scraper run failed")
	}
	for _, raw := range items {
		if dryRun {
			st.Created++
			continue
		}
		res, err := r.jobs.Ingest(ctx, raw)
		if err != nil {
			st.Failed++
			if !errors.Is(err, context.Canceled) {
				r.log.Warn().Str("scraper", s.Name()).Str("title", raw.Title).Err(err).Msg("harvest ingest failed")
			}
			continue
		}
		if res.Status == job.StatusCreated {
			st.Created++
		} else {
			st.Exists++
		}
	}
	return st
}
