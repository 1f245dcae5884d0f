package scheduler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout/agent/pkg/harvest"
	"github.com/jobscout/agent/pkg/job"
)

type noopUseCase struct{}

func (noopUseCase) Ingest(context.Context, job.Raw) (job.IngestResult, error) {
	return job.IngestResult{}, nil
}
func (noopUseCase) Search(context.Context, job.Query) ([]job.Job, error) { return nil, nil }
func (noopUseCase) Recent(context.Context, int) ([]job.Job, error)       { return nil, nil }
func (noopUseCase) Get(context.Context, uuid.UUID) (job.Job, error)      { return job.Job{}, nil }
func (noopUseCase) List(context.Context, int, int) ([]job.Job, error)    { return nil, nil }
func (noopUseCase) Cleanup(context.Context, int) (job.CleanupResult, error) {
	return job.CleanupResult{}, nil
}

type recordingScraper struct {
	name   string
	called bool
}

func (r *recordingScraper) Name() string { return r.name }
func (r *recordingScraper) Harvest(context.Context, string, int) ([]job.Raw, error) {
	r.called = true
	return nil, nil
}

func newTestScheduler(cfg Config, scrapers ...harvest.Scraper) *Scheduler {
	runner := harvest.NewRunner(scrapers, noopUseCase{}, "", 24, zerolog.Nop())
	return New(runner, noopUseCase{}, cfg, zerolog.Nop())
}

func TestStartAndStop(t *testing.T) {
	s := newTestScheduler(Config{HarvestEnabled: true})
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}

func TestStartRejectsBadCron(t *testing.T) {
	s := newTestScheduler(Config{HarvestEnabled: true, HarvestCron: "every 30 minutes"})
	assert.Error(t, s.Start(context.Background()))
}

func TestScheduledHarvestHonorsConfiguredSources(t *testing.T) {
	greenhouse := &recordingScraper{name: "greenhouse"}
	workday := &recordingScraper{name: "workday"}
	s := newTestScheduler(Config{
		HarvestEnabled: true,
		HarvestSources: []string{"greenhouse"},
	}, greenhouse, workday)

	s.runHarvest(context.Background())
	assert.True(t, greenhouse.called)
	assert.False(t, workday.called, "sources not in HARVEST_SOURCES must stay idle")
}

func TestDefaultsApplied(t *testing.T) {
	s := newTestScheduler(Config{})
	assert.Equal(t, "*/30 * * * *", s.cfg.HarvestCron)
	assert.Equal(t, "0 * * * *", s.cfg.CleanupCron)
}
