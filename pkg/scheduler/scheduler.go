package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jobscout/agent/pkg/harvest"
	"github.com/jobscout/agent/pkg/job"
)

// Config gates and times the background jobs. Cron expressions use the
// standard five fields and run in UTC.
type Config struct {
	HarvestEnabled bool
	HarvestSources []string
	HarvestCron    string
	CleanupCron    string
	JobTTLHours    int
}

// Scheduler runs periodic harvest and cleanup jobs.
type Scheduler struct {
	cron   *cron.Cron
	runner *harvest.Runner
	jobs   job.UseCase
	cfg    Config
	log    zerolog.Logger
}

func New(runner *harvest.Runner, jobs job.UseCase, cfg Config, log zerolog.Logger) *Scheduler {
	if cfg.HarvestCron == "" {
		cfg.HarvestCron = "*/30 * * * *"
	}
	if cfg.CleanupCron == "" {
		cfg.CleanupCron = "0 * * * *"
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		runner: runner,
		jobs:   jobs,
		cfg:    cfg,
		log:    log,
	}
}

// Start registers the jobs and launches the cron loop. Returns an error
// when a cron expression does not parse.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.HarvestEnabled {
		if _, err := s.cron.AddFunc(s.cfg.HarvestCron, func() { s.runHarvest(ctx) }); err != nil {
			return err
		}
		s.log.Info().Str("cron", s.cfg.HarvestCron).Msg("harvest schedule armed")
	} else {
		s.log.Info().Msg("harvest schedule disabled")
	}
	if _, err := s.cron.AddFunc(s.cfg.CleanupCron, func() { s.runCleanup(ctx) }); err != nil {
		return err
	}
	s.log.Info().Str("cron", s.cfg.CleanupCron).Msg("cleanup schedule armed")
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runHarvest(ctx context.Context) {
	res, err := s.runner.Run(ctx, harvest.Options{Sources: s.cfg.HarvestSources})
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled harvest failed")
		return
	}
	for name, st := range res.Stats {
		s.log.Info().
			Str("scraper", name).
			Int("created", st.Created).
			Int("exists", st.Exists).
			Int("failed", st.Failed).
			Msg("scheduled harvest done")
	}
}

func (s *Scheduler) runCleanup(ctx context.Context) {
	res, err := s.jobs.Cleanup(ctx, s.cfg.JobTTLHours)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled cleanup failed")
		return
	}
	s.log.Info().Int64("deleted", res.Deleted).Time("cutoff", res.Cutoff).Msg("scheduled cleanup done")
}
