package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jobscout/agent/pkg/dedupe"
)

// UseCase covers ingestion, querying and retention of postings.
type UseCase interface {
	Ingest(ctx context.Context, raw Raw) (IngestResult, error)
	Search(ctx context.Context, q Query) ([]Job, error)
	Recent(ctx context.Context, limit int) ([]Job, error)
	Get(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	Cleanup(ctx context.Context, ttlHours int) (CleanupResult, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

const (
	defaultSearchLimit = 21
	maxSearchLimit     = 500
	maxRecentLimit     = 200
	defaultListLimit   = 100
	defaultTTLHours    = 48
)

// Ingest normalizes and idempotently inserts a posting. A posting already
// known by content fingerprint, canonical URL or apply URL is reported as
// StatusExists and left untouched.
func (s *service) Ingest(ctx context.Context, raw Raw) (IngestResult, error) {
	j, err := normalize(raw, s.now())
	if err != nil {
		return IngestResult{}, err
	}
	j.Hash = dedupe.Fingerprint(j.DescriptionMD)

	existing, err := s.repo.FindExisting(ctx, j.Hash, j.CanonicalURL, j.ApplyURL)
	switch {
	case err == nil:
		return IngestResult{ID: existing.ID, Status: StatusExists}, nil
	case !errors.Is(err, ErrNotFound):
		return IngestResult{}, err
	}

	j.ID = uuid.New()
	j.CreatedAt = s.now().UTC()
	if err := s.repo.Insert(ctx, j); err != nil {
		return IngestResult{}, err
	}
	return IngestResult{ID: j.ID, Status: StatusCreated}, nil
}

// Search resolves the effective time window and pagination before hitting
// the repository. An explicit date range overrides and disables the
// posted_within_hours cutoff; a date-only upper bound is bumped to the end
// of that day.
func (s *service) Search(ctx context.Context, q Query) ([]Job, error) {
	q.Limit = clamp(q.Limit, 1, maxSearchLimit, defaultSearchLimit)
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.From != nil || q.To != nil {
		if q.To != nil {
			to := *q.To
			if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 && to.Nanosecond() == 0 {
				to = to.Add(24*time.Hour - time.Microsecond)
				q.To = &to
			}
		}
	} else if q.PostedWithinHours > 0 {
		from := s.now().UTC().Add(-time.Duration(q.PostedWithinHours) * time.Hour)
		q.From = &from
	}
	return s.repo.Search(ctx, q)
}

func (s *service) Recent(ctx context.Context, limit int) ([]Job, error) {
	limit = clamp(limit, 1, maxRecentLimit, defaultSearchLimit)
	return s.repo.Search(ctx, Query{Limit: limit})
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Job, error) {
	limit = clamp(limit, 1, maxSearchLimit, defaultListLimit)
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Cleanup deletes postings older than the TTL and reports the cutoff used.
func (s *service) Cleanup(ctx context.Context, ttlHours int) (CleanupResult, error) {
	if ttlHours <= 0 {
		ttlHours = defaultTTLHours
	}
	cutoff := s.now().UTC().Add(-time.Duration(ttlHours) * time.Hour)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return CleanupResult{}, err
	}
	return CleanupResult{Deleted: deleted, Cutoff: cutoff}, nil
}

func clamp(v, min, max, def int) int {
	if v == 0 {
		v = def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
