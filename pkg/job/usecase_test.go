package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for usecase tests.
type fakeRepo struct {
	jobs      []Job
	lastQuery Query
	deleted   time.Time
}

func (f *fakeRepo) Insert(_ context.Context, j Job) error {
	f.jobs = append(f.jobs, j)
	return nil
}

func (f *fakeRepo) FindExisting(_ context.Context, hash, canonicalURL, applyURL string) (Job, error) {
	for _, j := range f.jobs {
		if j.Hash == hash || j.CanonicalURL == canonicalURL || j.ApplyURL == applyURL {
			return j, nil
		}
	}
	return Job{}, ErrNotFound
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return Job{}, ErrNotFound
}

func (f *fakeRepo) Search(_ context.Context, q Query) ([]Job, error) {
	f.lastQuery = q
	return f.jobs, nil
}

func (f *fakeRepo) List(_ context.Context, limit, offset int) ([]Job, error) {
	return f.jobs, nil
}

func (f *fakeRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.deleted = cutoff
	var n int64
	for _, j := range f.jobs {
		if j.PostedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(repo *fakeRepo) *service {
	return &service{repo: repo, now: fixedNow}
}

func validRaw() Raw {
	return Raw{
		Source:        "greenhouse:stripe",
		Company:       "stripe",
		Title:         "Backend Engineer",
		ApplyURL:      "https://stripe.com/jobs/1",
		DescriptionMD: "Build payment infrastructure in Go.",
		PostedAt:      "2025-05-31T10:00:00Z",
	}
}

func TestIngestCreatesOnce(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	first, err := svc.Ingest(context.Background(), validRaw())
	require.NoError(t, err)
	assert.Equal(t, StatusCreated, first.Status)
	require.Len(t, repo.jobs, 1)
	assert.NotEmpty(t, repo.jobs[0].Hash)
	assert.Equal(t, "https://stripe.com/jobs/1", repo.jobs[0].CanonicalURL)

	second, err := svc.Ingest(context.Background(), validRaw())
	require.NoError(t, err)
	assert.Equal(t, StatusExists, second.Status)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.jobs, 1)
}

func TestIngestDedupesByApplyURL(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.Ingest(context.Background(), validRaw())
	require.NoError(t, err)

	// same URL, reworded description: still the same posting
	reworded := validRaw()
	reworded.DescriptionMD = "A totally different pitch for the very same role and URL."
	res, err := svc.Ingest(context.Background(), reworded)
	require.NoError(t, err)
	assert.Equal(t, StatusExists, res.Status)
}

func TestIngestRejectsIncomplete(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	raw := validRaw()
	raw.Title = "  "
	_, err := svc.Ingest(context.Background(), raw)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestIngestDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	raw := validRaw()
	raw.Source = ""
	raw.PostedAt = ""
	raw.DescriptionMD = ""
	raw.Description = "alias body"
	_, err := svc.Ingest(context.Background(), raw)
	require.NoError(t, err)
	got := repo.jobs[0]
	assert.Equal(t, "manual", got.Source)
	assert.Equal(t, fixedNow(), got.PostedAt)
	assert.Equal(t, "alias body", got.DescriptionMD)
}

func TestSearchWindowResolution(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	// hours cutoff applies when no explicit range is given
	_, err := svc.Search(context.Background(), Query{PostedWithinHours: 24})
	require.NoError(t, err)
	require.NotNil(t, repo.lastQuery.From)
	assert.Equal(t, fixedNow().Add(-24*time.Hour), *repo.lastQuery.From)
	assert.Nil(t, repo.lastQuery.To)

	// explicit range wins and disables the cutoff
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	_, err = svc.Search(context.Background(), Query{PostedWithinHours: 24, From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, from, *repo.lastQuery.From)
	// date-only upper bound is bumped to end of day
	assert.Equal(t, to.Add(24*time.Hour-time.Microsecond), *repo.lastQuery.To)
}

func TestSearchPaginationClamped(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.Search(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, defaultSearchLimit, repo.lastQuery.Limit)

	_, err = svc.Search(context.Background(), Query{Limit: 9999, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, maxSearchLimit, repo.lastQuery.Limit)
	assert.Equal(t, 0, repo.lastQuery.Offset)
}

func TestRecentLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.Recent(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, maxRecentLimit, repo.lastQuery.Limit)
}

func TestCleanup(t *testing.T) {
	old := Job{ID: uuid.New(), PostedAt: fixedNow().Add(-72 * time.Hour)}
	fresh := Job{ID: uuid.New(), PostedAt: fixedNow().Add(-time.Hour)}
	repo := &fakeRepo{jobs: []Job{old, fresh}}
	svc := newTestService(repo)

	res, err := svc.Cleanup(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, fixedNow().Add(-48*time.Hour), res.Cutoff)
}

func TestCoercePostedAt(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-05-31T10:00:00Z", time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC), true},
		{"2025-05-31T10:00:00+02:00", time.Date(2025, 5, 31, 8, 0, 0, 0, time.UTC), true},
		{"2025-05-31", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), true},
		{"2025-05-31T10:00:00", time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC), true},
		{"1717149600", time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"next tuesday", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := CoercePostedAt(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}
