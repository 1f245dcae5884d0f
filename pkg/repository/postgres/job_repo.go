package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobscout/agent/pkg/job"
)

// JobRepository stores postings.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	source TEXT NOT NULL,
	company TEXT NOT NULL,
	title TEXT NOT NULL,
	location TEXT,
	remote TEXT,
	employment_type TEXT,
	level TEXT,
	posted_at TIMESTAMPTZ NOT NULL,
	apply_url TEXT NOT NULL,
	canonical_url TEXT,
	currency TEXT,
	salary_min DOUBLE PRECISION,
	salary_max DOUBLE PRECISION,
	salary_period TEXT,
	description_md TEXT NOT NULL,
	description_raw TEXT,
	hash_sim TEXT NOT NULL,
	meta JSONB,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs(posted_at DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_hash_sim ON jobs(hash_sim);
CREATE INDEX IF NOT EXISTS idx_jobs_canonical_url ON jobs(canonical_url);
CREATE INDEX IF NOT EXISTS idx_jobs_apply_url ON jobs(apply_url);
`)
	return err
}

const jobColumns = `id, source, company, title,
	COALESCE(location, ''), COALESCE(remote, ''), COALESCE(employment_type, ''), COALESCE(level, ''),
	posted_at, apply_url, COALESCE(canonical_url, ''), COALESCE(currency, ''),
	salary_min, salary_max, COALESCE(salary_period, ''),
	description_md, COALESCE(description_raw, ''), hash_sim, COALESCE(meta, '{}'), created_at`

func (r *JobRepository) Insert(ctx context.Context, j job.Job) error {
	metaJSON, err := json.Marshal(j.Meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO jobs (
	id, source, company, title, location, remote, employment_type, level,
	posted_at, apply_url, canonical_url, currency,
	salary_min, salary_max, salary_period,
	description_md, description_raw, hash_sim, meta, created_at
) VALUES (
	$1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
	$9, $10, NULLIF($11, ''), NULLIF($12, ''),
	$13, $14, NULLIF($15, ''),
	$16, NULLIF($17, ''), $18, $19, $20
)`,
		j.ID, j.Source, j.Company, j.Title, j.Location, j.Remote, j.EmploymentType, j.Level,
		j.PostedAt, j.ApplyURL, j.CanonicalURL, j.Currency,
		j.SalaryMin, j.SalaryMax, j.SalaryPeriod,
		j.DescriptionMD, j.DescriptionRaw, j.Hash, metaJSON, j.CreatedAt,
	)
	return err
}

func (r *JobRepository) FindExisting(ctx context.Context, hash, canonicalURL, applyURL string) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE hash_sim = $1 OR canonical_url = $2 OR apply_url = $3
LIMIT 1
`, hash, canonicalURL, applyURL)
	return scanJob(row)
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) Search(ctx context.Context, q job.Query) ([]job.Job, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.From != nil {
		conds = append(conds, "posted_at >= "+arg(*q.From))
	}
	if q.To != nil {
		conds = append(conds, "posted_at <= "+arg(*q.To))
	}
	if q.Remote != "" {
		conds = append(conds, "remote = "+arg(q.Remote))
	}
	if q.Level != "" {
		conds = append(conds, "level = "+arg(q.Level))
	}
	if q.Location != "" {
		conds = append(conds, "location ILIKE "+arg("%"+q.Location+"%"))
	}
	if q.Q != "" {
		term := arg("%" + q.Q + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR company ILIKE %s OR description_md ILIKE %s)", term, term, term))
	}
	sql := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY posted_at DESC LIMIT " + arg(q.Limit) + " OFFSET " + arg(q.Offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+`
FROM jobs
ORDER BY posted_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *JobRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE posted_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var (
		j        job.Job
		metaJSON []byte
		posted   time.Time
		created  time.Time
	)
	err := row.Scan(
		&j.ID, &j.Source, &j.Company, &j.Title,
		&j.Location, &j.Remote, &j.EmploymentType, &j.Level,
		&posted, &j.ApplyURL, &j.CanonicalURL, &j.Currency,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryPeriod,
		&j.DescriptionMD, &j.DescriptionRaw, &j.Hash, &metaJSON, &created,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.PostedAt = posted.UTC()
	j.CreatedAt = created.UTC()
	_ = json.Unmarshal(metaJSON, &j.Meta)
	return j, nil
}

func scanJobs(rows pgx.Rows) ([]job.Job, error) {
	var out []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
