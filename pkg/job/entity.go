package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Job is one stored posting.
type Job struct {
	ID             uuid.UUID      `json:"id"`
	Source         string         `json:"source"`
	Company        string         `json:"company"`
	Title          string         `json:"title"`
	Location       string         `json:"location,omitempty"`
	Remote         string         `json:"remote,omitempty"`
	EmploymentType string         `json:"employment_type,omitempty"`
	Level          string         `json:"level,omitempty"`
	PostedAt       time.Time      `json:"posted_at"`
	ApplyURL       string         `json:"apply_url"`
	CanonicalURL   string         `json:"canonical_url,omitempty"`
	Currency       string         `json:"currency,omitempty"`
	SalaryMin      *float64       `json:"salary_min,omitempty"`
	SalaryMax      *float64       `json:"salary_max,omitempty"`
	SalaryPeriod   string         `json:"salary_period,omitempty"`
	DescriptionMD  string         `json:"description_md"`
	DescriptionRaw string         `json:"description_raw,omitempty"`
	Hash           string         `json:"-"`
	Meta           map[string]any `json:"meta,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Raw is an unvalidated posting as produced by scrapers or the ingest
// endpoint. PostedAt accepts ISO 8601, YYYY-MM-DD or epoch seconds.
type Raw struct {
	Source         string         `json:"source"`
	Company        string         `json:"company"`
	Title          string         `json:"title"`
	Location       string         `json:"location"`
	Remote         string         `json:"remote"`
	EmploymentType string         `json:"employment_type"`
	Level          string         `json:"level"`
	PostedAt       string         `json:"posted_at"`
	ApplyURL       string         `json:"apply_url"`
	CanonicalURL   string         `json:"canonical_url"`
	Currency       string         `json:"currency"`
	SalaryMin      *float64       `json:"salary_min"`
	SalaryMax      *float64       `json:"salary_max"`
	SalaryPeriod   string         `json:"salary_period"`
	DescriptionMD  string         `json:"description_md"`
	Description    string         `json:"description"` // accepted alias for description_md
	DescriptionRaw string         `json:"description_raw"`
	Meta           map[string]any `json:"meta"`
}

// Query carries the search filters.
type Query struct {
	Q                 string     `json:"q"`
	Remote            string     `json:"remote"`
	Level             string     `json:"level"`
	Location          string     `json:"location"`
	PostedWithinHours int        `json:"posted_within_hours"`
	From              *time.Time `json:"-"`
	To                *time.Time `json:"-"`
	Limit             int        `json:"limit"`
	Offset            int        `json:"offset"`
}

type IngestStatus string

const (
	StatusCreated IngestStatus = "created"
	StatusExists  IngestStatus = "exists"
)

type IngestResult struct {
	ID     uuid.UUID
	Status IngestStatus
}

type CleanupResult struct {
	Deleted int64
	Cutoff  time.Time
}

var (
	ErrNotFound = errors.New("job not found")
	// ErrInvalid marks payloads missing required fields.
	ErrInvalid = errors.New("invalid job payload")
)

// Repository is the persistence port for jobs.
type Repository interface {
	Insert(ctx context.Context, j Job) error
	// FindExisting resolves a posting by fingerprint, canonical URL or
	// apply URL; ErrNotFound when nothing matches.
	FindExisting(ctx context.Context, hash, canonicalURL, applyURL string) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Search(ctx context.Context, q Query) ([]Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
