package harvest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jobscout/agent/pkg/job"
	"github.com/jobscout/agent/pkg/nlp"
)

// WorkdayTenant names one public careers site. Most tenants expose the
// same cxs endpoint shape.
type WorkdayTenant struct {
	Company string
	Tenant  string
}

// WorkdayScraper reads the cxs careers endpoints of known tenants.
type WorkdayScraper struct {
	fetcher *Fetcher
	baseURL string // overrides the per-tenant host when set
	tenants []WorkdayTenant
}

func NewWorkdayScraper(fetcher *Fetcher, tenants []WorkdayTenant) *WorkdayScraper {
	if len(tenants) == 0 {
		tenants = []WorkdayTenant{
			{Company: "NVIDIA", Tenant: "nvidia"},
			{Company: "Apple", Tenant: "apple"},
		}
	}
	return &WorkdayScraper{fetcher: fetcher, tenants: tenants}
}

func (s *WorkdayScraper) Name() string { return "workday" }

func (s *WorkdayScraper) tenantBase(tenant string) string {
	if s.baseURL != "" {
		return s.baseURL
	}
	return fmt.Sprintf("https://%s.wd3.myworkdayjobs.com", tenant)
}

type workdayBoard struct {
	JobPostings []workdayPosting `json:"jobPostings"`
}

type workdayPosting struct {
	Title         string `json:"title"`
	PostedOn      string `json:"postedOn"`
	PostedDate    string `json:"postedDate"`
	ExternalPath  string `json:"externalPath"`
	ExternalURL   string `json:"externalUrl"`
	ShortText     string `json:"shortText"`
	LocationsText string `json:"locationsText"`
	BulletFields  struct {
		JobID string `json:"jobId"`
	} `json:"bulletFields"`
}

func (s *WorkdayScraper) Harvest(ctx context.Context, query string, windowHours int) ([]job.Raw, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)
	var out []job.Raw
	for _, t := range s.tenants {
		base := s.tenantBase(t.Tenant)
		var board workdayBoard
		ok, err := s.fetcher.GetJSON(ctx, fmt.Sprintf("%s/wday/cxs/%s/careers/jobs", base, t.Tenant), &board)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		for _, p := range board.JobPostings {
			title := nlp.CollapseSpace(p.Title)
			if !titleMatches(title, query) {
				continue
			}
			iso := p.PostedOn
			if iso == "" {
				iso = p.PostedDate
			}
			posted := parseISO(iso)
			if !withinWindow(posted, cutoff) {
				continue
			}
			applyURL := p.ExternalPath
			if applyURL == "" {
				applyURL = p.ExternalURL
			}
			if applyURL != "" && !strings.HasPrefix(applyURL, "http") {
				applyURL = base + applyURL
			}
			out = append(out, job.Raw{
				Source:        fmt.Sprintf("workday:%s", t.Tenant),
				Company:       t.Company,
				Title:         title,
				Location:      p.LocationsText,
				PostedAt:      formatPostedAt(posted),
				ApplyURL:      applyURL,
				CanonicalURL:  applyURL,
				DescriptionMD: p.ShortText,
				Meta:          map[string]any{"job_id": p.BulletFields.JobID},
			})
		}
	}
	return out, nil
}
