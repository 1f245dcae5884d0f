package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/jobscout/agent/pkg/job"
	"github.com/jobscout/agent/pkg/nlp"
)

// AshbyScraper reads the public job-board API at api.ashbyhq.com.
type AshbyScraper struct {
	fetcher *Fetcher
	baseURL string
	orgs    []string
}

func NewAshbyScraper(fetcher *Fetcher, orgs []string) *AshbyScraper {
	if len(orgs) == 0 {
		orgs = []string{"togetherai", "perplexity", "roblox"}
	}
	return &AshbyScraper{
		fetcher: fetcher,
		baseURL: "https://api.ashbyhq.com",
		orgs:    orgs,
	}
}

func (s *AshbyScraper) Name() string { return "ashby" }

type ashbyBoard struct {
	JobPostings []ashbyPosting `json:"jobPostings"`
}

type ashbyPosting struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	LocationName     string `json:"locationName"`
	EmploymentType   string `json:"employmentType"`
	IsRemote         bool   `json:"isRemote"`
	UpdatedDate      string `json:"updatedDate"`
	CreatedDate      string `json:"createdDate"`
	ApplyURL         string `json:"applyUrl"`
	JobURL           string `json:"jobUrl"`
	DescriptionPlain string `json:"descriptionPlain"`
}

func (s *AshbyScraper) Harvest(ctx context.Context, query string, windowHours int) ([]job.Raw, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)
	var out []job.Raw
	for _, org := range s.orgs {
		var board ashbyBoard
		ok, err := s.fetcher.GetJSON(ctx, fmt.Sprintf("%s/posting-api/job-board/%s", s.baseURL, org), &board)
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
			posted := parseISO(p.UpdatedDate)
			if posted.IsZero() {
				posted = parseISO(p.CreatedDate)
			}
			if !withinWindow(posted, cutoff) {
				continue
			}
			remote := ""
			if p.IsRemote {
				remote = "remote"
			}
			applyURL := p.ApplyURL
			if applyURL == "" {
				applyURL = p.JobURL
			}
			out = append(out, job.Raw{
				Source:         fmt.Sprintf("ashby:%s", org),
				Company:        org,
				Title:          title,
				Location:       p.LocationName,
				Remote:         remote,
				EmploymentType: p.EmploymentType,
				PostedAt:       formatPostedAt(posted),
				ApplyURL:       applyURL,
				CanonicalURL:   p.JobURL,
				DescriptionMD:  p.DescriptionPlain,
				Meta:           map[string]any{"job_id": p.ID},
			})
		}
	}
	return out, nil
}
