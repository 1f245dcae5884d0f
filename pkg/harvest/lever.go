package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jobscout/agent/pkg/job"
	"github.com/jobscout/agent/pkg/nlp"
)

// LeverScraper reads the public postings API at api.lever.co.
type LeverScraper struct {
	fetcher   *Fetcher
	baseURL   string
	companies []string
}

func NewLeverScraper(fetcher *Fetcher, companies []string) *LeverScraper {
	if len(companies) == 0 {
		companies = []string{"sentry", "zapier", "robinhood", "nylas"}
	}
	return &LeverScraper{
		fetcher:   fetcher,
		baseURL:   "https://api.lever.co",
		companies: companies,
	}
}

func (s *LeverScraper) Name() string { return "lever" }

type leverPosting struct {
	ID               string          `json:"id"`
	Text             string          `json:"text"`
	CreatedAt        int64           `json:"createdAt"`
	UpdatedAt        int64           `json:"updatedAt"`
	ApplyURL         string          `json:"applyUrl"`
	HostedURL        string          `json:"hostedUrl"`
	DescriptionPlain string          `json:"descriptionPlain"`
	Description      string          `json:"description"`
	Categories       leverCategories `json:"categories"`
}

type leverCategories struct {
	Location   leverLocation `json:"location"`
	Commitment string        `json:"commitment"`
}

// leverLocation is a string for most postings and a list of named
// objects for multi-site ones.
type leverLocation struct {
	Names []string
}

func (l *leverLocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "" {
			l.Names = []string{s}
		}
		return nil
	}
	var items []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	for _, it := range items {
		l.Names = append(l.Names, it.Name)
	}
	return nil
}

func (l leverLocation) String() string {
	return strings.Join(l.Names, ", ")
}

func (s *LeverScraper) Harvest(ctx context.Context, query string, windowHours int) ([]job.Raw, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)
	var out []job.Raw
	for _, company := range s.companies {
		var posts []leverPosting
		ok, err := s.fetcher.GetJSON(ctx, fmt.Sprintf("%s/v0/postings/%s?mode=json", s.baseURL, company), &posts)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		for _, p := range posts {
			ms := p.CreatedAt
			if ms == 0 {
				ms = p.UpdatedAt
			}
			var posted time.Time
			if ms > 0 {
				posted = time.UnixMilli(ms).UTC()
			}
			if !withinWindow(posted, cutoff) {
				continue
			}
			title := nlp.CollapseSpace(p.Text)
			if !titleMatches(title, query) {
				continue
			}
			applyURL := p.ApplyURL
			if applyURL == "" {
				applyURL = p.HostedURL
			}
			desc := p.DescriptionPlain
			if desc == "" {
				desc = p.Description
			}
			out = append(out, job.Raw{
				Source:         fmt.Sprintf("lever:%s", company),
				Company:        company,
				Title:          title,
				Location:       p.Categories.Location.String(),
				EmploymentType: p.Categories.Commitment,
				PostedAt:       formatPostedAt(posted),
				ApplyURL:       applyURL,
				CanonicalURL:   p.HostedURL,
				DescriptionMD:  desc,
				Meta:           map[string]any{"job_id": p.ID},
			})
		}
	}
	return out, nil
}
