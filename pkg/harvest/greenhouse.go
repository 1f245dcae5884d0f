package harvest

import (
	"context"
	"fmt"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/jobscout/agent/pkg/job"
	"github.com/jobscout/agent/pkg/nlp"
)

// GreenhouseScraper reads public board APIs at boards-api.greenhouse.io.
// The list endpoint has no descriptions, so each kept posting costs one
// extra detail request.
type GreenhouseScraper struct {
	fetcher *Fetcher
	baseURL string
	boards  []string
}

func NewGreenhouseScraper(fetcher *Fetcher, boards []string) *GreenhouseScraper {
	if len(boards) == 0 {
		boards = []string{"stripe", "notion", "databricks", "snowflake"}
	}
	return &GreenhouseScraper{
		fetcher: fetcher,
		baseURL: "https://boards-api.greenhouse.io",
		boards:  boards,
	}
}

func (s *GreenhouseScraper) Name() string { return "greenhouse" }

type greenhouseList struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	UpdatedAt   string `json:"updated_at"`
	CreatedAt   string `json:"created_at"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

func (s *GreenhouseScraper) Harvest(ctx context.Context, query string, windowHours int) ([]job.Raw, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(windowHours) * time.Hour)
	var out []job.Raw
	for _, board := range s.boards {
		var list greenhouseList
		ok, err := s.fetcher.GetJSON(ctx, fmt.Sprintf("%s/v1/boards/%s/jobs", s.baseURL, board), &list)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		for _, j := range list.Jobs {
			posted := parseISO(j.UpdatedAt)
			if posted.IsZero() {
				posted = parseISO(j.CreatedAt)
			}
			if !withinWindow(posted, cutoff) {
				continue
			}
			title := nlp.CollapseSpace(j.Title)
			if !titleMatches(title, query) {
				continue
			}

			var detail greenhouseJob
			ok, err := s.fetcher.GetJSON(ctx, fmt.Sprintf("%s/v1/boards/%s/jobs/%d", s.baseURL, board, j.ID), &detail)
			if err != nil {
				return out, err
			}
			if !ok {
				continue
			}

			desc := detail.Content
			if md, err := htmltomarkdown.ConvertString(desc); err == nil {
				desc = md
			}
			applyURL := detail.AbsoluteURL
			if applyURL == "" {
				applyURL = j.AbsoluteURL
			}
			out = append(out, job.Raw{
				Source:         fmt.Sprintf("greenhouse:%s", board),
				Company:        board,
				Title:          title,
				Location:       detail.Location.Name,
				PostedAt:       formatPostedAt(posted),
				ApplyURL:       applyURL,
				CanonicalURL:   detail.AbsoluteURL,
				DescriptionMD:  desc,
				DescriptionRaw: detail.Content,
				Meta:           map[string]any{"job_id": j.ID},
			})
		}
	}
	return out, nil
}
