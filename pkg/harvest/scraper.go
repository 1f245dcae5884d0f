package harvest

import (
	"context"
	"strings"
	"time"

	"github.com/jobscout/agent/pkg/job"
)

// Scraper pulls fresh postings from one job-board provider.
type Scraper interface {
	Name() string
	// Harvest returns postings updated within the last windowHours whose
	// title contains query (case-insensitive) when query is non-empty.
	Harvest(ctx context.Context, query string, windowHours int) ([]job.Raw, error)
}

// parseISO parses an ISO 8601 timestamp, tolerating the trailing Z and
// fractional seconds boards emit. Zero time on failure.
func parseISO(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func formatPostedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// titleMatches applies the optional harvest query filter.
func titleMatches(title, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

// withinWindow keeps postings with unknown dates and drops ones older
// than the cutoff.
func withinWindow(posted time.Time, cutoff time.Time) bool {
	return posted.IsZero() || !posted.Before(cutoff)
}
