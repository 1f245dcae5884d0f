package job

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// normalize converts a raw posting into a storable Job. It trims every
// string field, resolves the description alias, defaults canonical_url to
// apply_url and posted_at to now. Required fields missing → ErrInvalid.
func normalize(raw Raw, now time.Time) (Job, error) {
	j := Job{
		Source:         strings.TrimSpace(raw.Source),
		Company:        strings.TrimSpace(raw.Company),
		Title:          strings.TrimSpace(raw.Title),
		Location:       strings.TrimSpace(raw.Location),
		Remote:         strings.TrimSpace(raw.Remote),
		EmploymentType: strings.TrimSpace(raw.EmploymentType),
		Level:          strings.TrimSpace(raw.Level),
		ApplyURL:       strings.TrimSpace(raw.ApplyURL),
		CanonicalURL:   strings.TrimSpace(raw.CanonicalURL),
		Currency:       strings.TrimSpace(raw.Currency),
		SalaryMin:      raw.SalaryMin,
		SalaryMax:      raw.SalaryMax,
		SalaryPeriod:   strings.TrimSpace(raw.SalaryPeriod),
		DescriptionMD:  strings.TrimSpace(raw.DescriptionMD),
		DescriptionRaw: strings.TrimSpace(raw.DescriptionRaw),
		Meta:           raw.Meta,
	}
	if j.DescriptionMD == "" {
		j.DescriptionMD = strings.TrimSpace(raw.Description)
	}
	if j.Source == "" {
		j.Source = "manual"
	}
	for field, v := range map[string]string{
		"company":        j.Company,
		"title":          j.Title,
		"apply_url":      j.ApplyURL,
		"description_md": j.DescriptionMD,
	} {
		if v == "" {
			return Job{}, fmt.Errorf("%w: %s is required", ErrInvalid, field)
		}
	}
	if j.CanonicalURL == "" {
		j.CanonicalURL = j.ApplyURL
	}
	if ts, ok := CoercePostedAt(raw.PostedAt); ok {
		j.PostedAt = ts
	} else {
		j.PostedAt = now.UTC()
	}
	return j, nil
}

var postedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CoercePostedAt parses the timestamp shapes scrapers feed us: ISO 8601
// (with or without zone), bare dates and epoch seconds. Naive timestamps
// are treated as UTC.
func CoercePostedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range postedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Unix(int64(secs), 0).UTC(), true
	}
	return time.Time{}, false
}
