package analysis

// ATSKeywords buckets the vacancy keywords by how well the resume covers
// them. Every slice is non-nil after normalization so clients always get
// JSON arrays.
type ATSKeywords struct {
	Hit     []string `json:"hit"`
	Partial []string `json:"partial"`
	Miss    []string `json:"miss"`
}

// Request carries everything the model needs to judge a resume against a
// posting. Keywords are optional hints from the caller.
type Request struct {
	JobTitle   string   `json:"job_title"`
	Company    string   `json:"company"`
	JobDesc    string   `json:"job_desc"`
	ResumeText string   `json:"resume_text"`
	Keywords   []string `json:"keywords,omitempty"`
}

// Result is the structured fit report.
type Result struct {
	FitScore    int         `json:"fit_score"`
	Strengths   []string    `json:"strengths"`
	Gaps        []string    `json:"gaps"`
	ATSKeywords ATSKeywords `json:"ats_keywords"`
	Rationale   string      `json:"rationale"`
	Model       string      `json:"model"`
}

// Answer is the response to a free-form question about a stored job.
type Answer struct {
	JobID  string `json:"job_id"`
	Answer string `json:"answer"`
}
