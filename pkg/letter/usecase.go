package letter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jobscout/agent/pkg/llm"
)

// Variant selects the length and register of a drafted letter.
type Variant string

const (
	VariantShort    Variant = "short"
	VariantStandard Variant = "standard"
	VariantLong     Variant = "long"
)

var styles = map[Variant]string{
	VariantShort:    "Concise and punchy (120-180 words).",
	VariantStandard: "Professional, warm, 200-300 words.",
	VariantLong:     "Detailed and thorough, up to 450 words.",
}

// ErrMissingInput is returned when the resume or job description is blank.
var ErrMissingInput = errors.New("resume text and job description are required")

// Request describes the letter to draft. Variant defaults to standard,
// Tone is an optional free-form hint layered on top of the style.
type Request struct {
	JobTitle string  `json:"job_title"`
	Company  string  `json:"company"`
	ResumeMD string  `json:"resume_md"`
	JobDesc  string  `json:"job_desc"`
	Variant  Variant `json:"variant,omitempty"`
	Tone     string  `json:"tone,omitempty"`
}

// Letter is the drafted cover letter in markdown.
type Letter struct {
	Text    string  `json:"letter"`
	Variant Variant `json:"variant"`
}

// UseCase drafts cover letters from a resume and a job description.
type UseCase interface {
	Draft(ctx context.Context, req Request) (Letter, error)
}

type service struct {
	llm llm.ChatModel
}

func NewService(model llm.ChatModel) UseCase {
	return &service{llm: model}
}

func (s *service) Draft(ctx context.Context, req Request) (Letter, error) {
	if strings.TrimSpace(req.ResumeMD) == "" || strings.TrimSpace(req.JobDesc) == "" {
		return Letter{}, ErrMissingInput
	}
	variant := req.Variant
	style, ok := styles[variant]
	if !ok {
		variant = VariantStandard
		style = styles[VariantStandard]
	}
	if tone := strings.TrimSpace(req.Tone); tone != "" {
		style += " Tone: " + tone + "."
	}

	user := fmt.Sprintf(
		"Write a cover letter.\n\nCompany: %s\nRole: %s\n\nResume (markdown):\n%s\n\nJob description:\n%s\n\nStyle: %s\nReturn only the letter.",
		req.Company, req.JobTitle, req.ResumeMD, req.JobDesc, style,
	)
	reply, err := s.llm.Chat(ctx,
		[]llm.Message{
			llm.System("You are an expert tech recruiter and writing coach."),
			llm.User(user),
		},
		llm.Options{Temperature: 0.3},
	)
	if err != nil {
		return Letter{}, err
	}
	return Letter{Text: strings.TrimSpace(reply), Variant: variant}, nil
}
