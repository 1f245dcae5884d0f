package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jobscout/agent/pkg/job"
	"github.com/jobscout/agent/pkg/llm"
)

// ErrMissingInput is returned when a required text field is blank.
var ErrMissingInput = errors.New("job description and resume text are required")

// UseCase scores a resume against a job description and answers
// free-form questions about stored jobs.
type UseCase interface {
	Analyze(ctx context.Context, req Request) (Result, error)
	AnswerQuestion(ctx context.Context, jobID uuid.UUID, question, resumeText string) (Answer, error)
}

type service struct {
	jobs      job.Repository
	llm       llm.ChatModel
	modelName string
}

func NewService(jobs job.Repository, model llm.ChatModel, modelName string) UseCase {
	return &service{jobs: jobs, llm: model, modelName: modelName}
}

const analyzeSystem = "You are a strict technical recruiter. Compare the resume against the job " +
	"description and return ONLY a compact JSON object with keys: " +
	`{"fit_score","strengths","gaps","ats_keywords","rationale"}. ` +
	`"fit_score" is an integer 0-100. "strengths" and "gaps" are short string arrays. ` +
	`"ats_keywords" is an object with "hit", "partial" and "miss" string arrays. ` +
	`"rationale" is one or two sentences. No prose outside the JSON.`

func (s *service) Analyze(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.JobDesc) == "" || strings.TrimSpace(req.ResumeText) == "" {
		return Result{}, ErrMissingInput
	}

	keywords := "none"
	if len(req.Keywords) > 0 {
		keywords = strings.Join(req.Keywords, ", ")
	}
	user := fmt.Sprintf(
		"Role: %s\nCompany: %s\nKeywords to check: %s\n\nJOB DESCRIPTION:\n%s\n\nRESUME:\n%s\n",
		req.JobTitle, req.Company, keywords, req.JobDesc, req.ResumeText,
	)

	raw, err := s.llm.Chat(ctx,
		[]llm.Message{llm.System(analyzeSystem), llm.User(user)},
		llm.Options{Temperature: 0.2, JSONOnly: true},
	)
	if err != nil {
		return Result{}, err
	}

	var out Result
	if err := decodeJSON(raw, &out); err != nil {
		return Result{}, fmt.Errorf("model returned unparseable report: %w", err)
	}
	out.FitScore = clampScore(out.FitScore)
	out.Strengths = nonNil(out.Strengths)
	out.Gaps = nonNil(out.Gaps)
	out.ATSKeywords.Hit = nonNil(out.ATSKeywords.Hit)
	out.ATSKeywords.Partial = nonNil(out.ATSKeywords.Partial)
	out.ATSKeywords.Miss = nonNil(out.ATSKeywords.Miss)
	out.Model = s.modelName
	return out, nil
}

func (s *service) AnswerQuestion(ctx context.Context, jobID uuid.UUID, question, resumeText string) (Answer, error) {
	if strings.TrimSpace(question) == "" {
		return Answer{}, ErrMissingInput
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Answer{}, err
	}

	resume := strings.TrimSpace(resumeText)
	if resume == "" {
		resume = "(none)"
	}
	location := j.Location
	if location == "" {
		location = "N/A"
	}
	user := fmt.Sprintf(
		"JOB TITLE: %s\nCOMPANY: %s\nLOCATION: %s\n\nJOB DESCRIPTION:\n%s\n\nRESUME (optional):\n%s\n\nQUESTION:\n%s\n",
		j.Title, j.Company, location, j.DescriptionMD, resume, question,
	)

	reply, err := s.llm.Chat(ctx,
		[]llm.Message{
			llm.System("You are a helpful assistant that answers questions about a job description."),
			llm.User(user),
		},
		llm.Options{Temperature: 0.2},
	)
	if err != nil {
		return Answer{}, err
	}
	return Answer{JobID: jobID.String(), Answer: strings.TrimSpace(reply)}, nil
}

// decodeJSON parses raw as JSON, falling back to the first '{'..'}' span
// when the model wraps the object in prose or a code fence.
func decodeJSON(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i >= 0 && j > i {
		return json.Unmarshal([]byte(raw[i:j+1]), v)
	}
	return errors.New("no JSON object found")
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
