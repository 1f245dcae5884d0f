package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jobscout/agent/pkg/llm"
)

// maxItems caps each list in a reply so a rambling model cannot flood
// the client.
const maxItems = 10

// ErrMissingInput is returned when the job description or resume is blank.
var ErrMissingInput = errors.New("job_md and resume_md are required")

// Question pairs the conversation inputs with the user's question.
type Question struct {
	JobMD    string `json:"job_md"`
	ResumeMD string `json:"resume_md"`
	Question string `json:"question"`
}

// Reply is the copilot's structured answer.
type Reply struct {
	Answer      string   `json:"answer"`
	Score       int      `json:"score"`
	Matches     []string `json:"matches"`
	Gaps        []string `json:"gaps"`
	Suggestions []string `json:"suggestions"`
}

// UseCase answers candidate questions grounded in a job description and
// resume pair.
type UseCase interface {
	Ask(ctx context.Context, q Question) (Reply, error)
}

type service struct {
	llm llm.ChatModel
}

func NewService(model llm.ChatModel) UseCase {
	return &service{llm: model}
}

func systemPrompt(jobMD, resumeMD string) string {
	return "You are a concise career copilot. Use ONLY the job description and the candidate resume provided.\n" +
		"Requirements:\n" +
		"1) Always answer the user's question.\n" +
		"2) Compute a fit score from 0-100 (integer) based on the JD vs resume.\n" +
		"3) List the top matches (strengths) and top gaps (missing items).\n" +
		"4) Provide brief, actionable suggestions to close gaps.\n" +
		"Reply strictly as a compact JSON object with keys: " +
		`{"answer","score","matches","gaps","suggestions"}.` + "\n" +
		"Do not include any other fields, markup, or prose outside JSON.\n\n" +
		fmt.Sprintf("---\nJOB DESCRIPTION:\n%s\n\n---\nRESUME:\n%s\n", jobMD, resumeMD)
}

func (s *service) Ask(ctx context.Context, q Question) (Reply, error) {
	if strings.TrimSpace(q.JobMD) == "" || strings.TrimSpace(q.ResumeMD) == "" {
		return Reply{}, ErrMissingInput
	}
	question := strings.TrimSpace(q.Question)
	if question == "" {
		return Reply{}, ErrMissingInput
	}

	raw, err := s.llm.Chat(ctx,
		[]llm.Message{
			llm.System(systemPrompt(q.JobMD, q.ResumeMD)),
			llm.User(question),
		},
		llm.Options{Temperature: 0.2, JSONOnly: true},
	)
	if err != nil {
		return Reply{}, err
	}
	return normalize(raw), nil
}

// normalize validates the model's JSON and degrades to a plain-text wrap
// when the reply is not parseable.
func normalize(raw string) Reply {
	var out Reply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return Reply{
			Answer:      strings.TrimSpace(raw),
			Score:       50,
			Matches:     []string{},
			Gaps:        []string{},
			Suggestions: []string{},
		}
	}
	out.Answer = strings.TrimSpace(out.Answer)
	if out.Answer == "" {
		out.Answer = "I analyzed the JD and resume and computed a fit score."
	}
	if out.Score < 0 {
		out.Score = 0
	}
	if out.Score > 100 {
		out.Score = 100
	}
	out.Matches = capList(out.Matches)
	out.Gaps = capList(out.Gaps)
	out.Suggestions = capList(out.Suggestions)
	return out
}

func capList(s []string) []string {
	if s == nil {
		return []string{}
	}
	if len(s) > maxItems {
		return s[:maxItems]
	}
	return s
}
