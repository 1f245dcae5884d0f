package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout/agent/pkg/job"
	"github.com/jobscout/agent/pkg/llm"
)

type fakeModel struct {
	reply    string
	err      error
	lastMsgs []llm.Message
	lastOpts llm.Options
}

func (f *fakeModel) Chat(_ context.Context, msgs []llm.Message, opts llm.Options) (string, error) {
	f.lastMsgs = msgs
	f.lastOpts = opts
	return f.reply, f.err
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]job.Job
}

func (f *fakeJobRepo) Insert(context.Context, job.Job) error { return nil }
func (f *fakeJobRepo) FindExisting(context.Context, string, string, string) (job.Job, error) {
	return job.Job{}, job.ErrNotFound
}
func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}
func (f *fakeJobRepo) Search(context.Context, job.Query) ([]job.Job, error)     { return nil, nil }
func (f *fakeJobRepo) List(context.Context, int, int) ([]job.Job, error)        { return nil, nil }
func (f *fakeJobRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) { return 0, nil }

func TestAnalyzeParsesReport(t *testing.T) {
	model := &fakeModel{reply: `{"fit_score":87,"strengths":["Go"],"gaps":["Kubernetes"],` +
		`"ats_keywords":{"hit":["Go"],"partial":[],"miss":["K8s"]},"rationale":"ok"}`}
	svc := NewService(&fakeJobRepo{}, model, "llama-3.3-70b-versatile")

	res, err := svc.Analyze(context.Background(), Request{
		JobTitle:   "Backend Engineer",
		Company:    "Acme",
		JobDesc:    "Go services at scale.",
		ResumeText: "Five years of Go.",
		Keywords:   []string{"Go", "K8s"},
	})
	require.NoError(t, err)
	assert.Equal(t, 87, res.FitScore)
	assert.Equal(t, []string{"Go"}, res.Strengths)
	assert.Equal(t, []string{"K8s"}, res.ATSKeywords.Miss)
	assert.Equal(t, "llama-3.3-70b-versatile", res.Model)
	assert.True(t, model.lastOpts.JSONOnly)
	assert.InDelta(t, 0.2, model.lastOpts.Temperature, 0.001)
}

func TestAnalyzeExtractsWrappedJSON(t *testing.T) {
	model := &fakeModel{reply: "Here you go:\n```json\n" +
		`{"fit_score":140,"strengths":null,"gaps":null,` +
		`"ats_keywords":{"hit":null,"partial":null,"miss":null},"rationale":"r"}` +
		"\n```"}
	svc := NewService(&fakeJobRepo{}, model, "m")

	res, err := svc.Analyze(context.Background(), Request{JobDesc: "jd", ResumeText: "cv"})
	require.NoError(t, err)
	assert.Equal(t, 100, res.FitScore, "score is clamped to 100")
	assert.NotNil(t, res.Strengths)
	assert.NotNil(t, res.ATSKeywords.Hit)
	assert.Empty(t, res.Strengths)
}

func TestAnalyzeMissingInput(t *testing.T) {
	svc := NewService(&fakeJobRepo{}, &fakeModel{}, "m")
	_, err := svc.Analyze(context.Background(), Request{JobDesc: "  ", ResumeText: "cv"})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestAnalyzeUnparseableReply(t *testing.T) {
	svc := NewService(&fakeJobRepo{}, &fakeModel{reply: "sorry, no can do"}, "m")
	_, err := svc.Analyze(context.Background(), Request{JobDesc: "jd", ResumeText: "cv"})
	assert.Error(t, err)
}

func TestAnswerQuestion(t *testing.T) {
	id := uuid.New()
	repo := &fakeJobRepo{jobs: map[uuid.UUID]job.Job{id: {
		ID:            id,
		Title:         "SRE",
		Company:       "Acme",
		DescriptionMD: "Keep the site up.",
	}}}
	model := &fakeModel{reply: "  On-call is weekly.  "}
	svc := NewService(repo, model, "m")

	ans, err := svc.AnswerQuestion(context.Background(), id, "How often is on-call?", "")
	require.NoError(t, err)
	assert.Equal(t, "On-call is weekly.", ans.Answer)
	assert.Equal(t, id.String(), ans.JobID)
	require.Len(t, model.lastMsgs, 2)
	assert.Contains(t, model.lastMsgs[1].Content, "Keep the site up.")
	assert.Contains(t, model.lastMsgs[1].Content, "(none)")
	assert.False(t, model.lastOpts.JSONOnly)
}

func TestAnswerQuestionUnknownJob(t *testing.T) {
	svc := NewService(&fakeJobRepo{}, &fakeModel{}, "m")
	_, err := svc.AnswerQuestion(context.Background(), uuid.New(), "anything?", "")
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestAnswerQuestionModelFailure(t *testing.T) {
	id := uuid.New()
	repo := &fakeJobRepo{jobs: map[uuid.UUID]job.Job{id: {ID: id, Title: "t", Company: "c", DescriptionMD: "d"}}}
	svc := NewService(repo, &fakeModel{err: errors.New("groq http 500")}, "m")
	_, err := svc.AnswerQuestion(context.Background(), id, "q?", "")
	assert.Error(t, err)
}
