package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestAskReturnsStructuredReply(t *testing.T) {
	model := &fakeModel{reply: `{"answer":"You fit well.","score":78,` +
		`"matches":["Go"],"gaps":["GraphQL"],"suggestions":["Ship a GraphQL side project"]}`}
	svc := NewService(model)

	out, err := svc.Ask(context.Background(), Question{
		JobMD:    "Build Go services.",
		ResumeMD: "Go since 2019.",
		Question: "Am I a fit?",
	})
	require.NoError(t, err)
	assert.Equal(t, "You fit well.", out.Answer)
	assert.Equal(t, 78, out.Score)
	assert.Equal(t, []string{"Go"}, out.Matches)
	require.Len(t, model.lastMsgs, 2)
	assert.Contains(t, model.lastMsgs[0].Content, "Build Go services.")
	assert.Equal(t, "Am I a fit?", model.lastMsgs[1].Content)
	assert.True(t, model.lastOpts.JSONOnly)
}

func TestAskWrapsNonJSONReply(t *testing.T) {
	svc := NewService(&fakeModel{reply: "  You look like a decent fit overall.  "})
	out, err := svc.Ask(context.Background(), Question{JobMD: "jd", ResumeMD: "cv", Question: "q?"})
	require.NoError(t, err)
	assert.Equal(t, "You look like a decent fit overall.", out.Answer)
	assert.Equal(t, 50, out.Score)
	assert.Empty(t, out.Matches)
	assert.NotNil(t, out.Gaps)
}

func TestAskNormalizesEdges(t *testing.T) {
	long := "["
	for i := 0; i < 15; i++ {
		long += fmt.Sprintf("%q,", fmt.Sprintf("item %d", i))
	}
	long = long[:len(long)-1] + "]"

	svc := NewService(&fakeModel{reply: `{"answer":"","score":-3,"matches":` + long +
		`,"gaps":null,"suggestions":[]}`})
	out, err := svc.Ask(context.Background(), Question{JobMD: "jd", ResumeMD: "cv", Question: "q?"})
	require.NoError(t, err)
	assert.Equal(t, "I analyzed the JD and resume and computed a fit score.", out.Answer)
	assert.Equal(t, 0, out.Score)
	assert.Len(t, out.Matches, 10)
	assert.NotNil(t, out.Gaps)
}

func TestAskMissingInput(t *testing.T) {
	svc := NewService(&fakeModel{})
	for _, q := range []Question{
		{JobMD: "", ResumeMD: "cv", Question: "q?"},
		{JobMD: "jd", ResumeMD: " ", Question: "q?"},
		{JobMD: "jd", ResumeMD: "cv", Question: ""},
	} {
		_, err := svc.Ask(context.Background(), q)
		assert.ErrorIs(t, err, ErrMissingInput)
	}
}

func TestAskModelFailure(t *testing.T) {
	svc := NewService(&fakeModel{err: errors.New("groq http 429")})
	_, err := svc.Ask(context.Background(), Question{JobMD: "jd", ResumeMD: "cv", Question: "q?"})
	assert.Error(t, err)
}
