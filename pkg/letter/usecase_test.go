package letter

import (
	"context"
	"errors"
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

func TestDraftStandard(t *testing.T) {
	model := &fakeModel{reply: "\nDear Hiring Team,\n\nI would love to join.\n"}
	svc := NewService(model)

	out, err := svc.Draft(context.Background(), Request{
		JobTitle: "Backend Engineer",
		Company:  "Acme",
		ResumeMD: "Go, Postgres.",
		JobDesc:  "Build APIs.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Team,\n\nI would love to join.", out.Text)
	assert.Equal(t, VariantStandard, out.Variant)
	require.Len(t, model.lastMsgs, 2)
	assert.Contains(t, model.lastMsgs[1].Content, "Professional, warm, 200-300 words.")
	assert.InDelta(t, 0.3, model.lastOpts.Temperature, 0.001)
}

func TestDraftVariantsAndTone(t *testing.T) {
	tests := []struct {
		name      string
		variant   Variant
		tone      string
		wantStyle string
	}{
		{"short", VariantShort, "", "Concise and punchy (120-180 words)."},
		{"long", VariantLong, "", "Detailed and thorough, up to 450 words."},
		{"unknown falls back", Variant("epic"), "", "Professional, warm, 200-300 words."},
		{"tone appended", VariantShort, "confident", "Tone: confident."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{reply: "letter"}
			svc := NewService(model)
			out, err := svc.Draft(context.Background(), Request{
				JobTitle: "r", Company: "c", ResumeMD: "cv", JobDesc: "jd",
				Variant: tt.variant, Tone: tt.tone,
			})
			require.NoError(t, err)
			assert.Contains(t, model.lastMsgs[1].Content, tt.wantStyle)
			if tt.variant == Variant("epic") {
				assert.Equal(t, VariantStandard, out.Variant)
			}
		})
	}
}

func TestDraftMissingInput(t *testing.T) {
	svc := NewService(&fakeModel{})
	_, err := svc.Draft(context.Background(), Request{ResumeMD: " ", JobDesc: "jd"})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestDraftModelFailure(t *testing.T) {
	svc := NewService(&fakeModel{err: errors.New("groq http 503")})
	_, err := svc.Draft(context.Background(), Request{ResumeMD: "cv", JobDesc: "jd"})
	assert.Error(t, err)
}
