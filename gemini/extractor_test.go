package gemini_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"certquiz"
	"certquiz/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_NilClient(t *testing.T) {
	t.Parallel()

	e := gemini.NewExtractor(nil)
	assert.False(t, e.Available())

	card := certquiz.RawCard{HTML: "<div>Question #1</div>"}

	t.Run("question", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		_, err := e.ExtractQuestion(context.Background(), card)
		require.Error(t, err)
		assert.Equal(t, certquiz.EUNAVAILABLE, certquiz.ErrorCode(err))
		assert.Less(t, time.Since(start), time.Second, "should fail without rate-limit wait")
	})

	t.Run("discussion", func(t *testing.T) {
		t.Parallel()
		_, err := e.ExtractDiscussion(context.Background(), card, "question_1")
		require.Error(t, err)
		assert.Equal(t, certquiz.EUNAVAILABLE, certquiz.ErrorCode(err))
	})

	t.Run("voting", func(t *testing.T) {
		t.Parallel()
		v, err := e.ExtractVoting(context.Background(), card)
		require.Error(t, err)
		assert.Equal(t, certquiz.EUNAVAILABLE, certquiz.ErrorCode(err))
		assert.True(t, v.IsZero())
	})
}

func TestExtractor_NilClient_CanceledContext(t *testing.T) {
	t.Parallel()

	e := gemini.NewExtractor(nil, gemini.WithRetryDelays(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ExtractQuestion(ctx, certquiz.RawCard{HTML: "<div></div>"})
	require.Error(t, err)
	assert.Equal(t, certquiz.EUNAVAILABLE, certquiz.ErrorCode(err))
}

func TestExtractor_Available(t *testing.T) {
	t.Parallel()

	assert.False(t, gemini.NewExtractor(nil).Available())
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	delays := gemini.DefaultRetryDelays()
	require.Len(t, delays, 3)
	assert.Equal(t, 1*time.Second, delays[0])
	assert.Equal(t, 2*time.Second, delays[1])
	assert.Equal(t, 4*time.Second, delays[2])
}

func TestQuestionPrompt(t *testing.T) {
	t.Parallel()

	html := `<div class="exam-question-card">Question #7</div>`
	prompt := gemini.QuestionPrompt(html)
	assert.Contains(t, prompt, html)
	assert.Contains(t, prompt, "question_number")
	assert.Contains(t, prompt, "correct_answer")
	assert.True(t, strings.Contains(prompt, `otherwise "A"`), "must state the default answer")
}

func TestDiscussionPrompt(t *testing.T) {
	t.Parallel()

	html := `<div class="comment">Great question</div>`
	prompt := gemini.DiscussionPrompt(html)
	assert.Contains(t, prompt, html)
	assert.Contains(t, prompt, "Anonymous")
}

func TestVotingPrompt(t *testing.T) {
	t.Parallel()

	html := `<span class="vote">A: 12</span>`
	prompt := gemini.VotingPrompt(html)
	assert.Contains(t, prompt, html)
	assert.Contains(t, prompt, "vote_distribution")
}

func TestQuestionSchema(t *testing.T) {
	t.Parallel()

	s := gemini.QuestionSchema()
	require.NotNil(t, s)
	assert.Contains(t, s.Properties, "question_number")
	assert.Contains(t, s.Properties, "question_text")
	assert.Contains(t, s.Properties, "choices")
	assert.Contains(t, s.Properties, "correct_answer")
	assert.Contains(t, s.Required, "question_number")
	assert.Contains(t, s.Required, "choices")

	choices := s.Properties["choices"]
	require.NotNil(t, choices.Items)
	assert.Contains(t, choices.Items.Properties, "letter")
	assert.Contains(t, choices.Items.Properties, "text")
}

func TestVotingSchema(t *testing.T) {
	t.Parallel()

	s := gemini.VotingSchema()
	require.NotNil(t, s)
	assert.Contains(t, s.Properties, "total_votes")
	assert.Contains(t, s.Properties, "vote_distribution")
	assert.Contains(t, s.Required, "vote_distribution")
}

func TestDiscussionSchema(t *testing.T) {
	t.Parallel()

	s := gemini.DiscussionSchema()
	require.NotNil(t, s)
	assert.Contains(t, s.Properties, "comments")
	comments := s.Properties["comments"]
	require.NotNil(t, comments.Items)
	assert.Contains(t, comments.Items.Properties, "author")
	assert.Contains(t, comments.Items.Properties, "content")
}
