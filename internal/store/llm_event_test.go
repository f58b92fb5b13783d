package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true,
			RequestBody: "[user]\nhi", ResponseBody: `{"title":"x"}`},
		{Provider: "mock", Model: "m1", Purpose: "answer-eval", InputTokens: 40, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "answer-eval", InputTokens: 60, OutputTokens: 30, LatencyMs: 300, Success: false,
			ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "boom", all[0].ErrorMessage, "newest first")
	assert.False(t, all[0].Success)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	evals, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "answer-eval"})
	require.NoError(t, err)
	assert.Len(t, evals, 2)

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "question-gen", first.Purpose)
	assert.Equal(t, `{"title":"x"}`, first.ResponseBody)
	assert.False(t, first.Timestamp.IsZero())
}

func TestEventRepo_GetUnknown(t *testing.T) {
	s := openTestStore(t)
	_, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "answer-eval", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m1", Purpose: "answer-eval", InputTokens: 20, OutputTokens: 5, LatencyMs: 300, Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "m2", Purpose: "question-gen", InputTokens: 7, OutputTokens: 3, LatencyMs: 50, Success: true}))

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "answer-eval", Calls: 2, InputTokens: 30, OutputTokens: 10, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, LLMModelUsage{Model: "m1", Calls: 2, InputTokens: 30, OutputTokens: 10}, byModel[0])
}
