package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baskit-app/baskit/internal/app"
	"github.com/baskit-app/baskit/internal/domain"
)

type stubIntent struct {
	interp *domain.Interpretation
	err    error
}

func (s *stubIntent) Interpret(context.Context, string) (*domain.Interpretation, error) {
	return s.interp, s.err
}

func newAssistant(t *testing.T, source *stubIntent) (*app.AssistantService, *fixture) {
	t.Helper()

	f := newFixture(t, app.DefaultPolicy())
	assistant := app.NewAssistantService(source, f.dispatcher, app.DefaultPolicy(), discardLogger())
	return assistant, f
}

func TestAssistant_HandleMessage(t *testing.T) {
	t.Parallel()

	source := &stubIntent{interp: &domain.Interpretation{
		Confidence: 0.9,
		ToolCalls: []domain.ToolCall{
			{Name: domain.ToolCreateList, Arguments: map[string]any{"list_name": "קניות"}},
			{Name: domain.ToolAddItem, Arguments: map[string]any{"item_name": "חלב"}},
		},
	}}
	assistant, _ := newAssistant(t, source)

	results, err := assistant.HandleMessage(context.Background(), owner, "תפתח רשימת קניות ותוסיף חלב")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].Success)
	require.True(t, results[1].Success)
}

func TestAssistant_EmptyText(t *testing.T) {
	t.Parallel()

	assistant, _ := newAssistant(t, &stubIntent{})

	results, err := assistant.HandleMessage(context.Background(), owner, "   ")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Equal(t, domain.MsgEmptyText, results[0].Error)
}

func TestAssistant_LowConfidenceGated(t *testing.T) {
	t.Parallel()

	source := &stubIntent{interp: &domain.Interpretation{
		Confidence: 0.4,
		ToolCalls: []domain.ToolCall{
			{Name: domain.ToolCreateList, Arguments: map[string]any{"list_name": "קניות"}},
		},
	}}
	assistant, f := newAssistant(t, source)

	results, err := assistant.HandleMessage(context.Background(), owner, "משהו מעורפל")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Equal(t, domain.MsgLowConfidence, results[0].Error)

	// Nothing was executed.
	summaries, err := f.lists.Summaries(context.Background(), owner)
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestAssistant_DeterministicSkipsConfidenceGate(t *testing.T) {
	t.Parallel()

	source := &stubIntent{interp: &domain.Interpretation{
		Confidence:    0.0,
		Deterministic: true,
		ToolCalls: []domain.ToolCall{
			{Name: domain.ToolCreateList, Arguments: map[string]any{"list_name": "קניות"}},
		},
	}}
	assistant, _ := newAssistant(t, source)

	results, err := assistant.HandleMessage(context.Background(), owner, "תפתח רשימת קניות")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Success)
}

func TestAssistant_NoToolCalls(t *testing.T) {
	t.Parallel()

	source := &stubIntent{interp: &domain.Interpretation{Confidence: 0.9}}
	assistant, _ := newAssistant(t, source)

	results, err := assistant.HandleMessage(context.Background(), owner, "מה שלומך")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Equal(t, domain.MsgNoToolCalls, results[0].Error)
}

func TestAssistant_UpstreamFailureBecomesResult(t *testing.T) {
	t.Parallel()

	source := &stubIntent{err: domain.Upstream(domain.MsgUpstreamRateLimited, domain.SuggestWaitAndRetry)}
	assistant, _ := newAssistant(t, source)

	results, err := assistant.HandleMessage(context.Background(), owner, "תוסיף חלב")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Equal(t, domain.MsgUpstreamRateLimited, results[0].Error)
	require.Contains(t, results[0].Suggestions, domain.SuggestWaitAndRetry)
}
