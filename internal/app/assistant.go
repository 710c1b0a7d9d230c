package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/ports"
)

// Compile-time check that AssistantService implements ports.Assistant.
var _ ports.Assistant = (*AssistantService)(nil)

// AssistantService runs the message pipeline: interpret the utterance
// through the intent source, gate on confidence, then dispatch the tool
// calls in order. Expected failures at every stage become failed Results;
// the error return is reserved for infrastructure problems.
type AssistantService struct {
	intent     ports.IntentSource
	dispatcher ports.Dispatcher
	policy     Policy
	logger     *slog.Logger
}

// NewAssistantService creates an AssistantService.
func NewAssistantService(intent ports.IntentSource, dispatcher ports.Dispatcher, policy Policy, logger *slog.Logger) *AssistantService {
	return &AssistantService{
		intent:     intent,
		dispatcher: dispatcher,
		policy:     policy,
		logger:     logger,
	}
}

// HandleMessage processes one user utterance end to end and returns one
// Result per executed tool call. The confidence gate applies only to
// non-deterministic interpretations; a mock source's output is dispatched
// as is.
func (s *AssistantService) HandleMessage(ctx context.Context, ownerID int64, text string) ([]domain.Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []domain.Result{domain.Fail(domain.Validation(domain.MsgEmptyText))}, nil
	}

	s.logger.InfoContext(ctx, "handling message",
		slog.String("operation", "HandleMessage"),
		slog.Int64("owner_id", ownerID),
	)

	interp, err := s.intent.Interpret(ctx, trimmed)
	if err != nil {
		s.logger.ErrorContext(ctx, "intent source failed",
			slog.String("operation", "HandleMessage"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return []domain.Result{domain.Fail(err)}, nil
	}

	if !interp.Deterministic && interp.Confidence < s.policy.ConfidenceThreshold {
		s.logger.InfoContext(ctx, "interpretation below confidence threshold",
			slog.String("operation", "HandleMessage"),
			slog.Int64("owner_id", ownerID),
			slog.Float64("confidence", interp.Confidence),
		)
		return []domain.Result{domain.Fail(domain.Validation(domain.MsgLowConfidence, domain.SuggestRephrase))}, nil
	}

	if len(interp.ToolCalls) == 0 {
		return []domain.Result{domain.Fail(domain.Validation(domain.MsgNoToolCalls, domain.SuggestRephrase))}, nil
	}

	return s.dispatcher.ExecuteBatch(ctx, ownerID, interp.ToolCalls), nil
}
