// Package intent adapts an OpenAI-style chat-completions API into the
// IntentSource port. The HTTP call runs through the instrumented platform
// client (retry with exponential backoff, circuit breaker, rate limiting);
// upstream failures are translated into the error taxonomy with distinct
// user-facing messages for rate limiting, timeouts, and auth problems.
//
// A deterministic Mock source backs development and tests without network
// access; its output bypasses the confidence gate.
package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/platform/config"
	"github.com/baskit-app/baskit/internal/platform/httpclient"
	"github.com/baskit-app/baskit/internal/ports"
)

// Compile-time check that Client implements ports.IntentSource.
var _ ports.IntentSource = (*Client)(nil)

// Client calls the chat-completions endpoint with the tool schema and turns
// the model's tool calls into an Interpretation.
type Client struct {
	http        *httpclient.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// New creates a Client. The httpclient carries the retry, circuit-breaker,
// and rate-limit policy; this type only speaks the wire format.
func New(httpClient *httpclient.Client, cfg *config.IntentConfig, logger *slog.Logger) *Client {
	return &Client{
		http:        httpClient,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Interpret implements ports.IntentSource. Confidence is derived from the
// sampling temperature: the hotter the sampling, the less the output is
// trusted.
func (c *Client) Interpret(ctx context.Context, text string) (*domain.Interpretation, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Tools:       toolDefinitions,
		ToolChoice:  "auto",
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	url := c.http.BaseURL() + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		if resp != nil {
			c.closeBody(ctx, resp)
			c.logger.ErrorContext(ctx, "intent call exhausted retries",
				slog.String("operation", "Interpret"),
				slog.Int("status", resp.StatusCode),
			)
			return nil, translateStatus(resp.StatusCode)
		}
		c.logger.ErrorContext(ctx, "intent call failed",
			slog.String("operation", "Interpret"),
			slog.Any("error", err),
		)
		return nil, translateTransportError(err)
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "intent call returned unexpected status",
			slog.String("operation", "Interpret"),
			slog.Int("status", resp.StatusCode),
		)
		return nil, translateStatus(resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode intent response",
			slog.String("operation", "Interpret"),
			slog.Any("error", err),
		)
		return nil, domain.Validation(domain.MsgNoToolCalls, domain.SuggestRephrase)
	}

	calls := c.parseToolCalls(ctx, &decoded)

	interp := &domain.Interpretation{
		ToolCalls:  calls,
		Confidence: 1.0 - c.temperature*0.5,
	}

	c.logger.InfoContext(ctx, "intent call succeeded",
		slog.String("operation", "Interpret"),
		slog.Int("tool_calls", len(interp.ToolCalls)),
		slog.Float64("confidence", interp.Confidence),
	)
	return interp, nil
}

// parseToolCalls extracts valid function calls, skipping entries whose
// argument payload is not valid JSON rather than failing the whole batch.
func (c *Client) parseToolCalls(ctx context.Context, decoded *chatResponse) []domain.ToolCall {
	if len(decoded.Choices) == 0 {
		return nil
	}

	var calls []domain.ToolCall
	for _, tc := range decoded.Choices[0].Message.ToolCalls {
		if tc.Type != "function" {
			continue
		}

		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				c.logger.WarnContext(ctx, "skipping tool call with malformed arguments",
					slog.String("operation", "Interpret"),
					slog.String("tool", tc.Function.Name),
					slog.Any("error", err),
				)
				continue
			}
		}

		calls = append(calls, domain.ToolCall{
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return calls
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
