// Package handlers implements the HTTP handler layer, translating between
// HTTP requests and the application's inbound ports.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baskit-app/baskit/internal/adapters/http/dto"
	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/ports"
)

// AssistantHandler handles the natural-language message endpoint and the
// direct tool execution endpoint.
type AssistantHandler struct {
	assistant  ports.Assistant
	dispatcher ports.Dispatcher
	logger     *slog.Logger
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistant ports.Assistant, dispatcher ports.Dispatcher, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, dispatcher: dispatcher, logger: logger}
}

// HandleMessage handles POST /api/v1/assistant/messages. The body carries a
// free-text utterance; the response carries one Result per executed tool
// call. Tool failures are reported inside the Results with a 200 status;
// only infrastructure failures surface as HTTP errors.
func (h *AssistantHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.MessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	results, err := h.assistant.HandleMessage(r.Context(), owner, req.Text)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "message handling failed",
			slog.String("operation", "HandleMessage"),
			slog.Any("error", err))
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Results: results})
}

// ExecuteTool handles POST /api/v1/tools/execute. It runs a single named
// tool call against the dispatcher, bypassing interpretation. The outcome
// is always a Result; unknown tool names come back as failed Results.
func (h *AssistantHandler) ExecuteTool(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.ToolCallRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result := h.dispatcher.Execute(r.Context(), owner, domain.ToolCall{
		Name:      req.Name,
		Arguments: req.Arguments,
	})

	writeJSON(w, http.StatusOK, result)
}
