// Package dto defines request/response shapes for the HTTP API and the
// mapping from the domain error taxonomy to RFC 9457 problem details.
package dto

import (
	"strings"

	"github.com/baskit-app/baskit/internal/domain"
)

// MessageRequest is the body of the assistant message endpoint.
type MessageRequest struct {
	Text string `json:"text"`
}

// Validate checks the message payload.
func (m *MessageRequest) Validate() error {
	if strings.TrimSpace(m.Text) == "" {
		return &domain.ValidationError{
			Fields: map[string]string{"text": "must not be empty"},
		}
	}
	return nil
}

// ToolCallRequest is the body of the direct tool execution endpoint,
// bypassing the language model.
type ToolCallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Validate checks the tool call payload. The tool name only has to be
// present; unknown names are the dispatcher's verdict, reported as a
// failed Result rather than an HTTP error.
func (t *ToolCallRequest) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &domain.ValidationError{
			Fields: map[string]string{"name": "must not be empty"},
		}
	}
	return nil
}

// RenameListRequest is the body of the list rename endpoint.
type RenameListRequest struct {
	NewName string `json:"new_name"`
}

// Validate checks the rename payload.
func (rr *RenameListRequest) Validate() error {
	if strings.TrimSpace(rr.NewName) == "" {
		return &domain.ValidationError{
			Fields: map[string]string{"new_name": "must not be empty"},
		}
	}
	return nil
}
