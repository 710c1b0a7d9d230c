package dto

import (
	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/groclist"
)

// MessageResponse carries one Result per executed tool call, in execution
// order. A failed call is the last entry; the calls after it were never
// attempted.
type MessageResponse struct {
	Results []domain.Result `json:"results"`
}

// ListsResponse carries per-list summaries for the list index endpoint.
type ListsResponse struct {
	Lists []groclist.Summary `json:"lists"`
}

// DefaultListResponse carries the owner's default list, or null when no
// default is configured.
type DefaultListResponse struct {
	List *groclist.List `json:"list"`
}
