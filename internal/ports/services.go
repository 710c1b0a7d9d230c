package ports

import (
	"context"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/groclist"
)

// Assistant is the inbound port for the message flow: interpret an
// utterance, gate on confidence, dispatch the resulting tool calls and
// collect one Result per call, stopping at the first failure.
type Assistant interface {
	HandleMessage(ctx context.Context, ownerID int64, text string) ([]domain.Result, error)
}

// Dispatcher executes already-interpreted tool calls against the store.
// Exposed as a port so handlers can offer a direct tool endpoint that
// bypasses the language model.
type Dispatcher interface {
	Execute(ctx context.Context, ownerID int64, call domain.ToolCall) domain.Result
	ExecuteBatch(ctx context.Context, ownerID int64, calls []domain.ToolCall) []domain.Result
}

// ListReader serves the read-only list views used by the HTTP surface.
type ListReader interface {
	Summaries(ctx context.Context, ownerID int64) ([]groclist.Summary, error)
	Contents(ctx context.Context, ownerID int64, name string, includeBought bool) (*groclist.Contents, error)
}

// ListManager exposes the list operations that have no tool in the dispatch
// table and are reachable over HTTP only.
type ListManager interface {
	Restore(ctx context.Context, ownerID int64, name string) (*groclist.List, error)
	Rename(ctx context.Context, ownerID int64, name, newName string) (*groclist.List, error)
	Default(ctx context.Context, ownerID int64) (*groclist.List, error)
}
