package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baskit-app/baskit/internal/adapters/http/dto"
	"github.com/baskit-app/baskit/internal/ports"
)

// ListHandler handles the list read views and the list operations that
// have no tool in the dispatch table.
type ListHandler struct {
	reader  ports.ListReader
	manager ports.ListManager
	logger  *slog.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(reader ports.ListReader, manager ports.ListManager, logger *slog.Logger) *ListHandler {
	return &ListHandler{reader: reader, manager: manager, logger: logger}
}

// ListSummaries handles GET /api/v1/lists. It returns one summary per
// active list with item and bought counts.
func (h *ListHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	summaries, err := h.reader.Summaries(r.Context(), owner)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list summaries failed",
			slog.String("operation", "ListSummaries"),
			slog.Any("error", err))
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListsResponse{Lists: summaries})
}

// GetList handles GET /api/v1/lists/{name}. Bought items are included by
// default; pass include_bought=false to hide them.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	includeBought := r.URL.Query().Get("include_bought") != "false"

	contents, err := h.reader.Contents(r.Context(), owner, listName(r), includeBought)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contents)
}

// RestoreList handles POST /api/v1/lists/{name}/restore. It brings a
// soft-deleted list back, together with its items.
func (h *ListHandler) RestoreList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	list, err := h.manager.Restore(r.Context(), owner, listName(r))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// RenameList handles POST /api/v1/lists/{name}/rename.
func (h *ListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.RenameListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list, err := h.manager.Rename(r.Context(), owner, listName(r), req.NewName)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// GetDefaultList handles GET /api/v1/lists/default. The list field is null
// when the owner has no default configured.
func (h *ListHandler) GetDefaultList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	list, err := h.manager.Default(r.Context(), owner)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DefaultListResponse{List: list})
}
