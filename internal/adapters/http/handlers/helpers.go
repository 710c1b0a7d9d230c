package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baskit-app/baskit/internal/adapters/http/dto"
	"github.com/baskit-app/baskit/internal/domain"
)

// ownerIDHeader carries the caller's owner identity. Every API route
// requires it; authentication itself is out of scope here.
const ownerIDHeader = "X-Owner-ID"

// ownerID extracts the owner identity from the request header. On a
// missing or malformed header it writes a 400 error response and returns
// false.
func ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get(ownerIDHeader)
	if raw == "" {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{ownerIDHeader: "header is required"},
		})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{ownerIDHeader: "must be a positive integer"},
		})
		return 0, false
	}
	return id, true
}

// listName extracts the list name path parameter from the chi URL params.
func listName(r *http.Request) string {
	return chi.URLParam(r, "name")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
