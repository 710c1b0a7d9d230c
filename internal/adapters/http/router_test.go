package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/baskit-app/baskit/internal/adapters/http"
	"github.com/baskit-app/baskit/internal/adapters/http/handlers"
	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/groclist"
	"github.com/baskit-app/baskit/internal/ports"
)

type stubAssistant struct {
	results []domain.Result
	err     error
}

func (s *stubAssistant) HandleMessage(context.Context, int64, string) ([]domain.Result, error) {
	return s.results, s.err
}

type stubDispatcher struct {
	result domain.Result
}

func (s *stubDispatcher) Execute(context.Context, int64, domain.ToolCall) domain.Result {
	return s.result
}

func (s *stubDispatcher) ExecuteBatch(_ context.Context, _ int64, calls []domain.ToolCall) []domain.Result {
	out := make([]domain.Result, len(calls))
	for i := range calls {
		out[i] = s.result
	}
	return out
}

type stubListService struct {
	summaries []groclist.Summary
	contents  *groclist.Contents
	list      *groclist.List
	err       error
}

func (s *stubListService) Summaries(context.Context, int64) ([]groclist.Summary, error) {
	return s.summaries, s.err
}

func (s *stubListService) Contents(context.Context, int64, string, bool) (*groclist.Contents, error) {
	return s.contents, s.err
}

func (s *stubListService) Restore(context.Context, int64, string) (*groclist.List, error) {
	return s.list, s.err
}

func (s *stubListService) Rename(context.Context, int64, string, string) (*groclist.List, error) {
	return s.list, s.err
}

func (s *stubListService) Default(context.Context, int64) (*groclist.List, error) {
	return s.list, s.err
}

type stubRegistry struct {
	checks map[string]error
}

func (s *stubRegistry) Register(ports.HealthChecker) {}

func (s *stubRegistry) CheckAll(context.Context) map[string]error {
	return s.checks
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ah := handlers.NewAssistantHandler(
		&stubAssistant{results: []domain.Result{}},
		&stubDispatcher{result: domain.OK(nil, "")},
		discardLogger(),
	)
	lh := handlers.NewListHandler(
		&stubListService{summaries: []groclist.Summary{}},
		&stubListService{},
		discardLogger(),
	)
	hh := handlers.NewHealthHandler(&stubRegistry{checks: map[string]error{}})

	return adapthttp.NewRouter(ah, lh, hh)
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodPost, "/api/v1/assistant/messages"},
		{http.MethodPost, "/api/v1/tools/execute"},
		{http.MethodGet, "/api/v1/lists"},
		{http.MethodGet, "/api/v1/lists/default"},
		{http.MethodGet, "/api/v1/lists/{name}"},
		{http.MethodPost, "/api/v1/lists/{name}/restore"},
		{http.MethodPost, "/api/v1/lists/{name}/rename"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	ah := handlers.NewAssistantHandler(&stubAssistant{}, &stubDispatcher{}, discardLogger())
	lh := handlers.NewListHandler(&stubListService{}, &stubListService{}, discardLogger())
	hh := handlers.NewHealthHandler(&stubRegistry{checks: map[string]error{}})

	router := adapthttp.NewRouter(ah, lh, hh, testMW)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_IntegrationListSummaries(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	req.Header.Set("X-Owner-ID", "1")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_MissingOwnerHeader(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lists", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "X-Owner-ID")
}

func TestRouter_AssistantMessage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"text": "תוסיף חלב"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/messages", body)
	req.Header.Set("X-Owner-ID", "7")
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "results")
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/lists", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
