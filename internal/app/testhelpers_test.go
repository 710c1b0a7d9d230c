package app_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baskit-app/baskit/internal/adapters/store/sqlite"
	"github.com/baskit-app/baskit/internal/app"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newTestStore opens an ephemeral in-memory database with migrations applied.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

type fixture struct {
	store      *sqlite.Store
	items      *app.ItemService
	lists      *app.ListService
	dispatcher *app.Dispatcher
}

// newFixture wires the mutation engine over a fresh in-memory store.
func newFixture(t *testing.T, policy app.Policy) *fixture {
	t.Helper()

	store := newTestStore(t)
	logger := discardLogger()

	items := app.NewItemService(store, policy, logger)
	lists := app.NewListService(store, policy, logger)
	dispatcher, err := app.NewDispatcher(items, lists, policy, nil, logger)
	require.NoError(t, err)

	return &fixture{
		store:      store,
		items:      items,
		lists:      lists,
		dispatcher: dispatcher,
	}
}
