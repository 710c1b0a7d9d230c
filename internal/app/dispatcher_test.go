package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baskit-app/baskit/internal/app"
	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/groclist"
	"github.com/baskit-app/baskit/internal/domain/item"
)

func call(name string, args map[string]any) domain.ToolCall {
	return domain.ToolCall{Name: name, Arguments: args}
}

func TestDispatcher_UnknownTool(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())

	result := f.dispatcher.Execute(context.Background(), owner, call("explode_list", nil))
	require.False(t, result.Success)
	require.Equal(t, domain.MsgUnsupportedTool("explode_list"), result.Error)
	require.Contains(t, result.Suggestions, domain.SuggestRephrase)
}

func TestDispatcher_AddItem(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{
		"list_name": "קניות",
	}))
	require.True(t, result.Success)

	result = f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{
		"item_name": "חלב",
		"quantity":  float64(2),
		"unit":      "ליטר",
	}))
	require.True(t, result.Success)

	it, ok := result.Data.(*item.Item)
	require.True(t, ok)
	require.Equal(t, "חלב", it.Name)
	require.Equal(t, 2, it.Quantity)
}

func TestDispatcher_AddItem_QuantityDefaultsToOne(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{
		"item_name": "חלב",
	}))
	require.True(t, result.Success)
	require.Equal(t, 1, result.Data.(*item.Item).Quantity)
}

func TestDispatcher_AddItem_MissingName(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())

	result := f.dispatcher.Execute(context.Background(), owner, call(domain.ToolAddItem, map[string]any{
		"quantity": float64(2),
	}))
	require.False(t, result.Success)
	require.Equal(t, domain.MsgMissingArgument("item_name"), result.Error)
}

func TestDispatcher_AddItem_StringQuantityAccepted(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{
		"item_name": "חלב",
		"quantity":  "3",
	}))
	require.True(t, result.Success)
	require.Equal(t, 3, result.Data.(*item.Item).Quantity)
}

func TestDispatcher_AddItem_FractionalQuantityRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{
		"item_name": "חלב",
		"quantity":  2.5,
	}))
	require.False(t, result.Success)
	require.Equal(t, domain.MsgBadArgument("quantity"), result.Error)
}

func TestDispatcher_UpdateQuantity_RequiresQuantity(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())

	result := f.dispatcher.Execute(context.Background(), owner, call(domain.ToolUpdateQuantity, map[string]any{
		"item_name": "חלב",
	}))
	require.False(t, result.Success)
	require.Equal(t, domain.MsgMissingArgument("quantity"), result.Error)
}

func TestDispatcher_RemoveItem_MarksBoughtByDefault(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))
	f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{"item_name": "חלב"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolRemoveItem, map[string]any{
		"item_name": "חלב",
	}))
	require.True(t, result.Success)

	// The item is still present, marked as bought.
	contents, err := f.lists.Contents(ctx, owner, "", true)
	require.NoError(t, err)
	require.Len(t, contents.Items, 1)
	require.True(t, contents.Items[0].IsBought)
}

func TestDispatcher_RemoveItem_DeletesWhenPolicyOff(t *testing.T) {
	t.Parallel()

	policy := app.DefaultPolicy()
	policy.RemoveMarksBought = false
	f := newFixture(t, policy)
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))
	f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{"item_name": "חלב"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolRemoveItem, map[string]any{
		"item_name": "חלב",
	}))
	require.True(t, result.Success)

	contents, err := f.lists.Contents(ctx, owner, "", true)
	require.NoError(t, err)
	require.Empty(t, contents.Items)
}

func TestDispatcher_MarkBought_StringBooleanAccepted(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))
	f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{"item_name": "חלב"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolMarkBought, map[string]any{
		"item_name": "חלב",
		"is_bought": "true",
	}))
	require.True(t, result.Success)
	require.True(t, result.Data.(*item.Item).IsBought)
}

func TestDispatcher_ShowList(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))
	f.dispatcher.Execute(ctx, owner, call(domain.ToolAddItem, map[string]any{"item_name": "חלב"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolShowList, nil))
	require.True(t, result.Success)

	contents, ok := result.Data.(*groclist.Contents)
	require.True(t, ok)
	require.Equal(t, "קניות", contents.Name)
	require.Len(t, contents.Items, 1)
}

func TestDispatcher_DeleteList_SetDefaultList(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())
	ctx := context.Background()

	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}))
	f.dispatcher.Execute(ctx, owner, call(domain.ToolCreateList, map[string]any{"list_name": "שבת"}))

	result := f.dispatcher.Execute(ctx, owner, call(domain.ToolSetDefaultList, map[string]any{
		"list_name": "שבת",
	}))
	require.True(t, result.Success)

	result = f.dispatcher.Execute(ctx, owner, call(domain.ToolDeleteList, map[string]any{
		"list_name": "שבת",
	}))
	require.True(t, result.Success)
	require.True(t, result.Data.(*groclist.List).IsDeleted)

	def, err := f.lists.Default(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, "קניות", def.Name)
}

func TestDispatcher_Timeout(t *testing.T) {
	t.Parallel()

	policy := app.DefaultPolicy()
	policy.ToolTimeout = time.Nanosecond
	f := newFixture(t, policy)

	result := f.dispatcher.Execute(context.Background(), owner, call(domain.ToolShowList, nil))
	require.False(t, result.Success)
	require.NotEmpty(t, result.Suggestions)
}

func TestDispatcher_ExecuteBatch_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())

	results := f.dispatcher.ExecuteBatch(context.Background(), owner, []domain.ToolCall{
		call(domain.ToolCreateList, map[string]any{"list_name": "קניות"}),
		call(domain.ToolAddItem, map[string]any{"item_name": "חלב"}),
		call(domain.ToolAddItem, map[string]any{"quantity": float64(1)}),
		call(domain.ToolAddItem, map[string]any{"item_name": "לחם"}),
	})

	// The failing third call ends the batch; the fourth is never attempted.
	require.Len(t, results, 3)
	require.True(t, results[0].Success)
	require.True(t, results[1].Success)
	require.False(t, results[2].Success)
}

func TestDispatcher_ExecuteBatch_Empty(t *testing.T) {
	t.Parallel()

	f := newFixture(t, app.DefaultPolicy())

	results := f.dispatcher.ExecuteBatch(context.Background(), owner, nil)
	require.Empty(t, results)
}
