package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/platform/telemetry"
	"github.com/baskit-app/baskit/internal/ports"
)

// Compile-time check that Dispatcher implements ports.Dispatcher.
var _ ports.Dispatcher = (*Dispatcher)(nil)

// handler executes one tool call and returns the operation payload plus the
// user-facing success message.
type handler func(ctx context.Context, ownerID int64, args arguments) (any, string, error)

// Dispatcher maps the closed set of tool names to mutation-engine calls.
// Each call runs under its own timeout with panic recovery; a batch executes
// strictly in order and stops at the first failure, since later calls may
// depend on the side effects of earlier ones.
type Dispatcher struct {
	items    *ItemService
	lists    *ListService
	policy   Policy
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	handlers map[string]handler
}

// NewDispatcher builds the dispatch table and verifies it is exhaustive over
// the supported tool names. A missing handler is a programming error caught
// at construction, not at call time. metrics may be nil when telemetry is
// disabled.
func NewDispatcher(items *ItemService, lists *ListService, policy Policy, metrics *telemetry.Metrics, logger *slog.Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		items:   items,
		lists:   lists,
		policy:  policy,
		logger:  logger,
		metrics: metrics,
	}
	d.handlers = map[string]handler{
		domain.ToolAddItem:           d.addItem,
		domain.ToolUpdateQuantity:    d.updateQuantity,
		domain.ToolIncrementQuantity: d.incrementQuantity,
		domain.ToolReduceQuantity:    d.reduceQuantity,
		domain.ToolRemoveItem:        d.removeItem,
		domain.ToolMarkBought:        d.markBought,
		domain.ToolCreateList:        d.createList,
		domain.ToolDeleteList:        d.deleteList,
		domain.ToolShowList:          d.showList,
		domain.ToolSetDefaultList:    d.setDefaultList,
	}

	for _, name := range domain.AllTools {
		if _, ok := d.handlers[name]; !ok {
			return nil, fmt.Errorf("dispatch table has no handler for tool %q", name)
		}
	}
	return d, nil
}

// Execute runs one tool call and always returns a Result; failures of any
// kind, including panics and timeouts, are degraded to failed Results and
// never propagate to the caller.
func (d *Dispatcher) Execute(ctx context.Context, ownerID int64, call domain.ToolCall) domain.Result {
	h, ok := d.handlers[call.Name]
	if !ok {
		d.logger.WarnContext(ctx, "unsupported tool requested",
			slog.String("operation", "Execute"),
			slog.String("tool", call.Name),
		)
		d.countToolCall(ctx, call.Name, false)
		return domain.Fail(domain.ToolFailure(domain.MsgUnsupportedTool(call.Name), domain.SuggestRephrase))
	}

	ctx, cancel := context.WithTimeout(ctx, d.policy.ToolTimeout)
	defer cancel()

	type outcome struct {
		data    any
		message string
		err     error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				d.logger.ErrorContext(ctx, "tool handler panicked",
					slog.String("operation", "Execute"),
					slog.String("tool", call.Name),
					slog.Any("panic", rec),
				)
				done <- outcome{err: domain.ToolFailure(domain.MsgUnknownError, domain.SuggestRetry)}
			}
		}()
		data, message, err := h(ctx, ownerID, arguments(call.Arguments))
		done <- outcome{data: data, message: message, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			d.logger.ErrorContext(ctx, "tool call failed",
				slog.String("operation", "Execute"),
				slog.String("tool", call.Name),
				slog.Any("error", out.err),
			)
			d.countToolCall(ctx, call.Name, false)
			return domain.Fail(out.err)
		}
		d.countToolCall(ctx, call.Name, true)
		return domain.OK(out.data, out.message)
	case <-ctx.Done():
		d.logger.ErrorContext(ctx, "tool call timed out",
			slog.String("operation", "Execute"),
			slog.String("tool", call.Name),
		)
		d.countToolCall(ctx, call.Name, false)
		return domain.Fail(domain.ToolFailure(
			domain.MsgToolTimeout,
			domain.SuggestRetry,
			domain.SuggestSplitRequest,
		))
	}
}

// countToolCall records one dispatched call. Safe to call with nil metrics.
func (d *Dispatcher) countToolCall(ctx context.Context, tool string, success bool) {
	if d.metrics == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	d.metrics.ToolCallTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrTool.String(tool),
		telemetry.AttrResult.String(result),
	))
}

// ExecuteBatch runs tool calls strictly in order and stops at the first
// failing call, returning the results accumulated so far. Predictability
// over partial completion: the remaining calls are never attempted.
func (d *Dispatcher) ExecuteBatch(ctx context.Context, ownerID int64, calls []domain.ToolCall) []domain.Result {
	results := make([]domain.Result, 0, len(calls))
	for _, call := range calls {
		result := d.Execute(ctx, ownerID, call)
		results = append(results, result)
		if !result.Success {
			break
		}
	}
	return results
}

func (d *Dispatcher) addItem(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("item_name")
	if err != nil {
		return nil, "", err
	}
	qty, err := args.integer("quantity", 1)
	if err != nil {
		return nil, "", err
	}
	it, msg, err := d.items.Add(ctx, ownerID, name, qty, args.text("unit"), args.text("list_name"))
	if err != nil {
		return nil, "", err
	}
	return it, msg, nil
}

func (d *Dispatcher) updateQuantity(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("item_name")
	if err != nil {
		return nil, "", err
	}
	qty, err := args.requiredInteger("quantity")
	if err != nil {
		return nil, "", err
	}
	it, msg, err := d.items.UpdateQuantity(ctx, ownerID, name, qty, args.text("unit"), args.text("list_name"))
	if err != nil {
		return nil, "", err
	}
	return it, msg, nil
}

func (d *Dispatcher) incrementQuantity(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("item_name")
	if err != nil {
		return nil, "", err
	}
	step, err := args.integer("step", 1)
	if err != nil {
		return nil, "", err
	}
	it, msg, err := d.items.Increment(ctx, ownerID, name, step, args.text("list_name"))
	if err != nil {
		return nil, "", err
	}
	return it, msg, nil
}

func (d *Dispatcher) reduceQuantity(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("item_name")
	if err != nil {
		return nil, "", err
	}
	step, err := args.integer("step", 1)
	if err != nil {
		return nil, "", err
	}
	it, msg, err := d.items.Reduce(ctx, ownerID, name, step, args.text("list_name"))
	if err != nil {
		return nil, "", err
	}
	return it, msg, nil
}

// removeItem applies the remove policy: when remove_marks_bought is set the
// item is marked bought instead of being deleted.
func (d *Dispatcher) removeItem(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("item_name")
	if err != nil {
		return nil, "", err
	}
	listName := args.text("list_name")

	if d.policy.RemoveMarksBought {
		it, msg, err := d.items.MarkBought(ctx, ownerID, name, true, listName)
		if err != nil {
			return nil, "", err
		}
		return it, msg, nil
	}

	msg, err := d.items.Remove(ctx, ownerID, name, listName)
	if err != nil {
		return nil, "", err
	}
	return nil, msg, nil
}

func (d *Dispatcher) markBought(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("item_name")
	if err != nil {
		return nil, "", err
	}
	bought, err := args.boolean("is_bought", true)
	if err != nil {
		return nil, "", err
	}
	it, msg, err := d.items.MarkBought(ctx, ownerID, name, bought, args.text("list_name"))
	if err != nil {
		return nil, "", err
	}
	return it, msg, nil
}

func (d *Dispatcher) createList(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("list_name")
	if err != nil {
		return nil, "", err
	}
	list, err := d.lists.Create(ctx, ownerID, name)
	if err != nil {
		return nil, "", err
	}
	return list, domain.MsgListCreated(list.Name), nil
}

func (d *Dispatcher) deleteList(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("list_name")
	if err != nil {
		return nil, "", err
	}
	hard, err := args.boolean("hard_delete", false)
	if err != nil {
		return nil, "", err
	}
	list, err := d.lists.Delete(ctx, ownerID, name, hard)
	if err != nil {
		return nil, "", err
	}
	return list, domain.MsgListRemoved(list.Name), nil
}

func (d *Dispatcher) showList(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	includeBought, err := args.boolean("include_bought", true)
	if err != nil {
		return nil, "", err
	}
	contents, err := d.lists.Contents(ctx, ownerID, args.text("list_name"), includeBought)
	if err != nil {
		return nil, "", err
	}
	return contents, "", nil
}

func (d *Dispatcher) setDefaultList(ctx context.Context, ownerID int64, args arguments) (any, string, error) {
	name, err := args.requiredText("list_name")
	if err != nil {
		return nil, "", err
	}
	list, err := d.lists.SetDefault(ctx, ownerID, name)
	if err != nil {
		return nil, "", err
	}
	return list, domain.MsgDefaultListSet(list.Name), nil
}

// arguments wraps a tool call's decoded JSON object with typed, defaulted
// accessors. Numbers arrive as float64 per encoding/json; string-encoded
// numbers and booleans are accepted because language models emit them.
type arguments map[string]any

func (a arguments) text(key string) string {
	v, ok := a[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func (a arguments) requiredText(key string) (string, error) {
	s := a.text(key)
	if s == "" {
		return "", domain.Validation(domain.MsgMissingArgument(key))
	}
	return s, nil
}

func (a arguments) integer(key string, def int) (int, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, domain.Validation(domain.MsgBadArgument(key))
		}
		return int(n), nil
	case int:
		return n, nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, domain.Validation(domain.MsgBadArgument(key))
		}
		return parsed, nil
	default:
		return 0, domain.Validation(domain.MsgBadArgument(key))
	}
}

func (a arguments) requiredInteger(key string) (int, error) {
	if _, ok := a[key]; !ok {
		return 0, domain.Validation(domain.MsgMissingArgument(key))
	}
	return a.integer(key, 0)
}

func (a arguments) boolean(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return def, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, domain.Validation(domain.MsgBadArgument(key))
		}
		return parsed, nil
	default:
		return false, domain.Validation(domain.MsgBadArgument(key))
	}
}
