package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/hebrew"
	"github.com/baskit-app/baskit/internal/domain/item"
	"github.com/baskit-app/baskit/internal/ports"
)

// ItemService implements the item side of the mutation engine. Each
// operation resolves its target inside the same transaction that performs
// the write and returns the affected item together with the user-facing
// Hebrew message describing what happened.
type ItemService struct {
	store  ports.Store
	policy Policy
	logger *slog.Logger
}

// NewItemService creates an ItemService bound to the store and policy snapshot.
func NewItemService(store ports.Store, policy Policy, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

// Add inserts an item into the named (or default) list. When the list
// already holds an item with the same normalized name and duplicates are
// not allowed, the call either merges by addition (new quantity = existing
// + requested) or fails as a duplicate, per policy.
func (s *ItemService) Add(ctx context.Context, ownerID int64, name string, quantity int, unit, listName string) (*item.Item, string, error) {
	text, err := hebrew.NewWithRatio(name, s.policy.MinHebrewRatio)
	if err != nil {
		return nil, "", err
	}
	qty, err := item.NewQuantity(quantity, s.policy.unitOrDefault(unit))
	if err != nil {
		return nil, "", err
	}

	s.logger.InfoContext(ctx, "adding item",
		slog.String("operation", "AddItem"),
		slog.Int64("owner_id", ownerID),
		slog.Int("quantity", qty.Value),
	)

	var added *item.Item
	var message string
	err = s.store.WithinTx(ctx, func(tx ports.Tx) error {
		list, err := resolveList(ctx, tx, ownerID, listName)
		if err != nil {
			return err
		}

		if !s.policy.AllowDuplicateItems {
			existing, err := tx.Items().FindInList(ctx, list.ID, text.Normalized())
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if err == nil {
				if !s.policy.AutoMergeSimilar {
					return domain.Duplicate(
						domain.MsgItemAlreadyInList(text.String(), list.Name),
						domain.SuggestUpdateExisting,
						domain.SuggestUseOtherName,
					)
				}

				merged, err := item.NewQuantity(existing.Quantity+qty.Value, qty.Unit)
				if err != nil {
					return err
				}
				if err := tx.Items().UpdateQuantity(ctx, existing.ID, merged.Value, merged.Unit); err != nil {
					return err
				}
				existing.Quantity = merged.Value
				existing.Unit = merged.Unit
				added = existing
				message = domain.MsgMergedQuantity(existing.Name, merged.Value)
				return nil
			}
		}

		it := &item.Item{
			ListID:         list.ID,
			Name:           text.String(),
			NormalizedName: text.Normalized(),
			Quantity:       qty.Value,
			Unit:           qty.Unit,
		}
		if err := tx.Items().Create(ctx, it); err != nil {
			return err
		}

		added = it
		message = domain.MsgAddedItem(it.Name, it.Quantity, it.Unit, list.Name)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to add item",
			slog.String("operation", "AddItem"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, "", err
	}

	return added, message, nil
}

// UpdateQuantity sets an item's quantity, keeping its current unit when
// none is supplied.
func (s *ItemService) UpdateQuantity(ctx context.Context, ownerID int64, name string, quantity int, unit, listName string) (*item.Item, string, error) {
	s.logger.InfoContext(ctx, "updating quantity",
		slog.String("operation", "UpdateQuantity"),
		slog.Int64("owner_id", ownerID),
		slog.Int("quantity", quantity),
	)

	var updated *item.Item
	var message string
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		loc, err := resolveItem(ctx, tx, ownerID, name, listName, false)
		if err != nil {
			return err
		}
		it, err := tx.Items().GetByID(ctx, loc.ItemID)
		if err != nil {
			return err
		}

		if unit == "" {
			unit = it.Unit
		}
		qty, err := item.NewQuantity(quantity, unit)
		if err != nil {
			return err
		}

		if err := tx.Items().UpdateQuantity(ctx, it.ID, qty.Value, qty.Unit); err != nil {
			return err
		}

		it.Quantity = qty.Value
		it.Unit = qty.Unit
		updated = it
		message = domain.MsgQuantitySet(it.Name, it.Quantity)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update quantity",
			slog.String("operation", "UpdateQuantity"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, "", err
	}

	return updated, message, nil
}

// Increment raises an item's quantity by step. Exceeding the upper bound
// fails as a normal quantity validation error.
func (s *ItemService) Increment(ctx context.Context, ownerID int64, name string, step int, listName string) (*item.Item, string, error) {
	if step < 1 {
		return nil, "", domain.Validation(domain.MsgQuantityPositive)
	}

	s.logger.InfoContext(ctx, "incrementing quantity",
		slog.String("operation", "IncrementQuantity"),
		slog.Int64("owner_id", ownerID),
		slog.Int("step", step),
	)

	var updated *item.Item
	var message string
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		loc, err := resolveItem(ctx, tx, ownerID, name, listName, false)
		if err != nil {
			return err
		}
		it, err := tx.Items().GetByID(ctx, loc.ItemID)
		if err != nil {
			return err
		}

		qty, err := item.NewQuantity(it.Quantity+step, it.Unit)
		if err != nil {
			return err
		}
		if err := tx.Items().UpdateQuantity(ctx, it.ID, qty.Value, qty.Unit); err != nil {
			return err
		}

		it.Quantity = qty.Value
		updated = it
		message = domain.MsgQuantitySet(it.Name, it.Quantity)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to increment quantity",
			slog.String("operation", "IncrementQuantity"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, "", err
	}

	return updated, message, nil
}

// Reduce lowers an item's quantity by step. Reaching zero or below removes
// the item and reports success with an informational message; that is a
// policy outcome, not a failure.
func (s *ItemService) Reduce(ctx context.Context, ownerID int64, name string, step int, listName string) (*item.Item, string, error) {
	if step < 1 {
		return nil, "", domain.Validation(domain.MsgQuantityPositive)
	}

	s.logger.InfoContext(ctx, "reducing quantity",
		slog.String("operation", "ReduceQuantity"),
		slog.Int64("owner_id", ownerID),
		slog.Int("step", step),
	)

	var updated *item.Item
	var message string
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		loc, err := resolveItem(ctx, tx, ownerID, name, listName, false)
		if err != nil {
			return err
		}
		it, err := tx.Items().GetByID(ctx, loc.ItemID)
		if err != nil {
			return err
		}

		remaining := it.Quantity - step
		if remaining <= 0 {
			if err := tx.Items().Delete(ctx, it.ID); err != nil {
				return err
			}
			message = domain.MsgQuantityRemoved
			return nil
		}

		if err := tx.Items().UpdateQuantity(ctx, it.ID, remaining, it.Unit); err != nil {
			return err
		}
		it.Quantity = remaining
		updated = it
		message = domain.MsgQuantitySet(it.Name, it.Quantity)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to reduce quantity",
			slog.String("operation", "ReduceQuantity"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, "", err
	}

	return updated, message, nil
}

// MarkBought sets or clears the bought flag. The operation is idempotent:
// repeating it with the same value succeeds without touching bought_at.
func (s *ItemService) MarkBought(ctx context.Context, ownerID int64, name string, bought bool, listName string) (*item.Item, string, error) {
	s.logger.InfoContext(ctx, "marking item bought",
		slog.String("operation", "MarkBought"),
		slog.Int64("owner_id", ownerID),
		slog.Bool("bought", bought),
	)

	var updated *item.Item
	var message string
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		loc, err := resolveItem(ctx, tx, ownerID, name, listName, true)
		if err != nil {
			return err
		}
		it, err := tx.Items().GetByID(ctx, loc.ItemID)
		if err != nil {
			return err
		}

		if it.IsBought != bought {
			var at *time.Time
			if bought {
				now := time.Now().UTC()
				at = &now
			}
			if err := tx.Items().SetBought(ctx, it.ID, bought, at); err != nil {
				return err
			}
			it.IsBought = bought
			it.BoughtAt = at
		}

		updated = it
		if bought {
			message = domain.MsgMarkedBought(it.Name)
		} else {
			message = domain.MsgMarkedUnbought(it.Name)
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to mark item bought",
			slog.String("operation", "MarkBought"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, "", err
	}

	return updated, message, nil
}

// Remove hard-deletes an item row. The remove-marks-bought policy, when
// enabled, is applied by the dispatcher before this method is reached.
func (s *ItemService) Remove(ctx context.Context, ownerID int64, name, listName string) (string, error) {
	s.logger.InfoContext(ctx, "removing item",
		slog.String("operation", "RemoveItem"),
		slog.Int64("owner_id", ownerID),
	)

	var message string
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		loc, err := resolveItem(ctx, tx, ownerID, name, listName, true)
		if err != nil {
			return err
		}
		it, err := tx.Items().GetByID(ctx, loc.ItemID)
		if err != nil {
			return err
		}

		if err := tx.Items().Delete(ctx, it.ID); err != nil {
			return err
		}
		message = domain.MsgItemRemoved(it.Name)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to remove item",
			slog.String("operation", "RemoveItem"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return "", err
	}

	return message, nil
}
