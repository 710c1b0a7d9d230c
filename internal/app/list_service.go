package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/baskit-app/baskit/internal/app/fanout"
	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/groclist"
	"github.com/baskit-app/baskit/internal/domain/hebrew"
	"github.com/baskit-app/baskit/internal/ports"
)

// Compile-time checks that ListService implements the list-facing ports.
var (
	_ ports.ListReader  = (*ListService)(nil)
	_ ports.ListManager = (*ListService)(nil)
)

// ListService implements the list side of the mutation engine: create,
// delete, restore, rename, default selection, and the read views. Every
// mutation runs inside one store transaction and re-validates ownership and
// soft-delete state there, so checks done during resolution cannot be raced
// by a concurrent call.
type ListService struct {
	store  ports.Store
	policy Policy
	logger *slog.Logger
}

// NewListService creates a ListService bound to the store and policy snapshot.
func NewListService(store ports.Store, policy Policy, logger *slog.Logger) *ListService {
	return &ListService{
		store:  store,
		policy: policy,
		logger: logger,
	}
}

// Create validates the name and inserts a new active list. A name held by
// an active list fails as a duplicate; a name held by a soft-deleted list
// fails distinctly, suggesting restore or another name. The first active
// list an owner gains becomes their default.
func (s *ListService) Create(ctx context.Context, ownerID int64, name string) (*groclist.List, error) {
	text, err := hebrew.NewWithRatio(name, s.policy.MinHebrewRatio)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "creating list",
		slog.String("operation", "CreateList"),
		slog.Int64("owner_id", ownerID),
	)

	var created *groclist.List
	err = s.store.WithinTx(ctx, func(tx ports.Tx) error {
		if err := tx.Owners().Ensure(ctx, ownerID); err != nil {
			return err
		}

		if _, err := tx.Lists().GetActiveByName(ctx, ownerID, text.String()); err == nil {
			return domain.Duplicate(domain.MsgDuplicateName(text.String()), domain.SuggestPickOtherName)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if _, err := tx.Lists().GetDeletedByName(ctx, ownerID, text.String()); err == nil {
			return domain.Duplicate(
				domain.MsgPreviouslyDeleted(text.String()),
				domain.SuggestRestoreDeleted,
				domain.SuggestPickOtherName,
			)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		active, err := tx.Lists().ListActive(ctx, ownerID)
		if err != nil {
			return err
		}

		list := &groclist.List{Name: text.String(), OwnerID: ownerID}
		if err := tx.Lists().Create(ctx, list); err != nil {
			// Two concurrent creates for the same owner/name race past the
			// lookup above; the data-layer uniqueness violation degrades to
			// the same duplicate-name outcome.
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Duplicate(domain.MsgDuplicateName(text.String()), domain.SuggestPickOtherName)
			}
			return err
		}

		if len(active) == 0 {
			if err := tx.Owners().SetDefaultList(ctx, ownerID, &list.ID); err != nil {
				return err
			}
		}

		created = list
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create list",
			slog.String("operation", "CreateList"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// Delete removes a list: soft delete stamps deleted_at/deleted_by, hard
// delete drops the row and its items. When the deleted list was the default,
// the default is repointed to the remaining active list with the lowest id,
// or cleared when none remain. An empty name targets the default list.
func (s *ListService) Delete(ctx context.Context, ownerID int64, name string, hard bool) (*groclist.List, error) {
	s.logger.InfoContext(ctx, "deleting list",
		slog.String("operation", "DeleteList"),
		slog.Int64("owner_id", ownerID),
		slog.Bool("hard", hard),
	)

	var deleted *groclist.List
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		list, err := resolveList(ctx, tx, ownerID, name)
		if err != nil {
			return err
		}

		if hard {
			if err := tx.Lists().Delete(ctx, list.ID); err != nil {
				return err
			}
		} else {
			now := time.Now().UTC()
			by := ownerID
			if err := tx.Lists().MarkDeleted(ctx, list.ID, now, by); err != nil {
				return err
			}
			list.IsDeleted = true
			list.DeletedAt = &now
			list.DeletedBy = &by
		}

		defID, err := tx.Owners().DefaultListID(ctx, ownerID)
		if err != nil {
			return err
		}
		if defID != nil && *defID == list.ID {
			remaining, err := tx.Lists().ListActive(ctx, ownerID)
			if err != nil {
				return err
			}
			var next *int64
			if len(remaining) > 0 {
				next = &remaining[0].ID
			}
			if err := tx.Owners().SetDefaultList(ctx, ownerID, next); err != nil {
				return err
			}
		}

		deleted = list
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete list",
			slog.String("operation", "DeleteList"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return deleted, nil
}

// Restore clears the delete stamp of a soft-deleted list. It conflicts when
// an active list with the same name exists, and re-promotes the restored
// list to default under the same zero-active-lists rule as Create.
func (s *ListService) Restore(ctx context.Context, ownerID int64, name string) (*groclist.List, error) {
	s.logger.InfoContext(ctx, "restoring list",
		slog.String("operation", "RestoreList"),
		slog.Int64("owner_id", ownerID),
	)

	var restored *groclist.List
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		list, err := tx.Lists().GetDeletedByName(ctx, ownerID, name)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if _, aerr := tx.Lists().GetActiveByName(ctx, ownerID, name); aerr == nil {
				return domain.State(domain.MsgListNotDeleted)
			}
			return domain.NotFound(domain.MsgListMissing(name), domain.SuggestOtherName)
		}

		if _, err := tx.Lists().GetActiveByName(ctx, ownerID, name); err == nil {
			return domain.Duplicate(
				domain.MsgActiveNameExists(name),
				domain.SuggestRenameThenRestore,
				domain.SuggestDeleteActiveList,
			)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		active, err := tx.Lists().ListActive(ctx, ownerID)
		if err != nil {
			return err
		}

		if err := tx.Lists().ClearDeleted(ctx, list.ID); err != nil {
			return err
		}
		if len(active) == 0 {
			if err := tx.Owners().SetDefaultList(ctx, ownerID, &list.ID); err != nil {
				return err
			}
		}

		list.IsDeleted = false
		list.DeletedAt = nil
		list.DeletedBy = nil
		restored = list
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to restore list",
			slog.String("operation", "RestoreList"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return restored, nil
}

// Rename changes an active list's name after validating the new name and
// checking the same uniqueness rules as Create.
func (s *ListService) Rename(ctx context.Context, ownerID int64, name, newName string) (*groclist.List, error) {
	text, err := hebrew.NewWithRatio(newName, s.policy.MinHebrewRatio)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "renaming list",
		slog.String("operation", "RenameList"),
		slog.Int64("owner_id", ownerID),
	)

	var renamed *groclist.List
	err = s.store.WithinTx(ctx, func(tx ports.Tx) error {
		list, err := resolveList(ctx, tx, ownerID, name)
		if err != nil {
			return err
		}
		if list.Name == text.String() {
			renamed = list
			return nil
		}

		if _, err := tx.Lists().GetActiveByName(ctx, ownerID, text.String()); err == nil {
			return domain.Duplicate(domain.MsgDuplicateName(text.String()), domain.SuggestPickOtherName)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if _, err := tx.Lists().GetDeletedByName(ctx, ownerID, text.String()); err == nil {
			return domain.Duplicate(
				domain.MsgPreviouslyDeleted(text.String()),
				domain.SuggestRestoreDeleted,
				domain.SuggestPickOtherName,
			)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := tx.Lists().Rename(ctx, list.ID, text.String()); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Duplicate(domain.MsgDuplicateName(text.String()), domain.SuggestPickOtherName)
			}
			return err
		}

		list.Name = text.String()
		renamed = list
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to rename list",
			slog.String("operation", "RenameList"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return renamed, nil
}

// SetDefault points the owner's default at the named active list.
func (s *ListService) SetDefault(ctx context.Context, ownerID int64, name string) (*groclist.List, error) {
	s.logger.InfoContext(ctx, "setting default list",
		slog.String("operation", "SetDefaultList"),
		slog.Int64("owner_id", ownerID),
	)

	var chosen *groclist.List
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		if err := tx.Owners().Ensure(ctx, ownerID); err != nil {
			return err
		}

		list, err := resolveList(ctx, tx, ownerID, name)
		if err != nil {
			return err
		}

		if err := tx.Owners().SetDefaultList(ctx, ownerID, &list.ID); err != nil {
			return err
		}

		chosen = list
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to set default list",
			slog.String("operation", "SetDefaultList"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return chosen, nil
}

// Default returns the owner's default list, or nil when none is configured.
func (s *ListService) Default(ctx context.Context, ownerID int64) (*groclist.List, error) {
	var list *groclist.List
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		defID, err := tx.Owners().DefaultListID(ctx, ownerID)
		if err != nil {
			return err
		}
		if defID == nil {
			return nil
		}
		list, err = tx.Lists().GetByID(ctx, *defID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Contents returns one list's read model. An empty name targets the default
// list. Soft-deleted targets fail with a state error suggesting restore.
func (s *ListService) Contents(ctx context.Context, ownerID int64, name string, includeBought bool) (*groclist.Contents, error) {
	var contents *groclist.Contents
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		list, err := resolveList(ctx, tx, ownerID, name)
		if err != nil {
			return err
		}

		items, err := tx.Items().ListByList(ctx, list.ID, includeBought)
		if err != nil {
			return err
		}
		defID, err := tx.Owners().DefaultListID(ctx, ownerID)
		if err != nil {
			return err
		}

		contents = &groclist.Contents{
			ID:        list.ID,
			Name:      list.Name,
			IsDefault: defID != nil && *defID == list.ID,
			Items:     items,
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read list contents",
			slog.String("operation", "ShowList"),
			slog.Int64("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return contents, nil
}

// Summaries returns aggregate counts for all of the owner's active lists.
// Per-list counts are computed with bounded fan-out, each in its own read
// transaction; the summaries come back in list-id order.
func (s *ListService) Summaries(ctx context.Context, ownerID int64) ([]groclist.Summary, error) {
	var lists []groclist.List
	var defID *int64
	err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
		var err error
		lists, err = tx.Lists().ListActive(ctx, ownerID)
		if err != nil {
			return err
		}
		defID, err = tx.Owners().DefaultListID(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	results := fanout.Run(ctx, s.policy.SummaryWorkers, lists, func(ctx context.Context, l groclist.List) (groclist.Summary, error) {
		var total, bought int
		err := s.store.WithinTx(ctx, func(tx ports.Tx) error {
			var err error
			total, bought, err = tx.Items().CountByList(ctx, l.ID)
			return err
		})
		if err != nil {
			return groclist.Summary{}, err
		}
		return groclist.Summary{
			ID:           l.ID,
			Name:         l.Name,
			TotalItems:   total,
			BoughtItems:  bought,
			PendingItems: total - bought,
			IsDefault:    defID != nil && *defID == l.ID,
		}, nil
	})

	summaries := make([]groclist.Summary, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			s.logger.ErrorContext(ctx, "failed to summarize lists",
				slog.String("operation", "ListAllUserLists"),
				slog.Int64("owner_id", ownerID),
				slog.Any("error", r.Err),
			)
			return nil, r.Err
		}
		summaries = append(summaries, r.Value)
	}
	return summaries, nil
}
