// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/groclist"
	"github.com/baskit-app/baskit/internal/domain/hebrew"
	"github.com/baskit-app/baskit/internal/domain/item"
	"github.com/baskit-app/baskit/internal/ports"
)

// resolveList turns an optional list name into a concrete active list owned
// by ownerID. It runs inside the caller's transaction so the state it checks
// is the state the mutation will see.
//
// With a name, the owner's active list with that exact name is returned; a
// soft-deleted list with the name yields a state error suggesting restore,
// and an absent one yields not-found suggesting creation. Without a name,
// the owner's default list is returned, failing with not-found when no
// default is configured.
func resolveList(ctx context.Context, tx ports.Tx, ownerID int64, name string) (*groclist.List, error) {
	if name == "" {
		defID, err := tx.Owners().DefaultListID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if defID == nil {
			return nil, domain.NotFound(domain.MsgNoDefaultList, domain.SuggestCreateList)
		}

		list, err := tx.Lists().GetByID(ctx, *defID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFound(domain.MsgNoDefaultList, domain.SuggestCreateList)
			}
			return nil, err
		}
		if list.OwnerID != ownerID {
			return nil, domain.Permission(domain.MsgNoPermission)
		}
		if !list.Active() {
			return nil, domain.State(domain.MsgListDeleted, domain.SuggestRestoreList)
		}
		return list, nil
	}

	list, err := tx.Lists().GetActiveByName(ctx, ownerID, name)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, derr := tx.Lists().GetDeletedByName(ctx, ownerID, name); derr == nil {
		return nil, domain.State(domain.MsgListDeleted, domain.SuggestRestoreList)
	}
	return nil, domain.NotFound(domain.MsgListMissing(name), domain.SuggestCreateList)
}

// resolveItem locates the single item the caller means by itemName across
// the owner's active lists, applying the ambiguity policy:
//
//   - zero matches: not-found, suggesting a different spelling (and, when
//     bought items were excluded, widening the search to include them);
//   - one match: returned as is;
//   - several matches, no list name: ambiguous, suggestions enumerating the
//     candidate list names so the caller can re-invoke with one;
//   - several matches, list name given: the match in that list, or
//     not-found when the named list holds none.
func resolveItem(ctx context.Context, tx ports.Tx, ownerID int64, itemName, listName string, includeBought bool) (*item.Location, error) {
	normalized := hebrew.Normalize(itemName)

	locations, err := tx.Items().FindLocations(ctx, ownerID, normalized, includeBought)
	if err != nil {
		return nil, err
	}

	if listName != "" {
		list, err := resolveList(ctx, tx, ownerID, listName)
		if err != nil {
			return nil, err
		}
		for i := range locations {
			if locations[i].ListID == list.ID {
				return &locations[i], nil
			}
		}
		return nil, domain.NotFound(
			domain.MsgItemMissingInList(itemName, list.Name),
			notFoundItemSuggestions(includeBought)...,
		)
	}

	switch len(locations) {
	case 0:
		return nil, domain.NotFound(domain.MsgItemNotFound, notFoundItemSuggestions(includeBought)...)
	case 1:
		return &locations[0], nil
	default:
		candidates := make([]string, 0, len(locations))
		for _, loc := range locations {
			candidates = append(candidates, loc.ListName)
		}
		return nil, domain.Ambiguous(domain.MsgAmbiguousItem(itemName), candidates...)
	}
}

func notFoundItemSuggestions(includeBought bool) []string {
	suggestions := []string{domain.SuggestOtherName}
	if !includeBought {
		suggestions = append(suggestions, domain.SuggestIncludeBought)
	}
	return suggestions
}
