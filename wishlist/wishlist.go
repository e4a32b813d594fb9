package wishlist

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"sneaker-storefront/catalog"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
)

const (
	ItemsKey       = "wishlistItems"
	UpdatedChannel = "wishlistUpdated"
)

// Ledger is one session's wishlist, a set of product ids kept in insertion
// order.
type Ledger struct {
	store   database.Store
	catalog *catalog.Catalog
	log     *zap.Logger
}

func NewLedger(store database.Store, cat *catalog.Catalog, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{store: store, catalog: cat, log: log}
}

// Toggle adds productID when absent and removes it when present. It reports
// whether the product is in the wishlist afterwards.
func (l *Ledger) Toggle(ctx context.Context, productID int) (bool, error) {
	if _, ok := l.catalog.Product(productID); !ok {
		return false, apperrors.ErrProductNotFound
	}

	var added bool
	err := database.UpdateJSON(ctx, l.store, ItemsKey, l.log, func(ids []int) ([]int, error) {
		ids = dedupe(ids)
		if i := slices.Index(ids, productID); i >= 0 {
			added = false
			return slices.Delete(ids, i, i+1), nil
		}
		added = true
		return append(ids, productID), nil
	})
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStore, err)
	}
	l.notify(ctx)
	return added, nil
}

// Remove takes productID out of the wishlist if it is there.
func (l *Ledger) Remove(ctx context.Context, productID int) error {
	changed := false
	err := database.UpdateJSON(ctx, l.store, ItemsKey, l.log, func(ids []int) ([]int, error) {
		changed = false
		ids = dedupe(ids)
		i := slices.Index(ids, productID)
		if i < 0 {
			return nil, database.ErrUnchanged
		}
		changed = true
		return slices.Delete(ids, i, i+1), nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if changed {
		l.notify(ctx)
	}
	return nil
}

// Clear empties the wishlist.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.Delete(ctx, ItemsKey); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	l.notify(ctx)
	return nil
}

// IDs returns the wishlisted product ids. A missing or corrupt value reads as
// an empty wishlist.
func (l *Ledger) IDs(ctx context.Context) ([]int, error) {
	var ids []int
	ok, err := database.LoadJSON(ctx, l.store, ItemsKey, &ids, l.log)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !ok {
		return []int{}, nil
	}
	return dedupe(ids), nil
}

func (l *Ledger) Contains(ctx context.Context, productID int) (bool, error) {
	ids, err := l.IDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, productID), nil
}

// Products returns the wishlisted products in catalog order. Ids that are no
// longer sold are skipped.
func (l *Ledger) Products(ctx context.Context) ([]models.Product, error) {
	ids, err := l.IDs(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]models.Product, 0, len(ids))
	for _, p := range l.catalog.Products() {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (l *Ledger) notify(ctx context.Context) {
	if err := l.store.Publish(ctx, UpdatedChannel); err != nil {
		l.log.Warn("Failed to publish wishlist update", zap.Error(err))
	}
}

// dedupe keeps the first occurrence of each positive id.
func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
