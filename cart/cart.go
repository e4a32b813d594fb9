package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"sneaker-storefront/catalog"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
)

// Persisted keys and the change channel.
const (
	ItemsKey       = "cartItems"
	PromoKey       = "promoCode"
	UpdatedChannel = "cartUpdated"
)

// Ledger is one session's shopping cart. It keeps no state of its own: every
// call reads the store, and every mutation rewrites the whole line list and
// publishes UpdatedChannel.
type Ledger struct {
	store   database.Store
	catalog *catalog.Catalog
	pricing Pricing
	log     *zap.Logger
}

// NewLedger returns a cart over store, which should already be scoped to the
// session.
func NewLedger(store database.Store, cat *catalog.Catalog, pricing Pricing, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{store: store, catalog: cat, pricing: pricing, log: log}
}

// Add puts one unit of a product in the cart. When the product already has a
// line its quantity is incremented and size is ignored; size is not part of
// a line's identity. An empty size picks the product's default size.
func (l *Ledger) Add(ctx context.Context, productID int, size string) error {
	p, ok := l.catalog.Product(productID)
	if !ok {
		return apperrors.ErrProductNotFound
	}
	if size == "" {
		size = p.DefaultSize()
	} else if !p.HasSize(size) {
		return apperrors.Wrap(apperrors.ErrValidation, fmt.Errorf("size %s is not available for product %d", size, productID))
	}

	return l.mutate(ctx, func(lines []models.CartLine) ([]models.CartLine, error) {
		if i := indexOf(lines, productID); i >= 0 {
			lines[i].Quantity++
			return lines, nil
		}
		return append(lines, models.CartLine{ProductID: productID, Quantity: 1, Size: size}), nil
	})
}

// SetQuantity sets a line's quantity. Quantities below 1 and products not in
// the cart are ignored.
func (l *Ledger) SetQuantity(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		return nil
	}
	return l.mutate(ctx, func(lines []models.CartLine) ([]models.CartLine, error) {
		i := indexOf(lines, productID)
		if i < 0 || lines[i].Quantity == quantity {
			return nil, database.ErrUnchanged
		}
		lines[i].Quantity = quantity
		return lines, nil
	})
}

// Remove deletes a product's line.
func (l *Ledger) Remove(ctx context.Context, productID int) error {
	return l.mutate(ctx, func(lines []models.CartLine) ([]models.CartLine, error) {
		i := indexOf(lines, productID)
		if i < 0 {
			return nil, database.ErrUnchanged
		}
		return slices.Delete(lines, i, i+1), nil
	})
}

// Clear empties the cart and drops any applied promo code.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.Delete(ctx, ItemsKey); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := l.store.Delete(ctx, PromoKey); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	l.notify(ctx)
	return nil
}

// Settle takes the ordered units out of the cart in one atomic update and
// drops the promo code. Units added after the order was priced stay in the
// cart; lines whose product has left the catalog are removed.
func (l *Ledger) Settle(ctx context.Context, ordered []models.CartLine) error {
	taken := make(map[int]int, len(ordered))
	for _, line := range ordered {
		taken[line.ProductID] += line.Quantity
	}

	err := l.mutate(ctx, func(lines []models.CartLine) ([]models.CartLine, error) {
		kept := make([]models.CartLine, 0, len(lines))
		for _, line := range lines {
			if _, ok := l.catalog.Product(line.ProductID); !ok {
				continue
			}
			line.Quantity -= taken[line.ProductID]
			if line.Quantity > 0 {
				kept = append(kept, line)
			}
		}
		if len(kept) == len(lines) && len(taken) == 0 {
			return nil, database.ErrUnchanged
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	return l.RemovePromo(ctx)
}

// Lines returns the persisted lines. A missing or corrupt value reads as an
// empty cart.
func (l *Ledger) Lines(ctx context.Context) ([]models.CartLine, error) {
	var lines []models.CartLine
	ok, err := database.LoadJSON(ctx, l.store, ItemsKey, &lines, l.log)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !ok {
		return []models.CartLine{}, nil
	}
	return l.sanitize(lines), nil
}

// Count is the number of units in the cart, the value of the header badge.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	lines, err := l.Lines(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, line := range lines {
		n += line.Quantity
	}
	return n, nil
}

// ApplyPromo records a promo code. Codes are compared case-insensitively.
func (l *Ledger) ApplyPromo(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" || !strings.EqualFold(code, l.pricing.PromoCode) {
		return apperrors.ErrInvalidPromoCode
	}
	if err := database.SaveJSON(ctx, l.store, PromoKey, l.pricing.PromoCode); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	l.notify(ctx)
	return nil
}

// RemovePromo drops the applied promo code, if any.
func (l *Ledger) RemovePromo(ctx context.Context) error {
	if err := l.store.Delete(ctx, PromoKey); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	l.notify(ctx)
	return nil
}

// Totals derives the cart summary from the persisted lines and promo code.
func (l *Ledger) Totals(ctx context.Context) (models.Totals, error) {
	lines, err := l.Lines(ctx)
	if err != nil {
		return models.Totals{}, err
	}
	promo, err := l.promoApplied(ctx)
	if err != nil {
		return models.Totals{}, err
	}
	return Compute(lines, l.catalog, l.pricing, promo), nil
}

func (l *Ledger) promoApplied(ctx context.Context) (bool, error) {
	var code string
	ok, err := database.LoadJSON(ctx, l.store, PromoKey, &code, l.log)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return ok && strings.EqualFold(code, l.pricing.PromoCode), nil
}

// mutate applies fn to the sanitized lines and stores the result atomically.
// fn returns database.ErrUnchanged to leave the cart as it is.
func (l *Ledger) mutate(ctx context.Context, fn func([]models.CartLine) ([]models.CartLine, error)) error {
	changed := false
	err := database.UpdateJSON(ctx, l.store, ItemsKey, l.log, func(lines []models.CartLine) ([]models.CartLine, error) {
		changed = false
		next, err := fn(l.sanitize(lines))
		if err != nil {
			return nil, err
		}
		changed = true
		if next == nil {
			next = []models.CartLine{}
		}
		return next, nil
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if changed {
		l.notify(ctx)
	}
	return nil
}

// sanitize drops lines that fail validation and repeated product ids, keeping
// the first line for each product.
func (l *Ledger) sanitize(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	seen := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		if err := models.Validate(line); err != nil {
			l.log.Warn("Dropping invalid cart line", zap.Int("product_id", line.ProductID), zap.Error(err))
			continue
		}
		if _, dup := seen[line.ProductID]; dup {
			continue
		}
		seen[line.ProductID] = struct{}{}
		out = append(out, line)
	}
	return out
}

func (l *Ledger) notify(ctx context.Context) {
	if err := l.store.Publish(ctx, UpdatedChannel); err != nil {
		l.log.Warn("Failed to publish cart update", zap.Error(err))
	}
}

func indexOf(lines []models.CartLine, productID int) int {
	return slices.IndexFunc(lines, func(line models.CartLine) bool { return line.ProductID == productID })
}
