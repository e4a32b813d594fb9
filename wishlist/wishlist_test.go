package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sneaker-storefront/catalog"
	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
)

func newTestLedger(t *testing.T) (*Ledger, database.Store) {
	t.Helper()
	store := database.Scoped(database.NewMemoryStore(), "test")
	return NewLedger(store, catalog.Default(), zap.NewNop()), store
}

func TestToggle_TwiceRestores(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	require.NoError(t, l.Clear(ctx))
	_, err := l.Toggle(ctx, 2)
	require.NoError(t, err)

	before, _ := l.IDs(ctx)

	added, err := l.Toggle(ctx, 5)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = l.Toggle(ctx, 5)
	require.NoError(t, err)
	assert.False(t, added)

	after, _ := l.IDs(ctx)
	assert.Equal(t, before, after)
}

func TestToggle_UnknownProduct(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.Toggle(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestContainsRemoveClear(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	for _, id := range []int{3, 1, 7} {
		_, err := l.Toggle(ctx, id)
		require.NoError(t, err)
	}

	ok, err := l.Contains(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, l.Remove(ctx, 1))
	require.NoError(t, l.Remove(ctx, 1))
	ids, _ := l.IDs(ctx)
	assert.Equal(t, []int{3, 7}, ids)

	require.NoError(t, l.Clear(ctx))
	ids, _ = l.IDs(ctx)
	assert.Empty(t, ids)
}

func TestIDs_DedupesPersistedValue(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	require.NoError(t, store.Set(ctx, ItemsKey, []byte(`[4,4,2,-1,4,2]`)))

	ids, err := l.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, ids)

	// toggling 4 removes it once and for all
	added, err := l.Toggle(ctx, 4)
	require.NoError(t, err)
	assert.False(t, added)
	ids, _ = l.IDs(ctx)
	assert.Equal(t, []int{2}, ids)
}

func TestIDs_CorruptValueReadsEmpty(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	require.NoError(t, store.Set(ctx, ItemsKey, []byte(`"oops"`)))

	ids, err := l.IDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProducts_SkipsDanglingIDs(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	require.NoError(t, store.Set(ctx, ItemsKey, []byte(`[8,99,1]`)))

	products, err := l.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 8, products[1].ID)
}

func TestProducts_CatalogOrder(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	for _, id := range []int{6, 2, 4} {
		_, err := l.Toggle(ctx, id)
		require.NoError(t, err)
	}

	products, err := l.Products(ctx)
	require.NoError(t, err)
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{2, 4, 6}, ids)

	stored, err := l.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 2, 4}, stored)
}

func TestToggle_PublishesUpdate(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	sub, err := store.Subscribe(ctx, UpdatedChannel)
	require.NoError(t, err)
	defer sub.Close()

	_, err = l.Toggle(ctx, 1)
	require.NoError(t, err)

	select {
	case n := <-sub.C:
		assert.Equal(t, UpdatedChannel, n.Channel)
	case <-time.After(time.Second):
		t.Fatal("no wishlist notification")
	}
}
