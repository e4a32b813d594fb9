package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/models"
)

func newTestDirectory(t *testing.T) (*Directory, database.Store) {
	t.Helper()
	store := database.Scoped(database.NewMemoryStore(), "test")
	return NewDirectory(store, zap.NewNop()), store
}

func TestRegister_SignsIn(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	session, err := d.Register(ctx, "Anna", "anna@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.Session{Name: "Anna", Email: "anna@example.com"}, session)

	current, ok, err := d.Current(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, session, current)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	_, err := d.Register(ctx, "Anna", "anna@example.com", "secret")
	require.NoError(t, err)
	_, err = d.Register(ctx, "Other", "anna@example.com", "x")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)

	users, err := d.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	_, err := d.Register(ctx, "", "anna@example.com", "secret")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = d.Register(ctx, "Anna", "not-an-email", "secret")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = d.Register(ctx, "Anna", "anna@example.com", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, ok, _ := d.Current(ctx)
	assert.False(t, ok)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDirectory(t)
	_, err := d.Register(ctx, "Anna", "anna@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, d.Logout(ctx))

	_, err = d.Login(ctx, "anna@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = d.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, ok, _ := d.Current(ctx)
	assert.False(t, ok)

	session, err := d.Login(ctx, "anna@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Anna", session.Name)
}

func TestLogout_Idempotent(t *testing.T) {
	d, _ := newTestDirectory(t)
	assert.NoError(t, d.Logout(context.Background()))
	assert.NoError(t, d.Logout(context.Background()))
}

func TestCorruptRecordsFailOpen(t *testing.T) {
	ctx := context.Background()
	d, store := newTestDirectory(t)
	require.NoError(t, store.Set(ctx, UsersKey, []byte(`[{"name":"A","email":"a@example.com","password":"p"},{"email":"broken"}]`)))
	require.NoError(t, store.Set(ctx, SessionKey, []byte(`{"name":""}`)))

	_, ok, err := d.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	users, err := d.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, store.Set(ctx, UsersKey, []byte(`garbage`)))
	_, err = d.Register(ctx, "B", "b@example.com", "p")
	require.NoError(t, err)
	users, _ = d.Accounts(ctx)
	assert.Len(t, users, 1)
}

func TestLogin_TrimsEmailOnly(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDirectory(t)
	_, err := d.Register(ctx, "Anna", " anna@example.com ", "secret")
	require.NoError(t, err)

	session, err := d.Login(ctx, "  anna@example.com\t", "secret")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", session.Email)

	_, err = d.Login(ctx, "anna@example.com", " secret ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = d.Login(ctx, "ANNA@example.com", "secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
