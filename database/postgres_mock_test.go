package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return &PostgresStore{db: gormDB, hub: newHub()}, mock
}

func kvRows(key string, value []byte) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"key", "value", "updated_at"}).AddRow(key, value, time.Now())
}

const (
	insertKV = `INSERT INTO "storefront_kv"`
	selectKV = `SELECT * FROM "storefront_kv"`
	deleteKV = `DELETE FROM "storefront_kv"`
	lockKV   = `FOR UPDATE`
)

func TestPostgresStore_GetNotFound(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectKV)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, err := store.Get(context.Background(), "session:a:cartItems")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectKV)).
		WillReturnRows(kvRows("k", []byte(`[1]`)))

	got, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateUnchangedRollsBackClaim(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertKV)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(lockKV)).WillReturnRows(kvRows("ghost", []byte{}))
	mock.ExpectRollback()

	var seen []byte
	called := false
	err := store.Update(context.Background(), "ghost", func(current []byte) ([]byte, error) {
		called, seen = true, current
		return nil, ErrUnchanged
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Nil(t, seen, "a claimed placeholder reads as missing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateNilDeletes(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertKV)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(lockKV)).WillReturnRows(kvRows("k", []byte(`[1]`)))
	mock.ExpectExec(regexp.QuoteMeta(deleteKV)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Update(context.Background(), "k", func(current []byte) ([]byte, error) {
		assert.Equal(t, `[1]`, string(current))
		return nil, nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateUpserts(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertKV)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(lockKV)).WillReturnRows(kvRows("k", []byte(`1`)))
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("key") DO UPDATE`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Update(context.Background(), "k", func(current []byte) ([]byte, error) {
		return append(current, '0'), nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateCallbackErrorRollsBack(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertKV)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(lockKV)).WillReturnRows(kvRows("k", []byte{}))
	mock.ExpectRollback()

	boom := assert.AnError
	err := store.Update(context.Background(), "k", func([]byte) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
