package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Connect opens a gorm connection to Postgres.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// kvRecord is one row of the key-value table.
type kvRecord struct {
	Key       string    `gorm:"type:varchar(255);primaryKey"`
	Value     []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (kvRecord) TableName() string { return "storefront_kv" }

// PostgresStore keeps values in a single key-value table. Notifications fan
// out in-process only.
type PostgresStore struct {
	db  *gorm.DB
	hub *hub
}

// NewPostgresStore migrates the key-value table and returns the store.
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate storefront_kv: %w", err)
	}
	return &PostgresStore{db: db, hub: newHub()}, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(p.db.WithContext(ctx), key, value)
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).Where("key = ?", key).Delete(&kvRecord{}).Error
}

// Update locks the row for the duration of fn. A missing key is first claimed
// with an empty placeholder row so concurrent first writes serialize too; the
// placeholder never survives the transaction.
func (p *PostgresStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := kvRecord{Key: key, Value: []byte{}}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&claim).Error; err != nil {
			return err
		}

		var rec kvRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("key = ?", key).First(&rec).Error; err != nil {
			return err
		}
		var current []byte
		if len(rec.Value) > 0 {
			current = rec.Value
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return tx.Where("key = ?", key).Delete(&kvRecord{}).Error
		}
		return upsert(tx, key, next)
	})
	if errors.Is(err, ErrUnchanged) {
		return nil
	}
	return err
}

func (p *PostgresStore) Publish(_ context.Context, channel string) error {
	p.hub.publish(channel)
	return nil
}

func (p *PostgresStore) Subscribe(ctx context.Context, channels ...string) (*Subscription, error) {
	return p.hub.subscribe(ctx, channels), nil
}

func upsert(db *gorm.DB, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}
