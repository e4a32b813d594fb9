package database

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// LoadJSON decodes the value under key into dst. It reports false when the key
// is missing or its value does not parse. A parse failure is logged and the
// caller must fall back to its default instead of using dst. Only store
// failures are returned as errors.
func LoadJSON(ctx context.Context, s Store, key string, dst any, log *zap.Logger) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return decode(data, key, dst, log), nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}

// UpdateJSON is the typed form of Store.Update. fn receives the decoded value
// (the zero value when missing or corrupt) and returns the value to store, or
// ErrUnchanged to skip the write.
func UpdateJSON[T any](ctx context.Context, s Store, key string, log *zap.Logger, fn func(current T) (T, error)) error {
	return s.Update(ctx, key, func(raw []byte) ([]byte, error) {
		var current T
		if raw != nil {
			if !decode(raw, key, &current, log) {
				current = *new(T)
			}
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}

func decode(data []byte, key string, dst any, log *zap.Logger) bool {
	if err := json.Unmarshal(data, dst); err != nil {
		if log != nil {
			log.Warn("Discarding corrupt stored value", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}
