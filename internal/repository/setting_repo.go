package repository

import (
	"context"

	"routeview/backend/internal/model"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	// Set inserts or overwrites the value for a key.
	Set(ctx context.Context, key, value string) error
	// SetMany upserts all given key-value pairs atomically; either every key
	// is written or none is.
	SetMany(ctx context.Context, values map[string]string) error
	// SetIfAbsent inserts the default value only when the key does not exist,
	// making startup seeding idempotent.
	SetIfAbsent(ctx context.Context, key, value string) error
}
