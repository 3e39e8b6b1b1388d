package repository

import (
	"context"
	"time"
)

// TokenDenylist tracks revoked token JTIs until their natural expiry.
// Implementations: Redis (production) or in-memory (local dev, single instance).
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
