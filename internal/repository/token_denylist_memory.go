package repository

import (
	"context"
	"sync"
	"time"
)

type memoryTokenDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewMemoryTokenDenylist() TokenDenylist {
	return &memoryTokenDenylist{
		entries: make(map[string]time.Time),
	}
}

func (d *memoryTokenDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[jti] = time.Now().Add(ttl)
	return nil
}

func (d *memoryTokenDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	expiresAt, ok := d.entries[jti]
	d.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		d.mu.Lock()
		delete(d.entries, jti)
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}
