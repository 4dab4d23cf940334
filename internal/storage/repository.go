package storage

import (
	"context"
	"errors"
)

var ErrInvalidKey = errors.New("storage: invalid key")

// KV is the persistence collaborator. Each entity type lives under its own
// key; writes are last-write-wins and never atomic across keys.
type KV interface {
	// Load returns ok=false when the key has never been saved.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func validKey(key string) bool {
	if key == "" || len(key) > 64 {
		return false
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
