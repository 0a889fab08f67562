// Package metadata persists small key/value records of the client's local
// state, partitioned by scope. The session layer uses one scope per API origin.
package metadata

import (
	"context"
)

// Repository is a scoped key/value store. Get returns (nil, nil) when the key
// is absent; Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
