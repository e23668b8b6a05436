// Package metadata is the client's small key/value table. The session store
// keeps its durable credential slot here.
package metadata

import (
	"context"
)

// Repository is a string-keyed blob store.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
