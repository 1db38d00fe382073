// Package kv is the small key/value store used for terminal state that is
// not worth a table: device id, sync cursors, catalog_refreshed_at.
package kv

import "context"

// Repository is the local key/value store.
type Repository interface {
	// Get returns the stored value or common.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
