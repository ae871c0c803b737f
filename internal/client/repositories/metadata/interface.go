// Package metadata stores small key/value records in the local database:
// the bearer token and the last username.
package metadata

import "context"

// Repository is a byte-valued key/value table.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes every pair or none of them.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
}
