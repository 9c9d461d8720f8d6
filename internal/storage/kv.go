// Package storage provides the persistent key-value backends the record
// store is built on.
package storage

import "context"

// KV is a flat string key-value store. Implementations must treat a missing
// key as (value "", ok false) rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
