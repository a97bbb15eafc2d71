// Package kv holds the string key-value backends records are persisted in.
package kv

import "context"

// Store is the narrow storage contract the record layer relies on.
// GetString reports a missing key with ok=false and a nil error.
type Store interface {
	GetString(ctx context.Context, key string) (value string, ok bool, err error)
	SetString(ctx context.Context, key, value string) error
	RemoveKey(ctx context.Context, key string) error
}
