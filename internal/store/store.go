// Package store provides the string-keyed JSON value store that backs all
// persistent state. Values are whole JSON documents written with
// last-write-wins semantics; there are no transactions across keys.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written
// or has been deleted.
var ErrKeyNotFound = errors.New("key not found")

// KeyValue is an opaque persistent mapping from string keys to
// JSON-serializable values.
type KeyValue interface {
	// Get unmarshals the value stored under key into dest.
	Get(ctx context.Context, key string, dest any) error
	// Set marshals value and stores it under key, replacing any
	// previous value.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
