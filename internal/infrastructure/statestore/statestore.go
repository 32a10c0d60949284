// internal/infrastructure/statestore/statestore.go
package statestore

import (
	"context"
	"time"
)

// Store holds session-scoped UI state (drawer open flag, option-pill
// selections, bundle selections, toast flash) as JSON values with a
// per-key expiration. Values are replaced wholesale on every write.
type Store interface {
	// GetJSON loads the value at key into dest. The second return is
	// false when the key does not exist or has expired.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)

	// SetJSON stores value at key, replacing any previous value and
	// resetting the expiration. A zero ttl means no expiration.
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
