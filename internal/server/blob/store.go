// Package blob provides optional object storage for encrypted file
// envelopes. When a store is configured, large file envelopes live as
// objects and the database row keeps only the storage key.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/mkraev/lockbox/internal/common"
)

// Store is the object storage contract the vault service depends on.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// NewStorageKey returns a date-partitioned random object key, e.g.
// "items/2026/8/29/<32 hex chars>".
func NewStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("items/%d/%d/%d/%s", d.Year(), int(d.Month()), d.Day(), common.MakeRandHexString(16))
}
