package orders

import (
	"context"

	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Locker is the mutual-exclusion scope wrapped around checkout.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LockProvider builds a fresh lock for the given scope, typically
// "checkout:<user id>".
type LockProvider func(scope string) (Locker, error)
