package cart

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by a Repository when nothing is stored under a key.
var ErrSlotNotFound = errors.New("cart slot not found")

// Repository is a durable key to string slot. It has no transactions;
// concurrent writers race with last-write-wins semantics.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
