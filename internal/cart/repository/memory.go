package repository

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-storefront/internal/cart"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{slots: make(map[string]string)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.slots[key]
	if !ok {
		return "", cart.ErrSlotNotFound
	}
	return v, nil
}

func (r *MemoryRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = value
	return nil
}

func (r *MemoryRepository) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, key)
	return nil
}
