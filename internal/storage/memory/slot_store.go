// Package memory — хранилище слотов в памяти процесса (тесты, режим без БД).
package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
)

var _ ports.SlotStorage = (*SlotStore)(nil)

// SlotStore — map под RWMutex.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewSlotStore — пустое хранилище; seed копируется.
func NewSlotStore(seed map[string]string) *SlotStore {
	s := &SlotStore{slots: make(map[string]string, len(seed))}
	for k, v := range seed {
		s.slots[k] = v
	}
	return s
}

func (s *SlotStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if err := storage.CheckKey(key); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *SlotStore) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.CheckKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}

func (s *SlotStore) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := storage.CheckKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

// Len — количество слотов.
func (s *SlotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
