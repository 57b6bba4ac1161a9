package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что SlotStore удовлетворяет интерфейсу SlotStorage.
var _ ports.SlotStorage = (*SlotStore)(nil)

// SlotStore — слоты корзин в таблице storage_slots (pgxpool).
type SlotStore struct {
	pool *pgxpool.Pool
}

// NewSlotStore — конструктор SlotStore.
func NewSlotStore(pool *pgxpool.Pool) *SlotStore { return &SlotStore{pool: pool} }

// GetItem — значение слота. Если слота нет, возвращает ("", false, nil).
func (s *SlotStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := storage.CheckKey(key); err != nil {
		return "", false, err
	}

	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM storage_slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select slot: %w", err)
	}
	return value, true, nil
}

// SetItem — upsert слота по ключу (PRIMARY KEY).
func (s *SlotStore) SetItem(ctx context.Context, key, value string) error {
	if err := storage.CheckKey(key); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `
		INSERT INTO storage_slots (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

// RemoveItem — удаление слота; отсутствие строки не ошибка.
func (s *SlotStore) RemoveItem(ctx context.Context, key string) error {
	if err := storage.CheckKey(key); err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `DELETE FROM storage_slots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}
