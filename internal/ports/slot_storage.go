package ports

import "context"

// SlotStorage — key-value хранилище строковых слотов (аналог localStorage).
// Значение слота переживает сессию страницы.
type SlotStorage interface {
	// GetItem — значение слота; found=false, если слота нет.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)

	// SetItem — записать слот, перезаписывая прежнее значение.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem — удалить слот (отсутствие слота не ошибка).
	RemoveItem(ctx context.Context, key string) error
}
