package validate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// ErrInvalidCart — базовая (sentinel error) ошибка валидации сохранённой корзины.
var ErrInvalidCart = errors.New("cart validation failed")

// CartValidator — проверка инвариантов корзины:
// непустой id, цена >= 0, количество >= 1, уникальность пары (id, color).
type CartValidator struct{}

// NewCartValidator — конструктор CartValidator.
// Возвращает ErrInvalidCart (с обёрнутой причиной) при любой проблеме.
func NewCartValidator() *CartValidator { return &CartValidator{} }

// Validate — проверяет список позиций.
func (v *CartValidator) Validate(_ context.Context, items []domain.LineItem) error {
	seen := make(map[domain.Key]struct{}, len(items))
	for i := range items {
		if err := v.validateItem(i, &items[i]); err != nil {
			return err
		}
		key := items[i].Key()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: items[%d]: duplicate (id=%s, color=%s)", ErrInvalidCart, i, key.ID, key.Color)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (v *CartValidator) validateItem(idx int, item *domain.LineItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: items[%d].id обязателен", ErrInvalidCart, idx)
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return fmt.Errorf("%w: items[%d].price должен быть неотрицательным числом", ErrInvalidCart, idx)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: items[%d].quantity должен быть >= 1", ErrInvalidCart, idx)
	}
	return nil
}
