package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// ParseCart — строгий разбор содержимого слота корзины (JSON-массив позиций)
// с проверкой инвариантов.
func ParseCart(raw []byte) ([]domain.LineItem, error) {
	return ValidateCartFromJSON(context.Background(), NewCartValidator(), raw)
}

// ValidateCartFromJSON — валидация корзины из JSON.
func ValidateCartFromJSON(ctx context.Context, validator *CartValidator, raw []byte) ([]domain.LineItem, error) {
	var items []domain.LineItem
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidCart, err)
	}
	// гарантируем отсутствие данных после массива
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidCart)
	}
	if items == nil {
		// "null" трактуем как пустую корзину
		items = []domain.LineItem{}
	}
	if err := validator.Validate(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}
