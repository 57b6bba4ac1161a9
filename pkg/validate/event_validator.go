package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// ErrInvalidEvent — событие корзины не прошло проверку; повторная обработка бессмысленна.
var ErrInvalidEvent = errors.New("cart event validation failed")

// ValidateEvent — проверка обязательных полей события в зависимости от его типа.
func ValidateEvent(_ context.Context, ev *domain.CartEvent) error {
	if ev == nil {
		return fmt.Errorf("%w: событие не может быть nil", ErrInvalidEvent)
	}
	if ev.SessionID == "" {
		return fmt.Errorf("%w: session_id обязателен", ErrInvalidEvent)
	}

	switch ev.Type {
	case domain.EventAddItem:
		if ev.ID == "" {
			return fmt.Errorf("%w: id обязателен", ErrInvalidEvent)
		}
		if ev.Price < 0 || math.IsNaN(ev.Price) || math.IsInf(ev.Price, 0) {
			return fmt.Errorf("%w: price должен быть неотрицательным числом", ErrInvalidEvent)
		}
	case domain.EventAddProduct, domain.EventSelectColor:
		if ev.ProductID == "" {
			return fmt.Errorf("%w: product_id обязателен", ErrInvalidEvent)
		}
	case domain.EventRemoveItem, domain.EventSetQuantity, domain.EventQuantityInput,
		domain.EventIncrease, domain.EventDecrease:
		if ev.ID == "" {
			return fmt.Errorf("%w: id обязателен", ErrInvalidEvent)
		}
	case domain.EventTogglePanel, domain.EventOpenPanel, domain.EventClosePanel, domain.EventCheckout:
	default:
		return fmt.Errorf("%w: неизвестный type %q", ErrInvalidEvent, ev.Type)
	}
	return nil
}

// DecodeEvent — строгий разбор события из JSON (неизвестные поля и хвост после объекта запрещены) без проверки полей.
func DecodeEvent(raw []byte) (*domain.CartEvent, error) {
	var ev domain.CartEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidEvent, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidEvent)
	}
	return &ev, nil
}

// ParseEvent — DecodeEvent + ValidateEvent.
func ParseEvent(ctx context.Context, raw []byte) (*domain.CartEvent, error) {
	ev, err := DecodeEvent(raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
