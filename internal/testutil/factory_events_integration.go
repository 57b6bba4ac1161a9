//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UniqSessionID — уникальная сессия, чтобы тесты не делили корзину.
func UniqSessionID() string { return "itc-" + randHex(6) }

// AddItemEvent — событие добавления товара с явными полями.
func AddItemEvent(session, id, name string, price float64, color string) domain.CartEvent {
	return domain.CartEvent{
		SessionID: session,
		Type:      domain.EventAddItem,
		ID:        id,
		Name:      name,
		Price:     price,
		Color:     color,
	}
}

// AddProductEvent — событие «в корзину» для товара каталога.
func AddProductEvent(session, productID string) domain.CartEvent {
	return domain.CartEvent{SessionID: session, Type: domain.EventAddProduct, ProductID: productID}
}

// SetQuantityEvent — событие изменения количества.
func SetQuantityEvent(session, id, color string, n int) domain.CartEvent {
	return domain.CartEvent{SessionID: session, Type: domain.EventSetQuantity, ID: id, Color: color, Quantity: n}
}

// CheckoutEvent — оформление с ответом на подтверждение.
func CheckoutEvent(session string, confirm bool) domain.CartEvent {
	return domain.CartEvent{SessionID: session, Type: domain.EventCheckout, Confirm: confirm}
}
