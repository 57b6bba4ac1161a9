package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// Apply — переводит событие UI в операцию над корзиной.
// Событие должно быть уже провалидировано (validate.ValidateEvent).
// Ошибки, связанные с содержимым события, оборачиваются в validate.ErrInvalidEvent.
func (m *CartManager) Apply(ctx context.Context, ev *domain.CartEvent) error {
	switch ev.Type {
	case domain.EventAddItem:
		m.AddItem(ctx, ev.ID, ev.Name, ev.Price, ev.Color)
	case domain.EventAddProduct:
		if err := m.AddProduct(ctx, ev.ProductID); err != nil {
			return fmt.Errorf("%w: %w", validate.ErrInvalidEvent, err)
		}
	case domain.EventRemoveItem:
		m.RemoveItem(ctx, ev.ID, ev.Color)
	case domain.EventSetQuantity:
		m.SetQuantity(ctx, ev.ID, ev.Color, ev.Quantity)
	case domain.EventQuantityInput:
		m.SetQuantityInput(ctx, ev.ID, ev.Color, ev.Input)
	case domain.EventIncrease:
		m.Increase(ctx, ev.ID, ev.Color)
	case domain.EventDecrease:
		m.Decrease(ctx, ev.ID, ev.Color)
	case domain.EventSelectColor:
		m.SelectColor(ev.ProductID, ev.Color)
	case domain.EventTogglePanel:
		m.TogglePanel()
	case domain.EventOpenPanel:
		m.OpenPanel()
	case domain.EventClosePanel:
		m.ClosePanel()
	case domain.EventCheckout:
		m.Checkout(ctxmeta.WithCheckoutConfirm(ctx, ev.Confirm))
	default:
		return fmt.Errorf("%w: unknown type %q", validate.ErrInvalidEvent, ev.Type)
	}
	return nil
}
