package ports

import "github.com/Gunvolt24/wb_cart/internal/domain"

// CartView — визуальное представление корзины (DOM, терминал, JSON-снимок).
// Вызывается только из потока обработки событий корзины.
type CartView interface {
	RenderItems(items []domain.LineItem) // список позиций
	RenderEmpty(message string)          // заглушка пустой корзины
	UpdateCount(count int)               // счётчик товаров в иконке корзины
	UpdateTotal(total string)            // итоговая сумма, уже отформатированная
	SetPanelOpen(open bool)              // видимость боковой панели корзины
	Toast(message string)                // временное уведомление
}
