package domain

// EventType — вид пользовательского действия над корзиной.
type EventType string

const (
	EventAddItem       EventType = "add_item"       // id, name, price, color
	EventAddProduct    EventType = "add_product"    // product_id; цвет — выбранный swatch
	EventRemoveItem    EventType = "remove_item"    // id, color
	EventSetQuantity   EventType = "set_quantity"   // id, color, quantity
	EventQuantityInput EventType = "quantity_input" // id, color, input (сырое значение поля)
	EventIncrease      EventType = "increase"       // id, color
	EventDecrease      EventType = "decrease"       // id, color
	EventSelectColor   EventType = "select_color"   // product_id, color
	EventTogglePanel   EventType = "toggle_panel"
	EventOpenPanel     EventType = "open_panel"
	EventClosePanel    EventType = "close_panel"
	EventCheckout      EventType = "checkout" // confirm
)

// CartEvent — событие UI, приходящее от хоста (HTTP-запрос, сообщение Kafka).
type CartEvent struct {
	SessionID string    `json:"session_id"`
	Type      EventType `json:"type"`
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Input     string    `json:"input,omitempty"`
	Confirm   bool      `json:"confirm,omitempty"`
}
