package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// LineItem — одна позиция корзины: товар в конкретном цвете и его количество.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Color    string  `json:"color"`
	Quantity int     `json:"quantity"`
}

// Key — ключ уникальности позиции (id, color).
type Key struct {
	ID    string
	Color string
}

// Key — ключ позиции.
func (i LineItem) Key() Key { return Key{ID: i.ID, Color: i.Color} }

// Subtotal — цена позиции с учётом количества.
func (i LineItem) Subtotal() float64 { return i.Price * float64(i.Quantity) }

// Cart — упорядоченный (в порядке добавления) список позиций.
// Инварианты: пара (id, color) уникальна; quantity >= 1 у каждой позиции.
type Cart struct {
	Items []LineItem
}

// NewCart — корзина из готового списка (список копируется).
func NewCart(items []LineItem) *Cart {
	return &Cart{Items: append([]LineItem(nil), items...)}
}

// Add — увеличивает количество существующей позиции на 1 (не выше MaxInt) или добавляет новую с quantity=1.
func (c *Cart) Add(id, name string, price float64, color string) LineItem {
	if idx := c.index(id, color); idx >= 0 {
		if c.Items[idx].Quantity < math.MaxInt {
			c.Items[idx].Quantity++
		}
		return c.Items[idx]
	}
	item := LineItem{ID: id, Name: name, Price: price, Color: color, Quantity: 1}
	c.Items = append(c.Items, item)
	return item
}

// Remove — удаляет позицию; false, если такой позиции нет.
func (c *Cart) Remove(id, color string) bool {
	idx := c.index(id, color)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return true
}

// SetQuantity — выставляет количество; n <= 0 удаляет позицию.
// Для несуществующей пары ничего не делает и возвращает false.
func (c *Cart) SetQuantity(id, color string, n int) bool {
	idx := c.index(id, color)
	if idx < 0 {
		return false
	}
	if n <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return true
	}
	c.Items[idx].Quantity = n
	return true
}

// Find — позиция по ключу.
func (c *Cart) Find(id, color string) (LineItem, bool) {
	idx := c.index(id, color)
	if idx < 0 {
		return LineItem{}, false
	}
	return c.Items[idx], true
}

// Clear — опустошает корзину.
func (c *Cart) Clear() { c.Items = nil }

// IsEmpty — true для пустой корзины.
func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Count — суммарное количество товаров (сумма quantity, не выше MaxInt).
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		if total > math.MaxInt-item.Quantity {
			return math.MaxInt
		}
		total += item.Quantity
	}
	return total
}

// Total — суммарная стоимость (сумма price*quantity), без округления.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Clone — независимая копия списка позиций.
func (c *Cart) Clone() []LineItem {
	if c.Items == nil {
		return []LineItem{}
	}
	return append([]LineItem(nil), c.Items...)
}

func (c *Cart) index(id, color string) int {
	for i := range c.Items {
		if c.Items[i].ID == id && c.Items[i].Color == color {
			return i
		}
	}
	return -1
}

// FormatMoney — денежное значение для отображения: "$19.99".
func FormatMoney(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseQuantityInput — разбор значения поля ввода количества по правилам parseInt:
// берётся ведущая последовательность цифр с необязательным знаком (префикс 0x — шестнадцатеричное),
// остаток строки игнорируется. Нет цифр или 0 → 1; слишком большое значение упирается в MaxInt.
// Отрицательные значения возвращаются как есть (дальше SetQuantity удалит позицию).
func ParseQuantityInput(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := uint64(10)
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	const limit = uint64(math.MaxInt)
	var n uint64
	digits := 0
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			break
		}
		digits++
		if n > (limit-d)/base {
			n = limit
			continue
		}
		n = n*base + d
	}

	if digits == 0 || n == 0 {
		return 1
	}
	if neg {
		return -int(n)
	}
	return int(n)
}

// digitValue — значение цифры 0-9a-fA-F; для остальных символов 99.
func digitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10
	default:
		return 99
	}
}
