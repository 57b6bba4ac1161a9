// Package headless — представление корзины без браузера: запоминает последнюю
// отрисовку и копит уведомления/диалоги, чтобы хост (HTTP, Kafka) вернул их клиенту.
package headless

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
)

var (
	_ ports.CartView = (*View)(nil)
	_ ports.Dialogs  = (*View)(nil)
)

// Snapshot — состояние виджета после последней отрисовки.
type Snapshot struct {
	Items        []domain.LineItem `json:"items"`
	Count        int               `json:"count"`
	Total        string            `json:"total"`
	EmptyMessage string            `json:"empty_message,omitempty"`
	PanelOpen    bool              `json:"panel_open"`
	Toasts       []string          `json:"toasts,omitempty"`
	Alerts       []string          `json:"alerts,omitempty"`
	Prompts      []string          `json:"prompts,omitempty"`
}

// View — CartView и Dialogs в одном объекте.
// Confirm отвечает значением из ctxmeta; без ответа в контексте — отказ.
type View struct {
	mu sync.Mutex

	items        []domain.LineItem
	count        int
	total        string
	emptyMessage string
	panelOpen    bool

	toasts  []string
	alerts  []string
	prompts []string
}

// New — пустое представление.
func New() *View {
	return &View{total: domain.FormatMoney(0), items: []domain.LineItem{}}
}

func (v *View) RenderItems(items []domain.LineItem) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = append([]domain.LineItem(nil), items...)
	v.emptyMessage = ""
}

func (v *View) RenderEmpty(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = []domain.LineItem{}
	v.emptyMessage = message
}

func (v *View) UpdateCount(count int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.count = count
}

func (v *View) UpdateTotal(total string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.total = total
}

func (v *View) SetPanelOpen(open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panelOpen = open
}

func (v *View) Toast(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.toasts = append(v.toasts, message)
}

func (v *View) Alert(_ context.Context, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

func (v *View) Confirm(ctx context.Context, message string) bool {
	v.mu.Lock()
	v.prompts = append(v.prompts, message)
	v.mu.Unlock()

	confirmed, _ := ctxmeta.CheckoutConfirmFromContext(ctx)
	return confirmed
}

// Snapshot — текущее состояние без сброса накопленных уведомлений.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Drain — текущее состояние; накопленные toast/alert/prompt отдаются один раз.
func (v *View) Drain() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := v.snapshotLocked()
	v.toasts, v.alerts, v.prompts = nil, nil, nil
	return s
}

func (v *View) snapshotLocked() Snapshot {
	return Snapshot{
		Items:        append([]domain.LineItem{}, v.items...),
		Count:        v.count,
		Total:        v.total,
		EmptyMessage: v.emptyMessage,
		PanelOpen:    v.panelOpen,
		Toasts:       append([]string(nil), v.toasts...),
		Alerts:       append([]string(nil), v.alerts...),
		Prompts:      append([]string(nil), v.prompts...),
	}
}
