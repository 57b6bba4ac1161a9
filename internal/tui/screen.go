package tui

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
)

var (
	_ ports.CartView = (*Screen)(nil)
	_ ports.Dialogs  = (*Screen)(nil)
)

// Screen — состояние, которое CartManager отрисовывает в терминале.
// Confirm не блокирует цикл bubbletea: модель сначала показывает свой y/n диалог,
// затем «взводит» ответ через Arm и только после этого вызывает Checkout.
type Screen struct {
	mu sync.Mutex

	items     []domain.LineItem
	count     int
	total     string
	empty     string
	panelOpen bool

	toast    string
	toastSeq int
	alerts   []string

	armed      *bool
	lastPrompt string
}

// NewScreen — пустой экран.
func NewScreen() *Screen {
	return &Screen{total: domain.FormatMoney(0)}
}

func (s *Screen) RenderItems(items []domain.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]domain.LineItem(nil), items...)
	s.empty = ""
}

func (s *Screen) RenderEmpty(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.empty = message
}

func (s *Screen) UpdateCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = count
}

func (s *Screen) UpdateTotal(total string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
}

func (s *Screen) SetPanelOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = open
}

// Toast — новое уведомление заменяет предыдущее; seq отличает его таймер от старых.
func (s *Screen) Toast(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toast = message
	s.toastSeq++
}

func (s *Screen) Alert(_ context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
}

// Confirm — взведённый ответ (одноразовый); без него покупка не подтверждается.
func (s *Screen) Confirm(_ context.Context, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastPrompt = message
	if s.armed == nil {
		return false
	}
	answer := *s.armed
	s.armed = nil
	return answer
}

// Arm — ответ пользователя на следующий Confirm.
func (s *Screen) Arm(answer bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = &answer
}

// ------ чтение состояния моделью ------

func (s *Screen) state() (items []domain.LineItem, count int, total, empty string, panelOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LineItem(nil), s.items...), s.count, s.total, s.empty, s.panelOpen
}

func (s *Screen) currentToast() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toast, s.toastSeq
}

// dismissToast — снимает уведомление, если за это время не пришло новое.
func (s *Screen) dismissToast(seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toastSeq == seq {
		s.toast = ""
	}
}

func (s *Screen) topAlert() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) == 0 {
		return "", false
	}
	return s.alerts[0], true
}

func (s *Screen) popAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) > 0 {
		s.alerts = s.alerts[1:]
	}
}
