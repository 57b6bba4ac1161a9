package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Gunvolt24/wb_cart/internal/catalog"
	"github.com/Gunvolt24/wb_cart/internal/storage/memory"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func newTestModel(t *testing.T) (*Model, *usecase.CartManager, *memory.SlotStore) {
	t.Helper()
	ctx := context.Background()
	cat := catalog.Default()
	store := memory.NewSlotStore(nil)
	screen := NewScreen()
	cart := usecase.NewCartManager(store, screen, screen, nopLogger{}, usecase.WithCatalog(cat))
	cart.Init(ctx)
	return New(ctx, cart, screen, cat.Products(), 10*time.Millisecond), cart, store
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestAdd_OpensPanel_AndShowsToast(t *testing.T) {
	m, cart, _ := newTestModel(t)

	cmd := press(m, "enter")
	if cart.Count() != 1 || cart.Total() != "$19.99" {
		t.Fatalf("count=%d total=%s", cart.Count(), cart.Total())
	}
	if !cart.PanelOpen() {
		t.Fatal("panel must open after add")
	}
	if cmd == nil {
		t.Fatal("toast timer expected")
	}
	text, seq := m.screen.currentToast()
	if text != "Shirt added to cart" {
		t.Fatalf("toast=%q", text)
	}
	if !strings.Contains(m.View(), "Shirt added to cart") {
		t.Fatal("toast must be visible")
	}

	m.Update(toastExpiredMsg{seq: seq})
	if text, _ := m.screen.currentToast(); text != "" {
		t.Fatalf("toast must be dismissed, got %q", text)
	}
}

func TestToast_OldTimerDoesNotHideNewToast(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, "enter")
	_, first := m.screen.currentToast()
	press(m, "enter")

	m.Update(toastExpiredMsg{seq: first})
	if text, _ := m.screen.currentToast(); text == "" {
		t.Fatal("newer toast must survive the older timer")
	}
}

func TestSwatchSelection_AppliesOnAdd(t *testing.T) {
	m, cart, _ := newTestModel(t)

	// Shirt: red -> blue
	press(m, "right", "enter")
	items := cart.Items()
	if len(items) != 1 || items[0].Color != "blue" {
		t.Fatalf("items=%+v", items)
	}

	// Sneakers без выбора — первый swatch; "left" с первого переходит на последний
	press(m, "down", "down", "left", "a")
	items = cart.Items()
	if len(items) != 2 || items[1].Color != "green" {
		t.Fatalf("items=%+v", items)
	}
}

func TestCartPanel_IncreaseDecreaseRemove(t *testing.T) {
	m, cart, _ := newTestModel(t)
	press(m, "enter", "down", "enter") // Shirt, Jeans

	press(m, "tab") // фокус на корзину
	if m.focus != focusCart {
		t.Fatal("tab must focus cart")
	}
	press(m, "+", "+")
	if it := cart.Items()[0]; it.Quantity != 3 {
		t.Fatalf("shirt quantity=%d", it.Quantity)
	}
	press(m, "down", "-")
	if len(cart.Items()) != 1 {
		t.Fatalf("jeans must be removed by decrease from 1: %+v", cart.Items())
	}
	press(m, "x")
	if !cart.IsEmpty() {
		t.Fatalf("cart must be empty: %+v", cart.Items())
	}
	if !strings.Contains(m.View(), usecase.EmptyCartMessage) {
		t.Fatal("empty placeholder must be rendered")
	}
}

func TestEditQuantity(t *testing.T) {
	m, cart, _ := newTestModel(t)
	press(m, "enter", "tab", "e")
	if !m.editing {
		t.Fatal("e must start editing")
	}
	press(m, "backspace", "7", "enter")
	if m.editing {
		t.Fatal("enter must finish editing")
	}
	if cart.Count() != 7 {
		t.Fatalf("count=%d", cart.Count())
	}

	// нечисловой ввод -> 1
	press(m, "e", "backspace", "z", "enter")
	if cart.Count() != 1 {
		t.Fatalf("count=%d", cart.Count())
	}

	// esc отменяет
	press(m, "e", "backspace", "9", "esc")
	if cart.Count() != 1 {
		t.Fatalf("esc must cancel edit, count=%d", cart.Count())
	}
}

func TestCheckout_EmptyShowsAlert(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, "c")
	if m.confirming {
		t.Fatal("empty cart must not ask for confirmation")
	}
	if text, ok := m.screen.topAlert(); !ok || text != usecase.EmptyCheckoutWarning {
		t.Fatalf("alert=%q ok=%v", text, ok)
	}
	press(m, "enter")
	if _, ok := m.screen.topAlert(); ok {
		t.Fatal("any key must dismiss the alert")
	}
}

func TestCheckout_CancelKeepsCart(t *testing.T) {
	m, cart, _ := newTestModel(t)
	press(m, "enter", "c")
	if !m.confirming {
		t.Fatal("confirmation expected")
	}
	if !strings.Contains(m.View(), "for a total of $19.99?") {
		t.Fatalf("prompt must mention total: %s", m.prompt)
	}
	press(m, "n")
	if m.confirming || cart.Count() != 1 {
		t.Fatalf("cancel must keep cart, count=%d", cart.Count())
	}
	if _, ok := m.screen.topAlert(); ok {
		t.Fatal("no alert on cancel")
	}
}

func TestCheckout_ConfirmClearsAndPersists(t *testing.T) {
	m, cart, store := newTestModel(t)
	press(m, "enter", "enter", "c", "y")

	if !cart.IsEmpty() || cart.PanelOpen() {
		t.Fatalf("cart must be cleared and panel closed: %+v open=%v", cart.Items(), cart.PanelOpen())
	}
	if text, ok := m.screen.topAlert(); !ok || text != usecase.CheckoutSuccessMessage {
		t.Fatalf("alert=%q", text)
	}
	raw, _, _ := store.GetItem(context.Background(), usecase.DefaultStorageKey)
	if raw != "[]" {
		t.Fatalf("stored=%q", raw)
	}
}

func TestScreen_ConfirmWithoutArmIsNo(t *testing.T) {
	s := NewScreen()
	if s.Confirm(context.Background(), "sure?") {
		t.Fatal("unarmed confirm must be false")
	}
	s.Arm(true)
	if !s.Confirm(context.Background(), "sure?") {
		t.Fatal("armed confirm must be true")
	}
	if s.Confirm(context.Background(), "sure?") {
		t.Fatal("arm is single-use")
	}
}

func TestPanelToggle_And_Quit(t *testing.T) {
	m, cart, _ := newTestModel(t)

	press(m, "o")
	if !cart.PanelOpen() {
		t.Fatal("o must open panel")
	}
	press(m, "esc")
	if cart.PanelOpen() {
		t.Fatal("esc must close panel")
	}

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("quit command expected")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q must quit")
	}
}
