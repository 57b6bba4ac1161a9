package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/wb_cart/internal/catalog"
	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports/mocks"
	"github.com/Gunvolt24/wb_cart/internal/storage/memory"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/internal/view/headless"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// newManager — менеджер поверх памяти и headless-представления.
func newManager(t *testing.T, seed map[string]string) (*usecase.CartManager, *memory.SlotStore, *headless.View) {
	t.Helper()
	store := memory.NewSlotStore(seed)
	view := headless.New()
	m := usecase.NewCartManager(store, view, view, noopLogger{}, usecase.WithCatalog(catalog.Default()))
	m.Init(context.Background())
	return m, store, view
}

func storedItems(t *testing.T, store *memory.SlotStore) []domain.LineItem {
	t.Helper()
	raw, ok, err := store.GetItem(context.Background(), usecase.DefaultStorageKey)
	if err != nil || !ok {
		t.Fatalf("stored cart: ok=%v err=%v", ok, err)
	}
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("unmarshal stored cart %q: %v", raw, err)
	}
	return items
}

func TestAddItem_ShirtScenario(t *testing.T) {
	ctx := context.Background()
	m, store, view := newManager(t, nil)

	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	if s := view.Snapshot(); s.Count != 1 || s.Total != "$19.99" || !s.PanelOpen {
		t.Fatalf("after first add: %+v", s)
	}

	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	s := view.Snapshot()
	if s.Count != 2 || s.Total != "$39.98" || len(s.Items) != 1 || s.Items[0].Quantity != 2 {
		t.Fatalf("after second add: %+v", s)
	}
	if items := storedItems(t, store); len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("stored: %+v", items)
	}

	m.SetQuantity(ctx, "1", "red", 0)
	s = view.Snapshot()
	if s.Count != 0 || s.Total != "$0.00" || s.EmptyMessage != usecase.EmptyCartMessage {
		t.Fatalf("after set quantity 0: %+v", s)
	}

	// удаление отсутствующей позиции — no-op
	m.RemoveItem(ctx, "1", "red")
	if items := storedItems(t, store); len(items) != 0 {
		t.Fatalf("stored after remove: %+v", items)
	}
}

func TestAddItem_DifferentColorsAreSeparateItems(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t, nil)

	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	m.AddItem(ctx, "1", "Shirt", 19.99, "blue")
	m.AddItem(ctx, "2", "Jeans", 49.99, "blue")

	items := m.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %+v", items)
	}
	if items[0].Color != "red" || items[1].Color != "blue" || items[2].ID != "2" {
		t.Fatalf("insertion order broken: %+v", items)
	}
	if m.Count() != 3 || m.Total() != "$89.97" {
		t.Fatalf("count=%d total=%s", m.Count(), m.Total())
	}
}

func TestAddItem_InvalidIgnored(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t, nil)

	m.AddItem(ctx, "", "Nameless", 1, "red")
	m.AddItem(ctx, "9", "Broken", -5, "red")

	if !m.IsEmpty() {
		t.Fatalf("invalid items must be ignored, got %+v", m.Items())
	}
	if _, ok, _ := store.GetItem(ctx, usecase.DefaultStorageKey); ok {
		t.Fatalf("nothing should be persisted")
	}
}

func TestAddItem_ShowsToast(t *testing.T) {
	m, _, view := newManager(t, nil)

	m.AddItem(context.Background(), "4", "Cap", 12, "white")

	s := view.Drain()
	if len(s.Toasts) != 1 || s.Toasts[0] != "Cap added to cart" {
		t.Fatalf("toasts: %+v", s.Toasts)
	}
	if again := view.Drain(); len(again.Toasts) != 0 {
		t.Fatalf("toasts must be drained once: %+v", again.Toasts)
	}
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t, nil)
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")

	m.SetQuantity(ctx, "1", "red", 5)
	if it := m.Items()[0]; it.Quantity != 5 {
		t.Fatalf("quantity: %d", it.Quantity)
	}
	if m.Total() != "$99.95" {
		t.Fatalf("total: %s", m.Total())
	}

	// неизвестная пара — без изменений
	m.SetQuantity(ctx, "1", "green", 3)
	if m.Count() != 5 {
		t.Fatalf("unknown pair changed cart: %+v", m.Items())
	}

	m.SetQuantity(ctx, "1", "red", 0)
	if !m.IsEmpty() {
		t.Fatalf("zero quantity must remove item")
	}
	if items := storedItems(t, store); len(items) != 0 {
		t.Fatalf("stored after remove: %+v", items)
	}
}

func TestSetQuantityInput(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		raw  string
		want int // 0 — позиция удалена
	}{
		{raw: "3", want: 3},
		{raw: " 12 ", want: 12},
		{raw: "abc", want: 1},
		{raw: "", want: 1},
		{raw: "0", want: 1},
		{raw: "2.7", want: 2},
		{raw: "2e1", want: 2},
		{raw: "3abc", want: 3},
		{raw: "99999999999999999999", want: math.MaxInt},
		{raw: "-1", want: 0},
	}

	for _, tc := range cases {
		t.Run("input="+tc.raw, func(t *testing.T) {
			m, _, _ := newManager(t, nil)
			m.AddItem(ctx, "1", "Shirt", 19.99, "red")
			m.SetQuantity(ctx, "1", "red", 4)

			m.SetQuantityInput(ctx, "1", "red", tc.raw)

			item, ok := findItem(m.Items(), "1", "red")
			if tc.want == 0 {
				if ok {
					t.Fatalf("expected removal, got %+v", item)
				}
				return
			}
			if !ok || item.Quantity != tc.want {
				t.Fatalf("want quantity %d, got %+v (ok=%v)", tc.want, item, ok)
			}
		})
	}
}

func TestIncreaseDecrease(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t, nil)
	m.AddItem(ctx, "2", "Jeans", 49.99, "blue")

	m.Increase(ctx, "2", "blue")
	m.Increase(ctx, "2", "blue")
	if m.Count() != 3 {
		t.Fatalf("after increase: %+v", m.Items())
	}

	m.Increase(ctx, "2", "black") // неизвестная пара
	if len(m.Items()) != 1 {
		t.Fatalf("increase must not create items: %+v", m.Items())
	}

	m.Decrease(ctx, "2", "blue")
	m.Decrease(ctx, "2", "blue")
	m.Decrease(ctx, "2", "blue")
	if !m.IsEmpty() {
		t.Fatalf("decrease to zero must remove: %+v", m.Items())
	}
}

func TestIncrease_SaturatesAtMaxInt(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t, nil)
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	m.SetQuantityInput(ctx, "1", "red", "99999999999999999999")

	m.Increase(ctx, "1", "red")
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")

	item, ok := findItem(m.Items(), "1", "red")
	if !ok || item.Quantity != math.MaxInt {
		t.Fatalf("quantity must stay at MaxInt: %+v ok=%v", item, ok)
	}
	m.AddItem(ctx, "2", "Jeans", 49.99, "blue")
	if m.Count() != math.MaxInt {
		t.Fatalf("count must saturate: %d", m.Count())
	}
	if got := storedItems(t, store); len(got) != 2 || got[0].Quantity != math.MaxInt {
		t.Fatalf("stored: %+v", got)
	}
}

func TestLoad_RestoresStoredCart(t *testing.T) {
	seed := map[string]string{
		usecase.DefaultStorageKey: `[{"id":"1","name":"Shirt","price":19.99,"color":"red","quantity":2},` +
			`{"id":"3","name":"Sneakers","price":79.5,"color":"white","quantity":1}]`,
	}
	m, _, view := newManager(t, seed)

	s := view.Snapshot()
	if s.Count != 3 || s.Total != "$119.48" || len(s.Items) != 2 {
		t.Fatalf("loaded state: %+v", s)
	}
	if s.PanelOpen {
		t.Fatalf("panel must start closed")
	}
	if m.Items()[1].Name != "Sneakers" {
		t.Fatalf("order not kept: %+v", m.Items())
	}
}

func TestLoad_MalformedStartsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":           `{{{`,
		"object":             `{"id":"1"}`,
		"zero quantity":      `[{"id":"1","name":"Shirt","price":1,"color":"red","quantity":0}]`,
		"negative price":     `[{"id":"1","name":"Shirt","price":-1,"color":"red","quantity":1}]`,
		"duplicate pair":     `[{"id":"1","name":"A","price":1,"color":"red","quantity":1},{"id":"1","name":"A","price":1,"color":"red","quantity":2}]`,
		"unknown field":      `[{"id":"1","name":"A","price":1,"color":"red","quantity":1,"sku":"x"}]`,
		"trailing garbage":   `[] []`,
		"empty id":           `[{"id":"","name":"A","price":1,"color":"red","quantity":1}]`,
		"string as quantity": `[{"id":"1","name":"A","price":1,"color":"red","quantity":"2"}]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			m, _, view := newManager(t, map[string]string{usecase.DefaultStorageKey: raw})
			if !m.IsEmpty() {
				t.Fatalf("expected empty cart, got %+v", m.Items())
			}
			if s := view.Snapshot(); s.EmptyMessage != usecase.EmptyCartMessage || s.Total != "$0.00" {
				t.Fatalf("render after malformed load: %+v", s)
			}
		})
	}
}

func TestPersistLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t, nil)

	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	m.AddItem(ctx, "3", "Sneakers", 79.5, "")
	m.SetQuantity(ctx, "3", "", 2)
	if err := m.Persist(ctx); err != nil {
		t.Fatalf("persist: %v", err)
	}

	// «перезагрузка страницы»: новый менеджер над тем же хранилищем
	view := headless.New()
	reloaded := usecase.NewCartManager(store, view, view, noopLogger{})
	reloaded.Init(ctx)

	got, want := reloaded.Items(), m.Items()
	if len(got) != len(want) {
		t.Fatalf("reloaded=%+v original=%+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestWithStorageKey(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSlotStore(nil)
	view := headless.New()
	m := usecase.NewCartManager(store, view, view, noopLogger{}, usecase.WithStorageKey("otherCart"))

	m.AddItem(ctx, "1", "Shirt", 19.99, "red")

	if _, ok, _ := store.GetItem(ctx, "otherCart"); !ok {
		t.Fatalf("expected slot otherCart")
	}
	if _, ok, _ := store.GetItem(ctx, usecase.DefaultStorageKey); ok {
		t.Fatalf("default slot must stay untouched")
	}
}

func TestCheckout_Empty(t *testing.T) {
	m, store, view := newManager(t, nil)

	res := m.Checkout(ctxmeta.WithCheckoutConfirm(context.Background(), true))
	if res != usecase.CheckoutEmpty {
		t.Fatalf("result: %v", res)
	}
	s := view.Drain()
	if len(s.Alerts) != 1 || s.Alerts[0] != usecase.EmptyCheckoutWarning {
		t.Fatalf("alerts: %+v", s.Alerts)
	}
	if len(s.Prompts) != 0 {
		t.Fatalf("no confirm expected for empty cart: %+v", s.Prompts)
	}
	if store.Len() != 0 {
		t.Fatalf("storage must not be touched")
	}
}

func TestCheckout_Cancelled(t *testing.T) {
	ctx := context.Background()
	m, store, view := newManager(t, nil)
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	view.Drain()

	res := m.Checkout(ctxmeta.WithCheckoutConfirm(ctx, false))
	if res != usecase.CheckoutCancelled {
		t.Fatalf("result: %v", res)
	}
	s := view.Drain()
	if len(s.Prompts) != 1 || !strings.Contains(s.Prompts[0], "$19.99") {
		t.Fatalf("prompt: %+v", s.Prompts)
	}
	if len(s.Alerts) != 0 || m.Count() != 1 || !s.PanelOpen {
		t.Fatalf("cancel must keep everything: %+v", s)
	}
	if items := storedItems(t, store); len(items) != 1 {
		t.Fatalf("stored: %+v", items)
	}
}

func TestCheckout_Completed(t *testing.T) {
	ctx := context.Background()
	m, store, view := newManager(t, nil)
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
	view.Drain()

	res := m.Checkout(ctxmeta.WithCheckoutConfirm(ctx, true))
	if res != usecase.CheckoutCompleted {
		t.Fatalf("result: %v", res)
	}

	s := view.Drain()
	want := "Are you sure you want to complete your purchase for a total of $39.98?"
	if len(s.Prompts) != 1 || s.Prompts[0] != want {
		t.Fatalf("prompt: %+v", s.Prompts)
	}
	if len(s.Alerts) != 1 || s.Alerts[0] != usecase.CheckoutSuccessMessage {
		t.Fatalf("alerts: %+v", s.Alerts)
	}
	if s.Count != 0 || s.Total != "$0.00" || s.PanelOpen {
		t.Fatalf("state after checkout: %+v", s)
	}
	raw, _, _ := store.GetItem(ctx, usecase.DefaultStorageKey)
	if raw != "[]" {
		t.Fatalf("stored after checkout: %q", raw)
	}
}

func TestCheckoutResult_String(t *testing.T) {
	if usecase.CheckoutEmpty.String() != "empty" ||
		usecase.CheckoutCancelled.String() != "cancelled" ||
		usecase.CheckoutCompleted.String() != "completed" ||
		usecase.CheckoutResult(42).String() != "unknown" {
		t.Fatalf("unexpected names")
	}
}

func TestColorSelection(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t, nil)

	// без клика — первый swatch
	if c := m.ResolveColor("1"); c != "red" {
		t.Fatalf("default color: %q", c)
	}

	m.SelectColor("1", "blue")
	if c := m.ResolveColor("1"); c != "blue" {
		t.Fatalf("selected color: %q", c)
	}
	// выбор одного товара не влияет на другой
	if c := m.ResolveColor("2"); c != "blue" {
		t.Fatalf("jeans default: %q", c)
	}

	if err := m.AddProduct(ctx, "1"); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := m.AddProduct(ctx, "3"); err != nil {
		t.Fatalf("add product: %v", err)
	}
	items := m.Items()
	if items[0].Color != "blue" || items[0].Name != "Shirt" || items[0].Price != 19.99 {
		t.Fatalf("shirt: %+v", items[0])
	}
	if items[1].Color != "white" {
		t.Fatalf("sneakers: %+v", items[1])
	}

	// цвета нет у товара — берётся первый
	m.SelectColor("2", "purple")
	if c := m.ResolveColor("2"); c != "blue" {
		t.Fatalf("unknown swatch must fall back: %q", c)
	}

	// пустой цвет сбрасывает выбор
	m.SelectColor("1", "")
	if c := m.ResolveColor("1"); c != "red" {
		t.Fatalf("reset color: %q", c)
	}
}

func TestAddProduct_Errors(t *testing.T) {
	ctx := context.Background()

	m, _, _ := newManager(t, nil)
	if err := m.AddProduct(ctx, "404"); !errors.Is(err, catalog.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}

	view := headless.New()
	bare := usecase.NewCartManager(memory.NewSlotStore(nil), view, view, noopLogger{})
	if err := bare.AddProduct(ctx, "1"); !errors.Is(err, usecase.ErrNoCatalog) {
		t.Fatalf("expected ErrNoCatalog, got %v", err)
	}
}

func TestPanel(t *testing.T) {
	m, _, view := newManager(t, nil)

	m.TogglePanel()
	if !m.PanelOpen() || !view.Snapshot().PanelOpen {
		t.Fatalf("toggle must open")
	}
	m.TogglePanel()
	if m.PanelOpen() {
		t.Fatalf("toggle must close")
	}
	m.OpenPanel()
	m.OpenPanel()
	if !m.PanelOpen() {
		t.Fatalf("open is idempotent")
	}
	m.ClosePanel()
	if m.PanelOpen() || view.Snapshot().PanelOpen {
		t.Fatalf("close")
	}
}

func TestApply_Dispatch(t *testing.T) {
	ctx := context.Background()
	m, _, view := newManager(t, nil)

	events := []domain.CartEvent{
		{Type: domain.EventSelectColor, ProductID: "1", Color: "black"},
		{Type: domain.EventAddProduct, ProductID: "1"},
		{Type: domain.EventAddItem, ID: "7", Name: "Socks", Price: 3.5, Color: "grey"},
		{Type: domain.EventIncrease, ID: "7", Color: "grey"},
		{Type: domain.EventQuantityInput, ID: "1", Color: "black", Input: "4"},
		{Type: domain.EventDecrease, ID: "1", Color: "black"},
		{Type: domain.EventSetQuantity, ID: "7", Color: "grey", Quantity: 5},
		{Type: domain.EventClosePanel},
		{Type: domain.EventTogglePanel},
	}
	for i := range events {
		if err := m.Apply(ctx, &events[i]); err != nil {
			t.Fatalf("event %d (%s): %v", i, events[i].Type, err)
		}
	}

	items := m.Items()
	if len(items) != 2 || items[0].Color != "black" || items[0].Quantity != 3 || items[1].Quantity != 5 {
		t.Fatalf("items: %+v", items)
	}
	if !view.Snapshot().PanelOpen {
		t.Fatalf("panel must be open after toggle")
	}

	if err := m.Apply(ctx, &domain.CartEvent{Type: domain.EventRemoveItem, ID: "7", Color: "grey"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := m.Apply(ctx, &domain.CartEvent{Type: domain.EventOpenPanel}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := m.Apply(ctx, &domain.CartEvent{Type: domain.EventCheckout, Confirm: true}); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !m.IsEmpty() || m.PanelOpen() {
		t.Fatalf("after checkout: items=%+v panel=%v", m.Items(), m.PanelOpen())
	}
}

func TestApply_Errors(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t, nil)

	err := m.Apply(ctx, &domain.CartEvent{Type: "teleport"})
	if !errors.Is(err, validate.ErrInvalidEvent) {
		t.Fatalf("unknown type: %v", err)
	}

	err = m.Apply(ctx, &domain.CartEvent{Type: domain.EventAddProduct, ProductID: "404"})
	if !errors.Is(err, validate.ErrInvalidEvent) {
		t.Fatalf("unknown product: %v", err)
	}
}

// -----------------взаимодействие с портами (gomock)-----------------

func TestAddItem_RendersAndPersists_Mocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	storage := mocks.NewMockSlotStorage(ctrl)
	view := mocks.NewMockCartView(ctrl)
	dialogs := mocks.NewMockDialogs(ctrl)

	want := []domain.LineItem{{ID: "1", Name: "Shirt", Price: 19.99, Color: "red", Quantity: 1}}

	gomock.InOrder(
		storage.EXPECT().SetItem(gomock.Any(), usecase.DefaultStorageKey,
			`[{"id":"1","name":"Shirt","price":19.99,"color":"red","quantity":1}]`).Return(nil),
		view.EXPECT().UpdateCount(1),
		view.EXPECT().RenderItems(want),
		view.EXPECT().UpdateTotal("$19.99"),
		view.EXPECT().SetPanelOpen(true),
		view.EXPECT().Toast("Shirt added to cart"),
	)

	m := usecase.NewCartManager(storage, view, dialogs, noopLogger{})
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")
}

func TestInit_EmptyStorage_RendersPlaceholder_Mocks(t *testing.T) {
	ctrl := gomock.NewController(t)

	storage := mocks.NewMockSlotStorage(ctrl)
	view := mocks.NewMockCartView(ctrl)
	dialogs := mocks.NewMockDialogs(ctrl)

	gomock.InOrder(
		storage.EXPECT().GetItem(gomock.Any(), usecase.DefaultStorageKey).Return("", false, nil),
		view.EXPECT().UpdateCount(0),
		view.EXPECT().RenderEmpty(usecase.EmptyCartMessage),
		view.EXPECT().UpdateTotal("$0.00"),
	)

	m := usecase.NewCartManager(storage, view, dialogs, noopLogger{})
	m.Init(context.Background())
}

func TestStorageFailures_DoNotBreakCart_Mocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	storage := mocks.NewMockSlotStorage(ctrl)
	view := mocks.NewMockCartView(ctrl)
	dialogs := mocks.NewMockDialogs(ctrl)
	log := mocks.NewMockLogger(ctrl)

	boom := errors.New("quota exceeded")

	storage.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return("", false, boom)
	storage.EXPECT().SetItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom).Times(2)
	view.EXPECT().UpdateCount(gomock.Any()).AnyTimes()
	view.EXPECT().RenderEmpty(gomock.Any()).AnyTimes()
	view.EXPECT().RenderItems(gomock.Any()).AnyTimes()
	view.EXPECT().UpdateTotal(gomock.Any()).AnyTimes()
	view.EXPECT().SetPanelOpen(gomock.Any()).AnyTimes()
	view.EXPECT().Toast(gomock.Any()).AnyTimes()
	// load + два persist
	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).Times(3)

	m := usecase.NewCartManager(storage, view, dialogs, log)
	m.Init(ctx)
	m.AddItem(ctx, "1", "Shirt", 19.99, "red")

	if err := m.Persist(ctx); !errors.Is(err, boom) {
		t.Fatalf("persist must return storage error, got %v", err)
	}
	if m.Count() != 1 {
		t.Fatalf("in-memory state must advance: %+v", m.Items())
	}
}

func TestCheckout_ConfirmDeclined_Mocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	storage := mocks.NewMockSlotStorage(ctrl)
	view := mocks.NewMockCartView(ctrl)
	dialogs := mocks.NewMockDialogs(ctrl)

	storage.EXPECT().SetItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	view.EXPECT().UpdateCount(gomock.Any()).AnyTimes()
	view.EXPECT().RenderItems(gomock.Any()).AnyTimes()
	view.EXPECT().UpdateTotal(gomock.Any()).AnyTimes()
	view.EXPECT().SetPanelOpen(true).Times(1)
	view.EXPECT().Toast(gomock.Any()).Times(1)

	dialogs.EXPECT().
		Confirm(gomock.Any(), "Are you sure you want to complete your purchase for a total of $49.99?").
		Return(false)
	dialogs.EXPECT().Alert(gomock.Any(), gomock.Any()).Times(0)

	m := usecase.NewCartManager(storage, view, dialogs, noopLogger{})
	m.AddItem(ctx, "2", "Jeans", 49.99, "blue")

	if res := m.Checkout(ctx); res != usecase.CheckoutCancelled {
		t.Fatalf("result: %v", res)
	}
}

func findItem(items []domain.LineItem, id, color string) (domain.LineItem, bool) {
	for _, it := range items {
		if it.ID == id && it.Color == color {
			return it, true
		}
	}
	return domain.LineItem{}, false
}
