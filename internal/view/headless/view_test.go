package headless_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/view/headless"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
)

func TestView_Initial(t *testing.T) {
	s := headless.New().Snapshot()
	if s.Total != "$0.00" || s.Count != 0 || s.Items == nil || len(s.Items) != 0 || s.PanelOpen {
		t.Fatalf("initial snapshot: %+v", s)
	}
}

func TestView_RenderItemsThenEmpty(t *testing.T) {
	v := headless.New()
	items := []domain.LineItem{{ID: "1", Name: "Shirt", Price: 19.99, Color: "red", Quantity: 2}}

	v.RenderItems(items)
	v.UpdateCount(2)
	v.UpdateTotal("$39.98")
	v.SetPanelOpen(true)

	items[0].Quantity = 100 // представление хранит копию
	s := v.Snapshot()
	if len(s.Items) != 1 || s.Items[0].Quantity != 2 || s.Count != 2 || s.Total != "$39.98" || !s.PanelOpen {
		t.Fatalf("snapshot: %+v", s)
	}
	if s.EmptyMessage != "" {
		t.Fatalf("empty message must be cleared: %q", s.EmptyMessage)
	}

	v.RenderEmpty("Your cart is empty")
	s = v.Snapshot()
	if len(s.Items) != 0 || s.EmptyMessage != "Your cart is empty" {
		t.Fatalf("after RenderEmpty: %+v", s)
	}
}

func TestView_DrainReturnsNotificationsOnce(t *testing.T) {
	ctx := context.Background()
	v := headless.New()

	v.Toast("Shirt added to cart")
	v.Alert(ctx, "warning")
	_ = v.Confirm(ctx, "sure?")

	if s := v.Snapshot(); len(s.Toasts) != 1 || len(s.Alerts) != 1 || len(s.Prompts) != 1 {
		t.Fatalf("snapshot must not drain: %+v", s)
	}

	s := v.Drain()
	if s.Toasts[0] != "Shirt added to cart" || s.Alerts[0] != "warning" || s.Prompts[0] != "sure?" {
		t.Fatalf("drain: %+v", s)
	}
	if again := v.Drain(); len(again.Toasts)+len(again.Alerts)+len(again.Prompts) != 0 {
		t.Fatalf("second drain must be empty: %+v", again)
	}
}

func TestView_ConfirmReadsContext(t *testing.T) {
	v := headless.New()

	if v.Confirm(context.Background(), "?") {
		t.Fatalf("no answer in context → decline")
	}
	if !v.Confirm(ctxmeta.WithCheckoutConfirm(context.Background(), true), "?") {
		t.Fatalf("expected confirm from context")
	}
	if v.Confirm(ctxmeta.WithCheckoutConfirm(context.Background(), false), "?") {
		t.Fatalf("expected decline from context")
	}
}
