// internal/domain/pdp/service_test.go
package pdp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/domain/catalog"
	"github.com/your-org/storefront-bff/internal/domain/drawer"
	"github.com/your-org/storefront-bff/internal/domain/storefront"
	"github.com/your-org/storefront-bff/internal/domain/toast"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
	"github.com/your-org/storefront-bff/internal/pkg/validation"
)

func testCatalog() *catalog.Service {
	products := []catalog.Product{
		{
			ID:    1,
			Slug:  "classic-tee",
			Title: "Classic Tee",
			Price: 1999,
			Options: []catalog.ProductOption{
				{ProductID: 1, Position: 1, Name: "Size"},
				{ProductID: 1, Position: 2, Name: "Color"},
			},
			Variants: []catalog.Variant{
				{ID: 11, ProductID: 1, Title: "S / Black", Price: 1999, Available: true, Option1: "S", Option2: "Black", Position: 1},
				{ID: 12, ProductID: 1, Title: "M / Black", Price: 1999, Available: true, Option1: "M", Option2: "Black", Position: 2},
				{ID: 13, ProductID: 1, Title: "S / White", Price: 2499, Available: false, Option1: "S", Option2: "White", Position: 3},
			},
		},
		{
			ID:    2,
			Slug:  "gift-card",
			Title: "Gift Card",
			Price: 5000,
		},
	}

	svc := catalog.NewService(nil)
	svc.Populate(products, nil)
	return svc
}

func newTestService(t *testing.T, baseURL string) (*Service, *toast.Service) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:     baseURL,
			AddPath:     "/cart/add.js",
			UpdatePath:  "/cart/update.js",
			ChangePath:  "/cart/change.js",
			CartPath:    "/cart.js",
			Timeout:     5 * time.Second,
			MoneyFormat: "${{amount}}",
		},
	}

	store := statestore.NewLocalStore()
	api := cartapi.NewClient(cfg)
	toasts := toast.NewService(store, logger)
	drawerSvc := drawer.NewService(store, api, toasts, cfg, logger)
	flow := storefront.NewService(api, drawerSvc, toasts, logger)
	return NewService(store, testCatalog(), flow, toasts, cfg, logger), toasts
}

func TestStateSeedsFromFirstVariant(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	view, err := svc.State(ctx, "sess", "classic-tee")
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}

	if view.VariantID != 11 {
		t.Errorf("got variant %d, want first variant 11", view.VariantID)
	}
	if view.Quantity != 1 {
		t.Errorf("got quantity %d", view.Quantity)
	}
	if view.PriceDisplay != "$19.99" {
		t.Errorf("got price %q", view.PriceDisplay)
	}
	if view.ButtonLabel != labelAddToCart || view.ButtonDisabled {
		t.Errorf("got button %q disabled=%v", view.ButtonLabel, view.ButtonDisabled)
	}
	if !strings.Contains(view.HTML, `data-option-value="S">S</button>`) {
		t.Error("expected Size pills in form")
	}
	if !strings.Contains(view.HTML, "data-variant-data") {
		t.Error("expected embedded variant data blob")
	}
}

func TestSelectOptionReplacesSiblingPill(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	view, err := svc.SelectOption(ctx, "sess", "classic-tee", 1, "M")
	if err != nil {
		t.Fatalf("SelectOption failed: %v", err)
	}

	if view.VariantID != 12 {
		t.Errorf("got variant %d, want 12", view.VariantID)
	}
	if !strings.Contains(view.HTML, `option-pill is-active" type="button" data-option-value="M"`) {
		t.Error("expected M pill active")
	}
	if strings.Contains(view.HTML, `option-pill is-active" type="button" data-option-value="S"`) {
		t.Error("S pill should have been deselected")
	}
}

func TestSelectOptionNoMatchKeepsPreviousVariant(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	if _, err := svc.SelectOption(ctx, "sess", "classic-tee", 1, "M"); err != nil {
		t.Fatalf("SelectOption failed: %v", err)
	}

	// No M / White variant exists; the selection resolves nothing.
	view, err := svc.SelectOption(ctx, "sess", "classic-tee", 2, "White")
	if err != nil {
		t.Fatalf("SelectOption failed: %v", err)
	}

	if view.VariantID != 12 {
		t.Errorf("got variant %d, want previous match 12", view.VariantID)
	}
	if view.PriceDisplay != "$19.99" {
		t.Errorf("price should stay at the previous match, got %q", view.PriceDisplay)
	}
	if view.ButtonDisabled {
		t.Error("button state should stay at the previous match")
	}
}

func TestSelectOptionSoldOutVariant(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	view, err := svc.SelectOption(ctx, "sess", "classic-tee", 2, "White")
	if err != nil {
		t.Fatalf("SelectOption failed: %v", err)
	}

	if view.VariantID != 13 {
		t.Errorf("got variant %d, want 13", view.VariantID)
	}
	if view.PriceDisplay != "$24.99" {
		t.Errorf("got price %q", view.PriceDisplay)
	}
	if view.ButtonLabel != labelSoldOut || !view.ButtonDisabled {
		t.Errorf("got button %q disabled=%v", view.ButtonLabel, view.ButtonDisabled)
	}
}

func TestSelectOptionRejectsBadPosition(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.SelectOption(context.Background(), "sess", "classic-tee", 4, "XL")
	if !validation.Is(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestStepQuantityFloorsAtOne(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	view, err := svc.StepQuantity(ctx, "sess", "classic-tee", -5)
	if err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}
	if view.Quantity != 1 {
		t.Errorf("got quantity %d, want floor of 1", view.Quantity)
	}

	view, err = svc.StepQuantity(ctx, "sess", "classic-tee", 2)
	if err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}
	if view.Quantity != 3 {
		t.Errorf("got quantity %d, want 3", view.Quantity)
	}
}

func TestSubmitWithoutResolvedVariant(t *testing.T) {
	svc, toasts := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	_, err := svc.Submit(ctx, "sess", "gift-card")
	if !validation.Is(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, ok := toasts.Current(ctx, "sess")
	if !ok || got.Kind != toast.KindError {
		t.Fatalf("expected error toast, got %+v ok=%v", got, ok)
	}
}

func TestSubmitAddsMatchedVariant(t *testing.T) {
	var addPayload struct {
		Items []cartapi.AddItem `json:"items"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart/add.js":
			json.NewDecoder(r.Body).Decode(&addPayload)
			json.NewEncoder(w).Encode(cartapi.AddResult{})
		case "/cart.js":
			json.NewEncoder(w).Encode(cartapi.Cart{
				ItemCount:  2,
				TotalPrice: 3998,
				Items:      []cartapi.Item{{Key: "a", VariantID: 11, ProductTitle: "Classic Tee", Quantity: 2, LinePrice: 3998}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc, _ := newTestService(t, server.URL)
	ctx := context.Background()

	if _, err := svc.StepQuantity(ctx, "sess", "classic-tee", 1); err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}

	view, err := svc.Submit(ctx, "sess", "classic-tee")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(addPayload.Items) != 1 || addPayload.Items[0].VariantID != 11 || addPayload.Items[0].Quantity != 2 {
		t.Errorf("got add payload %+v", addPayload)
	}
	if !view.Open {
		t.Error("expected drawer scheduled to open")
	}
}
