// internal/domain/bundle/service_test.go
package bundle

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

// testCatalog offers six single-variant products through two widgets:
// "summer-box" (min 3, max 5) and "open-box" (unbounded).
func testCatalog() *catalog.Service {
	products := make([]catalog.Product, 0, 6)
	links := make([]catalog.BundleWidgetProduct, 0, 6)
	titles := []string{"Mango Soda", "Lime Soda", "Cherry Soda", "Grape Soda", "Peach Soda", "Cola"}
	for i, title := range titles {
		id := uint(i + 1)
		products = append(products, catalog.Product{
			ID:    id,
			Slug:  strings.ToLower(strings.ReplaceAll(title, " ", "-")),
			Title: title,
			Price: 299,
			Variants: []catalog.Variant{
				{ID: id*10 + 1, ProductID: id, Title: "Default Title", Price: 299, Available: true, Position: 1},
			},
		})
		links = append(links, catalog.BundleWidgetProduct{WidgetID: 1, ProductID: id, SortOrder: i})
	}

	widgets := []catalog.BundleWidget{
		{ID: 1, Code: "summer-box", Title: "Summer Box", MinItems: 3, MaxItems: 5, Products: links},
		{ID: 2, Code: "open-box", Title: "Open Box", MinItems: 1, Products: links[:3]},
	}

	svc := catalog.NewService(nil)
	svc.Populate(products, widgets)
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
	return NewService(store, testCatalog(), flow, cfg, logger), toasts
}

func TestToggleSelectsAndRemoves(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	view, err := svc.Toggle(ctx, "sess", "summer-box", 11)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if view.SelectedCount != 1 || view.TotalQuantity != 1 {
		t.Errorf("got count=%d total=%d after toggle on", view.SelectedCount, view.TotalQuantity)
	}
	if !strings.Contains(view.HTML, `bundle-card is-selected" data-bundle-card data-variant-id="11"`) {
		t.Error("expected card 11 marked selected")
	}

	// Toggle-off is full removal, not decrement.
	if _, err := svc.StepQuantity(ctx, "sess", "summer-box", 11, 2); err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}
	view, err = svc.Toggle(ctx, "sess", "summer-box", 11)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if view.SelectedCount != 0 || view.TotalQuantity != 0 {
		t.Errorf("got count=%d total=%d after toggle off", view.SelectedCount, view.TotalQuantity)
	}
}

func TestMinimumGateAndCapacity(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	var view *View
	var err error
	for _, id := range []uint{11, 21} {
		if view, err = svc.Toggle(ctx, "sess", "summer-box", id); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}
	if !view.ButtonDisabled || view.ButtonLabel != "Select at least 3 items" {
		t.Errorf("got button %q disabled=%v at total 2", view.ButtonLabel, view.ButtonDisabled)
	}

	if view, err = svc.Toggle(ctx, "sess", "summer-box", 31); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if view.ButtonDisabled || view.ButtonLabel != "Add Bundle to Cart (3)" {
		t.Errorf("got button %q disabled=%v at total 3", view.ButtonLabel, view.ButtonDisabled)
	}

	// Fill to the maximum, then attempt a sixth item.
	if view, err = svc.StepQuantity(ctx, "sess", "summer-box", 31, 2); err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}
	if view.TotalQuantity != 5 || view.Progress != 100 {
		t.Errorf("got total=%d progress=%d", view.TotalQuantity, view.Progress)
	}

	view, err = svc.Toggle(ctx, "sess", "summer-box", 41)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if view.Banner == "" {
		t.Error("expected capacity banner")
	}
	if view.TotalQuantity != 5 {
		t.Errorf("capacity rejection must leave total unchanged, got %d", view.TotalQuantity)
	}

	view, err = svc.StepQuantity(ctx, "sess", "summer-box", 11, 1)
	if err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}
	if view.Banner == "" || view.TotalQuantity != 5 {
		t.Errorf("increment past max must be rejected, got total=%d banner=%q", view.TotalQuantity, view.Banner)
	}
}

func TestBannerClearsOnSuccessfulChange(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	for _, id := range []uint{11, 21, 31, 41, 51} {
		if _, err := svc.Toggle(ctx, "sess", "summer-box", id); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}
	view, _ := svc.Toggle(ctx, "sess", "summer-box", 61)
	if view.Banner == "" {
		t.Fatal("expected capacity banner")
	}

	view, err := svc.StepQuantity(ctx, "sess", "summer-box", 11, -1)
	if err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}
	if view.Banner != "" {
		t.Errorf("successful change must clear the banner, got %q", view.Banner)
	}
}

func TestStepQuantityRemovesAtZero(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "sess", "summer-box", 11); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	view, err := svc.StepQuantity(ctx, "sess", "summer-box", 11, -1)
	if err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}
	if view.SelectedCount != 0 || view.TotalQuantity != 0 {
		t.Errorf("decrement to zero must remove the card, got count=%d total=%d", view.SelectedCount, view.TotalQuantity)
	}
}

func TestUnboundedWidgetShowsCountLabel(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "sess", "open-box", 11); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	view, err := svc.StepQuantity(ctx, "sess", "open-box", 11, 6)
	if err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}

	if view.Bounded {
		t.Error("widget without max must be unbounded")
	}
	if view.Banner != "" || view.TotalQuantity != 7 {
		t.Errorf("unbounded widget must accept any total, got total=%d banner=%q", view.TotalQuantity, view.Banner)
	}
	if !strings.Contains(view.HTML, "7 items selected") {
		t.Error("expected plain count label")
	}
	if strings.Contains(view.HTML, "bundle-progress") {
		t.Error("unbounded widget must not show a progress bar")
	}
}

func TestGridStripsProductLinks(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")

	view, err := svc.State(context.Background(), "sess", "summer-box")
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if strings.Contains(view.HTML, "<a ") {
		t.Error("bundle grid must not carry product links")
	}
}

func TestSubmitBelowMinimum(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "sess", "summer-box", 11); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	view, drawerView, err := svc.Submit(ctx, "sess", "summer-box")
	if !validation.Is(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if drawerView != nil {
		t.Error("no drawer view expected on refusal")
	}
	if view.Banner != "Select at least 3 items" {
		t.Errorf("got banner %q", view.Banner)
	}
	if view.TotalQuantity != 1 {
		t.Errorf("refusal must leave the selection intact, got total %d", view.TotalQuantity)
	}
}

func TestSubmitSuccessResetsSelection(t *testing.T) {
	var addPayload struct {
		Items []cartapi.AddItem `json:"items"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart/add.js":
			json.NewDecoder(r.Body).Decode(&addPayload)
			json.NewEncoder(w).Encode(cartapi.AddResult{})
		case "/cart.js":
			json.NewEncoder(w).Encode(cartapi.Cart{ItemCount: 3, TotalPrice: 897})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc, toasts := newTestService(t, server.URL)
	ctx := context.Background()

	for _, id := range []uint{11, 21} {
		if _, err := svc.Toggle(ctx, "sess", "summer-box", id); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}
	if _, err := svc.StepQuantity(ctx, "sess", "summer-box", 21, 1); err != nil {
		t.Fatalf("StepQuantity failed: %v", err)
	}

	view, drawerView, err := svc.Submit(ctx, "sess", "summer-box")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(addPayload.Items) != 2 {
		t.Fatalf("got %d batch items, want one per selected variant", len(addPayload.Items))
	}
	bundleID := addPayload.Items[0].Properties[BundleIDProperty]
	if bundleID == "" {
		t.Error("batch items must carry a bundle id")
	}
	for _, item := range addPayload.Items {
		if item.Properties[BundleIDProperty] != bundleID {
			t.Error("bundle id must be shared across the batch")
		}
		if item.Properties[BundleSizeProperty] != "3" {
			t.Errorf("got bundle size %q, want total item count", item.Properties[BundleSizeProperty])
		}
	}

	if view.TotalQuantity != 0 || view.SelectedCount != 0 {
		t.Errorf("selection must reset after success, got total=%d count=%d", view.TotalQuantity, view.SelectedCount)
	}
	if drawerView == nil || !drawerView.Open {
		t.Error("expected drawer scheduled to open")
	}
	if got, ok := toasts.Current(ctx, "sess"); !ok || got.Kind != toast.KindSuccess {
		t.Errorf("expected success toast, got %+v ok=%v", got, ok)
	}

	state, err := svc.State(ctx, "sess", "summer-box")
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if state.TotalQuantity != 0 {
		t.Errorf("stored selection must be cleared, got total %d", state.TotalQuantity)
	}
}

func TestSubmitFailureKeepsSelection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"description":"Sold out"}`))
	}))
	defer server.Close()

	svc, toasts := newTestService(t, server.URL)
	ctx := context.Background()

	for _, id := range []uint{11, 21, 31} {
		if _, err := svc.Toggle(ctx, "sess", "summer-box", id); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}

	view, _, err := svc.Submit(ctx, "sess", "summer-box")
	if err == nil {
		t.Fatal("expected failure")
	}
	if view.Banner != "Sold out" {
		t.Errorf("got banner %q", view.Banner)
	}
	if view.TotalQuantity != 3 {
		t.Errorf("failure must leave the selection intact for retry, got total %d", view.TotalQuantity)
	}
	if got, ok := toasts.Current(ctx, "sess"); !ok || got.Kind != toast.KindError {
		t.Errorf("expected error toast, got %+v ok=%v", got, ok)
	}
}
