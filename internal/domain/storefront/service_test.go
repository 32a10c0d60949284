// internal/domain/storefront/service_test.go
package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/domain/drawer"
	"github.com/your-org/storefront-bff/internal/domain/toast"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
)

func newTestService(baseURL string) (*Service, *toast.Service) {
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
	return NewService(api, drawerSvc, toasts, logger), toasts
}

func TestAddToCartHappyPath(t *testing.T) {
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
				ItemCount:  1,
				TotalPrice: 1999,
				Items:      []cartapi.Item{{Key: "a", VariantID: 11, ProductTitle: "Classic Tee", Quantity: 1, LinePrice: 1999}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc, toasts := newTestService(server.URL)
	ctx := context.Background()

	view, err := svc.AddToCart(ctx, "sess", 11, 1, nil)
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	if len(addPayload.Items) != 1 || addPayload.Items[0].VariantID != 11 {
		t.Errorf("got add payload %+v", addPayload)
	}
	if !view.Open {
		t.Error("expected drawer scheduled to open")
	}
	if view.OpenDelayMS != int(OpenDelay/time.Millisecond) {
		t.Errorf("got open delay %d", view.OpenDelayMS)
	}
	if view.ItemCount != 1 {
		t.Errorf("got badge count %d", view.ItemCount)
	}

	got, ok := toasts.Current(ctx, "sess")
	if !ok || got.Kind != toast.KindSuccess {
		t.Errorf("expected success toast, got %+v ok=%v", got, ok)
	}
}

func TestAddToCartUpstreamRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cart/add.js" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"description":"Sold out"}`))
			return
		}
		t.Errorf("no further calls expected, got %s", r.URL.Path)
	}))
	defer server.Close()

	svc, toasts := newTestService(server.URL)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "sess", 11, 1, nil); err == nil {
		t.Fatal("expected failure")
	}

	got, ok := toasts.Current(ctx, "sess")
	if !ok || got.Kind != toast.KindError {
		t.Fatalf("expected error toast, got %+v ok=%v", got, ok)
	}
	if got.Message != "Sold out" {
		t.Errorf("toast should carry the server description, got %q", got.Message)
	}
}

func TestAddToCartFetchFailureLeavesDrawerClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart/add.js":
			json.NewEncoder(w).Encode(cartapi.AddResult{})
		case "/cart.js":
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	svc, toasts := newTestService(server.URL)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "sess", 11, 1, nil); err == nil {
		t.Fatal("expected failure")
	}

	if got, ok := toasts.Current(ctx, "sess"); !ok || got.Kind != toast.KindError {
		t.Errorf("expected error toast, got %+v ok=%v", got, ok)
	}
}
