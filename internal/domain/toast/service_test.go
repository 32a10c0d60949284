// internal/domain/toast/service_test.go
package toast

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
)

func newTestService() *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(statestore.NewLocalStore(), logger)
}

func TestNotifyAndCurrent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Notify(ctx, "sess", "Added to cart", KindSuccess)

	got, ok := svc.Current(ctx, "sess")
	if !ok {
		t.Fatal("expected a visible toast")
	}
	if got.Message != "Added to cart" || got.Kind != KindSuccess {
		t.Errorf("got %+v", got)
	}
}

func TestNotifyReplacesPrevious(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Notify(ctx, "sess", "first", KindSuccess)
	svc.Notify(ctx, "sess", "second", KindError)

	got, ok := svc.Current(ctx, "sess")
	if !ok {
		t.Fatal("expected a visible toast")
	}
	if got.Message != "second" || got.Kind != KindError {
		t.Errorf("replacement did not win: %+v", got)
	}
}

func TestToastIsPerSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Notify(ctx, "a", "for a", KindSuccess)

	if _, ok := svc.Current(ctx, "b"); ok {
		t.Error("toast leaked across sessions")
	}
}

func TestFragmentErrorClass(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Notify(ctx, "sess", "Could not add item", KindError)
	frag := svc.Fragment(ctx, "sess")

	if !strings.Contains(frag, "toast--error") {
		t.Errorf("expected error class in %q", frag)
	}
	if !strings.Contains(frag, "Could not add item") {
		t.Errorf("expected message in %q", frag)
	}
}

func TestFragmentEmptyWhenNoToast(t *testing.T) {
	svc := newTestService()
	if frag := svc.Fragment(context.Background(), "sess"); frag != "" {
		t.Errorf("expected empty fragment, got %q", frag)
	}
}

func TestFragmentEscapesMarkup(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Notify(ctx, "sess", "<script>alert(1)</script>", KindSuccess)
	frag := svc.Fragment(ctx, "sess")

	if strings.Contains(frag, "<script>") {
		t.Errorf("message was not escaped: %q", frag)
	}
}
