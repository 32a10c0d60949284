// internal/domain/storefront/service.go
package storefront

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/domain/drawer"
	"github.com/your-org/storefront-bff/internal/domain/toast"
)

// OpenDelay is the short fixed pause between a successful add and the
// drawer sliding open.
const OpenDelay = 600 * time.Millisecond

// Service is the shared add-to-cart flow: add, re-fetch, push the
// result through the drawer's render and badge updates, toast, then
// open the drawer. It is a client of the drawer's public operations,
// which lets unrelated widgets (the bundle selector, quick-add tiles)
// drive the shared drawer without reimplementing it.
type Service struct {
	api    *cartapi.Client
	drawer *drawer.Service
	toasts *toast.Service
	logger *logrus.Logger
}

// NewService creates a new storefront service
func NewService(api *cartapi.Client, drawerSvc *drawer.Service, toasts *toast.Service, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		drawer: drawerSvc,
		toasts: toasts,
		logger: logger,
	}
}

// AddToCart adds a single-item batch and completes the shared flow.
// On any failure an error toast carries the failure's message and the
// drawer stays closed.
func (s *Service) AddToCart(ctx context.Context, sessionID string, variantID uint, quantity int, properties map[string]string) (*drawer.View, error) {
	items := []cartapi.AddItem{
		{VariantID: variantID, Quantity: quantity, Properties: properties},
	}
	return s.AddBatch(ctx, sessionID, items, "Added to cart")
}

// AddBatch adds a multi-line batch in a single upstream call. The
// upstream applies a batch atomically, so a rejected line rejects the
// whole batch.
func (s *Service) AddBatch(ctx context.Context, sessionID string, items []cartapi.AddItem, successMessage string) (*drawer.View, error) {
	if _, err := s.api.Session(sessionID).AddItems(ctx, items); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Add to cart failed")
		s.toasts.Notify(ctx, sessionID, err.Error(), toast.KindError)
		return nil, err
	}

	return s.FinishAdd(ctx, sessionID, successMessage)
}

// FinishAdd completes an already-performed add: fetch the
// post-mutation cart, render the drawer and badges from it, show the
// success toast, and schedule the drawer to open.
func (s *Service) FinishAdd(ctx context.Context, sessionID, successMessage string) (*drawer.View, error) {
	cart, err := s.api.Session(sessionID).FetchCart(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Cart fetch after add failed")
		s.toasts.Notify(ctx, sessionID, err.Error(), toast.KindError)
		return nil, err
	}

	view, err := s.drawer.CompleteAdd(ctx, sessionID, cart, OpenDelay)
	if err != nil {
		return nil, err
	}

	s.toasts.Notify(ctx, sessionID, successMessage, toast.KindSuccess)
	return view, nil
}
