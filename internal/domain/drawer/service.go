// internal/domain/drawer/service.go
package drawer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/domain/toast"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
	"github.com/your-org/storefront-bff/internal/pkg/validation"
)

// stateTTL bounds how long per-session drawer state and the cached
// cart snapshot live without activity.
const stateTTL = 24 * time.Hour

// lineCommand maps a displayed quantity to the quantity a line-change
// call should request.
type lineCommand func(current int) int

// lineCommands is the typed command table for item-level actions,
// populated once at package init and dispatched by explicit lookup.
var lineCommands = map[string]lineCommand{
	"increment": func(q int) int { return q + 1 },
	"decrement": func(q int) int {
		if q <= 0 {
			return 0
		}
		return q - 1
	},
	"remove": func(int) int { return 0 },
}

// Service owns the drawer state machine and its rendering cycle
type Service struct {
	store       statestore.Store
	api         *cartapi.Client
	toasts      *toast.Service
	logger      *logrus.Logger
	moneyFormat string
}

// NewService creates a new drawer service
func NewService(store statestore.Store, api *cartapi.Client, toasts *toast.Service, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		store:       store,
		api:         api,
		toasts:      toasts,
		logger:      logger,
		moneyFormat: cfg.Upstream.MoneyFormat,
	}
}

// Open transitions Closed→Open, locks page scroll, targets focus at
// the close control, and refreshes the cart so the panel shows the
// server's current truth.
func (s *Service) Open(ctx context.Context, sessionID string) (*View, error) {
	s.setOpen(ctx, sessionID, true)
	return s.Refresh(ctx, sessionID)
}

// Close transitions Open→Closed and restores page scroll. Overlay
// click, the close control and Escape all arrive here.
func (s *Service) Close(ctx context.Context, sessionID string) (*View, error) {
	s.setOpen(ctx, sessionID, false)

	cart := s.cachedCart(ctx, sessionID)
	return s.Render(cart, false)
}

// Fragment renders the drawer in its current state without mutating
// anything.
func (s *Service) Fragment(ctx context.Context, sessionID string) (*View, error) {
	return s.render(ctx, sessionID, s.cachedCart(ctx, sessionID))
}

// Refresh fetches the current cart and re-renders. Failures are
// logged, not surfaced: a background refresh error is non-actionable
// noise to the visitor, unlike a failed user-initiated mutation.
func (s *Service) Refresh(ctx context.Context, sessionID string) (*View, error) {
	cart, err := s.api.Session(sessionID).FetchCart(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Cart refresh failed")
		return s.render(ctx, sessionID, s.cachedCart(ctx, sessionID))
	}

	s.saveSnapshot(ctx, sessionID, cart)
	return s.render(ctx, sessionID, cart)
}

// HandleLineAction applies one item-level action (increment,
// decrement, remove) to a cart line: it reads the currently displayed
// quantity from the last rendered snapshot, issues the line change,
// and re-renders from the snapshot the call returned. Failures are
// surfaced through the toast notifier and the previous view is
// returned so the control comes back interactive.
func (s *Service) HandleLineAction(ctx context.Context, sessionID, key, action string) (*View, error) {
	command, ok := lineCommands[action]
	if !ok {
		return nil, validation.Errorf("unknown line action %q", action)
	}

	current := s.displayedQuantity(ctx, sessionID, key)

	cart, err := s.api.Session(sessionID).ChangeLine(ctx, key, command(current))
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"line_key":   key,
			"action":     action,
		}).Warn("Cart line change failed")
		s.toasts.Notify(ctx, sessionID, err.Error(), toast.KindError)

		view, renderErr := s.render(ctx, sessionID, s.cachedCart(ctx, sessionID))
		if renderErr != nil {
			return nil, renderErr
		}
		return view, err
	}

	s.saveSnapshot(ctx, sessionID, cart)
	return s.render(ctx, sessionID, cart)
}

// CompleteAdd re-renders the drawer from a fresh snapshot after an
// add flow and schedules it to open after a short delay.
func (s *Service) CompleteAdd(ctx context.Context, sessionID string, cart *cartapi.Cart, openDelay time.Duration) (*View, error) {
	s.saveSnapshot(ctx, sessionID, cart)
	s.setOpen(ctx, sessionID, true)

	view, err := s.Render(cart, true)
	if err != nil {
		return nil, err
	}
	view.OpenDelayMS = int(openDelay / time.Millisecond)
	return view, nil
}

// render renders a snapshot in the session's current open state
func (s *Service) render(ctx context.Context, sessionID string, cart *cartapi.Cart) (*View, error) {
	var state State
	if _, err := s.store.GetJSON(ctx, s.stateKey(sessionID), &state); err != nil {
		s.logger.WithError(err).Warn("Failed to load drawer state")
	}
	return s.Render(cart, state.Open)
}

func (s *Service) setOpen(ctx context.Context, sessionID string, open bool) {
	state := State{Open: open}
	if err := s.store.SetJSON(ctx, s.stateKey(sessionID), state, stateTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to store drawer state")
	}
}

// displayedQuantity reads a line's quantity from the last rendered
// snapshot, matching what the visitor currently sees.
func (s *Service) displayedQuantity(ctx context.Context, sessionID, key string) int {
	cart := s.cachedCart(ctx, sessionID)
	for i := range cart.Items {
		if cart.Items[i].Key == key {
			return cart.Items[i].Quantity
		}
	}
	return 0
}

// cachedCart returns the most recently fetched snapshot, or an empty
// cart when none exists.
func (s *Service) cachedCart(ctx context.Context, sessionID string) *cartapi.Cart {
	var cart cartapi.Cart
	ok, err := s.store.GetJSON(ctx, s.snapshotKey(sessionID), &cart)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load cart snapshot")
	}
	if !ok || err != nil {
		return &cartapi.Cart{Items: []cartapi.Item{}}
	}
	return &cart
}

// saveSnapshot replaces the cached snapshot wholesale
func (s *Service) saveSnapshot(ctx context.Context, sessionID string, cart *cartapi.Cart) {
	if err := s.store.SetJSON(ctx, s.snapshotKey(sessionID), cart, stateTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to store cart snapshot")
	}
}

func (s *Service) stateKey(sessionID string) string {
	return fmt.Sprintf("drawer:%s", sessionID)
}

func (s *Service) snapshotKey(sessionID string) string {
	return fmt.Sprintf("cart_snapshot:%s", sessionID)
}
