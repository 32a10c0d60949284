// internal/domain/bundle/service.go
package bundle

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/domain/catalog"
	"github.com/your-org/storefront-bff/internal/domain/drawer"
	"github.com/your-org/storefront-bff/internal/domain/storefront"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
	"github.com/your-org/storefront-bff/internal/pkg/money"
	"github.com/your-org/storefront-bff/internal/pkg/validation"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var widgetTmpl = template.Must(template.ParseFS(templateFS, "templates/bundle.gohtml"))

const stateTTL = 24 * time.Hour

// Service drives the build-your-own-bundle widget. Each widget's grid
// and min/max limits come from the catalog; per-session pick state
// lives in the state store and submits through the shared add-to-cart
// flow as one multi-line batch.
type Service struct {
	store       statestore.Store
	catalog     *catalog.Service
	flow        *storefront.Service
	logger      *logrus.Logger
	moneyFormat string
}

// NewService creates a new bundle service
func NewService(store statestore.Store, catalogSvc *catalog.Service, flow *storefront.Service, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		store:       store,
		catalog:     catalogSvc,
		flow:        flow,
		logger:      logger,
		moneyFormat: cfg.Upstream.MoneyFormat,
	}
}

// State renders the widget in its current selection state
func (s *Service) State(ctx context.Context, sessionID, code string) (*View, error) {
	widget, ok := s.catalog.Widget(code)
	if !ok {
		return nil, fmt.Errorf("bundle widget %q not found", code)
	}

	sel := s.loadSelection(ctx, sessionID, code)
	return s.render(widget, sel, "")
}

// Toggle selects an unselected card at quantity 1 or removes a
// selected card entirely. A toggle-on that would exceed the widget's
// maximum is rejected with a capacity error and no state change.
func (s *Service) Toggle(ctx context.Context, sessionID, code string, variantID uint) (*View, error) {
	widget, ok := s.catalog.Widget(code)
	if !ok {
		return nil, fmt.Errorf("bundle widget %q not found", code)
	}
	if !s.inGrid(widget, variantID) {
		return nil, validation.Errorf("variant %d is not part of this bundle", variantID)
	}

	sel := s.loadSelection(ctx, sessionID, code)
	if _, selected := sel.Quantities[variantID]; selected {
		delete(sel.Quantities, variantID)
	} else {
		if exceeds(widget, sel.Total()+1) {
			return s.render(widget, sel, s.capacityMessage(widget))
		}
		sel.Quantities[variantID] = 1
	}

	s.saveSelection(ctx, sessionID, code, sel)
	return s.render(widget, sel, "")
}

// StepQuantity adjusts one selected card's quantity. Decrementing to
// zero removes the card; incrementing past the widget's maximum is
// rejected with a capacity error and no state change.
func (s *Service) StepQuantity(ctx context.Context, sessionID, code string, variantID uint, delta int) (*View, error) {
	widget, ok := s.catalog.Widget(code)
	if !ok {
		return nil, fmt.Errorf("bundle widget %q not found", code)
	}
	if !s.inGrid(widget, variantID) {
		return nil, validation.Errorf("variant %d is not part of this bundle", variantID)
	}

	sel := s.loadSelection(ctx, sessionID, code)
	qty := sel.Quantities[variantID] + delta
	if delta > 0 && exceeds(widget, sel.Total()+delta) {
		return s.render(widget, sel, s.capacityMessage(widget))
	}

	if qty <= 0 {
		delete(sel.Quantities, variantID)
	} else {
		sel.Quantities[variantID] = qty
	}

	s.saveSelection(ctx, sessionID, code, sel)
	return s.render(widget, sel, "")
}

// Submit sends one batch item per selected variant, each tagged with a
// shared bundle id and the bundle's total item count. Success resets
// the selection and completes the shared add-to-cart flow; failure
// keeps the selection intact for retry and surfaces an inline banner
// alongside the error toast.
func (s *Service) Submit(ctx context.Context, sessionID, code string) (*View, *drawer.View, error) {
	widget, ok := s.catalog.Widget(code)
	if !ok {
		return nil, nil, fmt.Errorf("bundle widget %q not found", code)
	}

	sel := s.loadSelection(ctx, sessionID, code)
	total := sel.Total()
	min := minItems(widget)
	if total < min {
		view, err := s.render(widget, sel, fmt.Sprintf("Select at least %d items", min))
		if err != nil {
			return nil, nil, err
		}
		return view, nil, validation.Errorf("bundle needs at least %d items", min)
	}

	bundleID := uuid.New().String()
	items := make([]cartapi.AddItem, 0, len(sel.Quantities))
	for _, card := range s.cards(widget, sel) {
		qty, selected := sel.Quantities[card.VariantID]
		if !selected {
			continue
		}
		items = append(items, cartapi.AddItem{
			VariantID: card.VariantID,
			Quantity:  qty,
			Properties: map[string]string{
				BundleIDProperty:   bundleID,
				BundleSizeProperty: strconv.Itoa(total),
			},
		})
	}

	drawerView, err := s.flow.AddBatch(ctx, sessionID, items, "Bundle added to cart")
	if err != nil {
		view, renderErr := s.render(widget, sel, err.Error())
		if renderErr != nil {
			return nil, nil, renderErr
		}
		return view, nil, err
	}

	if err := s.store.Delete(ctx, s.key(sessionID, code)); err != nil {
		s.logger.WithError(err).Warn("Failed to reset bundle selection")
	}

	view, err := s.render(widget, &Selection{Quantities: make(map[uint]int)}, "")
	if err != nil {
		return nil, nil, err
	}
	return view, drawerView, nil
}

func (s *Service) loadSelection(ctx context.Context, sessionID, code string) *Selection {
	var sel Selection
	ok, err := s.store.GetJSON(ctx, s.key(sessionID, code), &sel)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load bundle selection")
	}
	if !ok || sel.Quantities == nil {
		sel.Quantities = make(map[uint]int)
	}
	return &sel
}

func (s *Service) saveSelection(ctx context.Context, sessionID, code string, sel *Selection) {
	if err := s.store.SetJSON(ctx, s.key(sessionID, code), sel, stateTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to store bundle selection")
	}
}

// cards builds the grid tiles, one per widget product with at least
// one variant. Each tile sells the product's first variant.
func (s *Service) cards(widget *catalog.BundleWidget, sel *Selection) []Card {
	products := s.catalog.WidgetProducts(widget.Code)
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		if len(p.Variants) == 0 {
			continue
		}
		v := &p.Variants[0]
		cards = append(cards, Card{
			ProductID:    p.ID,
			VariantID:    v.ID,
			Title:        p.Title,
			PriceDisplay: money.Format(v.EffectivePrice(p), s.moneyFormat),
			Image:        p.Image,
			Selected:     sel.Quantities[v.ID] > 0,
			Quantity:     sel.Quantities[v.ID],
		})
	}
	return cards
}

func (s *Service) inGrid(widget *catalog.BundleWidget, variantID uint) bool {
	for _, card := range s.cards(widget, &Selection{Quantities: map[uint]int{}}) {
		if card.VariantID == variantID {
			return true
		}
	}
	return false
}

func (s *Service) capacityMessage(widget *catalog.BundleWidget) string {
	return fmt.Sprintf("You can select at most %d items", widget.MaxItems)
}

// render builds the fragment from the current selection. A non-empty
// banner marks a rejected mutation; successful changes always render
// with the banner cleared.
func (s *Service) render(widget *catalog.BundleWidget, sel *Selection, banner string) (*View, error) {
	total := sel.Total()
	min := minItems(widget)

	view := &View{
		Code:          widget.Code,
		SelectedCount: len(sel.Quantities),
		TotalQuantity: total,
		Bounded:       widget.MaxItems > 0,
		Banner:        banner,
	}

	if view.Bounded {
		view.Progress = total * 100 / widget.MaxItems
		if view.Progress > 100 {
			view.Progress = 100
		}
	}

	if total >= min {
		view.ButtonLabel = fmt.Sprintf("Add Bundle to Cart (%d)", total)
	} else {
		view.ButtonLabel = fmt.Sprintf("Select at least %d items", min)
		view.ButtonDisabled = true
	}

	data := struct {
		Code           string
		Title          string
		TotalQuantity  int
		Progress       int
		Bounded        bool
		Banner         string
		Cards          []Card
		ButtonLabel    string
		ButtonDisabled bool
	}{
		Code:           view.Code,
		Title:          widget.Title,
		TotalQuantity:  total,
		Progress:       view.Progress,
		Bounded:        view.Bounded,
		Banner:         banner,
		Cards:          s.cards(widget, sel),
		ButtonLabel:    view.ButtonLabel,
		ButtonDisabled: view.ButtonDisabled,
	}

	var buf bytes.Buffer
	if err := widgetTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render bundle widget: %w", err)
	}
	view.HTML = buf.String()

	return view, nil
}

func exceeds(widget *catalog.BundleWidget, total int) bool {
	return widget.MaxItems > 0 && total > widget.MaxItems
}

func minItems(widget *catalog.BundleWidget) int {
	if widget.MinItems < 1 {
		return 1
	}
	return widget.MinItems
}

func (s *Service) key(sessionID, code string) string {
	return fmt.Sprintf("bundle:%s:%s", sessionID, code)
}
