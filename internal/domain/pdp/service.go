// internal/domain/pdp/service.go
package pdp

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/catalog"
	"github.com/your-org/storefront-bff/internal/domain/drawer"
	"github.com/your-org/storefront-bff/internal/domain/storefront"
	"github.com/your-org/storefront-bff/internal/domain/toast"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
	"github.com/your-org/storefront-bff/internal/pkg/money"
	"github.com/your-org/storefront-bff/internal/pkg/validation"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var formTmpl = template.Must(template.ParseFS(templateFS, "templates/product_form.gohtml"))

const stateTTL = 24 * time.Hour

// Service drives the product-page variant selector. The variant list
// is read once from the catalog at startup; per-session pill state
// lives in the state store.
type Service struct {
	store       statestore.Store
	catalog     *catalog.Service
	flow        *storefront.Service
	toasts      *toast.Service
	logger      *logrus.Logger
	moneyFormat string
}

// NewService creates a new PDP service
func NewService(store statestore.Store, catalogSvc *catalog.Service, flow *storefront.Service, toasts *toast.Service, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		store:       store,
		catalog:     catalogSvc,
		flow:        flow,
		toasts:      toasts,
		logger:      logger,
		moneyFormat: cfg.Upstream.MoneyFormat,
	}
}

// State renders the product form in its current selection state
func (s *Service) State(ctx context.Context, sessionID, slug string) (*View, error) {
	product, ok := s.catalog.ProductBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("product %q not found", slug)
	}

	sel := s.loadSelection(ctx, sessionID, product)
	return s.render(product, sel)
}

// SelectOption marks one pill active within its group (deselecting
// its siblings) and recomputes the matched variant. When no variant
// matches the new combination the previously matched variant's
// price/id/availability state stays untouched.
func (s *Service) SelectOption(ctx context.Context, sessionID, slug string, position int, value string) (*View, error) {
	product, ok := s.catalog.ProductBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("product %q not found", slug)
	}
	if position < 1 || position > 3 {
		return nil, validation.Errorf("invalid option position %d", position)
	}

	sel := s.loadSelection(ctx, sessionID, product)
	sel.Options[position] = value

	if matched, ok := catalog.MatchVariant(product.Variants, s.selectedLabels(product, sel)); ok {
		sel.MatchedVariantID = matched.ID
	}

	s.saveSelection(ctx, sessionID, product, sel)
	return s.render(product, sel)
}

// StepQuantity adjusts the quantity field, floored at 1. No upper
// bound is enforced here.
func (s *Service) StepQuantity(ctx context.Context, sessionID, slug string, delta int) (*View, error) {
	product, ok := s.catalog.ProductBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("product %q not found", slug)
	}

	sel := s.loadSelection(ctx, sessionID, product)
	sel.Quantity += delta
	if sel.Quantity < 1 {
		sel.Quantity = 1
	}

	s.saveSelection(ctx, sessionID, product, sel)
	return s.render(product, sel)
}

// Submit adds the resolved variant to the cart through the shared
// add-to-cart flow. Without a resolved variant it surfaces a
// validation error via the toast notifier and aborts.
func (s *Service) Submit(ctx context.Context, sessionID, slug string) (*drawer.View, error) {
	product, ok := s.catalog.ProductBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("product %q not found", slug)
	}

	sel := s.loadSelection(ctx, sessionID, product)
	if sel.MatchedVariantID == 0 {
		err := validation.Errorf("Please select a valid combination of options")
		s.toasts.Notify(ctx, sessionID, err.Error(), toast.KindError)
		return nil, err
	}

	return s.flow.AddToCart(ctx, sessionID, sel.MatchedVariantID, sel.Quantity, nil)
}

// loadSelection loads the session's pill state, seeding it from the
// product's first variant so the form starts resolved.
func (s *Service) loadSelection(ctx context.Context, sessionID string, product *catalog.Product) *selection {
	var sel selection
	ok, err := s.store.GetJSON(ctx, s.key(sessionID, product.Slug), &sel)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load variant selection")
	}
	if ok && sel.Options != nil {
		return &sel
	}

	sel = selection{Options: make(map[int]string), Quantity: 1}
	if len(product.Variants) > 0 {
		first := &product.Variants[0]
		for i, value := range first.OptionValues() {
			sel.Options[i+1] = value
		}
		sel.MatchedVariantID = first.ID
	}
	return &sel
}

func (s *Service) saveSelection(ctx context.Context, sessionID string, product *catalog.Product, sel *selection) {
	if err := s.store.SetJSON(ctx, s.key(sessionID, product.Slug), sel, stateTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to store variant selection")
	}
}

// selectedLabels builds the ordered active-pill labels, one per
// option group. A group without a selection yields no complete list
// and therefore no match.
func (s *Service) selectedLabels(product *catalog.Product, sel *selection) []string {
	groups := s.optionGroups(product, sel)
	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		value, ok := sel.Options[g.Position]
		if !ok {
			return nil
		}
		labels = append(labels, value)
	}
	return labels
}

// optionGroups derives the pill groups from the product's options and
// its variants' distinct values, in first-seen order.
func (s *Service) optionGroups(product *catalog.Product, sel *selection) []OptionGroup {
	groups := make([]OptionGroup, 0, len(product.Options))
	for _, opt := range product.Options {
		group := OptionGroup{Position: opt.Position, Name: opt.Name}
		seen := make(map[string]bool)
		for i := range product.Variants {
			var value string
			switch opt.Position {
			case 1:
				value = product.Variants[i].Option1
			case 2:
				value = product.Variants[i].Option2
			case 3:
				value = product.Variants[i].Option3
			}
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			group.Values = append(group.Values, OptionValue{
				Label:  value,
				Active: sel.Options[opt.Position] == value,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// render builds the fragment from the current selection
func (s *Service) render(product *catalog.Product, sel *selection) (*View, error) {
	view := &View{
		ProductID:      product.ID,
		VariantID:      sel.MatchedVariantID,
		Quantity:       sel.Quantity,
		ButtonLabel:    labelUnavailable,
		ButtonDisabled: true,
		PriceDisplay:   money.Format(product.Price, s.moneyFormat),
	}

	if sel.MatchedVariantID != 0 {
		if variant, ok := s.catalog.VariantByID(sel.MatchedVariantID); ok {
			view.PriceDisplay = money.Format(variant.EffectivePrice(product), s.moneyFormat)
			if variant.Available {
				view.ButtonLabel = labelAddToCart
				view.ButtonDisabled = false
			} else {
				view.ButtonLabel = labelSoldOut
				view.ButtonDisabled = true
			}
		}
	}

	blob, err := s.catalog.VariantBlob(product)
	if err != nil {
		return nil, err
	}

	data := struct {
		ProductID      uint
		Groups         []OptionGroup
		VariantID      uint
		PriceDisplay   string
		Quantity       int
		ButtonLabel    string
		ButtonDisabled bool
		VariantBlob    template.JS
	}{
		ProductID:      product.ID,
		Groups:         s.optionGroups(product, sel),
		VariantID:      view.VariantID,
		PriceDisplay:   view.PriceDisplay,
		Quantity:       view.Quantity,
		ButtonLabel:    view.ButtonLabel,
		ButtonDisabled: view.ButtonDisabled,
		VariantBlob:    template.JS(blob),
	}

	var buf bytes.Buffer
	if err := formTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render product form: %w", err)
	}
	view.HTML = buf.String()

	return view, nil
}

func (s *Service) key(sessionID, slug string) string {
	return fmt.Sprintf("pdp:%s:%s", sessionID, slug)
}
