// internal/domain/catalog/service.go
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// Service loads the catalog once at startup and serves read-only
// lookups from memory. The rendered pages embed the variant data, so
// runtime requests never hit the database.
type Service struct {
	db *gorm.DB

	productsByID   map[uint]*Product
	productsBySlug map[string]*Product
	variantsByID   map[uint]*Variant
	widgetsByCode  map[string]*BundleWidget
	widgetProducts map[string][]*Product
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:             db,
		productsByID:   make(map[uint]*Product),
		productsBySlug: make(map[string]*Product),
		variantsByID:   make(map[uint]*Variant),
		widgetsByCode:  make(map[string]*BundleWidget),
		widgetProducts: make(map[string][]*Product),
	}
}

// Load reads active products, variants and bundle widgets into memory
func (s *Service) Load() error {
	var products []Product
	err := s.db.Preload("Options").Preload("Variants").
		Where("is_active = ?", true).Find(&products).Error
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	var widgets []BundleWidget
	err = s.db.Preload("Products").Where("is_active = ?", true).Find(&widgets).Error
	if err != nil {
		return fmt.Errorf("failed to load bundle widgets: %w", err)
	}

	s.Populate(products, widgets)
	return nil
}

// Populate fills the in-memory indexes from already-loaded records.
// Load calls it after querying; tests feed it directly.
func (s *Service) Populate(products []Product, widgets []BundleWidget) {
	for i := range products {
		p := &products[i]
		sort.Slice(p.Options, func(a, b int) bool { return p.Options[a].Position < p.Options[b].Position })
		sort.Slice(p.Variants, func(a, b int) bool { return p.Variants[a].Position < p.Variants[b].Position })

		s.productsByID[p.ID] = p
		s.productsBySlug[p.Slug] = p
		for j := range p.Variants {
			s.variantsByID[p.Variants[j].ID] = &p.Variants[j]
		}
	}

	for i := range widgets {
		w := &widgets[i]
		s.widgetsByCode[w.Code] = w

		sort.Slice(w.Products, func(a, b int) bool { return w.Products[a].SortOrder < w.Products[b].SortOrder })
		grid := make([]*Product, 0, len(w.Products))
		for _, wp := range w.Products {
			if p, ok := s.productsByID[wp.ProductID]; ok {
				grid = append(grid, p)
			}
		}
		s.widgetProducts[w.Code] = grid
	}
}

// ProductBySlug returns a product by its slug
func (s *Service) ProductBySlug(slug string) (*Product, bool) {
	p, ok := s.productsBySlug[slug]
	return p, ok
}

// ProductByID returns a product by its ID
func (s *Service) ProductByID(id uint) (*Product, bool) {
	p, ok := s.productsByID[id]
	return p, ok
}

// VariantByID returns a variant by its ID
func (s *Service) VariantByID(id uint) (*Variant, bool) {
	v, ok := s.variantsByID[id]
	return v, ok
}

// Widget returns a bundle widget by its code
func (s *Service) Widget(code string) (*BundleWidget, bool) {
	w, ok := s.widgetsByCode[code]
	return w, ok
}

// WidgetProducts returns the products shown in a widget's grid
func (s *Service) WidgetProducts(code string) []*Product {
	return s.widgetProducts[code]
}

// MatchVariant matches the ordered list of currently selected option
// labels against each variant's non-empty option values. The first
// variant whose option values equal the labels position-for-position
// is the match; no match returns (nil, false) and the caller keeps
// its previous state.
func MatchVariant(variants []Variant, selected []string) (*Variant, bool) {
	if len(selected) == 0 {
		return nil, false
	}

	for i := range variants {
		values := variants[i].OptionValues()
		if len(values) != len(selected) {
			continue
		}

		match := true
		for pos := range values {
			if values[pos] != selected[pos] {
				match = false
				break
			}
		}
		if match {
			return &variants[i], true
		}
	}

	return nil, false
}

// variantData is the embedded per-variant record the product page
// carries for client hydration.
type variantData struct {
	ID        uint     `json:"id"`
	Title     string   `json:"title"`
	Price     int64    `json:"price"`
	Available bool     `json:"available"`
	Options   []string `json:"options"`
}

// VariantBlob renders the product's variant list as the JSON blob
// embedded into the product page.
func (s *Service) VariantBlob(p *Product) (string, error) {
	records := make([]variantData, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		records[i] = variantData{
			ID:        v.ID,
			Title:     v.Title,
			Price:     v.EffectivePrice(p),
			Available: v.Available,
			Options:   v.OptionValues(),
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode variant data: %w", err)
	}

	return string(data), nil
}
