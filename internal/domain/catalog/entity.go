// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a storefront product
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Title       string         `gorm:"not null;size:255" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Price in cents
	Image       string         `gorm:"size:500" json:"image"`
	URL         string         `gorm:"size:500" json:"url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Options  []ProductOption `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options,omitempty"`
	Variants []Variant       `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants,omitempty"`
}

// ProductOption names one option position of a product (e.g. position
// 1 = "Size"). Products carry up to three option positions.
type ProductOption struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Position  int    `gorm:"not null" json:"position"` // 1-3
	Name      string `gorm:"not null;size:255" json:"name"`
}

// Variant represents one purchasable SKU of a product, distinguished
// by up to three option values. Variants are read-only at runtime:
// they are loaded once at startup and never mutated.
type Variant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	SKU       string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Title     string         `gorm:"not null;size:255" json:"title"`
	Price     int64          `gorm:"not null" json:"price"` // Price in cents
	Available bool           `gorm:"default:true" json:"available"`
	Option1   string         `gorm:"size:255" json:"option1"`
	Option2   string         `gorm:"size:255" json:"option2"`
	Option3   string         `gorm:"size:255" json:"option3"`
	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BundleWidget configures one build-your-own-bundle widget: which
// products it offers and the item-count constraints it enforces.
// MaxItems = 0 means unbounded.
type BundleWidget struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null;size:100" json:"code"`
	Title     string         `gorm:"not null;size:255" json:"title"`
	MinItems  int            `gorm:"default:1" json:"min_items"`
	MaxItems  int            `gorm:"default:0" json:"max_items"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []BundleWidgetProduct `gorm:"foreignKey:WidgetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"products,omitempty"`
}

// BundleWidgetProduct links a product into a bundle widget's grid
type BundleWidgetProduct struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	WidgetID  uint `gorm:"not null;index" json:"widget_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`
	SortOrder int  `gorm:"default:0" json:"sort_order"`
}

// TableName overrides
func (Product) TableName() string             { return "products" }
func (ProductOption) TableName() string       { return "product_options" }
func (Variant) TableName() string             { return "variants" }
func (BundleWidget) TableName() string        { return "bundle_widgets" }
func (BundleWidgetProduct) TableName() string { return "bundle_widget_products" }

// OptionValues returns the variant's non-empty option values in
// position order.
func (v *Variant) OptionValues() []string {
	values := make([]string, 0, 3)
	for _, opt := range []string{v.Option1, v.Option2, v.Option3} {
		if opt != "" {
			values = append(values, opt)
		}
	}
	return values
}

// EffectivePrice returns the variant price, falling back to the
// product price when the variant carries none.
func (v *Variant) EffectivePrice(p *Product) int64 {
	if v.Price > 0 {
		return v.Price
	}
	return p.Price
}
