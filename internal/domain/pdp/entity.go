// internal/domain/pdp/entity.go
package pdp

// selection is the per-session, per-product option-pill state. The
// matched variant is only replaced when a new combination resolves;
// a non-matching combination leaves it stale by design.
type selection struct {
	Options          map[int]string `json:"options"` // position → active label
	Quantity         int            `json:"quantity"`
	MatchedVariantID uint           `json:"matched_variant_id"`
}

// OptionValue is one pill in an option group
type OptionValue struct {
	Label  string
	Active bool
}

// OptionGroup is one product option position with its pills
type OptionGroup struct {
	Position int
	Name     string
	Values   []OptionValue
}

// View is the rendered product-form fragment plus the state the page
// script mirrors into the form.
type View struct {
	HTML           string `json:"html"`
	ProductID      uint   `json:"product_id"`
	VariantID      uint   `json:"variant_id"` // hidden form field value, 0 when unresolved
	PriceDisplay   string `json:"price_display"`
	ButtonLabel    string `json:"button_label"`
	ButtonDisabled bool   `json:"button_disabled"`
	Quantity       int    `json:"quantity"`
}

// Add-button labels
const (
	labelAddToCart   = "Add to Cart"
	labelSoldOut     = "Sold Out"
	labelUnavailable = "Unavailable"
)
