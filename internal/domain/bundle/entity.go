// internal/domain/bundle/entity.go
package bundle

// Selection is the per-session, per-widget pick state. Quantities maps
// variant id → quantity and never holds zero entries; removing a card
// deletes its key.
type Selection struct {
	Quantities map[uint]int `json:"quantities"`
}

// Total returns the summed quantity across the selection
func (s *Selection) Total() int {
	total := 0
	for _, qty := range s.Quantities {
		total += qty
	}
	return total
}

// Card is one product tile in the widget grid. Product links are
// stripped at render; the grid never navigates away.
type Card struct {
	ProductID    uint
	VariantID    uint
	Title        string
	PriceDisplay string
	Image        string
	Selected     bool
	Quantity     int
}

// View is the rendered widget fragment plus the state the page script
// mirrors into the controls.
type View struct {
	HTML           string `json:"html"`
	Code           string `json:"code"`
	SelectedCount  int    `json:"selected_count"`
	TotalQuantity  int    `json:"total_quantity"`
	Progress       int    `json:"progress"` // 0-100, only meaningful when bounded
	Bounded        bool   `json:"bounded"`
	ButtonLabel    string `json:"button_label"`
	ButtonDisabled bool   `json:"button_disabled"`
	Banner         string `json:"banner,omitempty"`
}

// Line-item property keys marking bundle-origin cart lines so the cart
// rendering layer can group them.
const (
	BundleIDProperty   = "_bundle_id"
	BundleSizeProperty = "_bundle_size"
)
