// internal/domain/cartapi/types.go
package cartapi

import (
	"sort"
	"strings"
)

// Cart is the upstream cart snapshot. The client never holds an
// authoritative copy; it re-fetches after every mutation and replaces
// the snapshot wholesale.
type Cart struct {
	Token      string `json:"token"`
	ItemCount  int    `json:"item_count"`
	TotalPrice int64  `json:"total_price"` // minor units
	Items      []Item `json:"items"`
}

// Item is one cart line, keyed by a server-issued identifier unique
// per distinct variant+properties combination.
type Item struct {
	Key          string            `json:"key"`
	VariantID    uint              `json:"variant_id"`
	ProductTitle string            `json:"product_title"`
	VariantTitle string            `json:"variant_title"`
	Quantity     int               `json:"quantity"`
	Price        int64             `json:"price"`      // unit price, minor units
	LinePrice    int64             `json:"line_price"` // unit price * quantity
	Properties   map[string]string `json:"properties,omitempty"`
	Image        string            `json:"image,omitempty"`
}

// AddItem is one entry of an add-to-cart batch
type AddItem struct {
	VariantID  uint              `json:"id"`
	Quantity   int               `json:"quantity"`
	Properties map[string]string `json:"properties,omitempty"`
}

// AddResult is the server-echoed result of an add call
type AddResult struct {
	Items []Item `json:"items"`
}

// DefaultVariantTitle is the sentinel the upstream uses for products
// without real variants; it is suppressed in rendering.
const DefaultVariantTitle = "Default Title"

// HiddenPropertyPrefix marks internal line properties excluded from
// display.
const HiddenPropertyPrefix = "_"

// VisibleProperties returns the item's displayable properties joined
// by sep, skipping internal-prefixed keys. Order follows the sorted
// key order so repeated renders are identical.
func (i *Item) VisibleProperties(sep string) string {
	if len(i.Properties) == 0 {
		return ""
	}

	keys := make([]string, 0, len(i.Properties))
	for k := range i.Properties {
		if strings.HasPrefix(k, HiddenPropertyPrefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+i.Properties[k])
	}
	return strings.Join(parts, sep)
}

// DisplayVariantTitle returns the variant title, or "" for the
// default-title sentinel.
func (i *Item) DisplayVariantTitle() string {
	if i.VariantTitle == DefaultVariantTitle {
		return ""
	}
	return i.VariantTitle
}
