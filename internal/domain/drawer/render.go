// internal/domain/drawer/render.go
package drawer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/pkg/money"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var drawerTmpl = template.Must(template.ParseFS(templateFS, "templates/drawer.gohtml"))

// PropertySeparator joins an item's visible custom properties
const PropertySeparator = " | "

type lineView struct {
	Key          string
	Image        string
	Title        string
	VariantTitle string
	Properties   string
	Quantity     int
	LinePrice    string
}

type drawerView struct {
	Open            bool
	Empty           bool
	ItemCount       int
	Items           []lineView
	Subtotal        string
	CheckoutEnabled bool
}

// Render builds the drawer fragment for a cart snapshot. Rows follow
// the order the server returned; rendering the same snapshot twice
// produces identical output. An empty cart renders the empty-state
// panel with a zeroed subtotal and a disabled checkout control.
func (s *Service) Render(cart *cartapi.Cart, open bool) (*View, error) {
	data := drawerView{
		Open:            open,
		Empty:           cart.ItemCount == 0,
		ItemCount:       cart.ItemCount,
		Subtotal:        money.Format(cart.TotalPrice, s.moneyFormat),
		CheckoutEnabled: cart.ItemCount > 0,
	}
	if data.Empty {
		data.Subtotal = money.Format(0, s.moneyFormat)
	}

	data.Items = make([]lineView, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		data.Items[i] = lineView{
			Key:          item.Key,
			Image:        item.Image,
			Title:        item.ProductTitle,
			VariantTitle: item.DisplayVariantTitle(),
			Properties:   item.VisibleProperties(PropertySeparator),
			Quantity:     item.Quantity,
			LinePrice:    money.Format(item.LinePrice, s.moneyFormat),
		}
	}

	var buf bytes.Buffer
	if err := drawerTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render drawer: %w", err)
	}

	view := &View{
		HTML:       buf.String(),
		Open:       open,
		LockScroll: open,
		ItemCount:  cart.ItemCount,
		Subtotal:   data.Subtotal,
	}
	if open {
		view.FocusTarget = CloseControlSelector
	}

	return view, nil
}
