// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/cartapi"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
)

// CartHandler proxies read access to the upstream cart
type CartHandler struct {
	api *cartapi.Client
}

// NewCartHandler creates a new cart handler
func NewCartHandler(api *cartapi.Client) *CartHandler {
	return &CartHandler{
		api: api,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	cart, err := h.api.Session(sessionID).FetchCart(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": cart,
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	cart, err := h.api.Session(sessionID).FetchCart(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"item_count": cart.ItemCount,
		},
	})
}
