// internal/interfaces/http/handlers/pdp.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/catalog"
	"github.com/your-org/storefront-bff/internal/domain/pdp"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-bff/internal/pkg/validation"
)

// ProductHandler handles product-page fragment endpoints
type ProductHandler struct {
	pdpService     *pdp.Service
	catalogService *catalog.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(pdpService *pdp.Service, catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{
		pdpService:     pdpService,
		catalogService: catalogService,
	}
}

// GetProductForm handles GET /products/:slug/pdp
func (h *ProductHandler) GetProductForm(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	slug := c.Param("slug")

	if _, ok := h.catalogService.ProductBySlug(slug); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	view, err := h.pdpService.State(c.Request.Context(), sessionID, slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render product form",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": view,
	})
}

// selectOptionRequest activates one pill within an option group
type selectOptionRequest struct {
	Position int    `json:"position" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

// SelectOption handles POST /products/:slug/options
func (h *ProductHandler) SelectOption(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	slug := c.Param("slug")

	if _, ok := h.catalogService.ProductBySlug(slug); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	var req selectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.pdpService.SelectOption(c.Request.Context(), sessionID, slug, req.Position, req.Value)
	if err != nil {
		if validation.Is(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update selection",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Option selected",
		"data":    view,
	})
}

// stepQuantityRequest adjusts the quantity stepper
type stepQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// StepQuantity handles POST /products/:slug/quantity
func (h *ProductHandler) StepQuantity(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	slug := c.Param("slug")

	if _, ok := h.catalogService.ProductBySlug(slug); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	var req stepQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.pdpService.StepQuantity(c.Request.Context(), sessionID, slug, req.Delta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update quantity",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantity updated",
		"data":    view,
	})
}

// AddToCart handles POST /products/:slug/add
func (h *ProductHandler) AddToCart(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	slug := c.Param("slug")

	if _, ok := h.catalogService.ProductBySlug(slug); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	view, err := h.pdpService.Submit(c.Request.Context(), sessionID, slug)
	if err != nil {
		if validation.Is(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    view,
	})
}
