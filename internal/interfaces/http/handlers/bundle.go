// internal/interfaces/http/handlers/bundle.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/bundle"
	"github.com/your-org/storefront-bff/internal/domain/catalog"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-bff/internal/pkg/validation"
)

// BundleHandler handles bundle widget endpoints
type BundleHandler struct {
	bundleService  *bundle.Service
	catalogService *catalog.Service
}

// NewBundleHandler creates a new bundle handler
func NewBundleHandler(bundleService *bundle.Service, catalogService *catalog.Service) *BundleHandler {
	return &BundleHandler{
		bundleService:  bundleService,
		catalogService: catalogService,
	}
}

// GetWidget handles GET /bundles/:widget
func (h *BundleHandler) GetWidget(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	code := c.Param("widget")

	if _, ok := h.catalogService.Widget(code); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Bundle widget not found",
		})
		return
	}

	view, err := h.bundleService.State(c.Request.Context(), sessionID, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render bundle widget",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": view,
	})
}

// toggleRequest toggles one product card in the grid
type toggleRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
}

// Toggle handles POST /bundles/:widget/toggle
func (h *BundleHandler) Toggle(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	code := c.Param("widget")

	if _, ok := h.catalogService.Widget(code); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Bundle widget not found",
		})
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.bundleService.Toggle(c.Request.Context(), sessionID, code, req.VariantID)
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
		"message": "Selection updated",
		"data":    view,
	})
}

// bundleStepRequest adjusts one selected card's quantity
type bundleStepRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Delta     int  `json:"delta" binding:"required"`
}

// StepQuantity handles POST /bundles/:widget/quantity
func (h *BundleHandler) StepQuantity(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	code := c.Param("widget")

	if _, ok := h.catalogService.Widget(code); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Bundle widget not found",
		})
		return
	}

	var req bundleStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.bundleService.StepQuantity(c.Request.Context(), sessionID, code, req.VariantID, req.Delta)
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
		"message": "Selection updated",
		"data":    view,
	})
}

// Submit handles POST /bundles/:widget/submit
func (h *BundleHandler) Submit(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	code := c.Param("widget")

	if _, ok := h.catalogService.Widget(code); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Bundle widget not found",
		})
		return
	}

	widgetView, drawerView, err := h.bundleService.Submit(c.Request.Context(), sessionID, code)
	if err != nil {
		if validation.Is(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
				"data": gin.H{
					"widget": widgetView,
				},
			})
			return
		}

		// Upstream rejection: the widget re-renders with its banner and
		// the selection intact for retry.
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
			"data": gin.H{
				"widget": widgetView,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bundle added to cart",
		"data": gin.H{
			"widget": widgetView,
			"drawer": drawerView,
		},
	})
}
