// internal/interfaces/http/handlers/drawer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/drawer"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-bff/internal/pkg/validation"
)

// DrawerHandler handles cart drawer endpoints
type DrawerHandler struct {
	drawerService *drawer.Service
}

// NewDrawerHandler creates a new drawer handler
func NewDrawerHandler(drawerService *drawer.Service) *DrawerHandler {
	return &DrawerHandler{
		drawerService: drawerService,
	}
}

// GetDrawer handles GET /drawer
func (h *DrawerHandler) GetDrawer(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	view, err := h.drawerService.Fragment(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render drawer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": view,
	})
}

// OpenDrawer handles POST /drawer/open
func (h *DrawerHandler) OpenDrawer(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	view, err := h.drawerService.Open(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to open drawer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Drawer opened",
		"data":    view,
	})
}

// CloseDrawer handles POST /drawer/close
func (h *DrawerHandler) CloseDrawer(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	view, err := h.drawerService.Close(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to close drawer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Drawer closed",
		"data":    view,
	})
}

// lineActionRequest selects one command from the line-action table
type lineActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// HandleLineAction handles POST /drawer/lines/:key
func (h *DrawerHandler) HandleLineAction(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	key := c.Param("key")

	var req lineActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.drawerService.HandleLineAction(c.Request.Context(), sessionID, key, req.Action)
	if err != nil {
		if validation.Is(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
			return
		}

		// The mutation failed upstream; the re-rendered cached view
		// keeps the drawer interactive and the toast carries the error.
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
			"data":  view,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart line updated",
		"data":    view,
	})
}
