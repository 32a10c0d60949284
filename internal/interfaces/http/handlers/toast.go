// internal/interfaces/http/handlers/toast.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-bff/internal/domain/toast"
	"github.com/your-org/storefront-bff/internal/interfaces/http/middleware"
)

// ToastHandler handles toast fragment endpoints
type ToastHandler struct {
	toastService *toast.Service
}

// NewToastHandler creates a new toast handler
func NewToastHandler(toastService *toast.Service) *ToastHandler {
	return &ToastHandler{
		toastService: toastService,
	}
}

// GetToast handles GET /toast. The fragment is empty once the toast
// has expired.
func (h *ToastHandler) GetToast(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"html": h.toastService.Fragment(c.Request.Context(), sessionID),
		},
	})
}
