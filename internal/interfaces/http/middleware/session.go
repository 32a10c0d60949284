// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/pkg/auth"
)

const sessionContextKey = "session_id"

// Session resolves the visitor's session from the signed cookie,
// minting a fresh session when the cookie is absent or invalid. Every
// fragment endpoint runs behind it: per-visitor UI state and the
// upstream cart token are both keyed by this ID.
func Session(cfg *config.Config, logger *logrus.Logger) gin.HandlerFunc {
	manager := auth.NewSessionManager(cfg)

	return func(c *gin.Context) {
		sessionID := ""

		if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
			sessionID, err = manager.ValidateToken(cookie)
			if err != nil {
				logger.WithError(err).Debug("Invalid session cookie, reissuing")
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = manager.NewSessionID()
			token, err := manager.GenerateToken(sessionID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to establish session",
				})
				c.Abort()
				return
			}

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Session.CookieName, token, int(cfg.Session.TTL.Seconds()), "/", "", cfg.IsProduction(), true)
		}

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// SessionID returns the resolved session ID from the request context
func SessionID(c *gin.Context) string {
	if id, ok := c.Get(sessionContextKey); ok {
		if sessionID, ok := id.(string); ok {
			return sessionID
		}
	}
	return ""
}
