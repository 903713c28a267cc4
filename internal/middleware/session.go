package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/pkg/config"
	"github.com/scintilla-cusat/recruit-api/pkg/response"
)

// ContextAdminKey holds the authenticated admin in the gin context.
const ContextAdminKey = "admin"

// AdminVerifier resolves a session envelope to an admin account.
type AdminVerifier interface {
	Verify(ctx context.Context, envelope string) (*models.Admin, error)
}

// Session authenticates admin routes from the session cookie. A failed
// verification clears the cookie so stale browsers stop retrying it.
func Session(auth AdminVerifier, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		envelope, _ := c.Cookie(cfg.CookieName)

		admin, err := auth.Verify(c.Request.Context(), envelope)
		if err != nil {
			c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

// AdminFromContext extracts the authenticated admin set by Session.
func AdminFromContext(c *gin.Context) (*models.Admin, bool) {
	value, ok := c.Get(ContextAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := value.(*models.Admin)
	return admin, ok
}
