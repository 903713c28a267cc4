package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/middleware"
	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/pkg/config"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
	"github.com/scintilla-cusat/recruit-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Admin, string, error)
	Logout(ctx context.Context, envelope string) error
}

// AuthHandler serves admin login, logout and identity endpoints.
type AuthHandler struct {
	service authService
	cfg     config.SessionConfig
	logger  *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc authService, cfg config.SessionConfig, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, cfg: cfg, logger: logger}
}

// Login authenticates an admin and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "malformed request body"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	admin, envelope, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(h.cfg.CookieName, envelope, int(h.cfg.TTL.Seconds()), "/", "", h.cfg.Secure, true)
	response.JSON(c, 200, admin)
}

// Logout revokes the presented session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	envelope, _ := c.Cookie(h.cfg.CookieName)
	if err := h.service.Logout(c.Request.Context(), envelope); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}

	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.Secure, true)
	response.JSON(c, 200, gin.H{"message": "Logged out"})
}

// Me returns the authenticated admin.
func (h *AuthHandler) Me(c *gin.Context) {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	response.JSON(c, 200, admin)
}
