package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/dto"
	"github.com/scintilla-cusat/recruit-api/internal/middleware"
	"github.com/scintilla-cusat/recruit-api/internal/models"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
	"github.com/scintilla-cusat/recruit-api/pkg/response"
)

type paymentService interface {
	Active(ctx context.Context) (*dto.PaymentAccountResponse, error)
	ActiveForAdmin(ctx context.Context, adminID string) (*dto.PaymentAccountResponse, error)
	SetActive(ctx context.Context, admin *models.Admin, person string) (*dto.PaymentAccountResponse, error)
}

// PaymentHandler serves UPI account endpoints, public and admin.
type PaymentHandler struct {
	service paymentService
	logger  *zap.Logger
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(svc paymentService, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{service: svc, logger: logger}
}

// Active returns the UPI account the public form should display.
func (h *PaymentHandler) Active(c *gin.Context) {
	resp, err := h.service.Active(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to resolve active payment account", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.JSON(c, 200, resp)
}

// AdminActive returns the authenticated admin's own selection.
func (h *PaymentHandler) AdminActive(c *gin.Context) {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}

	resp, err := h.service.ActiveForAdmin(c.Request.Context(), admin.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, 200, resp)
}

type setPaymentRequest struct {
	Person string `json:"person"`
}

// SetActive switches the advertised UPI account.
func (h *PaymentHandler) SetActive(c *gin.Context) {
	admin, ok := middleware.AdminFromContext(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}

	var req setPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "malformed request body"))
		return
	}

	resp, err := h.service.SetActive(c.Request.Context(), admin, req.Person)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, 200, resp)
}
