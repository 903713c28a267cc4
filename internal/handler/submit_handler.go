package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/dto"
	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/internal/service"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
	"github.com/scintilla-cusat/recruit-api/pkg/response"
)

type submissionService interface {
	Submit(ctx context.Context, req service.SubmitApplicationRequest) (*models.Applicant, error)
}

// SubmitHandler serves the public application intake endpoint.
type SubmitHandler struct {
	service submissionService
	logger  *zap.Logger
}

// NewSubmitHandler constructs a SubmitHandler.
func NewSubmitHandler(svc submissionService, logger *zap.Logger) *SubmitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitHandler{service: svc, logger: logger}
}

// Submit accepts a new application from the public form.
func (h *SubmitHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "malformed request body"))
		return
	}

	applicant, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Status >= 500 {
			h.logger.Error("submission failed", zap.Error(err))
		}
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SubmitResponse{
		Message: "Application submitted successfully",
		UserID:  applicant.UserID,
	})
}
