package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/dto"
	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/internal/service"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
	"github.com/scintilla-cusat/recruit-api/pkg/response"
)

type reviewService interface {
	List(ctx context.Context, filter models.ApplicantFilter) (*dto.ReviewListResponse, bool, error)
}

type applicantAdminService interface {
	SetStatus(ctx context.Context, userID string, status models.ApplicantStatus) (*models.Applicant, error)
	Delete(ctx context.Context, userID string) error
}

type exportService interface {
	Export(ctx context.Context, filter models.ApplicantFilter, format string) (*service.ExportResult, error)
}

// ApplicantHandler serves the admin review endpoints.
type ApplicantHandler struct {
	review    reviewService
	applicant applicantAdminService
	export    exportService
	logger    *zap.Logger
}

// NewApplicantHandler constructs an ApplicantHandler.
func NewApplicantHandler(review reviewService, applicant applicantAdminService, export exportService, logger *zap.Logger) *ApplicantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicantHandler{review: review, applicant: applicant, export: export, logger: logger}
}

func filterFromQuery(c *gin.Context) models.ApplicantFilter {
	duplicates, _ := strconv.ParseBool(c.Query("duplicates"))
	return models.ApplicantFilter{
		Status:         models.ApplicantStatus(c.Query("status")),
		Team:           c.Query("team"),
		Department:     c.Query("department"),
		Search:         c.Query("search"),
		DuplicatesOnly: duplicates,
	}
}

// List returns the filtered dashboard payload with status badge counts.
func (h *ApplicantHandler) List(c *gin.Context) {
	resp, cached, err := h.review.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		h.logger.Error("failed to list applicants", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.JSON(c, 200, resp, map[string]interface{}{"cached": cached})
}

type updateStatusRequest struct {
	Status models.ApplicantStatus `json:"status"`
}

// UpdateStatus moves one applicant to a new review status.
func (h *ApplicantHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "malformed request body"))
		return
	}

	applicant, err := h.applicant.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, 200, applicant)
}

// Delete removes one applicant permanently.
func (h *ApplicantHandler) Delete(c *gin.Context) {
	if err := h.applicant.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export streams the filtered applicant list as CSV or PDF.
func (h *ApplicantHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)

	result, err := h.export.Export(c.Request.Context(), filterFromQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Content)
}
