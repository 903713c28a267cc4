package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintilla-cusat/recruit-api/internal/dto"
	"github.com/scintilla-cusat/recruit-api/internal/middleware"
	"github.com/scintilla-cusat/recruit-api/internal/models"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
)

type fakePaymentService struct {
	active    *dto.PaymentAccountResponse
	setResult *dto.PaymentAccountResponse
	setErr    error
	setPerson string
}

func (f *fakePaymentService) Active(ctx context.Context) (*dto.PaymentAccountResponse, error) {
	return f.active, nil
}

func (f *fakePaymentService) ActiveForAdmin(ctx context.Context, adminID string) (*dto.PaymentAccountResponse, error) {
	return f.active, nil
}

func (f *fakePaymentService) SetActive(ctx context.Context, admin *models.Admin, person string) (*dto.PaymentAccountResponse, error) {
	f.setPerson = person
	if f.setErr != nil {
		return nil, f.setErr
	}
	return f.setResult, nil
}

func withAdmin(admin *models.Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextAdminKey, admin)
	}
}

func TestPaymentHandlerActive(t *testing.T) {
	svc := &fakePaymentService{active: &dto.PaymentAccountResponse{
		Person:  "deepak",
		Details: models.UPIAccount{Name: "deepak", UPIID: "deepakmk010@oksbi"},
	}}
	h := NewPaymentHandler(svc, nil)

	r := gin.New()
	r.GET("/payment/active", h.Active)

	w := performRequest(r, http.MethodGet, "/payment/active", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deepakmk010@oksbi")
}

func TestPaymentHandlerSetActive(t *testing.T) {
	admin := &models.Admin{ID: "admin-1", Email: "admin@example.com"}

	t.Run("switches account", func(t *testing.T) {
		svc := &fakePaymentService{setResult: &dto.PaymentAccountResponse{Person: "kailas"}}
		h := NewPaymentHandler(svc, nil)

		r := gin.New()
		r.PUT("/upi", withAdmin(admin), h.SetActive)

		w := performRequest(r, http.MethodPut, "/upi", `{"person":"kailas"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "kailas", svc.setPerson)
	})

	t.Run("invalid selection", func(t *testing.T) {
		svc := &fakePaymentService{setErr: appErrors.Clone(appErrors.ErrInvalidSelection, "")}
		h := NewPaymentHandler(svc, nil)

		r := gin.New()
		r.PUT("/upi", withAdmin(admin), h.SetActive)

		w := performRequest(r, http.MethodPut, "/upi", `{"person":"mallory"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing admin context", func(t *testing.T) {
		h := NewPaymentHandler(&fakePaymentService{}, nil)

		r := gin.New()
		r.PUT("/upi", h.SetActive)

		w := performRequest(r, http.MethodPut, "/upi", `{"person":"kailas"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
