package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scintilla-cusat/recruit-api/internal/models"
	"github.com/scintilla-cusat/recruit-api/internal/service"
	appErrors "github.com/scintilla-cusat/recruit-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSubmissionService struct {
	applicant *models.Applicant
	err       error
	got       service.SubmitApplicationRequest
}

func (f *fakeSubmissionService) Submit(ctx context.Context, req service.SubmitApplicationRequest) (*models.Applicant, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.applicant, nil
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitHandler(t *testing.T) {
	t.Run("accepts a valid submission", func(t *testing.T) {
		svc := &fakeSubmissionService{applicant: &models.Applicant{UserID: "SC_AAAAAAAAAA"}}
		h := NewSubmitHandler(svc, nil)

		r := gin.New()
		r.POST("/submit", h.Submit)

		body := `{"name":"Anju","phoneNo":"9876543210","email":"anju@example.com","yearOfStudy":2,"degree":"UG","department":"Department of Physics","course":"BSc","team":"Tech","transactionId":"TX1","paymentScreenshot":"data"}`
		w := performRequest(r, http.MethodPost, "/submit", body)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "SC_AAAAAAAAAA")
		assert.Equal(t, "Anju", svc.got.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewSubmitHandler(&fakeSubmissionService{}, nil)

		r := gin.New()
		r.POST("/submit", h.Submit)

		w := performRequest(r, http.MethodPost, "/submit", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error surfaces field names", func(t *testing.T) {
		svc := &fakeSubmissionService{err: appErrors.Clone(appErrors.ErrValidation, "invalid fields: email")}
		h := NewSubmitHandler(svc, nil)

		r := gin.New()
		r.POST("/submit", h.Submit)

		w := performRequest(r, http.MethodPost, "/submit", `{"name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid fields: email")
	})

	t.Run("internal failure stays generic", func(t *testing.T) {
		svc := &fakeSubmissionService{err: appErrors.Clone(appErrors.ErrInternal, "")}
		h := NewSubmitHandler(svc, nil)

		r := gin.New()
		r.POST("/submit", h.Submit)

		w := performRequest(r, http.MethodPost, "/submit", `{"name":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "sql")
	})
}
