package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/middleware"
	"github.com/scintilla-cusat/recruit-api/internal/service"
	"github.com/scintilla-cusat/recruit-api/pkg/config"
	"github.com/scintilla-cusat/recruit-api/pkg/logger"
	"github.com/scintilla-cusat/recruit-api/pkg/middleware/cors"
	"github.com/scintilla-cusat/recruit-api/pkg/middleware/requestid"
)

// RouterDeps carries everything route registration needs.
type RouterDeps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *service.MetricsService
	Auth      *service.AuthService
	Submit    *SubmitHandler
	AuthH     *AuthHandler
	Applicant *ApplicantHandler
	Payment   *PaymentHandler
	Health    *HealthHandler
}

// NewRouter assembles the gin engine with the full middleware chain and all
// public and admin routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(cors.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", deps.Health.Health)
	r.GET("/ready", deps.Health.Ready)
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := r.Group(deps.Config.APIPrefix)
	{
		api.POST("/submit", deps.Submit.Submit)
		api.GET("/payment/active", deps.Payment.Active)

		admin := api.Group("/admin")
		admin.POST("/login", deps.AuthH.Login)
		admin.POST("/logout", deps.AuthH.Logout)

		authed := admin.Group("")
		authed.Use(middleware.Session(deps.Auth, deps.Config.Session))
		{
			authed.GET("/me", deps.AuthH.Me)
			authed.GET("/applicants", deps.Applicant.List)
			authed.PATCH("/applicants/:id/status", deps.Applicant.UpdateStatus)
			authed.DELETE("/applicants/:id", deps.Applicant.Delete)
			authed.GET("/applicants/export", deps.Applicant.Export)
			authed.GET("/upi", deps.Payment.AdminActive)
			authed.PUT("/upi", deps.Payment.SetActive)
		}
	}

	return r
}
