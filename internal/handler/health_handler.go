package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/scintilla-cusat/recruit-api/pkg/response"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db    *sqlx.DB
	redis *redis.Client
}

// NewHealthHandler constructs a HealthHandler. The redis client may be nil
// when caching is disabled.
func NewHealthHandler(db *sqlx.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

// Health reports process liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	response.JSON(c, 200, gin.H{"status": "ok"})
}

// Ready reports dependency readiness. The cache is optional and never fails
// readiness; the database does.
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{"database": "ok"}
	status := 200

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		checks["database"] = "unreachable"
		status = 503
	}

	if h.redis != nil {
		checks["cache"] = "ok"
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["cache"] = "unreachable"
		}
	}

	c.JSON(status, gin.H{"status": checks})
}
