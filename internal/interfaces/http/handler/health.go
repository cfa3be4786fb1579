package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stemkits/backend/internal/infrastructure/persistence"
	"github.com/stemkits/backend/internal/interfaces/http/dto"
)

// HealthHandler reports service health for load balancers and monitoring
type HealthHandler struct {
	BaseHandler
	db          *persistence.Database
	redisClient *redis.Client
	version     string
	startedAt   time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database, redisClient *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		version:     version,
		startedAt:   time.Now(),
	}
}

// HealthStatus is the health check payload
type HealthStatus struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	UptimeSecs int64             `json:"uptime_seconds"`
	Components map[string]string `json:"components"`
}

// Live reports process liveness without touching dependencies
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
}

// Ready checks the database and Redis and reports component status. A
// degraded dependency yields 503 so orchestrators stop routing traffic.
func (h *HealthHandler) Ready(c *gin.Context) {
	components := make(map[string]string, 2)
	healthy := true

	if err := h.db.Ping(); err != nil {
		components["database"] = "unavailable"
		healthy = false
	} else {
		components["database"] = "ok"
	}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			components["redis"] = "unavailable"
			healthy = false
		} else {
			components["redis"] = "ok"
		}
	}

	status := HealthStatus{
		Status:     "ok",
		Version:    h.version,
		UptimeSecs: int64(time.Since(h.startedAt).Seconds()),
		Components: components,
	}

	if !healthy {
		status.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(status))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}
