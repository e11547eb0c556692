package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

type HealthResponse struct {
	Status string           `json:"status"`
	Checks map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(db *pgxpool.Pool, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Readyz probes the record store and the cache. A degraded cache still
// serves redirects from the store, but the pod should not take traffic
// until both dependencies answer.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]Check{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
	}

	status := http.StatusOK
	result := HealthResponse{Status: "up", Checks: checks}
	for _, check := range checks {
		if check.Status != "up" {
			result.Status = "down"
			status = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(status, result)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	if err := h.db.Ping(ctx); err != nil {
		return Check{Status: "down", Message: err.Error()}
	}
	return Check{Status: "up"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) Check {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return Check{Status: "down", Message: err.Error()}
	}
	return Check{Status: "up"}
}
