package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snaplink/snaplink/internal/domain"
	"github.com/snaplink/snaplink/internal/middleware"
	"github.com/snaplink/snaplink/pkg/response"
)

type AnalyticsService interface {
	Analytics(ctx context.Context, ownerID uuid.UUID, shortCode string) (*domain.URLAnalytics, error)
	GlobalAnalytics(ctx context.Context, ownerID uuid.UUID) (*domain.GlobalAnalytics, error)
}

type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// URLAnalytics handles GET /api/v1/urls/:shortCode/analytics.
func (h *AnalyticsHandler) URLAnalytics(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	analytics, err := h.service.Analytics(c.Request.Context(), ownerID, c.Param("shortCode"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// GlobalAnalytics handles GET /api/v1/urls/analytics/global.
func (h *AnalyticsHandler) GlobalAnalytics(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.service.GlobalAnalytics(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
