package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snaplink/snaplink/internal/domain"
	"github.com/snaplink/snaplink/internal/middleware"
	"github.com/snaplink/snaplink/pkg/response"
	"github.com/snaplink/snaplink/pkg/validator"
)

type ShortenerService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateURLRequest) (*domain.ShortURL, error)
	Resolve(ctx context.Context, codeOrAlias string) (*domain.ShortURL, error)
	Info(ctx context.Context, shortCode string) (*domain.ShortURL, error)
	List(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.URLPage, error)
	Update(ctx context.Context, ownerID uuid.UUID, shortCode string, req *domain.UpdateURLRequest) (*domain.ShortURL, error)
	Delete(ctx context.Context, ownerID uuid.UUID, shortCode string) error
}

type ShortenerHandler struct {
	service ShortenerService
}

func NewShortenerHandler(service ShortenerService) *ShortenerHandler {
	return &ShortenerHandler{service: service}
}

// Create handles POST /api/v1/urls.
func (h *ShortenerHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req domain.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	url, err := h.service.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, url.Projection())
}

// List handles GET /api/v1/urls?page=&limit=.
func (h *ShortenerHandler) List(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.List(c.Request.Context(), ownerID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Info handles GET /api/v1/urls/info/:shortCode (public).
func (h *ShortenerHandler) Info(c *gin.Context) {
	url, err := h.service.Info(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, url.Projection())
}

// Redirect handles GET /:codeOrAlias (public). A resolvable link
// answers with a real HTTP redirect; 404 and 410 are kept distinct so
// the edge can land visitors on different pages.
func (h *ShortenerHandler) Redirect(c *gin.Context) {
	url, err := h.service.Resolve(c.Request.Context(), c.Param("codeOrAlias"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url.OriginalURL)
}

// Update handles PUT /api/v1/urls/:shortCode.
func (h *ShortenerHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req domain.UpdateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	url, err := h.service.Update(c.Request.Context(), ownerID, c.Param("shortCode"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, url.Projection())
}

// Delete handles DELETE /api/v1/urls/:shortCode.
func (h *ShortenerHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, c.Param("shortCode")); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, "Short URL deleted successfully")
}

// respondError maps domain errors onto status codes. Anything outside
// the taxonomy is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError

	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, ve.Reason)
	case errors.Is(err, domain.ErrAliasTaken):
		response.Conflict(c, "This alias is already taken")
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(c, "Short URL not found")
	case errors.Is(err, domain.ErrExpired):
		response.Gone(c, "This short URL has expired")
	case errors.Is(err, domain.ErrUnauthorized):
		response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrCodeExhausted):
		response.InternalServerError(c, "Failed to generate short code. Please try again")
	default:
		_ = c.Error(err)
		response.InternalServerError(c, "Internal server error")
	}
}
