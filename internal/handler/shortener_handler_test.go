package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snaplink/snaplink/internal/domain"
	"github.com/snaplink/snaplink/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuth injects an owner id the way the JWT middleware would.
func fakeAuth(ownerID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ownerID", ownerID)
		c.Next()
	}
}

func setupRouter(service *mocks.MockShortenerService, ownerID uuid.UUID) *gin.Engine {
	h := NewShortenerHandler(service)

	router := gin.New()
	api := router.Group("/api/v1/urls")
	api.GET("/info/:shortCode", h.Info)

	authed := api.Group("")
	authed.Use(fakeAuth(ownerID))
	authed.POST("", h.Create)
	authed.GET("", h.List)
	authed.PUT("/:shortCode", h.Update)
	authed.DELETE("/:shortCode", h.Delete)

	router.GET("/:codeOrAlias", h.Redirect)
	return router
}

func strPtr(s string) *string { return &s }

func TestCreateHandler_Success(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	ownerID := uuid.New()
	router := setupRouter(mockService, ownerID)

	created := &domain.ShortURL{
		ID:          1,
		OwnerID:     ownerID,
		OriginalURL: "https://example.com",
		ShortCode:   "abc123",
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	mockService.On("Create", mock.Anything, ownerID, mock.MatchedBy(func(req *domain.CreateURLRequest) bool {
		return req.OriginalURL == "https://example.com"
	})).Return(created, nil).Once()

	body := bytes.NewBufferString(`{"originalUrl":"https://example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/urls", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc123", resp["shortCode"])
	assert.Equal(t, "https://example.com", resp["originalUrl"])
	assert.Equal(t, float64(0), resp["clickCount"])
	assert.Equal(t, true, resp["isActive"])
	assert.NotContains(t, resp, "customAlias")
	mockService.AssertExpectations(t)
}

func TestCreateHandler_InvalidBody(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/urls", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestCreateHandler_ValidationFailure(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	body := bytes.NewBufferString(`{"originalUrl":"https://example.com","customAlias":"a!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/urls", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp["error"])
	mockService.AssertNotCalled(t, "Create")
}

func TestCreateHandler_AliasTaken(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	mockService.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrAliasTaken).Once()

	body := bytes.NewBufferString(`{"originalUrl":"https://example.com","customAlias":"promo"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/urls", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already taken")
}

func TestCreateHandler_NoAuthContext(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	h := NewShortenerHandler(mockService)

	router := gin.New()
	router.POST("/api/v1/urls", h.Create)

	body := bytes.NewBufferString(`{"originalUrl":"https://example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/urls", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestRedirectHandler_Found(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	resolved := &domain.ShortURL{
		ID:          1,
		OriginalURL: "https://example.com/landing",
		ShortCode:   "abc123",
		IsActive:    true,
	}

	mockService.On("Resolve", mock.Anything, "abc123").Return(resolved, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/landing", rec.Header().Get("Location"))
	mockService.AssertExpectations(t)
}

func TestRedirectHandler_NotFound(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	mockService.On("Resolve", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRedirectHandler_Expired_Gone(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	mockService.On("Resolve", mock.Anything, "old123").Return(nil, domain.ErrExpired).Once()

	req := httptest.NewRequest(http.MethodGet, "/old123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestInfoHandler_Success(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	record := &domain.ShortURL{
		ID:          2,
		OriginalURL: "https://example.com",
		ShortCode:   "abc123",
		CustomAlias: strPtr("promo"),
		ClickCount:  5,
		IsActive:    true,
	}

	mockService.On("Info", mock.Anything, "abc123").Return(record, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/urls/info/abc123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "promo", resp["customAlias"])
	assert.Equal(t, float64(5), resp["clickCount"])
}

func TestListHandler_PassesPagination(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	ownerID := uuid.New()
	router := setupRouter(mockService, ownerID)

	page := &domain.URLPage{
		Data: []domain.URLProjection{},
		Pagination: domain.Pagination{
			CurrentPage: 3,
			Limit:       20,
			Total:       0,
			TotalPages:  0,
		},
	}

	mockService.On("List", mock.Anything, ownerID, 3, 20).Return(page, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/urls?page=3&limit=20", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	pagination := resp["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["currentPage"])
	mockService.AssertExpectations(t)
}

func TestUpdateHandler_Success(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	ownerID := uuid.New()
	router := setupRouter(mockService, ownerID)

	updated := &domain.ShortURL{
		ID:          3,
		OwnerID:     ownerID,
		OriginalURL: "https://example.com",
		ShortCode:   "abc123",
		CustomAlias: strPtr("sale"),
		IsActive:    true,
	}

	mockService.On("Update", mock.Anything, ownerID, "abc123", mock.MatchedBy(func(req *domain.UpdateURLRequest) bool {
		return req.CustomAlias != nil && *req.CustomAlias == "sale"
	})).Return(updated, nil).Once()

	body := bytes.NewBufferString(`{"customAlias":"sale"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/urls/abc123", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sale", resp["customAlias"])
	mockService.AssertExpectations(t)
}

func TestUpdateHandler_NotFound(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	ownerID := uuid.New()
	router := setupRouter(mockService, ownerID)

	mockService.On("Update", mock.Anything, ownerID, "abc123", mock.Anything).
		Return(nil, domain.ErrNotFound).Once()

	body := bytes.NewBufferString(`{"description":"hi"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/urls/abc123", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHandler_Success(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	ownerID := uuid.New()
	router := setupRouter(mockService, ownerID)

	mockService.On("Delete", mock.Anything, ownerID, "abc123").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/urls/abc123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted successfully")
	mockService.AssertExpectations(t)
}

func TestValidationError_MapsTo400(t *testing.T) {
	mockService := new(mocks.MockShortenerService)
	router := setupRouter(mockService, uuid.New())

	mockService.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.Validation("Expiration date must be in the future")).Once()

	body := bytes.NewBufferString(`{"originalUrl":"https://example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/urls", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be in the future")
}
