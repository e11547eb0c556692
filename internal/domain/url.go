package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShortURL is the persisted record behind a short link. A record is
// resolvable while IsActive is true and ExpiresAt, if set, is in the
// future. ShortCode and OwnerID never change after creation.
type ShortURL struct {
	ID            int64      `json:"id"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	OriginalURL   string     `json:"originalUrl"`
	ShortCode     string     `json:"shortCode"`
	CustomAlias   *string    `json:"customAlias,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Tags          []string   `json:"tags"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	IsActive      bool       `json:"isActive"`
	ClickCount    int64      `json:"clickCount"`
	LastClickedAt *time.Time `json:"lastClickedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Expired reports whether the record is past its expiry at the given time.
func (u *ShortURL) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && u.ExpiresAt.Before(now)
}

// Projection returns the public view of the record.
func (u *ShortURL) Projection() URLProjection {
	tags := u.Tags
	if tags == nil {
		tags = []string{}
	}
	return URLProjection{
		ID:          u.ID,
		ShortCode:   u.ShortCode,
		CustomAlias: u.CustomAlias,
		OriginalURL: u.OriginalURL,
		ClickCount:  u.ClickCount,
		IsActive:    u.IsActive,
		Description: u.Description,
		Tags:        tags,
		ExpiresAt:   u.ExpiresAt,
		CreatedAt:   u.CreatedAt,
	}
}

// URLProjection is the record shape returned to API clients.
type URLProjection struct {
	ID          int64      `json:"id"`
	ShortCode   string     `json:"shortCode"`
	CustomAlias *string    `json:"customAlias,omitempty"`
	OriginalURL string     `json:"originalUrl"`
	ClickCount  int64      `json:"clickCount"`
	IsActive    bool       `json:"isActive"`
	Description *string    `json:"description,omitempty"`
	Tags        []string   `json:"tags"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CreateURLRequest struct {
	OriginalURL string     `json:"originalUrl" validate:"required"`
	CustomAlias string     `json:"customAlias,omitempty" validate:"omitempty,alias"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=500"`
	Tags        []string   `json:"tags,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// UpdateURLRequest carries an owner's partial update. Pointer fields
// distinguish "not provided" (nil) from "provided": an alias pointer to
// the empty string clears the alias.
type UpdateURLRequest struct {
	CustomAlias *string    `json:"customAlias,omitempty"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Tags        *[]string  `json:"tags,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// URLPatch is the partial update applied by the store in a single
// atomic UPDATE. Nil fields are left untouched. A CustomAlias pointer
// to the empty string stores NULL.
type URLPatch struct {
	CustomAlias *string
	Description *string
	Tags        []string
	ExpiresAt   *time.Time
	IsActive    *bool
}

// Empty reports whether the patch would change nothing.
func (p URLPatch) Empty() bool {
	return p.CustomAlias == nil && p.Description == nil && p.Tags == nil &&
		p.ExpiresAt == nil && p.IsActive == nil
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
}

type URLPage struct {
	Data       []URLProjection `json:"data"`
	Pagination Pagination      `json:"pagination"`
}
