package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/snaplink/snaplink/internal/domain"
	"github.com/snaplink/snaplink/internal/logger"
	"github.com/snaplink/snaplink/pkg/alias"
	"github.com/snaplink/snaplink/pkg/generator"
)

// maxCodeAttempts bounds the generate-and-insert loop. With a 62^6
// code space, exhausting it means something is badly wrong.
const maxCodeAttempts = 10

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type URLRepository interface {
	Create(ctx context.Context, url *domain.ShortURL) error
	GetByCode(ctx context.Context, shortCode string) (*domain.ShortURL, error)
	GetByAlias(ctx context.Context, alias string) (*domain.ShortURL, error)
	GetByCodeOrAlias(ctx context.Context, value string) (*domain.ShortURL, error)
	GetByCodeAndOwner(ctx context.Context, shortCode string, ownerID uuid.UUID) (*domain.ShortURL, error)
	UpdateFields(ctx context.Context, id int64, patch domain.URLPatch) (*domain.ShortURL, error)
	RegisterClick(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]domain.ShortURL, int64, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) (int64, error)
}

type CacheRepository interface {
	Get(ctx context.Context, codeOrAlias string) (*domain.ShortURL, error)
	Set(ctx context.Context, codeOrAlias string, url *domain.ShortURL) error
	Invalidate(ctx context.Context, codesOrAliases ...string) error
}

type StatsRepository interface {
	OwnerStats(ctx context.Context, ownerID uuid.UUID) (*domain.GlobalAnalytics, error)
}

// ShortenerService orchestrates creation, resolution, mutation and
// analytics of short links. The record store is the single source of
// truth; the cache is strictly derived, and every cache fault degrades
// to a store read rather than a caller-visible error.
type ShortenerService struct {
	urlRepo    URLRepository
	cacheRepo  CacheRepository
	statsRepo  StatsRepository
	generate   func(length int) (string, error)
	codeLength int
	now        func() time.Time
}

func NewShortenerService(urlRepo URLRepository, cacheRepo CacheRepository, statsRepo StatsRepository, codeLength int) *ShortenerService {
	if codeLength <= 0 {
		codeLength = generator.DefaultLength
	}
	return &ShortenerService{
		urlRepo:    urlRepo,
		cacheRepo:  cacheRepo,
		statsRepo:  statsRepo,
		generate:   generator.Generate,
		codeLength: codeLength,
		now:        time.Now,
	}
}

// Create validates the request, claims the custom alias if any, and
// persists a record under a freshly generated code. Generated-code
// collisions are retried up to maxCodeAttempts; the unique index
// remains the authoritative arbiter under concurrent creates. The
// cache is not written here; the first lookup populates it.
func (s *ShortenerService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateURLRequest) (*domain.ShortURL, error) {
	originalURL := strings.TrimSpace(req.OriginalURL)
	if originalURL == "" {
		return nil, domain.Validation("Original URL is required")
	}
	if !validHTTPURL(originalURL) {
		return nil, domain.Validation("Invalid URL format. Please provide a valid HTTP/HTTPS URL")
	}

	if req.ExpiresAt != nil && !req.ExpiresAt.After(s.now()) {
		return nil, domain.Validation("Expiration date must be in the future")
	}

	var customAlias *string
	if req.CustomAlias != "" {
		normalized, err := s.checkAlias(ctx, req.CustomAlias, 0)
		if err != nil {
			return nil, err
		}
		customAlias = &normalized
	}

	description := normalizeDescription(req.Description)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.generate(s.codeLength)
		if err != nil {
			return nil, fmt.Errorf("generate short code: %w", err)
		}

		// Existence pre-check keeps obviously taken codes out of the
		// insert path; the unique index still decides races.
		if _, err := s.urlRepo.GetByCode(ctx, code); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		record := &domain.ShortURL{
			OwnerID:     ownerID,
			OriginalURL: originalURL,
			ShortCode:   code,
			CustomAlias: customAlias,
			Description: description,
			Tags:        normalizeTags(req.Tags),
			ExpiresAt:   req.ExpiresAt,
		}

		err = s.urlRepo.Create(ctx, record)
		switch {
		case err == nil:
			return record, nil
		case errors.Is(err, domain.ErrCodeTaken):
			continue
		case errors.Is(err, domain.ErrAliasTaken):
			return nil, domain.ErrAliasTaken
		default:
			return nil, fmt.Errorf("create short url: %w", err)
		}
	}

	return nil, domain.ErrCodeExhausted
}

// Resolve maps a code or alias to its record for redirecting, counting
// the click. Hot path: cache first, store on a miss, populate on the
// way out. Expired records are lazily deactivated and reported as
// ErrExpired, distinct from ErrNotFound.
func (s *ShortenerService) Resolve(ctx context.Context, codeOrAlias string) (*domain.ShortURL, error) {
	log := logger.FromContext(ctx)

	record, err := s.cacheRepo.Get(ctx, codeOrAlias)
	if err != nil {
		log.Warn("Cache read failed, falling back to store", "key", codeOrAlias, "error", err)
		record = nil
	}
	fromCache := record != nil

	if record == nil {
		record, err = s.urlRepo.GetByCodeOrAlias(ctx, codeOrAlias)
		if err != nil {
			return nil, err
		}
		if !record.IsActive {
			return nil, domain.ErrNotFound
		}
	}

	if record.Expired(s.now()) {
		s.deactivateExpired(ctx, record)
		return nil, domain.ErrExpired
	}

	if !fromCache {
		if err := s.cacheRepo.Set(ctx, codeOrAlias, record); err != nil {
			log.Warn("Cache write failed", "key", codeOrAlias, "error", err)
		}
	}

	// Attempted on every successful resolution; a failed increment
	// must not break the redirect.
	if err := s.urlRepo.RegisterClick(ctx, record.ID); err != nil {
		log.Error("Click registration failed", "shortCode", record.ShortCode, "error", err)
	}

	return record, nil
}

// Info returns the public projection source for a short code. Unlike
// Resolve it never mutates: no click, no lazy deactivation.
func (s *ShortenerService) Info(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	record, err := s.urlRepo.GetByCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if !record.IsActive {
		return nil, domain.ErrNotFound
	}
	if record.Expired(s.now()) {
		return nil, domain.ErrExpired
	}
	return record, nil
}

// List pages through the owner's active records, newest first.
func (s *ShortenerService) List(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.URLPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	urls, total, err := s.urlRepo.ListByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}

	data := make([]domain.URLProjection, 0, len(urls))
	for i := range urls {
		data = append(data, urls[i].Projection())
	}

	return &domain.URLPage{
		Data: data,
		Pagination: domain.Pagination{
			CurrentPage: page,
			Limit:       limit,
			Total:       total,
			TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

// Update applies an owner's partial update. Provided-but-empty alias
// clears it; a new alias is re-validated and checked against every
// other record. The store write is a single atomic UPDATE, after which
// the old code key, the old alias key and the new alias key are all
// invalidated so no stale entry survives the change.
func (s *ShortenerService) Update(ctx context.Context, ownerID uuid.UUID, shortCode string, req *domain.UpdateURLRequest) (*domain.ShortURL, error) {
	record, err := s.urlRepo.GetByCodeAndOwner(ctx, shortCode, ownerID)
	if err != nil {
		return nil, err
	}

	patch := domain.URLPatch{}

	if req.CustomAlias != nil {
		trimmed := strings.TrimSpace(*req.CustomAlias)
		if trimmed == "" {
			cleared := ""
			patch.CustomAlias = &cleared
		} else if record.CustomAlias == nil || alias.Normalize(trimmed) != *record.CustomAlias {
			normalized, err := s.checkAlias(ctx, trimmed, record.ID)
			if err != nil {
				return nil, err
			}
			patch.CustomAlias = &normalized
		}
	}

	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		if len(trimmed) > 500 {
			return nil, domain.Validation("Description must be at most 500 characters")
		}
		patch.Description = &trimmed
	}

	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		if tags == nil {
			tags = []string{}
		}
		patch.Tags = tags
	}

	if req.ExpiresAt != nil {
		if !req.ExpiresAt.After(s.now()) {
			return nil, domain.Validation("Expiration date must be in the future")
		}
		patch.ExpiresAt = req.ExpiresAt
	}

	updated := record
	if !patch.Empty() {
		updated, err = s.urlRepo.UpdateFields(ctx, record.ID, patch)
		if err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, record, patch.CustomAlias)

	return updated, nil
}

// Delete soft-deletes the owner's record and drops its cache entries.
// Deleting an already-inactive record is a no-op success.
func (s *ShortenerService) Delete(ctx context.Context, ownerID uuid.UUID, shortCode string) error {
	record, err := s.urlRepo.GetByCodeAndOwner(ctx, shortCode, ownerID)
	if err != nil {
		return err
	}

	if record.IsActive {
		inactive := false
		if _, err := s.urlRepo.UpdateFields(ctx, record.ID, domain.URLPatch{IsActive: &inactive}); err != nil {
			return err
		}
	}

	s.invalidate(ctx, record, nil)

	return nil
}

// Analytics reads the raw counters for one of the owner's records.
func (s *ShortenerService) Analytics(ctx context.Context, ownerID uuid.UUID, shortCode string) (*domain.URLAnalytics, error) {
	record, err := s.urlRepo.GetByCodeAndOwner(ctx, shortCode, ownerID)
	if err != nil {
		return nil, err
	}

	return &domain.URLAnalytics{
		ShortCode:   record.ShortCode,
		CustomAlias: record.CustomAlias,
		ClickCount:  record.ClickCount,
		LastClicked: record.LastClickedAt,
	}, nil
}

// GlobalAnalytics totals the owner's records and clicks.
func (s *ShortenerService) GlobalAnalytics(ctx context.Context, ownerID uuid.UUID) (*domain.GlobalAnalytics, error) {
	return s.statsRepo.OwnerStats(ctx, ownerID)
}

// checkAlias normalizes and validates an alias and verifies it is free.
// The pre-check is an optimization; the unique index decides races.
// excludeID skips the record being updated in the uniqueness check.
func (s *ShortenerService) checkAlias(ctx context.Context, raw string, excludeID int64) (string, error) {
	normalized := alias.Normalize(raw)
	if !alias.Valid(normalized) {
		return "", domain.Validation("Invalid alias format. Use 3-30 characters (letters, numbers, hyphens, underscores)")
	}
	if alias.Reserved(normalized) {
		return "", domain.Validation("This alias is reserved and cannot be used")
	}

	existing, err := s.urlRepo.GetByAlias(ctx, normalized)
	if err == nil && existing.ID != excludeID {
		return "", domain.ErrAliasTaken
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	return normalized, nil
}

// deactivateExpired flips the record inactive and drops its cache
// entries on first observed expiry. Both steps are best-effort; the
// caller still reports ErrExpired.
func (s *ShortenerService) deactivateExpired(ctx context.Context, record *domain.ShortURL) {
	log := logger.FromContext(ctx)

	inactive := false
	if _, err := s.urlRepo.UpdateFields(ctx, record.ID, domain.URLPatch{IsActive: &inactive}); err != nil {
		log.Error("Failed to deactivate expired url", "shortCode", record.ShortCode, "error", err)
	}

	s.invalidate(ctx, record, nil)
}

// invalidate drops the record's code and alias cache keys, plus the
// new alias key when one was just assigned. Cache faults are logged,
// never surfaced.
func (s *ShortenerService) invalidate(ctx context.Context, record *domain.ShortURL, newAlias *string) {
	values := []string{record.ShortCode}
	if record.CustomAlias != nil {
		values = append(values, *record.CustomAlias)
	}
	if newAlias != nil && *newAlias != "" {
		values = append(values, *newAlias)
	}

	if err := s.cacheRepo.Invalidate(ctx, values...); err != nil {
		logger.FromContext(ctx).Warn("Cache invalidation failed", "shortCode", record.ShortCode, "error", err)
	}
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func normalizeDescription(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
