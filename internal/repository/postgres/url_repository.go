package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/snaplink/snaplink/internal/domain"
)

const urlColumns = `id, owner_id, original_url, short_code, custom_alias, description,
	tags, expires_at, is_active, click_count, last_clicked_at, created_at, updated_at`

// URLRepository is the durable store for short-link records. Unique
// indexes on short_code and custom_alias are the authoritative
// uniqueness mechanism; violations come back as domain conflict errors.
type URLRepository struct {
	db *pgxpool.Pool
}

func NewURLRepository(db *pgxpool.Pool) *URLRepository {
	return &URLRepository{db: db}
}

func (r *URLRepository) Create(ctx context.Context, url *domain.ShortURL) error {
	query := `
		INSERT INTO short_urls (owner_id, original_url, short_code, custom_alias, description, tags, expires_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		RETURNING id, is_active, click_count, created_at, updated_at
	`

	alias := ""
	if url.CustomAlias != nil {
		alias = *url.CustomAlias
	}
	if alias == "" {
		url.CustomAlias = nil
	}
	if url.Tags == nil {
		url.Tags = []string{}
	}

	err := r.db.QueryRow(ctx, query,
		url.OwnerID,
		url.OriginalURL,
		url.ShortCode,
		alias,
		url.Description,
		url.Tags,
		url.ExpiresAt,
	).Scan(&url.ID, &url.IsActive, &url.ClickCount, &url.CreatedAt, &url.UpdatedAt)

	return translateConflict(err)
}

func (r *URLRepository) GetByCode(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	query := fmt.Sprintf(`SELECT %s FROM short_urls WHERE short_code = $1`, urlColumns)
	return r.getOne(ctx, query, shortCode)
}

func (r *URLRepository) GetByAlias(ctx context.Context, alias string) (*domain.ShortURL, error) {
	query := fmt.Sprintf(`SELECT %s FROM short_urls WHERE custom_alias = $1`, urlColumns)
	return r.getOne(ctx, query, strings.ToLower(alias))
}

// GetByCodeOrAlias tries the alias first (aliases compare lowercased),
// then falls back to the code (codes are case-sensitive). Inactive and
// expired rows are returned; the caller decides resolvability.
func (r *URLRepository) GetByCodeOrAlias(ctx context.Context, value string) (*domain.ShortURL, error) {
	url, err := r.GetByAlias(ctx, value)
	if err == nil {
		return url, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return r.GetByCode(ctx, value)
}

func (r *URLRepository) GetByCodeAndOwner(ctx context.Context, shortCode string, ownerID uuid.UUID) (*domain.ShortURL, error) {
	query := fmt.Sprintf(`SELECT %s FROM short_urls WHERE short_code = $1 AND owner_id = $2`, urlColumns)
	return r.getOne(ctx, query, shortCode, ownerID)
}

// UpdateFields applies the non-nil patch fields in a single UPDATE and
// returns the updated record. An alias patch of "" stores NULL.
func (r *URLRepository) UpdateFields(ctx context.Context, id int64, patch domain.URLPatch) (*domain.ShortURL, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.CustomAlias != nil {
		args = append(args, *patch.CustomAlias)
		sets = append(sets, fmt.Sprintf("custom_alias = NULLIF($%d, '')", len(args)))
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Tags != nil {
		appendSet("tags", patch.Tags)
	}
	if patch.ExpiresAt != nil {
		appendSet("expires_at", *patch.ExpiresAt)
	}
	if patch.IsActive != nil {
		appendSet("is_active", *patch.IsActive)
	}

	query := fmt.Sprintf(`UPDATE short_urls SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), urlColumns)

	row := r.db.QueryRow(ctx, query, args...)
	url, err := scanURL(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateConflict(err)
	}
	return url, nil
}

// RegisterClick bumps the click counter atomically so concurrent
// redirects never lose increments.
func (r *URLRepository) RegisterClick(ctx context.Context, id int64) error {
	query := `
		UPDATE short_urls
		SET click_count = click_count + 1, last_clicked_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner returns a page of the owner's active records, newest
// first, along with the total active count.
func (r *URLRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]domain.ShortURL, int64, error) {
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s FROM short_urls
		WHERE owner_id = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, urlColumns)

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var urls []domain.ShortURL
	for rows.Next() {
		url, err := scanURL(rows)
		if err != nil {
			return nil, 0, err
		}
		urls = append(urls, *url)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.CountByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, 0, err
	}

	return urls, total, nil
}

func (r *URLRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM short_urls WHERE owner_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *URLRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.ShortURL, error) {
	row := r.db.QueryRow(ctx, query, args...)
	url, err := scanURL(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return url, nil
}

func scanURL(row pgx.Row) (*domain.ShortURL, error) {
	var url domain.ShortURL
	err := row.Scan(
		&url.ID,
		&url.OwnerID,
		&url.OriginalURL,
		&url.ShortCode,
		&url.CustomAlias,
		&url.Description,
		&url.Tags,
		&url.ExpiresAt,
		&url.IsActive,
		&url.ClickCount,
		&url.LastClickedAt,
		&url.CreatedAt,
		&url.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// translateConflict maps unique-index violations onto the domain
// conflict errors, keyed by constraint name.
func translateConflict(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "custom_alias"):
			return domain.ErrAliasTaken
		case strings.Contains(pgErr.ConstraintName, "short_code"):
			return domain.ErrCodeTaken
		}
	}
	return err
}
