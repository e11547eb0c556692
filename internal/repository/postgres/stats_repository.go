package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/snaplink/snaplink/internal/domain"
)

// StatsRepository serves the read-only analytics aggregations.
type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// OwnerStats totals the owner's records and clicks, active and
// inactive alike.
func (r *StatsRepository) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*domain.GlobalAnalytics, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(click_count), 0)
		FROM short_urls
		WHERE owner_id = $1
	`

	stats := &domain.GlobalAnalytics{}
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&stats.TotalURLs, &stats.TotalClicks)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
