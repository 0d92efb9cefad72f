package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

type SearchLogRepo struct {
	pool *pgxpool.Pool
}

func NewSearchLogRepo(pool *pgxpool.Pool) *SearchLogRepo {
	return &SearchLogRepo{pool: pool}
}

// InsertBatch writes a batch of search log entries in one round trip.
func (r *SearchLogRepo) InsertBatch(ctx context.Context, entries []model.SearchLog) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO search_logs (query, search_type, result_count, created_at)
			VALUES ($1, $2, $3, $4)`,
			e.Query, e.SearchType, e.ResultCount, e.CreatedAt)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// SearchStats is the aggregate view served by the stats endpoint.
type SearchStats struct {
	TotalSearches int64      `json:"totalSearches"`
	TotalResults  int64      `json:"totalResults"`
	LastSearch    *time.Time `json:"lastSearch"`
}

// Stats aggregates the search log.
func (r *SearchLogRepo) Stats(ctx context.Context) (*SearchStats, error) {
	var s SearchStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(result_count), 0), MAX(created_at)
		FROM search_logs`).Scan(&s.TotalSearches, &s.TotalResults, &s.LastSearch)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
