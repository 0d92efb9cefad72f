package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// Upsert stores or refreshes a fetched video snapshot. COALESCE keeps a
// previously stored value when the new fetch lacks the field (search hits
// carry no statistics).
func (r *VideoRepo) Upsert(ctx context.Context, v model.VideoRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO videos (video_id, channel_id, title, description, thumbnail_url,
		                    published_at, duration, view_count, like_count, comment_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id    = EXCLUDED.channel_id,
			title         = EXCLUDED.title,
			description   = EXCLUDED.description,
			thumbnail_url = COALESCE(EXCLUDED.thumbnail_url, videos.thumbnail_url),
			published_at  = COALESCE(EXCLUDED.published_at, videos.published_at),
			duration      = COALESCE(EXCLUDED.duration, videos.duration),
			view_count    = COALESCE(EXCLUDED.view_count, videos.view_count),
			like_count    = COALESCE(EXCLUDED.like_count, videos.like_count),
			comment_count = COALESCE(EXCLUDED.comment_count, videos.comment_count),
			updated_at    = NOW()`,
		v.ID, v.ChannelID, v.Title, v.Description, v.Thumbnail,
		v.PublishedAt, v.Duration, v.ViewCount, v.LikeCount, v.CommentCount)
	return err
}

// Count returns the number of stored video snapshots.
func (r *VideoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n)
	return n, err
}
