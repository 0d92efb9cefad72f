package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// Upsert stores or refreshes a fetched channel snapshot.
func (r *ChannelRepo) Upsert(ctx context.Context, ch model.ChannelRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO channels (channel_id, title, description, thumbnail_url,
		                      subscriber_count, video_count, view_count, published_at,
		                      country, custom_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (channel_id) DO UPDATE SET
			title            = EXCLUDED.title,
			description      = EXCLUDED.description,
			thumbnail_url    = COALESCE(EXCLUDED.thumbnail_url, channels.thumbnail_url),
			subscriber_count = COALESCE(EXCLUDED.subscriber_count, channels.subscriber_count),
			video_count      = COALESCE(EXCLUDED.video_count, channels.video_count),
			view_count       = COALESCE(EXCLUDED.view_count, channels.view_count),
			published_at     = COALESCE(EXCLUDED.published_at, channels.published_at),
			country          = COALESCE(EXCLUDED.country, channels.country),
			custom_url       = COALESCE(EXCLUDED.custom_url, channels.custom_url),
			updated_at       = NOW()`,
		ch.ID, ch.Title, ch.Description, ch.Thumbnail,
		ch.SubscriberCount, ch.VideoCount, ch.ViewCount, ch.PublishedAt,
		ch.Country, ch.CustomURL)
	return err
}
