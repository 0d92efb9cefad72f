package model

import "time"

// ChannelRecord is the canonical representation of a YouTube channel.
// Summary fields (country, custom handle) are only present when the record
// came from a full channel details fetch.
type ChannelRecord struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Thumbnail       *string    `json:"thumbnail,omitempty"`
	SubscriberCount *int64     `json:"subscriberCount,omitempty"`
	VideoCount      *int64     `json:"videoCount,omitempty"`
	ViewCount       *int64     `json:"viewCount,omitempty"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	Country         *string    `json:"country,omitempty"`
	CustomURL       *string    `json:"customUrl,omitempty"`
}
