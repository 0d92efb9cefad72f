package model

import "time"

// VideoRecord is the canonical representation of a video fetched from the
// YouTube Data API. Counter and detail fields are pointers: absent in the
// source payload means absent here, never zero.
type VideoRecord struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ChannelID    string     `json:"channelId,omitempty"`
	ChannelTitle string     `json:"channelTitle,omitempty"`
	Thumbnail    *string    `json:"thumbnail,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	Duration     *int       `json:"duration,omitempty"` // whole seconds
	ViewCount    *int64     `json:"viewCount,omitempty"`
	LikeCount    *int64     `json:"likeCount,omitempty"`
	CommentCount *int64     `json:"commentCount,omitempty"`
	Language     *string    `json:"language,omitempty"`

	// Populated only by ranking paths.
	HotScore *float64 `json:"hotScore,omitempty"`
	Ranking  *int     `json:"ranking,omitempty"` // 1-based, dense
}

// HoursSince returns the whole hours elapsed between the publish time and
// now, truncated toward zero. ok is false when the publish time is absent.
func (v *VideoRecord) HoursSince(now time.Time) (hours int64, ok bool) {
	if v.PublishedAt == nil {
		return 0, false
	}
	return int64(now.Sub(*v.PublishedAt).Hours()), true
}
