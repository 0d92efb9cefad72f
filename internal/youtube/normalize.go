package youtube

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

// Normalization of provider payloads into canonical records. Conversion is
// per item and lossy on purpose: an item missing its identifying fields
// yields nil and a log line, never a batch failure.

// ToVideoRecord converts a full video resource. Returns nil when the id or
// title is absent.
func ToVideoRecord(item VideoResource) *model.VideoRecord {
	if item.ID == "" || item.Snippet.Title == "" {
		log.Printf("normalize: dropping video item without id/title (id=%q)", item.ID)
		return nil
	}

	rec := &model.VideoRecord{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelID:    item.Snippet.ChannelID,
		ChannelTitle: item.Snippet.ChannelTitle,
		Thumbnail:    mediumThumbnail(item.Snippet.Thumbnails),
		PublishedAt:  parseTimestamp(item.Snippet.PublishedAt),
		Language:     language(item.Snippet),
	}

	if item.Statistics != nil {
		rec.ViewCount = parseCount(item.Statistics.ViewCount)
		rec.LikeCount = parseCount(item.Statistics.LikeCount)
		rec.CommentCount = parseCount(item.Statistics.CommentCount)
	}
	if item.ContentDetails != nil {
		seconds, err := ParseDuration(item.ContentDetails.Duration)
		if err != nil {
			log.Printf("normalize: %v (video=%s)", err, item.ID)
		}
		rec.Duration = &seconds
	}
	return rec
}

// SearchHitToVideoRecord converts a /search video hit. Statistics and
// duration are not present on search hits; callers enrich via a details
// fetch when they need them.
func SearchHitToVideoRecord(item SearchResult) *model.VideoRecord {
	if item.ID.VideoID == "" || item.Snippet.Title == "" {
		log.Printf("normalize: dropping search hit without videoId/title (id=%q)", item.ID.VideoID)
		return nil
	}
	return &model.VideoRecord{
		ID:           item.ID.VideoID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelID:    item.Snippet.ChannelID,
		ChannelTitle: item.Snippet.ChannelTitle,
		Thumbnail:    mediumThumbnail(item.Snippet.Thumbnails),
		PublishedAt:  parseTimestamp(item.Snippet.PublishedAt),
		Language:     language(item.Snippet),
	}
}

// SearchHitToChannelRecord converts a /search channel hit.
func SearchHitToChannelRecord(item SearchResult) *model.ChannelRecord {
	if item.ID.ChannelID == "" || item.Snippet.Title == "" {
		log.Printf("normalize: dropping channel hit without channelId/title (id=%q)", item.ID.ChannelID)
		return nil
	}
	return &model.ChannelRecord{
		ID:          item.ID.ChannelID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Thumbnail:   mediumThumbnail(item.Snippet.Thumbnails),
		PublishedAt: parseTimestamp(item.Snippet.PublishedAt),
	}
}

// ToChannelRecord converts a full channel resource, including statistics
// and the summary fields only a details fetch carries.
func ToChannelRecord(item ChannelResource) *model.ChannelRecord {
	if item.ID == "" || item.Snippet.Title == "" {
		log.Printf("normalize: dropping channel item without id/title (id=%q)", item.ID)
		return nil
	}

	rec := &model.ChannelRecord{
		ID:          item.ID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Thumbnail:   mediumThumbnail(item.Snippet.Thumbnails),
		PublishedAt: parseTimestamp(item.Snippet.PublishedAt),
	}
	if item.Snippet.Country != "" {
		rec.Country = &item.Snippet.Country
	}
	if item.Snippet.CustomURL != "" {
		rec.CustomURL = &item.Snippet.CustomURL
	}
	if item.Statistics != nil {
		rec.ViewCount = parseCount(item.Statistics.ViewCount)
		rec.VideoCount = parseCount(item.Statistics.VideoCount)
		if !item.Statistics.HiddenSubscriberCount {
			rec.SubscriberCount = parseCount(item.Statistics.SubscriberCount)
		}
	}
	return rec
}

// ParseDuration converts the provider's compact duration token (e.g.
// "PT1H2M3S") to whole seconds. Any segment may be absent. Malformed input
// yields 0 and an error the caller reports as a warning; it must never
// fail an enclosing batch.
func ParseDuration(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	if len(token) < 2 {
		return 0, fmt.Errorf("malformed duration %q: missing prefix", token)
	}

	rest := token[2:]
	total := 0
	matched := false
	for _, seg := range []struct {
		terminator string
		multiplier int
	}{
		{"H", 3600},
		{"M", 60},
		{"S", 1},
	} {
		before, after, found := strings.Cut(rest, seg.terminator)
		if !found {
			continue
		}
		n, err := parseSegment(before)
		if err != nil {
			return 0, fmt.Errorf("malformed duration %q: %w", token, err)
		}
		total += n * seg.multiplier
		rest = after
		matched = true
	}

	if rest != "" {
		if matched {
			return 0, fmt.Errorf("malformed duration %q: trailing %q", token, rest)
		}
		return 0, fmt.Errorf("malformed duration %q: no recognizable segments", token)
	}
	return total, nil
}

// parseSegment accepts only unsigned decimal digits; strconv alone would
// allow a leading sign.
func parseSegment(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty segment")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric segment %q", s)
		}
	}
	return strconv.Atoi(s)
}

// mediumThumbnail prefers the medium variant and falls back to absent,
// never to another resolution. Callers wanting a different size fetch again.
func mediumThumbnail(t Thumbnails) *string {
	if t.Medium.URL == "" {
		return nil
	}
	return &t.Medium.URL
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		log.Printf("normalize: bad publishedAt %q: %v", s, err)
		return nil
	}
	utc := ts.UTC()
	return &utc
}

func parseCount(s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		log.Printf("normalize: bad counter %q", s)
		return nil
	}
	return &n
}

func language(s Snippet) *string {
	if s.DefaultAudioLanguage != "" {
		return &s.DefaultAudioLanguage
	}
	if s.DefaultLanguage != "" {
		return &s.DefaultLanguage
	}
	return nil
}
