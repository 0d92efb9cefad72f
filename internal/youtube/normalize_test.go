package youtube

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		token   string
		seconds int
		wantErr bool
	}{
		{"PT1H2M3S", 3723, false},
		{"PT45M", 2700, false},
		{"PT30S", 30, false},
		{"PT1H", 3600, false},
		{"PT1H30S", 3630, false},
		{"PT0S", 0, false},
		{"", 0, false},
		{"P", 0, true},
		{"PTxYz", 0, true},
		{"PT1H2M3S4X", 0, true},
		{"PT-5M", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.token)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDuration(%q): expected error, got %d", tc.token, got)
			}
			if got != 0 {
				t.Errorf("ParseDuration(%q): malformed input must yield 0, got %d", tc.token, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDuration(%q): unexpected error: %v", tc.token, err)
			continue
		}
		if got != tc.seconds {
			t.Errorf("ParseDuration(%q) = %d, want %d", tc.token, got, tc.seconds)
		}
	}
}

func TestToVideoRecord(t *testing.T) {
	item := VideoResource{
		ID: "abc123",
		Snippet: Snippet{
			Title:        "Test Video",
			ChannelID:    "UCxyz",
			ChannelTitle: "Test Channel",
			PublishedAt:  "2026-08-01T12:00:00Z",
			Thumbnails: Thumbnails{
				Default: Thumbnail{URL: "https://example.com/default.jpg"},
				Medium:  Thumbnail{URL: "https://example.com/medium.jpg"},
				High:    Thumbnail{URL: "https://example.com/high.jpg"},
			},
			DefaultAudioLanguage: "ko",
		},
		Statistics: &VideoStats{
			ViewCount:    "1000000",
			LikeCount:    "10000",
			CommentCount: "1000",
		},
		ContentDetails: &ContentDetails{Duration: "PT1M30S"},
	}

	rec := ToVideoRecord(item)
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.ID != "abc123" || rec.Title != "Test Video" {
		t.Errorf("unexpected identity fields: %q %q", rec.ID, rec.Title)
	}
	if rec.Thumbnail == nil || *rec.Thumbnail != "https://example.com/medium.jpg" {
		t.Errorf("expected medium thumbnail, got %v", rec.Thumbnail)
	}
	if rec.ViewCount == nil || *rec.ViewCount != 1000000 {
		t.Errorf("unexpected view count: %v", rec.ViewCount)
	}
	if rec.Duration == nil || *rec.Duration != 90 {
		t.Errorf("unexpected duration: %v", rec.Duration)
	}
	if rec.Language == nil || *rec.Language != "ko" {
		t.Errorf("unexpected language: %v", rec.Language)
	}
	want := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if rec.PublishedAt == nil || !rec.PublishedAt.Equal(want) {
		t.Errorf("unexpected publishedAt: %v", rec.PublishedAt)
	}
}

func TestToVideoRecordMissingIdentity(t *testing.T) {
	if rec := ToVideoRecord(VideoResource{Snippet: Snippet{Title: "no id"}}); rec != nil {
		t.Errorf("expected nil for missing id, got %+v", rec)
	}
	if rec := ToVideoRecord(VideoResource{ID: "abc"}); rec != nil {
		t.Errorf("expected nil for missing title, got %+v", rec)
	}
}

func TestToVideoRecordAbsentFields(t *testing.T) {
	item := VideoResource{
		ID:      "abc123",
		Snippet: Snippet{Title: "Sparse"},
	}

	rec := ToVideoRecord(item)
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.Thumbnail != nil || rec.PublishedAt != nil || rec.Language != nil {
		t.Error("absent snippet fields must stay nil")
	}
	if rec.ViewCount != nil || rec.LikeCount != nil || rec.CommentCount != nil {
		t.Error("absent statistics must stay nil")
	}
	if rec.Duration != nil {
		t.Error("absent contentDetails must leave duration nil")
	}
}

func TestMediumThumbnailOnly(t *testing.T) {
	// Only the medium variant counts; high alone must not substitute.
	item := VideoResource{
		ID: "abc",
		Snippet: Snippet{
			Title: "Video",
			Thumbnails: Thumbnails{
				High: Thumbnail{URL: "https://example.com/high.jpg"},
			},
		},
	}
	rec := ToVideoRecord(item)
	if rec.Thumbnail != nil {
		t.Errorf("expected nil thumbnail without medium variant, got %q", *rec.Thumbnail)
	}
}

func TestSearchHitToChannelRecord(t *testing.T) {
	hit := SearchResult{
		ID: ResourceID{ChannelID: "UCabc"},
		Snippet: Snippet{
			Title:       "Channel",
			PublishedAt: "2020-01-01T00:00:00Z",
		},
	}
	rec := SearchHitToChannelRecord(hit)
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.ID != "UCabc" || rec.Title != "Channel" {
		t.Errorf("unexpected fields: %+v", rec)
	}

	if rec := SearchHitToChannelRecord(SearchResult{ID: ResourceID{VideoID: "v"}}); rec != nil {
		t.Errorf("expected nil for video hit, got %+v", rec)
	}
}

func TestToChannelRecordHiddenSubscribers(t *testing.T) {
	item := ChannelResource{
		ID:      "UCabc",
		Snippet: Snippet{Title: "Channel", Country: "KR", CustomURL: "@channel"},
		Statistics: &ChannelStats{
			ViewCount:             "500",
			SubscriberCount:       "1000",
			HiddenSubscriberCount: true,
			VideoCount:            "42",
		},
	}

	rec := ToChannelRecord(item)
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.SubscriberCount != nil {
		t.Errorf("hidden subscriber count must stay nil, got %v", *rec.SubscriberCount)
	}
	if rec.VideoCount == nil || *rec.VideoCount != 42 {
		t.Errorf("unexpected video count: %v", rec.VideoCount)
	}
	if rec.Country == nil || *rec.Country != "KR" {
		t.Errorf("unexpected country: %v", rec.Country)
	}
	if rec.CustomURL == nil || *rec.CustomURL != "@channel" {
		t.Errorf("unexpected custom url: %v", rec.CustomURL)
	}
}

func TestParseCountRejectsGarbage(t *testing.T) {
	if parseCount("") != nil {
		t.Error("empty counter must be nil")
	}
	if parseCount("abc") != nil {
		t.Error("non-numeric counter must be nil")
	}
	if parseCount("-5") != nil {
		t.Error("negative counter must be nil")
	}
	if n := parseCount("12345"); n == nil || *n != 12345 {
		t.Errorf("unexpected parse result: %v", n)
	}
}

func TestLanguagePrefersAudioLanguage(t *testing.T) {
	s := Snippet{DefaultLanguage: "en", DefaultAudioLanguage: "ko"}
	if l := language(s); l == nil || *l != "ko" {
		t.Errorf("expected audio language to win, got %v", l)
	}
	s = Snippet{DefaultLanguage: "en"}
	if l := language(s); l == nil || *l != "en" {
		t.Errorf("expected defaultLanguage fallback, got %v", l)
	}
	if l := language(Snippet{}); l != nil {
		t.Errorf("expected nil without language fields, got %v", l)
	}
}
