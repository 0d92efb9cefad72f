package model

import "time"

// DurationClass selects which length class of videos passes the duration
// filter, relative to a threshold in seconds.
type DurationClass string

const (
	DurationShorts DurationClass = "shorts" // duration <= threshold
	DurationNormal DurationClass = "normal" // duration > threshold
	DurationBoth   DurationClass = "both"   // always passes
)

// SearchCriteria carries caller search parameters through to the gateway
// unchanged. Zero values are simply not sent.
type SearchCriteria struct {
	Query             string `json:"query"`
	Order             string `json:"order,omitempty"`
	MaxResults        int    `json:"maxResults,omitempty"`
	RegionCode        string `json:"regionCode,omitempty"`
	RelevanceLanguage string `json:"relevanceLanguage,omitempty"`
}

// FilterCriteria holds the compound inclusion predicates applied to a
// result set. Every field is optional; an absent field skips that
// predicate entirely.
type FilterCriteria struct {
	MinViews        *int64         `json:"minViews,omitempty"`
	MinViewsPerHour *int64         `json:"minViewsPerHour,omitempty"`
	VideoType       *DurationClass `json:"videoType,omitempty"`
	ShortsDuration  *int           `json:"shortsDuration,omitempty"` // seconds, used with VideoType
	Language        *string        `json:"language,omitempty"`
}

// IsZero reports whether no predicate is set.
func (f FilterCriteria) IsZero() bool {
	return f.MinViews == nil && f.MinViewsPerHour == nil &&
		f.VideoType == nil && f.Language == nil
}

// SearchLog is one recorded search operation, persisted asynchronously.
type SearchLog struct {
	Query       string    `json:"query"`
	SearchType  string    `json:"searchType"`
	ResultCount int       `json:"resultCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
