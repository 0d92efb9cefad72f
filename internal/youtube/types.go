// Package youtube implements the outbound gateway to the YouTube Data API:
// request construction, credential selection, response classification and
// normalization into canonical records.
package youtube

// Wire shapes for the Data API v3 endpoints this service calls. Counters
// arrive as decimal strings; an empty string means the field was absent.

// SearchListResponse is the body of GET /search.
type SearchListResponse struct {
	Items    []SearchResult `json:"items"`
	PageInfo PageInfo       `json:"pageInfo"`
}

type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// SearchResult is one /search hit; the ID union carries either a video or
// a channel ID depending on the requested type.
type SearchResult struct {
	ID      ResourceID `json:"id"`
	Snippet Snippet    `json:"snippet"`
}

type ResourceID struct {
	Kind      string `json:"kind"`
	VideoID   string `json:"videoId"`
	ChannelID string `json:"channelId"`
}

type Snippet struct {
	PublishedAt          string     `json:"publishedAt"`
	ChannelID            string     `json:"channelId"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Thumbnails           Thumbnails `json:"thumbnails"`
	ChannelTitle         string     `json:"channelTitle"`
	DefaultLanguage      string     `json:"defaultLanguage"`
	DefaultAudioLanguage string     `json:"defaultAudioLanguage"`
	Country              string     `json:"country"`
	CustomURL            string     `json:"customUrl"`
}

type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
	High    Thumbnail `json:"high"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// VideoListResponse is the body of GET /videos.
type VideoListResponse struct {
	Items []VideoResource `json:"items"`
}

type VideoResource struct {
	ID             string          `json:"id"`
	Snippet        Snippet         `json:"snippet"`
	Statistics     *VideoStats     `json:"statistics"`
	ContentDetails *ContentDetails `json:"contentDetails"`
}

type VideoStats struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type ContentDetails struct {
	Duration string `json:"duration"`
}

// ChannelListResponse is the body of GET /channels.
type ChannelListResponse struct {
	Items []ChannelResource `json:"items"`
}

type ChannelResource struct {
	ID         string        `json:"id"`
	Snippet    Snippet       `json:"snippet"`
	Statistics *ChannelStats `json:"statistics"`
}

type ChannelStats struct {
	ViewCount             string `json:"viewCount"`
	SubscriberCount       string `json:"subscriberCount"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	VideoCount            string `json:"videoCount"`
}
