package model

// ChannelSearchRequest is the body of POST /api/search/channel.
type ChannelSearchRequest struct {
	Handle string `json:"handle"`
}

// KeywordSearchRequest is the body of POST /api/search/keyword. Filter
// predicates ride alongside the search parameters.
type KeywordSearchRequest struct {
	Keyword           string         `json:"keyword"`
	Order             string         `json:"order,omitempty"`
	MaxResults        int            `json:"maxResults,omitempty"`
	RegionCode        string         `json:"regionCode,omitempty"`
	RelevanceLanguage string         `json:"relevanceLanguage,omitempty"`
	Filters           FilterCriteria `json:"filters"`
}

// PopularRequest is the body of POST /api/popular.
type PopularRequest struct {
	RegionCode string         `json:"regionCode,omitempty"`
	CategoryID string         `json:"categoryId,omitempty"`
	MaxResults int            `json:"maxResults,omitempty"`
	Filters    FilterCriteria `json:"filters"`
}

// SuggestionRequest is the body of POST /api/suggestions.
type SuggestionRequest struct {
	Query string `json:"query"`
}

// KeyCreateRequest is the body of POST /api/keys.
type KeyCreateRequest struct {
	Name   string `json:"name"`
	APIKey string `json:"apiKey"`
}
