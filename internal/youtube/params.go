package youtube

import "strconv"

// Quota unit costs per endpoint, as billed by the provider. The gateway
// never increments usage itself; callers report these costs to the pool.
const (
	SearchCost      = 100
	VideoListCost   = 1
	ChannelListCost = 1
)

// Endpoint paths relative to the API base URL.
const (
	EndpointSearch   = "search"
	EndpointVideos   = "videos"
	EndpointChannels = "channels"
)

// Param builders fix the required part fields per endpoint so callers
// cannot omit them. All builders are pure.

// ChannelSearchParams builds the parameter map for a channel search.
func ChannelSearchParams(query string, maxResults int) map[string]string {
	return map[string]string{
		"part":       "snippet",
		"type":       "channel",
		"q":          query,
		"maxResults": strconv.Itoa(maxResults),
	}
}

// VideoSearchParams builds the parameter map for a keyword video search.
// order may be empty, in which case the provider default applies.
func VideoSearchParams(query string, maxResults int, order string) map[string]string {
	params := map[string]string{
		"part":       "snippet",
		"type":       "video",
		"q":          query,
		"maxResults": strconv.Itoa(maxResults),
	}
	if order != "" {
		params["order"] = order
	}
	return params
}

// VideoDetailsParams builds the parameter map for a single video details
// fetch including statistics and content details.
func VideoDetailsParams(videoID string) map[string]string {
	return map[string]string{
		"part": "snippet,statistics,contentDetails",
		"id":   videoID,
	}
}

// TrendingParams builds the parameter map for the mostPopular chart.
func TrendingParams(regionCode, categoryID string, maxResults int) map[string]string {
	params := map[string]string{
		"part":       "snippet,statistics,contentDetails",
		"chart":      "mostPopular",
		"maxResults": strconv.Itoa(maxResults),
	}
	if regionCode != "" {
		params["regionCode"] = regionCode
	}
	if categoryID != "" {
		params["videoCategoryId"] = categoryID
	}
	return params
}

// ChannelDetailsParams builds the parameter map for a channel details fetch.
func ChannelDetailsParams(channelID string) map[string]string {
	return map[string]string{
		"part": "snippet,statistics,contentDetails",
		"id":   channelID,
	}
}
