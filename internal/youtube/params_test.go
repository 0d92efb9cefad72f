package youtube

import "testing"

func TestVideoSearchParams(t *testing.T) {
	params := VideoSearchParams("lofi", 25, "viewCount")
	if params["part"] != "snippet" || params["type"] != "video" {
		t.Errorf("unexpected fixed params: %v", params)
	}
	if params["q"] != "lofi" || params["maxResults"] != "25" || params["order"] != "viewCount" {
		t.Errorf("unexpected caller params: %v", params)
	}

	// Empty order must be absent, not empty.
	params = VideoSearchParams("lofi", 10, "")
	if _, ok := params["order"]; ok {
		t.Error("empty order must not appear in params")
	}
}

func TestTrendingParams(t *testing.T) {
	params := TrendingParams("KR", "10", 25)
	if params["chart"] != "mostPopular" {
		t.Errorf("chart = %q, want mostPopular", params["chart"])
	}
	if params["regionCode"] != "KR" || params["videoCategoryId"] != "10" {
		t.Errorf("unexpected optional params: %v", params)
	}

	params = TrendingParams("", "", 25)
	if _, ok := params["regionCode"]; ok {
		t.Error("empty regionCode must not appear")
	}
	if _, ok := params["videoCategoryId"]; ok {
		t.Error("empty videoCategoryId must not appear")
	}
}

func TestDetailsParamsFixedParts(t *testing.T) {
	v := VideoDetailsParams("abc")
	if v["part"] != "snippet,statistics,contentDetails" || v["id"] != "abc" {
		t.Errorf("unexpected video details params: %v", v)
	}
	c := ChannelDetailsParams("UCabc")
	if c["id"] != "UCabc" {
		t.Errorf("unexpected channel details params: %v", c)
	}
}
