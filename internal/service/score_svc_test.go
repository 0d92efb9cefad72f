package service

import (
	"math"
	"testing"
	"time"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func videoFixture(views, likes, comments int64, publishedAt time.Time) model.VideoRecord {
	return model.VideoRecord{
		ID:           "vid",
		Title:        "Video",
		ViewCount:    &views,
		LikeCount:    &likes,
		CommentCount: &comments,
		PublishedAt:  &publishedAt,
	}
}

func TestScoreReferenceValues(t *testing.T) {
	svc := NewScoreService()
	now := time.Now()

	// engagement = (10000*2 + 1000*3) / 1000000 = 0.023
	// timeWeight = 1.0 for a just-published video
	// score = 1000000 * 0.023 * 1.0 / 1e6 = 0.023
	v := videoFixture(1_000_000, 10_000, 1_000, now)
	if got := svc.Score(v, now); !almostEqual(got, 0.023) {
		t.Errorf("Score = %v, want 0.023", got)
	}
}

func TestScoreTimeWeightDecay(t *testing.T) {
	svc := NewScoreService()
	now := time.Now()

	// 24 hours old halves the weight: 1/(1+24/24) = 0.5
	v := videoFixture(1_000_000, 10_000, 1_000, now.Add(-24*time.Hour))
	if got := svc.Score(v, now); !almostEqual(got, 0.0115) {
		t.Errorf("Score at 24h = %v, want 0.0115", got)
	}

	// Very old videos floor at 0.1, never reach zero.
	v = videoFixture(1_000_000, 10_000, 1_000, now.Add(-365*24*time.Hour))
	if got := svc.Score(v, now); !almostEqual(got, 0.0023) {
		t.Errorf("Score at 1y = %v, want 0.0023 (floored weight)", got)
	}
}

func TestScoreFailsClosed(t *testing.T) {
	svc := NewScoreService()
	now := time.Now()

	views, likes := int64(100), int64(10)

	cases := []model.VideoRecord{
		{ID: "a", Title: "no stats"},
		{ID: "b", Title: "no likes", ViewCount: &views, PublishedAt: &now},
		{ID: "c", Title: "no publish", ViewCount: &views, LikeCount: &likes},
	}
	for _, v := range cases {
		if got := svc.Score(v, now); got != 0.0 {
			t.Errorf("Score(%s) = %v, want exactly 0", v.ID, got)
		}
	}
}

func TestScoreMissingCommentsIsZeroNotFatal(t *testing.T) {
	svc := NewScoreService()
	now := time.Now()

	views, likes := int64(1_000_000), int64(10_000)
	v := model.VideoRecord{
		ID: "vid", Title: "Video",
		ViewCount: &views, LikeCount: &likes, PublishedAt: &now,
	}
	// comments treated as 0: engagement = 20000/1e6 = 0.02
	if got := svc.Score(v, now); !almostEqual(got, 0.02) {
		t.Errorf("Score without comments = %v, want 0.02", got)
	}
}

func TestScoreZeroViewsDividesByOne(t *testing.T) {
	svc := NewScoreService()
	now := time.Now()

	// views=0 floors the divisor at 1; the views factor keeps the score 0.
	v := videoFixture(0, 50, 10, now)
	if got := svc.Score(v, now); got != 0.0 {
		t.Errorf("Score with zero views = %v, want 0", got)
	}
}

func TestRankOrdersAndNumbersDense(t *testing.T) {
	svc := NewScoreService()
	now := time.Now()

	videos := []model.VideoRecord{
		videoFixture(1_000, 10, 0, now),          // low
		videoFixture(1_000_000, 50_000, 0, now),  // high
		videoFixture(100_000, 2_000, 100, now),   // mid
	}
	videos[0].ID, videos[1].ID, videos[2].ID = "low", "high", "mid"

	ranked := svc.rankAt(videos, now)

	if ranked[0].ID != "high" || ranked[1].ID != "mid" || ranked[2].ID != "low" {
		t.Fatalf("unexpected order: %s %s %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
	for i, v := range ranked {
		if v.Ranking == nil || *v.Ranking != i+1 {
			t.Errorf("ranked[%d].Ranking = %v, want %d", i, v.Ranking, i+1)
		}
		if v.HotScore == nil {
			t.Errorf("ranked[%d] missing HotScore", i)
		}
	}
}

func TestRankStableForEqualScores(t *testing.T) {
	svc := NewScoreService()
	now := time.Now()

	// Identical inputs score identically; stable sort keeps input order.
	a := videoFixture(1000, 10, 1, now)
	b := videoFixture(1000, 10, 1, now)
	a.ID, b.ID = "first", "second"

	ranked := svc.rankAt([]model.VideoRecord{a, b}, now)
	if ranked[0].ID != "first" || ranked[1].ID != "second" {
		t.Errorf("equal scores must keep input order, got %s then %s", ranked[0].ID, ranked[1].ID)
	}
}
