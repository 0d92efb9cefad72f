package service

import (
	"sort"
	"time"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

// ScoreService computes the recency-weighted engagement score used to rank
// trending and popular results.
type ScoreService struct{}

func NewScoreService() *ScoreService {
	return &ScoreService{}
}

// Score computes the hotness of a single video at the given instant.
// Scoring fails closed: without views, likes or a publish timestamp the
// score is exactly 0. The algorithm:
//
//	timeWeight      = max(0.1, 1 / (1 + hoursSincePublished/24))
//	engagementScore = (likes*2 + comments*3) / max(views, 1)
//	score           = views * engagementScore * timeWeight / 1e6
//
// The 1e6 divisor only keeps scores in a readable range.
func (s *ScoreService) Score(v model.VideoRecord, now time.Time) float64 {
	if v.ViewCount == nil || v.LikeCount == nil || v.PublishedAt == nil {
		return 0.0
	}

	views := *v.ViewCount
	likes := *v.LikeCount
	var comments int64
	if v.CommentCount != nil {
		comments = *v.CommentCount
	}

	hoursSincePublished := now.Sub(*v.PublishedAt).Hours()
	timeWeight := 1.0 / (1.0 + hoursSincePublished/24.0)
	if timeWeight < 0.1 {
		timeWeight = 0.1
	}

	viewFloor := views
	if viewFloor < 1 {
		viewFloor = 1
	}
	engagementScore := float64(likes*2+comments*3) / float64(viewFloor)

	return float64(views) * engagementScore * timeWeight / 1_000_000.0
}

// Rank scores every video at call time, sorts descending and assigns dense
// 1-based ranks. The sort is stable: equal scores keep their input order.
func (s *ScoreService) Rank(videos []model.VideoRecord) []model.VideoRecord {
	return s.rankAt(videos, time.Now())
}

func (s *ScoreService) rankAt(videos []model.VideoRecord, now time.Time) []model.VideoRecord {
	for i := range videos {
		score := s.Score(videos[i], now)
		videos[i].HotScore = &score
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return *videos[i].HotScore > *videos[j].HotScore
	})

	for i := range videos {
		ranking := i + 1
		videos[i].Ranking = &ranking
	}
	return videos
}
