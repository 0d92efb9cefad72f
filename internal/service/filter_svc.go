package service

import (
	"time"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
)

// FilterService applies the compound inclusion criteria to a record batch.
// Predicates are AND-combined and survivor order is preserved. A predicate
// whose criterion is set but whose record field is absent is skipped
// (treated as passing) so partial data is never over-filtered.
type FilterService struct{}

func NewFilterService() *FilterService {
	return &FilterService{}
}

// Apply returns the records passing every applicable predicate.
func (f *FilterService) Apply(videos []model.VideoRecord, criteria model.FilterCriteria) []model.VideoRecord {
	return f.applyAt(videos, criteria, time.Now())
}

func (f *FilterService) applyAt(videos []model.VideoRecord, criteria model.FilterCriteria, now time.Time) []model.VideoRecord {
	if criteria.IsZero() {
		return videos
	}

	filtered := make([]model.VideoRecord, 0, len(videos))
	for _, v := range videos {
		if f.passes(&v, criteria, now) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func (f *FilterService) passes(v *model.VideoRecord, c model.FilterCriteria, now time.Time) bool {
	if c.MinViews != nil && v.ViewCount != nil {
		if *v.ViewCount < *c.MinViews {
			return false
		}
	}

	if c.MinViewsPerHour != nil && v.ViewCount != nil {
		// Velocity is only defined once at least a full hour has elapsed;
		// division truncates toward zero.
		if hours, ok := v.HoursSince(now); ok && hours > 0 {
			if *v.ViewCount/hours < *c.MinViewsPerHour {
				return false
			}
		}
	}

	if c.VideoType != nil && c.ShortsDuration != nil && v.Duration != nil {
		switch *c.VideoType {
		case model.DurationShorts:
			if *v.Duration > *c.ShortsDuration {
				return false
			}
		case model.DurationNormal:
			if *v.Duration <= *c.ShortsDuration {
				return false
			}
		case model.DurationBoth:
			// always passes
		}
	}

	if c.Language != nil && v.Language != nil {
		if *v.Language != *c.Language {
			return false
		}
	}

	return true
}
