package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/internal/repository"
	"github.com/byunchangill/youtube-hot-finder/internal/youtube"
)

// ErrNotFound is returned when a detail fetch matches no item.
var ErrNotFound = errors.New("not found")

// VideoStore persists video snapshots.
type VideoStore interface {
	Upsert(ctx context.Context, v model.VideoRecord) error
	Count(ctx context.Context) (int64, error)
}

// ChannelStore persists channel snapshots.
type ChannelStore interface {
	Upsert(ctx context.Context, ch model.ChannelRecord) error
}

// SearchLogStore persists and aggregates the search log.
type SearchLogStore interface {
	InsertBatch(ctx context.Context, entries []model.SearchLog) error
	Stats(ctx context.Context) (*repository.SearchStats, error)
}

// PipelineMetrics are the collectors the pipeline feeds. All fields are
// optional; a nil collector is simply not updated.
type PipelineMetrics struct {
	UpstreamCalls *prometheus.CounterVec // labels: endpoint, outcome
	QuotaUnits    prometheus.Counter
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
}

// StatsReport is the aggregate view served by the stats endpoint: the
// search log summary plus the size of the snapshot store.
type StatsReport struct {
	*repository.SearchStats
	TrackedVideos int64 `json:"trackedVideos"`
}

const (
	defaultSearchResults   = 10
	defaultTrendingResults = 25
	maxSearchResults       = 50
)

// SearchService orchestrates the aggregation pipeline: gateway call,
// quota accounting, normalization, scoring, filtering and snapshot
// persistence. Classified failures propagate to the caller; item-level
// normalization failures never abort a batch.
type SearchService struct {
	client   *youtube.Client
	pool     *CredentialService
	scores   *ScoreService
	filters  *FilterService
	cache    *CacheService
	videos   VideoStore
	channels ChannelStore
	logsRepo SearchLogStore
	logs     *LogWorker
	metrics  *PipelineMetrics
}

func NewSearchService(
	client *youtube.Client,
	pool *CredentialService,
	scores *ScoreService,
	filters *FilterService,
	cache *CacheService,
	videos VideoStore,
	channels ChannelStore,
	logsRepo SearchLogStore,
	logs *LogWorker,
) *SearchService {
	return &SearchService{
		client:   client,
		pool:     pool,
		scores:   scores,
		filters:  filters,
		cache:    cache,
		videos:   videos,
		channels: channels,
		logsRepo: logsRepo,
		logs:     logs,
	}
}

// SetMetrics attaches pipeline collectors. Without it the pipeline runs
// unobserved, which is what tests want.
func (s *SearchService) SetMetrics(m *PipelineMetrics) {
	s.metrics = m
}

// call runs one gateway request and settles quota accounting: usage is
// metered on success, and a credential the provider rejected is
// deactivated before the error propagates.
func (s *SearchService) call(ctx context.Context, endpoint string, params map[string]string, cost int, out any) error {
	cred, err := s.client.Execute(ctx, endpoint, params, out)
	if err != nil {
		s.countUpstream(endpoint, outcomeFor(err))
		var credErr *youtube.CredentialError
		if errors.As(err, &credErr) {
			if mErr := s.pool.MarkInvalid(ctx, cred.ID); mErr != nil {
				log.Printf("search: failed to deactivate credential %d: %v", cred.ID, mErr)
			}
		}
		return err
	}
	s.countUpstream(endpoint, "success")
	if s.metrics != nil && s.metrics.QuotaUnits != nil {
		s.metrics.QuotaUnits.Add(float64(cost))
	}
	if uErr := s.pool.RecordUsage(ctx, cred.ID, cost); uErr != nil {
		log.Printf("search: failed to record %d units on credential %d: %v", cost, cred.ID, uErr)
	}
	return nil
}

func (s *SearchService) countUpstream(endpoint, outcome string) {
	if s.metrics == nil || s.metrics.UpstreamCalls == nil {
		return
	}
	s.metrics.UpstreamCalls.WithLabelValues(endpoint, outcome).Inc()
}

func (s *SearchService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		if s.metrics.CacheHits != nil {
			s.metrics.CacheHits.Inc()
		}
	} else if s.metrics.CacheMisses != nil {
		s.metrics.CacheMisses.Inc()
	}
}

func outcomeFor(err error) string {
	var (
		credErr      *youtube.CredentialError
		quotaErr     *youtube.QuotaError
		networkErr   *youtube.NetworkError
		transientErr *youtube.TransientError
	)
	switch {
	case errors.As(err, &credErr):
		return "credential_error"
	case errors.As(err, &quotaErr):
		return "quota_error"
	case errors.As(err, &networkErr):
		return "network_error"
	case errors.As(err, &transientErr):
		return "transient_error"
	default:
		return "error"
	}
}

// SearchChannels searches channels by handle or free text and enriches
// each hit with channel statistics where a details fetch succeeds.
func (s *SearchService) SearchChannels(ctx context.Context, handle string) ([]model.ChannelRecord, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, &youtube.ValidationError{Field: "handle", Message: "must not be empty"}
	}

	var resp youtube.SearchListResponse
	params := youtube.ChannelSearchParams(handle, defaultSearchResults)
	if err := s.call(ctx, youtube.EndpointSearch, params, youtube.SearchCost, &resp); err != nil {
		return nil, err
	}

	results := make([]model.ChannelRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := youtube.SearchHitToChannelRecord(item)
		if rec == nil {
			continue
		}

		// Statistics ride on the channels endpoint, not on search hits.
		// A failed enrichment keeps the basic record.
		if detail, err := s.fetchChannelDetails(ctx, rec.ID); err != nil {
			log.Printf("search: channel %s detail enrichment failed: %v", rec.ID, err)
		} else if detail != nil {
			rec = detail
		}

		s.persistChannel(ctx, *rec)
		results = append(results, *rec)
	}

	s.recordLog("channel", handle, len(results))
	return results, nil
}

// SearchVideos searches videos by keyword, enriches each hit with
// statistics and duration, then applies the filter criteria.
func (s *SearchService) SearchVideos(ctx context.Context, criteria model.SearchCriteria, filter model.FilterCriteria) ([]model.VideoRecord, error) {
	query := strings.TrimSpace(criteria.Query)
	if query == "" {
		return nil, &youtube.ValidationError{Field: "keyword", Message: "must not be empty"}
	}

	maxResults := criteria.MaxResults
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	params := youtube.VideoSearchParams(query, maxResults, criteria.Order)
	if criteria.RegionCode != "" {
		params["regionCode"] = criteria.RegionCode
	}
	if criteria.RelevanceLanguage != "" {
		params["relevanceLanguage"] = criteria.RelevanceLanguage
	}

	var resp youtube.SearchListResponse
	if err := s.call(ctx, youtube.EndpointSearch, params, youtube.SearchCost, &resp); err != nil {
		return nil, err
	}

	records := make([]model.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := youtube.SearchHitToVideoRecord(item)
		if rec == nil {
			continue
		}

		if detail, err := s.fetchVideoDetails(ctx, rec.ID); err != nil {
			log.Printf("search: video %s detail enrichment failed: %v", rec.ID, err)
		} else if detail != nil {
			rec = detail
		}

		s.persistVideo(ctx, *rec)
		records = append(records, *rec)
	}

	filtered := s.filters.Apply(records, filter)
	s.recordLog("keyword", query, len(filtered))
	return filtered, nil
}

// GetChannelDetails fetches a single channel with statistics and summary
// fields.
func (s *SearchService) GetChannelDetails(ctx context.Context, channelID string) (*model.ChannelRecord, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, &youtube.ValidationError{Field: "channelId", Message: "must not be empty"}
	}

	rec, err := s.fetchChannelDetails(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	s.persistChannel(ctx, *rec)
	return rec, nil
}

// GetTrendingVideos returns the provider's mostPopular chart for a region
// and optional category, normalized but unranked.
func (s *SearchService) GetTrendingVideos(ctx context.Context, region, category string) ([]model.VideoRecord, error) {
	var resp youtube.VideoListResponse
	params := youtube.TrendingParams(region, category, defaultTrendingResults)
	if err := s.call(ctx, youtube.EndpointVideos, params, youtube.VideoListCost, &resp); err != nil {
		return nil, err
	}

	records := make([]model.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := youtube.ToVideoRecord(item)
		if rec == nil {
			continue
		}
		s.persistVideo(ctx, *rec)
		records = append(records, *rec)
	}

	s.recordLog("trending", region, len(records))
	return records, nil
}

// GetPopularVideos returns the chart scored, ranked and filtered.
func (s *SearchService) GetPopularVideos(ctx context.Context, region, category string, maxResults int, filter model.FilterCriteria) ([]model.VideoRecord, error) {
	if maxResults <= 0 {
		maxResults = defaultTrendingResults
	}
	if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	var resp youtube.VideoListResponse
	params := youtube.TrendingParams(region, category, maxResults)
	if err := s.call(ctx, youtube.EndpointVideos, params, youtube.VideoListCost, &resp); err != nil {
		return nil, err
	}

	records := make([]model.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		rec := youtube.ToVideoRecord(item)
		if rec == nil {
			continue
		}
		s.persistVideo(ctx, *rec)
		records = append(records, *rec)
	}

	ranked := s.scores.Rank(records)
	filtered := s.filters.Apply(ranked, filter)
	s.recordLog("popular", region, len(filtered))
	return filtered, nil
}

// GetVideoDetails fetches a single video with statistics and duration.
func (s *SearchService) GetVideoDetails(ctx context.Context, videoID string) (*model.VideoRecord, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, &youtube.ValidationError{Field: "videoId", Message: "must not be empty"}
	}

	rec, err := s.fetchVideoDetails(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	s.persistVideo(ctx, *rec)
	return rec, nil
}

// Suggestions returns titles from a cheap low-volume search as query
// suggestions.
func (s *SearchService) Suggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &youtube.ValidationError{Field: "query", Message: "must not be empty"}
	}

	var resp youtube.SearchListResponse
	params := youtube.VideoSearchParams(query, 5, "")
	if err := s.call(ctx, youtube.EndpointSearch, params, youtube.SearchCost, &resp); err != nil {
		return nil, err
	}

	suggestions := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet.Title != "" {
			suggestions = append(suggestions, item.Snippet.Title)
		}
	}
	return suggestions, nil
}

// ValidateCredential issues a minimal search to check that the pool can
// still reach the provider with an accepted key.
func (s *SearchService) ValidateCredential(ctx context.Context) bool {
	params := map[string]string{
		"part":       "snippet",
		"q":          "test",
		"maxResults": "1",
	}
	var resp youtube.SearchListResponse
	if err := s.call(ctx, youtube.EndpointSearch, params, youtube.SearchCost, &resp); err != nil {
		log.Printf("search: credential validation failed: %v", err)
		return false
	}
	return true
}

// Stats aggregates the persisted search log and the snapshot store size.
// A failing video count degrades to zero rather than failing the report.
func (s *SearchService) Stats(ctx context.Context) (*StatsReport, error) {
	searchStats, err := s.logsRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	report := &StatsReport{SearchStats: searchStats}
	if s.videos != nil {
		n, err := s.videos.Count(ctx)
		if err != nil {
			log.Printf("search: video count failed: %v", err)
		} else {
			report.TrackedVideos = n
		}
	}
	return report, nil
}

// fetchVideoDetails is the cache-aside single-video fetch. Returns nil
// when the provider knows no such video.
func (s *SearchService) fetchVideoDetails(ctx context.Context, videoID string) (*model.VideoRecord, error) {
	if s.cache.Enabled() {
		if cached, err := s.cache.GetVideo(ctx, videoID); err != nil {
			log.Printf("cache: video get error: %v", err)
		} else if cached != nil {
			var rec model.VideoRecord
			if err := json.Unmarshal(cached, &rec); err == nil {
				s.countCache(true)
				return &rec, nil
			}
		}
		s.countCache(false)
	}

	var resp youtube.VideoListResponse
	params := youtube.VideoDetailsParams(videoID)
	if err := s.call(ctx, youtube.EndpointVideos, params, youtube.VideoListCost, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	rec := youtube.ToVideoRecord(resp.Items[0])
	if rec == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.SetVideo(ctx, videoID, rec); err != nil {
			log.Printf("cache: video set error: %v", err)
		}
	}
	return rec, nil
}

// fetchChannelDetails is the cache-aside single-channel fetch.
func (s *SearchService) fetchChannelDetails(ctx context.Context, channelID string) (*model.ChannelRecord, error) {
	if s.cache.Enabled() {
		if cached, err := s.cache.GetChannel(ctx, channelID); err != nil {
			log.Printf("cache: channel get error: %v", err)
		} else if cached != nil {
			var rec model.ChannelRecord
			if err := json.Unmarshal(cached, &rec); err == nil {
				s.countCache(true)
				return &rec, nil
			}
		}
		s.countCache(false)
	}

	var resp youtube.ChannelListResponse
	params := youtube.ChannelDetailsParams(channelID)
	if err := s.call(ctx, youtube.EndpointChannels, params, youtube.ChannelListCost, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	rec := youtube.ToChannelRecord(resp.Items[0])
	if rec == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.SetChannel(ctx, channelID, rec); err != nil {
			log.Printf("cache: channel set error: %v", err)
		}
	}
	return rec, nil
}

func (s *SearchService) persistVideo(ctx context.Context, v model.VideoRecord) {
	if s.videos == nil {
		return
	}
	if err := s.videos.Upsert(ctx, v); err != nil {
		log.Printf("search: video snapshot upsert failed for %s: %v", v.ID, err)
	}
}

func (s *SearchService) persistChannel(ctx context.Context, ch model.ChannelRecord) {
	if s.channels == nil {
		return
	}
	if err := s.channels.Upsert(ctx, ch); err != nil {
		log.Printf("search: channel snapshot upsert failed for %s: %v", ch.ID, err)
	}
}

func (s *SearchService) recordLog(searchType, query string, results int) {
	if s.logs == nil {
		return
	}
	s.logs.Record(model.SearchLog{
		Query:       query,
		SearchType:  searchType,
		ResultCount: results,
		CreatedAt:   time.Now().UTC(),
	})
}
