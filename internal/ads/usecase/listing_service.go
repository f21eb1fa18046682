package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/bazarly/ads-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// ListCacheTTL is how long a cached listing page stays valid. Entries
// expire passively; writes to ads or favorites do not invalidate them.
const ListCacheTTL = 60 * time.Second

// ListingService is the sole entry point for listing reads: it builds the
// cache key, consults the cache, and on a miss queries the repository and
// enriches the page with the viewer's favorite flags.
type ListingService struct {
	repo    domain.AdRepository
	cache   ListingCache
	logger  *logger.Logger
	metrics *metrics.MetricsManager
}

// NewListingService creates a ListingService. metrics may be nil.
func NewListingService(repo domain.AdRepository, cache ListingCache, log *logger.Logger, mm *metrics.MetricsManager) *ListingService {
	return &ListingService{
		repo:    repo,
		cache:   cache,
		logger:  log.Named("ListingService"),
		metrics: mm,
	}
}

// List returns one page of ads matching the spec, newest first. A cache
// hit is returned as-is: the key encodes the viewer id, so the cached
// payload already carries that viewer's enrichment. Cache failures
// degrade silently to the durable store; repository failures surface.
func (s *ListingService) List(ctx context.Context, spec domain.FilterSpec) ([]*domain.Ad, error) {
	spec = spec.Canonicalize()
	key := BuildListKey(spec)

	if payload, found := s.cache.Get(ctx, key); found {
		var ads []*domain.Ad
		if err := json.Unmarshal(payload, &ads); err == nil {
			s.logger.Debug("Listing served from cache", zap.String("key", key), zap.Int("count", len(ads)))
			if s.metrics != nil {
				s.metrics.ListingCacheHitsTotal.Inc()
				s.metrics.ListingsServedTotal.Inc()
			}
			return ads, nil
		}
		// A corrupt entry is treated as a miss; it will be overwritten below.
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}
	// A disabled cache is a permanent miss but not a meaningful one;
	// counting it would report a 100% miss rate for a cache that is not
	// there.
	if s.metrics != nil && s.cache.Enabled() {
		s.metrics.ListingCacheMissTotal.Inc()
	}

	ads, err := s.repo.FindByFilter(ctx, spec)
	if err != nil {
		s.logger.Error("Failed to query listings", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: list ads: %v", domain.ErrRepository, err)
	}

	ads = ApplyFavorites(ads, spec.ViewerID)

	if payload, err := json.Marshal(ads); err == nil {
		s.cache.Set(ctx, key, payload, ListCacheTTL)
	} else {
		s.logger.Warn("Failed to serialize listing page for caching", zap.String("key", key), zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.ListingsServedTotal.Inc()
	}
	return ads, nil
}

// GetByUniqueCode returns a single ad for the detail page, with all
// attached media and the extended seller subset. The view counter is
// incremented best-effort; a failed increment never fails the read.
func (s *ListingService) GetByUniqueCode(ctx context.Context, code string) (*domain.Ad, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: unique code cannot be empty", domain.ErrInvalidInput)
	}

	ad, err := s.repo.FindByUniqueCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, ad.ID); err != nil {
		s.logger.Warn("Failed to increment view counter", zap.String("ad_id", ad.ID), zap.Error(err))
	} else {
		ad.Views++
	}

	return ad, nil
}
