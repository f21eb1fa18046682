package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/bazarly/ads-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// FeaturingEngine applies paid featuring to an ad. It is independent of
// the read path and performs no cache invalidation: a featured ad becomes
// visible in cached listings once their TTL lapses.
type FeaturingEngine struct {
	ads     domain.AdRepository
	sellers domain.SellerRepository
	events  EventPublisher
	mailer  Mailer
	logger  *logger.Logger
	metrics *metrics.MetricsManager
	now     func() time.Time
}

// NewFeaturingEngine creates a FeaturingEngine. events, mailer and
// metrics may be nil.
func NewFeaturingEngine(ads domain.AdRepository, sellers domain.SellerRepository, events EventPublisher, mailer Mailer, log *logger.Logger, mm *metrics.MetricsManager) *FeaturingEngine {
	return &FeaturingEngine{
		ads:     ads,
		sellers: sellers,
		events:  events,
		mailer:  mailer,
		logger:  log.Named("FeaturingEngine"),
		metrics: mm,
		now:     time.Now,
	}
}

// Feature marks the ad as featured for durationDays and stacks the
// listing expiration on top of whatever lifetime the ad already had:
//
//	baseline          = expiresAt, or createdAt + 7 days when unset
//	new expiresAt     = baseline + durationDays
//	featuredExpiresAt = now + durationDays
//
// The two dates are deliberately anchored differently: the boost runs
// from the moment of purchase while the listing lifetime accumulates.
func (e *FeaturingEngine) Feature(ctx context.Context, adID string, durationDays int) (*domain.Ad, error) {
	if durationDays < 1 {
		return nil, fmt.Errorf("%w: durationDays must be a positive integer, got %d", domain.ErrInvalidInput, durationDays)
	}

	ad, err := e.ads.FindByID(ctx, adID)
	if err != nil {
		e.logger.Warn("Failed to load ad for featuring", zap.String("ad_id", adID), zap.Error(err))
		return nil, err
	}

	baseline := ad.CreatedAt.Add(domain.DefaultAdLifetime)
	if ad.ExpiresAt != nil {
		baseline = *ad.ExpiresAt
	}

	extension := time.Duration(durationDays) * 24 * time.Hour
	newExpiresAt := baseline.Add(extension)
	featuredExpiresAt := e.now().Add(extension)

	updated, err := e.ads.ApplyFeaturing(ctx, adID, newExpiresAt, featuredExpiresAt)
	if err != nil {
		e.logger.Error("Failed to persist featuring", zap.String("ad_id", adID), zap.Error(err))
		return nil, err
	}

	e.logger.Info("Ad featured",
		zap.String("ad_id", adID),
		zap.Int("duration_days", durationDays),
		zap.Time("expires_at", newExpiresAt),
		zap.Time("featured_expires_at", featuredExpiresAt),
	)
	if e.metrics != nil {
		e.metrics.AdsFeaturedTotal.Inc()
	}

	if e.events != nil {
		eventData := map[string]interface{}{
			"ad_id":               updated.ID,
			"duration_days":       durationDays,
			"expires_at":          newExpiresAt.Format(time.RFC3339Nano),
			"featured_expires_at": featuredExpiresAt.Format(time.RFC3339Nano),
		}
		if err := e.events.Publish(ctx, "ad.featured", eventData); err != nil {
			e.logger.Warn("Failed to publish ad.featured event", zap.String("ad_id", adID), zap.Error(err))
		}
	}

	e.notifySeller(ctx, updated, featuredExpiresAt)

	return updated, nil
}

func (e *FeaturingEngine) notifySeller(ctx context.Context, ad *domain.Ad, featuredUntil time.Time) {
	if e.mailer == nil || e.sellers == nil {
		return
	}
	seller, err := e.sellers.FindByID(ctx, ad.SellerID)
	if err != nil || seller.Email == "" {
		e.logger.Debug("Skipping featuring confirmation email", zap.String("seller_id", ad.SellerID), zap.Error(err))
		return
	}
	if err := e.mailer.SendAdFeaturedEmail(seller.Email, ad.Title, featuredUntil); err != nil {
		e.logger.Warn("Failed to send featuring confirmation email", zap.String("seller_id", ad.SellerID), zap.Error(err))
	}
}
