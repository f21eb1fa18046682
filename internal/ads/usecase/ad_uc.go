package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/bazarly/ads-service/internal/platform/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdUsecase implements the ad lifecycle outside the read path: creation
// and deletion.
type AdUsecase struct {
	ads       domain.AdRepository
	sellers   domain.SellerRepository
	favorites domain.FavoriteRepository
	events    EventPublisher
	logger    *logger.Logger
	metrics   *metrics.MetricsManager
}

func NewAdUsecase(ads domain.AdRepository, sellers domain.SellerRepository, favorites domain.FavoriteRepository, events EventPublisher, log *logger.Logger, mm *metrics.MetricsManager) *AdUsecase {
	return &AdUsecase{
		ads:       ads,
		sellers:   sellers,
		favorites: favorites,
		events:    events,
		logger:    log.Named("AdUsecase"),
		metrics:   mm,
	}
}

// CreateAdInput holds the input parameters for publishing a new ad.
type CreateAdInput struct {
	SellerID    string
	Title       string
	Description string
	Details     string
	Price       float64
	Category    string
	Subcategory string
	Location    string
	Media       []domain.Media
}

// CreateAd publishes a new ad. An ad is never partially constructed: it
// requires at least one attached media item and a phone-verified seller.
func (uc *AdUsecase) CreateAd(ctx context.Context, input CreateAdInput) (*domain.Ad, error) {
	uc.logger.Info("Creating ad", zap.String("seller_id", input.SellerID), zap.String("title", input.Title))

	if input.SellerID == "" {
		return nil, fmt.Errorf("%w: sellerId cannot be empty", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if input.Category == "" || strings.EqualFold(input.Category, domain.CategoryAll) {
		return nil, fmt.Errorf("%w: a concrete category is required", domain.ErrInvalidInput)
	}
	if len(input.Media) == 0 {
		return nil, fmt.Errorf("%w: an ad requires at least one media item", domain.ErrInvalidInput)
	}

	seller, err := uc.sellers.FindByID(ctx, input.SellerID)
	if err != nil {
		return nil, err
	}
	if !seller.PhoneVerified {
		uc.logger.Warn("Rejecting ad from unverified seller", zap.String("seller_id", input.SellerID))
		return nil, fmt.Errorf("%w: seller phone is not verified", domain.ErrUnauthorized)
	}

	ad := &domain.Ad{
		UniqueCode:  newUniqueCode(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Details:     input.Details,
		Price:       math.Round(input.Price*100) / 100,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Location:    input.Location,
		SellerID:    input.SellerID,
		Media:       input.Media,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.ads.Create(ctx, ad); err != nil {
		uc.logger.Error("Failed to create ad", zap.String("seller_id", input.SellerID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Ad created", zap.String("ad_id", ad.ID), zap.String("unique_code", ad.UniqueCode))
	if uc.metrics != nil {
		uc.metrics.AdsCreatedTotal.Inc()
	}

	if uc.events != nil {
		eventData := map[string]interface{}{
			"ad_id":       ad.ID,
			"unique_code": ad.UniqueCode,
			"seller_id":   ad.SellerID,
			"category":    ad.Category,
			"created_at":  ad.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := uc.events.Publish(ctx, "ad.created", eventData); err != nil {
			uc.logger.Warn("Failed to publish ad.created event", zap.String("ad_id", ad.ID), zap.Error(err))
		}
	}

	return ad, nil
}

// DeleteAd removes an ad. Only the owning seller may delete it. Media is
// embedded in the ad document so it goes with it; favorites pointing at
// the ad are removed explicitly.
func (uc *AdUsecase) DeleteAd(ctx context.Context, adID, sellerID string) error {
	uc.logger.Info("Deleting ad", zap.String("ad_id", adID), zap.String("seller_id", sellerID))

	ad, err := uc.ads.FindByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.SellerID != sellerID {
		uc.logger.Warn("Seller forbidden to delete ad",
			zap.String("ad_id", adID), zap.String("owner_id", ad.SellerID), zap.String("seller_id", sellerID))
		return fmt.Errorf("%w: only the owner may delete an ad", domain.ErrUnauthorized)
	}

	if err := uc.ads.Delete(ctx, adID); err != nil {
		uc.logger.Error("Failed to delete ad", zap.String("ad_id", adID), zap.Error(err))
		return err
	}

	if err := uc.favorites.RemoveByAdID(ctx, adID); err != nil {
		uc.logger.Warn("Failed to cascade favorites for deleted ad", zap.String("ad_id", adID), zap.Error(err))
	}

	if uc.events != nil {
		if err := uc.events.Publish(ctx, "ad.deleted", map[string]interface{}{"ad_id": adID}); err != nil {
			uc.logger.Warn("Failed to publish ad.deleted event", zap.String("ad_id", adID), zap.Error(err))
		}
	}

	return nil
}

// newUniqueCode builds the short human-shown code printed on the ad page.
func newUniqueCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "AD-" + strings.ToUpper(raw[:8])
}
