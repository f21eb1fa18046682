package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestFeaturingEngine(ads *MockAdRepository, sellers *MockSellerRepository, events *MockEventPublisher, mailer *MockMailer, now time.Time) *FeaturingEngine {
	var eventsPort EventPublisher
	if events != nil {
		eventsPort = events
	}
	var mailerPort Mailer
	if mailer != nil {
		mailerPort = mailer
	}
	var sellersPort domain.SellerRepository
	if sellers != nil {
		sellersPort = sellers
	}
	engine := NewFeaturingEngine(ads, sellersPort, eventsPort, mailerPort, logger.NewNop(), nil)
	engine.now = func() time.Time { return now }
	return engine
}

func TestFeature_FirstFeaturingStacksOnDefaultLifetime(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 5, 9, 30, 0, 0, time.UTC)

	ads := new(MockAdRepository)
	engine := newTestFeaturingEngine(ads, nil, nil, nil, now)

	ads.On("FindByID", mock.Anything, "ad-1").
		Return(&domain.Ad{ID: "ad-1", SellerID: "seller-1", CreatedAt: createdAt}, nil)

	wantExpiresAt := createdAt.Add(domain.DefaultAdLifetime).Add(14 * 24 * time.Hour)
	wantFeaturedUntil := now.Add(14 * 24 * time.Hour)
	ads.On("ApplyFeaturing", mock.Anything, "ad-1", wantExpiresAt, wantFeaturedUntil).
		Return(&domain.Ad{ID: "ad-1", IsFeatured: true, ExpiresAt: &wantExpiresAt, FeaturedExpiresAt: &wantFeaturedUntil}, nil)

	ad, err := engine.Feature(context.Background(), "ad-1", 14)

	assert.NoError(t, err)
	assert.True(t, ad.IsFeatured)
	ads.AssertExpectations(t)
}

func TestFeature_RepeatFeaturingStacksOnExistingExpiration(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	existingExpiresAt := createdAt.Add(14 * 24 * time.Hour)
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	ads := new(MockAdRepository)
	engine := newTestFeaturingEngine(ads, nil, nil, nil, now)

	ads.On("FindByID", mock.Anything, "ad-1").
		Return(&domain.Ad{ID: "ad-1", SellerID: "seller-1", CreatedAt: createdAt, ExpiresAt: &existingExpiresAt}, nil)

	// The extension is anchored on the prior expiration, not on now and
	// not on createdAt: +3 days lands on createdAt + 17 days.
	wantExpiresAt := createdAt.Add(17 * 24 * time.Hour)
	wantFeaturedUntil := now.Add(3 * 24 * time.Hour)
	ads.On("ApplyFeaturing", mock.Anything, "ad-1", wantExpiresAt, wantFeaturedUntil).
		Return(&domain.Ad{ID: "ad-1", IsFeatured: true, ExpiresAt: &wantExpiresAt, FeaturedExpiresAt: &wantFeaturedUntil}, nil)

	_, err := engine.Feature(context.Background(), "ad-1", 3)

	assert.NoError(t, err)
	ads.AssertExpectations(t)
}

func TestFeature_NonPositiveDurationIsRejected(t *testing.T) {
	ads := new(MockAdRepository)
	engine := newTestFeaturingEngine(ads, nil, nil, nil, time.Now())

	for _, days := range []int{0, -1, -30} {
		_, err := engine.Feature(context.Background(), "ad-1", days)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	ads.AssertNotCalled(t, "FindByID")
	ads.AssertNotCalled(t, "ApplyFeaturing")
}

func TestFeature_UnknownAd(t *testing.T) {
	ads := new(MockAdRepository)
	engine := newTestFeaturingEngine(ads, nil, nil, nil, time.Now())

	ads.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrAdNotFound)

	_, err := engine.Feature(context.Background(), "missing", 7)

	assert.ErrorIs(t, err, domain.ErrAdNotFound)
	ads.AssertNotCalled(t, "ApplyFeaturing")
}

func TestFeature_PublishesEventAndNotifiesSeller(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	ads := new(MockAdRepository)
	sellers := new(MockSellerRepository)
	events := new(MockEventPublisher)
	mailer := new(MockMailer)
	engine := newTestFeaturingEngine(ads, sellers, events, mailer, now)

	ads.On("FindByID", mock.Anything, "ad-1").
		Return(&domain.Ad{ID: "ad-1", SellerID: "seller-1", Title: "Vintage bicycle", CreatedAt: createdAt}, nil)
	ads.On("ApplyFeaturing", mock.Anything, "ad-1", mock.Anything, mock.Anything).
		Return(&domain.Ad{ID: "ad-1", SellerID: "seller-1", Title: "Vintage bicycle", IsFeatured: true}, nil)
	sellers.On("FindByID", mock.Anything, "seller-1").
		Return(&domain.Seller{ID: "seller-1", Email: "seller@example.com"}, nil)
	events.On("Publish", mock.Anything, "ad.featured", mock.Anything).Return(nil)
	mailer.On("SendAdFeaturedEmail", "seller@example.com", "Vintage bicycle", now.Add(7*24*time.Hour)).Return(nil)

	_, err := engine.Feature(context.Background(), "ad-1", 7)

	assert.NoError(t, err)
	events.AssertExpectations(t)
	mailer.AssertExpectations(t)
}
