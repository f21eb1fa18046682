package usecase

import (
	"context"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/stretchr/testify/mock"
)

type MockAdRepository struct{ mock.Mock }

func (m *MockAdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}
func (m *MockAdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) FindByUniqueCode(ctx context.Context, code string) (*domain.Ad, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) FindByFilter(ctx context.Context, spec domain.FilterSpec) ([]*domain.Ad, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) ApplyFeaturing(ctx context.Context, id string, expiresAt, featuredExpiresAt time.Time) (*domain.Ad, error) {
	args := m.Called(ctx, id, expiresAt, featuredExpiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}
func (m *MockAdRepository) AppendMedia(ctx context.Context, id string, media domain.Media) error {
	args := m.Called(ctx, id, media)
	return args.Error(0)
}
func (m *MockAdRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAdRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSellerRepository struct{ mock.Mock }

func (m *MockSellerRepository) FindByID(ctx context.Context, id string) (*domain.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seller), args.Error(1)
}

type MockFavoriteRepository struct{ mock.Mock }

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}
func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, adID string) error {
	args := m.Called(ctx, userID, adID)
	return args.Error(0)
}
func (m *MockFavoriteRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Favorite), args.Error(1)
}
func (m *MockFavoriteRepository) RemoveByAdID(ctx context.Context, adID string) error {
	args := m.Called(ctx, adID)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendAdFeaturedEmail(toEmail, adTitle string, featuredUntil time.Time) error {
	args := m.Called(toEmail, adTitle, featuredUntil)
	return args.Error(0)
}

// memoryCache is an in-memory ListingCache used to exercise the read
// path without Redis. Entries expire against the injected clock, and
// the TTL of the last Set is recorded.
type memoryCache struct {
	entries map[string]memoryEntry
	now     func() time.Time
	lastTTL time.Duration
	sets    int
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.payload, true
}

func (c *memoryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) bool {
	c.entries[key] = memoryEntry{payload: payload, expiresAt: c.now().Add(ttl)}
	c.lastTTL = ttl
	c.sets++
	return true
}

func (c *memoryCache) Enabled() bool { return true }

func (c *memoryCache) put(key string, payload []byte) {
	c.entries[key] = memoryEntry{payload: payload, expiresAt: c.now().Add(time.Hour)}
}

// missCache is a ListingCache that never stores anything, the behavior
// of a disabled or failing cache.
type missCache struct{}

func (missCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (missCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) bool {
	return false
}
func (missCache) Enabled() bool { return false }
