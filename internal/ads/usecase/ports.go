package usecase

import (
	"context"
	"time"
)

// ListingCache is the short-lived key/value store consulted by the read
// path. Implementations must never surface transport failures: a failed
// Get reports a miss and a failed Set reports false, so the caller
// degrades to the durable store. Enabled reports whether the cache is
// actually in play, so callers can keep hit/miss accounting honest when
// it is not.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) bool
	Enabled() bool
}

// EventPublisher emits domain events. Publishing is best effort; callers
// log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// MediaStorage uploads raw media bytes and returns a public URL.
type MediaStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// Mailer sends transactional notifications to sellers.
type Mailer interface {
	SendAdFeaturedEmail(toEmail, adTitle string, featuredUntil time.Time) error
}
