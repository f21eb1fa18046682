package domain

import (
	"context"
	"time"
)

// AdRepository executes listing queries and ad lifecycle writes against
// the durable store.
type AdRepository interface {
	Create(ctx context.Context, ad *Ad) error
	FindByID(ctx context.Context, id string) (*Ad, error)
	// FindByUniqueCode returns the ad with all attached media and the
	// extended seller subset, for the detail read.
	FindByUniqueCode(ctx context.Context, code string) (*Ad, error)
	// FindByFilter returns one page of ads ordered by creation time
	// descending, with the first media item, the seller subset, and the
	// raw favorite markers for spec.ViewerID when present.
	FindByFilter(ctx context.Context, spec FilterSpec) ([]*Ad, error)
	// ApplyFeaturing persists isFeatured, the stacked expiration and the
	// featured-until date as a single atomic write and returns the
	// updated ad.
	ApplyFeaturing(ctx context.Context, id string, expiresAt, featuredExpiresAt time.Time) (*Ad, error)
	AppendMedia(ctx context.Context, id string, media Media) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *Favorite) error
	Remove(ctx context.Context, userID, adID string) error
	FindByUserID(ctx context.Context, userID string) ([]*Favorite, error)
	// RemoveByAdID drops every favorite pointing at the ad; used when an
	// ad is deleted.
	RemoveByAdID(ctx context.Context, adID string) error
}

type SellerRepository interface {
	FindByID(ctx context.Context, id string) (*Seller, error)
}
