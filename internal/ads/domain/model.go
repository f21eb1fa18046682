package domain

import "time"

// DefaultAdLifetime is how long an ad stays published when the seller
// never purchased an extension. It is a derivation from CreatedAt, not a
// stored value, until the first featuring materializes ExpiresAt.
const DefaultAdLifetime = 7 * 24 * time.Hour

// Ad is a published classified listing.
type Ad struct {
	ID          string  `json:"id"`
	UniqueCode  string  `json:"uniqueCode"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Details     string  `json:"details,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Location    string  `json:"location,omitempty"`
	SellerID    string  `json:"sellerId"`

	Views             int64      `json:"views"`
	IsFeatured        bool       `json:"isFeatured"`
	FeaturedExpiresAt *time.Time `json:"featuredExpiresAt"`
	ExpiresAt         *time.Time `json:"expiresAt"`
	CreatedAt         time.Time  `json:"createdAt"`

	// Media is owned exclusively by the ad. Listing reads carry only the
	// first item; the detail read carries all of them.
	Media []Media `json:"media"`

	Seller *Seller `json:"seller,omitempty"`

	// IsFavorite is derived per viewer by the favorite enricher.
	IsFavorite bool `json:"isFavorite"`

	// FavoriteMarkers holds the raw favorite rows joined in by the
	// repository for the requesting viewer. The enricher folds them into
	// IsFavorite and clears them; they never reach the outward payload.
	FavoriteMarkers []Favorite `json:"-"`
}

// Media is a single image or video attached to an ad.
type Media struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
}

// Seller is the viewer-visible subset of a marketplace user. Points and
// CreatedAt are populated only for the ad detail read. Email is kept for
// internal notification flows and is never serialized.
type Seller struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Avatar        string     `json:"avatar,omitempty"`
	IsOnline      bool       `json:"isOnline"`
	PhoneVerified bool       `json:"phoneVerified"`
	Points        int32      `json:"points,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`

	Email string `json:"-"`
}

// Favorite is a (user, ad) pair. Existence of the row is the sole state.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	AdID      string    `json:"adId"`
	CreatedAt time.Time `json:"createdAt"`
}
