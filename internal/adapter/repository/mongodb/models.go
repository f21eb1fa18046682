package mongodb

import (
	"fmt"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// adDocument is the MongoDB shape of an ad. Media is embedded: the ad
// owns its media exclusively, so deleting the document cascades.
// viewer_favorites is only populated by the listing aggregation when a
// viewer id is part of the filter.
type adDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UniqueCode        string             `bson:"unique_code"`
	Title             string             `bson:"title"`
	Description       string             `bson:"description"`
	Details           string             `bson:"details,omitempty"`
	Price             float64            `bson:"price"`
	Category          string             `bson:"category"`
	Subcategory       string             `bson:"subcategory,omitempty"`
	Location          string             `bson:"location,omitempty"`
	SellerID          string             `bson:"seller_id"`
	Views             int64              `bson:"views"`
	IsFeatured        bool               `bson:"is_featured"`
	FeaturedExpiresAt *time.Time         `bson:"featured_expires_at,omitempty"`
	ExpiresAt         *time.Time         `bson:"expires_at,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	Media             []mediaDocument    `bson:"media"`

	Seller          *sellerDocument    `bson:"seller,omitempty"`
	ViewerFavorites []favoriteDocument `bson:"viewer_favorites,omitempty"`
}

type mediaDocument struct {
	ID       string `bson:"id"`
	URL      string `bson:"url"`
	MimeType string `bson:"mime_type,omitempty"`
}

// sellerDocument is the stored marketplace user. Password, email and
// phone stay in this layer; the domain mapping decides how much of the
// subset a read exposes.
type sellerDocument struct {
	ID            string     `bson:"_id"`
	Name          string     `bson:"name"`
	Avatar        string     `bson:"avatar,omitempty"`
	IsOnline      bool       `bson:"is_online"`
	PhoneVerified bool       `bson:"phone_verified"`
	Points        int32      `bson:"points"`
	Email         string     `bson:"email,omitempty"`
	Phone         string     `bson:"phone,omitempty"`
	Password      string     `bson:"password,omitempty"`
	CreatedAt     *time.Time `bson:"created_at,omitempty"`
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	AdID      string             `bson:"ad_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toAdDocument(ad *domain.Ad) (*adDocument, error) {
	if ad == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if ad.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(ad.ID)
		if err != nil {
			return nil, fmt.Errorf("toAdDocument: invalid ID format '%s': %w", ad.ID, err)
		}
	}

	media := make([]mediaDocument, 0, len(ad.Media))
	for _, m := range ad.Media {
		media = append(media, mediaDocument{ID: m.ID, URL: m.URL, MimeType: m.MimeType})
	}

	return &adDocument{
		ID:                docID,
		UniqueCode:        ad.UniqueCode,
		Title:             ad.Title,
		Description:       ad.Description,
		Details:           ad.Details,
		Price:             ad.Price,
		Category:          ad.Category,
		Subcategory:       ad.Subcategory,
		Location:          ad.Location,
		SellerID:          ad.SellerID,
		Views:             ad.Views,
		IsFeatured:        ad.IsFeatured,
		FeaturedExpiresAt: ad.FeaturedExpiresAt,
		ExpiresAt:         ad.ExpiresAt,
		CreatedAt:         ad.CreatedAt,
		Media:             media,
	}, nil
}

// toDomainAd converts a stored document to the domain model.
// firstMediaOnly trims the media list to the leading item for listing
// reads; extendedSeller additionally exposes points and registration
// date for the detail read.
func toDomainAd(d *adDocument, firstMediaOnly, extendedSeller bool) *domain.Ad {
	if d == nil {
		return nil
	}

	media := make([]domain.Media, 0, len(d.Media))
	for _, m := range d.Media {
		media = append(media, domain.Media{ID: m.ID, URL: m.URL, MimeType: m.MimeType})
		if firstMediaOnly {
			break
		}
	}

	ad := &domain.Ad{
		ID:                d.ID.Hex(),
		UniqueCode:        d.UniqueCode,
		Title:             d.Title,
		Description:       d.Description,
		Details:           d.Details,
		Price:             d.Price,
		Category:          d.Category,
		Subcategory:       d.Subcategory,
		Location:          d.Location,
		SellerID:          d.SellerID,
		Views:             d.Views,
		IsFeatured:        d.IsFeatured,
		FeaturedExpiresAt: d.FeaturedExpiresAt,
		ExpiresAt:         d.ExpiresAt,
		CreatedAt:         d.CreatedAt,
		Media:             media,
	}

	if d.Seller != nil {
		ad.Seller = toDomainSeller(d.Seller, extendedSeller)
	}

	for _, f := range d.ViewerFavorites {
		ad.FavoriteMarkers = append(ad.FavoriteMarkers, *toDomainFavorite(&f))
	}

	return ad
}

// toDomainSeller maps the stored user to the viewer-visible subset.
// Password and phone never cross this boundary; email is carried for
// internal notification flows but is excluded from JSON by the domain
// model.
func toDomainSeller(d *sellerDocument, extended bool) *domain.Seller {
	if d == nil {
		return nil
	}
	seller := &domain.Seller{
		ID:            d.ID,
		Name:          d.Name,
		Avatar:        d.Avatar,
		IsOnline:      d.IsOnline,
		PhoneVerified: d.PhoneVerified,
		Email:         d.Email,
	}
	if extended {
		seller.Points = d.Points
		seller.CreatedAt = d.CreatedAt
	}
	return seller
}

func toFavoriteDocument(f *domain.Favorite) (*favoriteDocument, error) {
	if f == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if f.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(f.ID)
		if err != nil {
			return nil, fmt.Errorf("toFavoriteDocument: invalid ID format '%s': %w", f.ID, err)
		}
	}

	return &favoriteDocument{
		ID:        docID,
		UserID:    f.UserID,
		AdID:      f.AdID,
		CreatedAt: f.CreatedAt,
	}, nil
}

func toDomainFavorite(d *favoriteDocument) *domain.Favorite {
	if d == nil {
		return nil
	}
	return &domain.Favorite{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		AdID:      d.AdID,
		CreatedAt: d.CreatedAt,
	}
}

func toDomainFavorites(docs []*favoriteDocument) []*domain.Favorite {
	if docs == nil {
		return nil
	}
	favorites := make([]*domain.Favorite, 0, len(docs))
	for _, doc := range docs {
		favorites = append(favorites, toDomainFavorite(doc))
	}
	return favorites
}
