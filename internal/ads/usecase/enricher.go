package usecase

import "github.com/bazarly/ads-service/internal/ads/domain"

// ApplyFavorites folds the raw favorite markers joined in by the
// repository into the derived IsFavorite flag and strips the markers, so
// callers only ever see the boolean. With no viewer every flag is false.
func ApplyFavorites(ads []*domain.Ad, viewerID string) []*domain.Ad {
	for _, ad := range ads {
		ad.IsFavorite = false
		if viewerID != "" {
			for _, marker := range ad.FavoriteMarkers {
				if marker.UserID == viewerID {
					ad.IsFavorite = true
					break
				}
			}
		}
		ad.FavoriteMarkers = nil
	}
	return ads
}
