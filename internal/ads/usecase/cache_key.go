package usecase

import (
	"net/url"
	"strconv"

	"github.com/bazarly/ads-service/internal/ads/domain"
)

const listKeyPrefix = "ads:list:"

// BuildListKey deterministically serializes a filter spec into a cache
// key. Fields that are absent or equal to their defaults are omitted, and
// url.Values.Encode emits the remaining fields sorted by name, so two
// specs with identical values always produce the same key regardless of
// how the caller assembled them.
func BuildListKey(spec domain.FilterSpec) string {
	spec = spec.Canonicalize()

	vals := url.Values{}
	if spec.Category != "" {
		vals.Set("category", spec.Category)
	}
	if spec.MinPrice != nil {
		vals.Set("minPrice", strconv.FormatFloat(*spec.MinPrice, 'f', -1, 64))
	}
	if spec.MaxPrice != nil {
		vals.Set("maxPrice", strconv.FormatFloat(*spec.MaxPrice, 'f', -1, 64))
	}
	if spec.Location != "" {
		vals.Set("location", spec.Location)
	}
	if spec.Search != "" {
		vals.Set("search", spec.Search)
	}
	if spec.SellerID != "" {
		vals.Set("sellerId", spec.SellerID)
	}
	// The viewer id must be part of the key: the cached payload carries
	// that viewer's favorite flags.
	if spec.ViewerID != "" {
		vals.Set("viewerId", spec.ViewerID)
	}
	if spec.Page != domain.DefaultPage {
		vals.Set("page", strconv.Itoa(spec.Page))
	}
	if spec.Limit != domain.DefaultLimit {
		vals.Set("limit", strconv.Itoa(spec.Limit))
	}

	return listKeyPrefix + vals.Encode()
}
