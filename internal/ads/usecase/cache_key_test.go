package usecase

import (
	"strings"
	"testing"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildListKey_DeterministicAcrossAssembly(t *testing.T) {
	a := domain.FilterSpec{
		Category: "electronics",
		MinPrice: floatPtr(10),
		MaxPrice: floatPtr(99.5),
		Location: "Almaty",
		Search:   "iphone",
		ViewerID: "user-1",
		Page:     3,
		Limit:    10,
	}
	// Same values, different construction order and a fresh pointer.
	b := domain.FilterSpec{
		Page:     3,
		ViewerID: "user-1",
		Search:   "iphone",
		Limit:    10,
		MaxPrice: floatPtr(99.5),
		Location: "Almaty",
		MinPrice: floatPtr(10),
		Category: "electronics",
	}

	assert.Equal(t, BuildListKey(a), BuildListKey(b))
}

func TestBuildListKey_OmitsDefaults(t *testing.T) {
	key := BuildListKey(domain.FilterSpec{})

	assert.Equal(t, "ads:list:", key)
}

func TestBuildListKey_DefaultPaginationEqualsExplicitDefaults(t *testing.T) {
	implicit := BuildListKey(domain.FilterSpec{Category: "pets"})
	explicit := BuildListKey(domain.FilterSpec{Category: "pets", Page: 1, Limit: 20})

	assert.Equal(t, implicit, explicit)
}

func TestBuildListKey_CategoryAllCollapses(t *testing.T) {
	all := BuildListKey(domain.FilterSpec{Category: "all"})
	none := BuildListKey(domain.FilterSpec{})
	upper := BuildListKey(domain.FilterSpec{Category: "ALL"})

	assert.Equal(t, none, all)
	assert.Equal(t, none, upper)
}

func TestBuildListKey_ViewerChangesKey(t *testing.T) {
	anonymous := BuildListKey(domain.FilterSpec{Category: "cars"})
	viewer1 := BuildListKey(domain.FilterSpec{Category: "cars", ViewerID: "user-1"})
	viewer2 := BuildListKey(domain.FilterSpec{Category: "cars", ViewerID: "user-2"})

	assert.NotEqual(t, anonymous, viewer1)
	assert.NotEqual(t, viewer1, viewer2)
	assert.True(t, strings.Contains(viewer1, "viewerId=user-1"))
}

func TestBuildListKey_PriceFormatting(t *testing.T) {
	key := BuildListKey(domain.FilterSpec{MinPrice: floatPtr(10), MaxPrice: floatPtr(99.5)})

	assert.Contains(t, key, "minPrice=10")
	assert.Contains(t, key, "maxPrice=99.5")
}
