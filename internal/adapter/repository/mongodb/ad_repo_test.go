package mongodb

import (
	"testing"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func floatPtr(v float64) *float64 { return &v }

// pipelineStage returns the value of the first stage with the given
// operator, failing the test when the pipeline has no such stage.
func pipelineStage(t *testing.T, pipeline mongo.Pipeline, operator string) interface{} {
	t.Helper()
	for _, stage := range pipeline {
		for _, element := range stage {
			if element.Key == operator {
				return element.Value
			}
		}
	}
	t.Fatalf("pipeline has no %s stage", operator)
	return nil
}

func TestBuildListPipeline_SkipsPastEarlierPages(t *testing.T) {
	// Page 2 with 2 per page lands on the third and fourth newest ads.
	pipeline := buildListPipeline(domain.FilterSpec{Page: 2, Limit: 2}.Canonicalize())

	assert.Equal(t, int64(2), pipelineStage(t, pipeline, "$skip"))
	assert.Equal(t, int64(2), pipelineStage(t, pipeline, "$limit"))
}

func TestBuildListPipeline_FirstPageStartsAtZero(t *testing.T) {
	for _, page := range []int{0, 1, -3} {
		pipeline := buildListPipeline(domain.FilterSpec{Page: page}.Canonicalize())

		assert.Equal(t, int64(0), pipelineStage(t, pipeline, "$skip"))
		assert.Equal(t, int64(domain.DefaultLimit), pipelineStage(t, pipeline, "$limit"))
	}
}

func TestBuildListPipeline_OrdersNewestFirst(t *testing.T) {
	pipeline := buildListPipeline(domain.FilterSpec{}.Canonicalize())

	sort, ok := pipelineStage(t, pipeline, "$sort").(bson.D)
	assert.True(t, ok)
	assert.Equal(t, bson.E{Key: "created_at", Value: -1}, sort[0])
}

func TestBuildListPipeline_ViewerAddsFavoriteLookup(t *testing.T) {
	anonymous := buildListPipeline(domain.FilterSpec{}.Canonicalize())
	withViewer := buildListPipeline(domain.FilterSpec{ViewerID: "user-1"}.Canonicalize())

	assert.Len(t, withViewer, len(anonymous)+1)
}

func TestBuildListMatch_EmptySpecMatchesEverything(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{}.Canonicalize())

	assert.Empty(t, match)
}

func TestBuildListMatch_CategorySentinelIsNotAFilter(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{Category: "all"}.Canonicalize())
	assert.NotContains(t, match, "category")

	match = buildListMatch(domain.FilterSpec{Category: "electronics"}.Canonicalize())
	assert.Equal(t, "electronics", match["category"])
}

func TestBuildListMatch_PriceBoundsAreInclusive(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{MinPrice: floatPtr(10), MaxPrice: floatPtr(99.5)}.Canonicalize())

	price, ok := match["price"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, 10.0, price["$gte"])
	assert.Equal(t, 99.5, price["$lte"])
}

func TestBuildListMatch_SingleSidedPriceBound(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{MinPrice: floatPtr(10)}.Canonicalize())

	price := match["price"].(bson.M)
	assert.Equal(t, 10.0, price["$gte"])
	assert.NotContains(t, price, "$lte")
}

func TestBuildListMatch_LocationIsCaseInsensitiveSubstring(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{Location: "Almaty"}.Canonicalize())

	re, ok := match["location"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, "Almaty", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestBuildListMatch_SearchSpansTextFieldsAndSellerName(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{Search: "bicycle"}.Canonicalize())

	or, ok := match["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 4)

	fields := make([]string, 0, len(or))
	for _, clause := range or {
		for field := range clause.(bson.M) {
			fields = append(fields, field)
		}
	}
	assert.ElementsMatch(t, []string{"title", "description", "unique_code", "seller.name"}, fields)
}

func TestBuildListMatch_SearchEscapesRegexMetacharacters(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{Search: "c++ (used)"}.Canonicalize())

	or := match["$or"].(bson.A)
	re := or[0].(bson.M)["title"].(primitive.Regex)
	assert.Equal(t, `c\+\+ \(used\)`, re.Pattern)
}

func TestBuildListMatch_SellerFilter(t *testing.T) {
	match := buildListMatch(domain.FilterSpec{SellerID: "seller-1"}.Canonicalize())

	assert.Equal(t, "seller-1", match["seller_id"])
}
