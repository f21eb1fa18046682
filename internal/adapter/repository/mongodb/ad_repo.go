package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	adsCollectionName     = "ads"
	sellersCollectionName = "sellers"
)

// queryTimeout bounds every repository call so a stalled primary fails
// the request instead of blocking it.
const queryTimeout = 10 * time.Second

// AdRepository implements domain.AdRepository using MongoDB.
type AdRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewAdRepository creates the repository and ensures the indexes the
// listing query relies on.
func NewAdRepository(db *mongo.Database, log *logger.Logger) (*AdRepository, error) {
	collection := db.Collection(adsCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "unique_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Indexes may already exist or be managed externally; log and carry on.
		log.Error("Failed to create indexes for ads collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for ads collection")
	}

	return &AdRepository{
		collection: collection,
		logger:     log.Named("AdRepository"),
	}, nil
}

// Create inserts a new ad.
func (r *AdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	doc, err := toAdDocument(ad)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	ad.ID = doc.ID.Hex()
	ad.CreatedAt = doc.CreatedAt

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert ad", zap.Error(err))
		return fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}
	return nil
}

// FindByID loads a single ad without joins; used by the mutation paths.
func (r *AdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ad id '%s'", domain.ErrInvalidInput, id)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc adDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdNotFound
		}
		r.logger.Error("Failed to find ad by id", zap.String("ad_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return toDomainAd(&doc, false, false), nil
}

// FindByUniqueCode loads the detail view: all media plus the extended
// seller subset.
func (r *AdRepository) FindByUniqueCode(ctx context.Context, code string) (*domain.Ad, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"unique_code": code}}},
		lookupSellerStage(),
		unwindSellerStage(),
		bson.D{{Key: "$limit", Value: 1}},
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate ad detail", zap.String("unique_code", code), zap.Error(err))
		return nil, fmt.Errorf("%w: db aggregate failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*adDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrAdNotFound
	}
	return toDomainAd(docs[0], false, true), nil
}

// FindByFilter runs the listing aggregation: seller join, filter match,
// per-viewer favorite lookup, newest-first ordering and pagination. The
// returned ads carry the raw favorite markers; the caller folds them into
// the IsFavorite flag.
func (r *AdRepository) FindByFilter(ctx context.Context, spec domain.FilterSpec) ([]*domain.Ad, error) {
	pipeline := buildListPipeline(spec.Canonicalize())

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate listing page", zap.Error(err))
		return nil, fmt.Errorf("%w: db aggregate failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*adDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}

	ads := make([]*domain.Ad, 0, len(docs))
	for _, doc := range docs {
		ads = append(ads, toDomainAd(doc, true, false))
	}
	return ads, nil
}

// ApplyFeaturing persists the featuring outcome as one atomic write and
// returns the updated ad.
func (r *AdRepository) ApplyFeaturing(ctx context.Context, id string, expiresAt, featuredExpiresAt time.Time) (*domain.Ad, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ad id '%s'", domain.ErrInvalidInput, id)
	}

	update := bson.M{"$set": bson.M{
		"is_featured":         true,
		"expires_at":          expiresAt,
		"featured_expires_at": featuredExpiresAt,
	}}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc adDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdNotFound
		}
		r.logger.Error("Failed to apply featuring", zap.String("ad_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: db update failed: %v", domain.ErrRepository, err)
	}
	return toDomainAd(&doc, false, false), nil
}

// AppendMedia attaches one media item to the ad's embedded media list.
func (r *AdRepository) AppendMedia(ctx context.Context, id string, media domain.Media) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid ad id '%s'", domain.ErrInvalidInput, id)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$push": bson.M{"media": mediaDocument{ID: media.ID, URL: media.URL, MimeType: media.MimeType}}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("%w: db update failed: %v", domain.ErrRepository, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (r *AdRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid ad id '%s'", domain.ErrInvalidInput, id)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("%w: db update failed: %v", domain.ErrRepository, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

// Delete removes the ad document; embedded media goes with it.
func (r *AdRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid ad id '%s'", domain.ErrInvalidInput, id)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete ad", zap.String("ad_id", id), zap.Error(err))
		return fmt.Errorf("%w: db delete failed: %v", domain.ErrRepository, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrAdNotFound
	}
	return nil
}

// buildListPipeline assembles the listing aggregation for an already
// canonical filter: seller join, filter match, the viewer's favorite
// lookup when a viewer is known, newest-first ordering, then
// skip/limit pagination. Canonicalization guarantees page >= 1 and
// limit >= 1, so the skip offset is never negative.
func buildListPipeline(spec domain.FilterSpec) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		lookupSellerStage(),
		unwindSellerStage(),
		bson.D{{Key: "$match", Value: buildListMatch(spec)}},
	}
	if spec.ViewerID != "" {
		pipeline = append(pipeline, lookupViewerFavoritesStage(spec.ViewerID))
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$skip", Value: int64(spec.Page-1) * int64(spec.Limit)}},
		bson.D{{Key: "$limit", Value: int64(spec.Limit)}},
	)
}

// buildListMatch translates a canonical filter spec into the $match
// predicate. Only the fields actually supplied contribute; an empty spec
// matches everything. Search uses case-insensitive substring matching so
// it can span the joined seller name alongside the ad's own text fields.
func buildListMatch(spec domain.FilterSpec) bson.M {
	match := bson.M{}

	if spec.Category != "" && spec.Category != domain.CategoryAll {
		match["category"] = spec.Category
	}
	if spec.SellerID != "" {
		match["seller_id"] = spec.SellerID
	}

	price := bson.M{}
	if spec.MinPrice != nil {
		price["$gte"] = *spec.MinPrice
	}
	if spec.MaxPrice != nil {
		price["$lte"] = *spec.MaxPrice
	}
	if len(price) > 0 {
		match["price"] = price
	}

	if spec.Location != "" {
		match["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(spec.Location), Options: "i"}
	}

	if spec.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(spec.Search), Options: "i"}
		match["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"unique_code": re},
			bson.M{"seller.name": re},
		}
	}

	return match
}

func lookupSellerStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         sellersCollectionName,
		"localField":   "seller_id",
		"foreignField": "_id",
		"as":           "seller",
	}}}
}

func unwindSellerStage() bson.D {
	return bson.D{{Key: "$unwind", Value: bson.M{
		"path":                       "$seller",
		"preserveNullAndEmptyArrays": true,
	}}}
}

// lookupViewerFavoritesStage joins the requesting viewer's favorite row
// for each ad, if any. The result is the raw favorite marker the
// enricher folds into IsFavorite.
func lookupViewerFavoritesStage(viewerID string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": favoritesCollectionName,
		"let":  bson.M{"adID": bson.M{"$toString": "$_id"}},
		"pipeline": mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{
				"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$ad_id", "$$adID"}},
					bson.M{"$eq": bson.A{"$user_id", viewerID}},
				}},
			}}},
		},
		"as": "viewer_favorites",
	}}}
}
