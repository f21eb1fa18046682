package mongodb

import (
	"context"
	"fmt"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const favoritesCollectionName = "favorites"

// FavoriteRepository implements domain.FavoriteRepository using MongoDB.
type FavoriteRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewFavoriteRepository creates the repository and ensures the unique
// (user_id, ad_id) index that makes the pair the sole state.
func NewFavoriteRepository(db *mongo.Database, log *logger.Logger) (*FavoriteRepository, error) {
	collection := db.Collection(favoritesCollectionName)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "ad_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "ad_id", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for favorites collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for favorites collection")
	}

	return &FavoriteRepository{
		collection: collection,
		logger:     log.Named("FavoriteRepository"),
	}, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	doc, err := toFavoriteDocument(favorite)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	favorite.ID = doc.ID.Hex()

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateFavorite
		}
		r.logger.Error("Failed to insert favorite", zap.Error(err))
		return fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, adID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "ad_id": adID})
	if err != nil {
		r.logger.Error("Failed to delete favorite", zap.String("user_id", userID), zap.String("ad_id", adID), zap.Error(err))
		return fmt.Errorf("%w: db delete failed: %v", domain.ErrRepository, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		r.logger.Error("Failed to find favorites", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*favoriteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	return toDomainFavorites(docs), nil
}

func (r *FavoriteRepository) RemoveByAdID(ctx context.Context, adID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"ad_id": adID}); err != nil {
		r.logger.Error("Failed to delete favorites for ad", zap.String("ad_id", adID), zap.Error(err))
		return fmt.Errorf("%w: db delete failed: %v", domain.ErrRepository, err)
	}
	return nil
}
