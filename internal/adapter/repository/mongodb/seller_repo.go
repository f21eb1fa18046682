package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SellerRepository reads marketplace users. Writes happen in the user
// service; this service only needs lookups for creation preconditions
// and notifications.
type SellerRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewSellerRepository(db *mongo.Database, log *logger.Logger) *SellerRepository {
	return &SellerRepository{
		collection: db.Collection(sellersCollectionName),
		logger:     log.Named("SellerRepository"),
	}
}

func (r *SellerRepository) FindByID(ctx context.Context, id string) (*domain.Seller, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: seller id cannot be empty", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc sellerDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSellerNotFound
		}
		r.logger.Error("Failed to find seller", zap.String("seller_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return toDomainSeller(&doc, true), nil
}
