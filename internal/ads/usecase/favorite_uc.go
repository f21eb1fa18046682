package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"go.uber.org/zap"
)

// FavoriteUsecase manages the (viewer, ad) favorite pairs. Favorites are
// owned by the viewer and live independently of the ad lifecycle.
type FavoriteUsecase struct {
	repo   domain.FavoriteRepository
	events EventPublisher
	logger *logger.Logger
}

func NewFavoriteUsecase(repo domain.FavoriteRepository, events EventPublisher, log *logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		repo:   repo,
		events: events,
		logger: log.Named("FavoriteUsecase"),
	}
}

func (uc *FavoriteUsecase) AddFavorite(ctx context.Context, userID, adID string) error {
	if userID == "" || adID == "" {
		return fmt.Errorf("%w: userId and adId are required", domain.ErrInvalidInput)
	}

	uc.logger.Info("Adding favorite", zap.String("user_id", userID), zap.String("ad_id", adID))
	favorite := &domain.Favorite{
		UserID:    userID,
		AdID:      adID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Add(ctx, favorite); err != nil {
		uc.logger.Warn("Failed to add favorite", zap.String("user_id", userID), zap.String("ad_id", adID), zap.Error(err))
		return err
	}

	if uc.events != nil {
		if err := uc.events.Publish(ctx, "favorite.added", map[string]interface{}{"user_id": userID, "ad_id": adID}); err != nil {
			uc.logger.Warn("Failed to publish favorite.added event", zap.Error(err))
		}
	}
	return nil
}

func (uc *FavoriteUsecase) RemoveFavorite(ctx context.Context, userID, adID string) error {
	if userID == "" || adID == "" {
		return fmt.Errorf("%w: userId and adId are required", domain.ErrInvalidInput)
	}

	uc.logger.Info("Removing favorite", zap.String("user_id", userID), zap.String("ad_id", adID))
	if err := uc.repo.Remove(ctx, userID, adID); err != nil {
		uc.logger.Warn("Failed to remove favorite", zap.String("user_id", userID), zap.String("ad_id", adID), zap.Error(err))
		return err
	}

	if uc.events != nil {
		if err := uc.events.Publish(ctx, "favorite.removed", map[string]interface{}{"user_id": userID, "ad_id": adID}); err != nil {
			uc.logger.Warn("Failed to publish favorite.removed event", zap.Error(err))
		}
	}
	return nil
}

func (uc *FavoriteUsecase) GetFavorites(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}
	return uc.repo.FindByUserID(ctx, userID)
}
