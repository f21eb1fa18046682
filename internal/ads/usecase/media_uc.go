package usecase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaUsecase uploads a media file to object storage and attaches it to
// an ad. Only the owning seller may attach media.
type MediaUsecase struct {
	storage MediaStorage
	ads     domain.AdRepository
	logger  *logger.Logger
}

func NewMediaUsecase(storage MediaStorage, ads domain.AdRepository, log *logger.Logger) *MediaUsecase {
	return &MediaUsecase{
		storage: storage,
		ads:     ads,
		logger:  log.Named("MediaUsecase"),
	}
}

func (uc *MediaUsecase) UploadMedia(ctx context.Context, adID, sellerID, fileName string, data []byte) (*domain.Media, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: media file is empty", domain.ErrInvalidInput)
	}

	ad, err := uc.ads.FindByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad.SellerID != sellerID {
		return nil, fmt.Errorf("%w: only the owner may attach media", domain.ErrUnauthorized)
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Failed to upload media", zap.String("ad_id", adID), zap.Error(err))
		return nil, err
	}

	media := domain.Media{
		ID:       uuid.New().String(),
		URL:      url,
		MimeType: http.DetectContentType(data),
	}
	if err := uc.ads.AppendMedia(ctx, adID, media); err != nil {
		uc.logger.Error("Failed to attach media to ad", zap.String("ad_id", adID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Media attached", zap.String("ad_id", adID), zap.String("media_id", media.ID))
	return &media, nil
}
