package usecase

import (
	"context"
	"testing"

	"github.com/bazarly/ads-service/internal/ads/domain"
	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddFavorite_RequiresBothIDs(t *testing.T) {
	repo := new(MockFavoriteRepository)
	uc := NewFavoriteUsecase(repo, nil, logger.NewNop())

	assert.ErrorIs(t, uc.AddFavorite(context.Background(), "", "ad-1"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.AddFavorite(context.Background(), "user-1", ""), domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Add")
}

func TestAddFavorite_DuplicateSurfaces(t *testing.T) {
	repo := new(MockFavoriteRepository)
	uc := NewFavoriteUsecase(repo, nil, logger.NewNop())

	repo.On("Add", mock.Anything, mock.Anything).Return(domain.ErrDuplicateFavorite)

	err := uc.AddFavorite(context.Background(), "user-1", "ad-1")

	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)
}

func TestRemoveFavorite_PublishesEvent(t *testing.T) {
	repo := new(MockFavoriteRepository)
	events := new(MockEventPublisher)
	uc := NewFavoriteUsecase(repo, events, logger.NewNop())

	repo.On("Remove", mock.Anything, "user-1", "ad-1").Return(nil)
	events.On("Publish", mock.Anything, "favorite.removed", mock.Anything).Return(nil)

	err := uc.RemoveFavorite(context.Background(), "user-1", "ad-1")

	assert.NoError(t, err)
	events.AssertExpectations(t)
}

func TestGetFavorites_RequiresUser(t *testing.T) {
	uc := NewFavoriteUsecase(new(MockFavoriteRepository), nil, logger.NewNop())

	_, err := uc.GetFavorites(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
