package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAdNotFound        = errors.New("ad not found")
	ErrSellerNotFound    = errors.New("seller not found")
	ErrUnauthorized      = errors.New("operation not permitted")
	ErrDuplicateFavorite = errors.New("favorite already exists")
	ErrFavoriteNotFound  = errors.New("favorite not found")
	ErrRepository        = errors.New("repository failure")
)
