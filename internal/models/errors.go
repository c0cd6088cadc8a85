package models

import (
	"errors"
)

var (
	ErrNoRecord              = errors.New("models: no matching record found")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrPhotoNotFound         = errors.New("photo not found")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrDuplicateFavorite     = errors.New("property already in favorites")
	ErrEmptyTitle            = errors.New("title must not be empty")
	ErrInvalidPropertyType   = errors.New("invalid property type")
	ErrNegativePrice         = errors.New("price must not be negative")
	ErrIncompleteCoordinates = errors.New("latitude and longitude must be set together")
)
