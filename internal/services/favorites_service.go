package services

import (
	"context"

	"hanapBack/internal/models"
	"hanapBack/internal/repositories"
)

type FavoritesService struct {
	FavoritesRepo *repositories.FavoritesRepository
}

func (s *FavoritesService) Add(ctx context.Context, userID, propertyID string) error {
	return s.FavoritesRepo.Add(ctx, userID, propertyID)
}

func (s *FavoritesService) Remove(ctx context.Context, userID, propertyID string) error {
	return s.FavoritesRepo.Remove(ctx, userID, propertyID)
}

func (s *FavoritesService) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	return s.FavoritesRepo.Exists(ctx, userID, propertyID)
}

func (s *FavoritesService) ListIDs(ctx context.Context, userID string) ([]string, error) {
	return s.FavoritesRepo.ListIDs(ctx, userID)
}

func (s *FavoritesService) ListWithProperties(ctx context.Context, userID string) ([]models.Property, error) {
	return s.FavoritesRepo.ListWithProperties(ctx, userID)
}
