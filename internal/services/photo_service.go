package services

import (
	"context"

	"hanapBack/internal/models"
	"hanapBack/internal/repositories"
)

type PhotoService struct {
	PhotoRepo *repositories.PhotoRepository
	Uploader  Uploader
}

func (s *PhotoService) ListForProperty(ctx context.Context, propertyID string) ([]string, error) {
	return s.PhotoRepo.ListForProperty(ctx, propertyID)
}

func (s *PhotoService) ListRecordsForProperty(ctx context.Context, propertyID string) ([]models.PropertyPhoto, error) {
	return s.PhotoRepo.ListRecordsForProperty(ctx, propertyID)
}

func (s *PhotoService) Add(ctx context.Context, propertyID, photoURL string) (models.PropertyPhoto, error) {
	return s.PhotoRepo.Add(ctx, propertyID, photoURL)
}

// AddUploaded uploads the image to media storage first, then links the
// returned URL to the property.
func (s *PhotoService) AddUploaded(ctx context.Context, propertyID, fileName string, data []byte) (models.PropertyPhoto, error) {
	url, err := s.Uploader.Upload(data, fileName, "properties/"+propertyID)
	if err != nil {
		return models.PropertyPhoto{}, err
	}
	return s.PhotoRepo.Add(ctx, propertyID, url)
}

func (s *PhotoService) Remove(ctx context.Context, photoID string) error {
	return s.PhotoRepo.Remove(ctx, photoID)
}
