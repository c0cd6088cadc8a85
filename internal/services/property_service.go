package services

import (
	"context"
	"log"

	"hanapBack/internal/models"
	"hanapBack/internal/repositories"
)

// Uploader pushes an image to external media storage and returns its public URL.
type Uploader interface {
	Upload(file []byte, fileName string, folder string) (string, error)
}

type PropertyService struct {
	PropertyRepo *repositories.PropertyRepository
	PhotoRepo    *repositories.PhotoRepository
	Cache        *repositories.PropertyCache
	Uploader     Uploader
}

func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	if cached, ok := s.Cache.Get(ctx); ok {
		return cached, nil
	}

	properties, err := s.PropertyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, properties)
	return properties, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id string) (models.Property, error) {
	return s.PropertyRepo.GetByID(ctx, id)
}

func (s *PropertyService) ListByOwner(ctx context.Context, userID string) ([]models.Property, error) {
	return s.PropertyRepo.ListByOwner(ctx, userID)
}

func (s *PropertyService) Search(ctx context.Context, req models.PropertySearchRequest) ([]models.Property, error) {
	return s.PropertyRepo.Search(ctx, req)
}

func (s *PropertyService) Create(ctx context.Context, userID string, req models.CreatePropertyRequest) (models.Property, error) {
	p, err := s.PropertyRepo.Create(ctx, userID, req)
	if err != nil {
		return models.Property{}, err
	}
	s.Cache.Invalidate(ctx)
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, req models.UpdatePropertyRequest) (models.Property, error) {
	p, err := s.PropertyRepo.Update(ctx, id, req)
	if err != nil {
		return models.Property{}, err
	}
	s.Cache.Invalidate(ctx)
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.PropertyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

// PhotoUpload is one image file submitted alongside a property.
type PhotoUpload struct {
	FileName string
	Data     []byte
}

// CreatePropertyResult reports the outcome of the create-then-upload sequence.
// FailedUploads being non-empty is the partial-success state: the property
// exists, some of its photos do not.
type CreatePropertyResult struct {
	Property      models.Property `json:"property"`
	PhotoURLs     []string        `json:"photo_urls"`
	FailedUploads []string        `json:"failed_uploads,omitempty"`
}

// CreateWithPhotos creates the property first, then uploads and links each
// photo. A failed upload or link is recorded and skipped, it does not undo the
// property or abort the remaining photos.
func (s *PropertyService) CreateWithPhotos(ctx context.Context, userID string, req models.CreatePropertyRequest, photos []PhotoUpload) (CreatePropertyResult, error) {
	property, err := s.Create(ctx, userID, req)
	if err != nil {
		return CreatePropertyResult{}, err
	}

	result := CreatePropertyResult{Property: property}
	for _, photo := range photos {
		url, err := s.Uploader.Upload(photo.Data, photo.FileName, "properties/"+property.ID)
		if err != nil {
			log.Printf("photo upload failed for property %s (%s): %v", property.ID, photo.FileName, err)
			result.FailedUploads = append(result.FailedUploads, photo.FileName)
			continue
		}
		if _, err := s.PhotoRepo.Add(ctx, property.ID, url); err != nil {
			log.Printf("photo link failed for property %s (%s): %v", property.ID, photo.FileName, err)
			result.FailedUploads = append(result.FailedUploads, photo.FileName)
			continue
		}
		result.PhotoURLs = append(result.PhotoURLs, url)
	}
	return result, nil
}
