package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hanapBack/internal/models"
)

type PhotoRepository struct {
	DB *sql.DB
}

// ListForProperty returns photo URLs ordered by creation time ascending, the
// order cards and detail views render them in.
func (r *PhotoRepository) ListForProperty(ctx context.Context, propertyID string) ([]string, error) {
	query := `SELECT photo_url FROM property_photos WHERE property_id = ? ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("photo rows error: %w", err)
	}
	return urls, nil
}

func (r *PhotoRepository) ListRecordsForProperty(ctx context.Context, propertyID string) ([]models.PropertyPhoto, error) {
	query := `SELECT id, property_id, photo_url, created_at FROM property_photos WHERE property_id = ? ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.PropertyPhoto
	for rows.Next() {
		var p models.PropertyPhoto
		if err := rows.Scan(&p.ID, &p.PropertyID, &p.PhotoURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("photo rows error: %w", err)
	}
	return photos, nil
}

func (r *PhotoRepository) Add(ctx context.Context, propertyID, photoURL string) (models.PropertyPhoto, error) {
	photo := models.PropertyPhoto{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		PhotoURL:   photoURL,
		CreatedAt:  time.Now(),
	}

	query := `INSERT INTO property_photos (id, property_id, photo_url, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, photo.ID, photo.PropertyID, photo.PhotoURL, photo.CreatedAt)
	if err != nil {
		return models.PropertyPhoto{}, fmt.Errorf("insert photo: %w", err)
	}
	return photo, nil
}

func (r *PhotoRepository) Remove(ctx context.Context, photoID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM property_photos WHERE id = ?`, photoID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrPhotoNotFound
	}
	return nil
}
