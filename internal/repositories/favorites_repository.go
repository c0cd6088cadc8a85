package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"hanapBack/internal/models"
)

type FavoritesRepository struct {
	DB *sql.DB
}

func (r *FavoritesRepository) Add(ctx context.Context, userID, propertyID string) error {
	query := `INSERT INTO favorites (user_id, property_id, created_at) VALUES (?, ?, NOW())`
	_, err := r.DB.ExecContext(ctx, query, userID, propertyID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.ErrDuplicateFavorite
		}
		return err
	}
	return nil
}

func (r *FavoritesRepository) Remove(ctx context.Context, userID, propertyID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND property_id = ?`, userID, propertyID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrNoRecord
	}
	return nil
}

func (r *FavoritesRepository) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = ? AND property_id = ?`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, propertyID).Scan(&count)
	return count > 0, err
}

func (r *FavoritesRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT property_id FROM favorites WHERE user_id = ?`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorite rows error: %w", err)
	}
	return ids, nil
}

// ListWithProperties joins favorites against properties; the inner join drops
// favorites whose property has been deleted instead of surfacing them.
func (r *FavoritesRepository) ListWithProperties(ctx context.Context, userID string) ([]models.Property, error) {
	query := `
		SELECT p.id, p.user_id, p.type, p.title, p.description, p.price, p.location, p.latitude, p.longitude,
		       p.status, p.contact_name, p.contact_number, p.contact_email, p.created_at, p.updated_at
		FROM favorites f
		JOIN properties p ON f.property_id = p.id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorite property rows error: %w", err)
	}
	return properties, nil
}
