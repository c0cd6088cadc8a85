package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hanapBack/internal/models"
)

type PropertyRepository struct {
	DB *sql.DB
}

const propertyColumns = `id, user_id, type, title, description, price, location, latitude, longitude, status, contact_name, contact_number, contact_email, created_at, updated_at`

// Create assigns the id and creation timestamp server-side; the owner is the
// resolved session user, never a client-supplied field.
func (r *PropertyRepository) Create(ctx context.Context, userID string, req models.CreatePropertyRequest) (models.Property, error) {
	if err := req.Validate(); err != nil {
		return models.Property{}, err
	}

	status := req.Status
	if status == "" {
		status = models.PropertyStatusAvailable
	}

	p := models.Property{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          req.Type,
		Title:         strings.TrimSpace(req.Title),
		Description:   normalizeOptional(req.Description),
		Price:         req.Price,
		Location:      normalizeOptional(req.Location),
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Status:        status,
		ContactName:   normalizeOptional(req.ContactName),
		ContactNumber: normalizeOptional(req.ContactNumber),
		ContactEmail:  normalizeOptional(req.ContactEmail),
		CreatedAt:     time.Now(),
	}

	query := `
		INSERT INTO properties
			(id, user_id, type, title, description, price, location, latitude, longitude, status, contact_name, contact_number, contact_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.UserID, p.Type, p.Title, toNullString(p.Description), p.Price,
		toNullString(p.Location), toNullFloat(p.Latitude), toNullFloat(p.Longitude),
		p.Status, toNullString(p.ContactName), toNullString(p.ContactNumber), toNullString(p.ContactEmail),
		p.CreatedAt,
	)
	if err != nil {
		return models.Property{}, fmt.Errorf("insert property: %w", err)
	}
	return p, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = ?`

	p, err := scanProperty(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Property{}, models.ErrPropertyNotFound
	}
	if err != nil {
		return models.Property{}, err
	}
	return p, nil
}

func (r *PropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	return r.queryProperties(ctx, query)
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, userID string) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE user_id = ? ORDER BY created_at DESC`
	return r.queryProperties(ctx, query, userID)
}

// Search is the server-side counterpart of the mobile filter: every present
// predicate is conjunctive, absent ones are skipped.
func (r *PropertyRepository) Search(ctx context.Context, req models.PropertySearchRequest) ([]models.Property, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if q := strings.TrimSpace(req.Query); q != "" {
		like := "%" + q + "%"
		conditions = append(conditions, `(title LIKE ? OR description LIKE ? OR location LIKE ?)`)
		args = append(args, like, like, like)
	}
	if req.Type != "" && req.Type != "all" {
		conditions = append(conditions, `type = ?`)
		args = append(args, req.Type)
	}
	if req.MinPrice != nil {
		conditions = append(conditions, `price >= ?`)
		args = append(args, *req.MinPrice)
	}
	if req.MaxPrice != nil {
		conditions = append(conditions, `price <= ?`)
		args = append(args, *req.MaxPrice)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	return r.queryProperties(ctx, query, args...)
}

func (r *PropertyRepository) Update(ctx context.Context, id string, req models.UpdatePropertyRequest) (models.Property, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Property{}, err
	}

	if req.Type != nil {
		if !models.IsValidPropertyType(*req.Type) {
			return models.Property{}, models.ErrInvalidPropertyType
		}
		current.Type = *req.Type
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return models.Property{}, models.ErrEmptyTitle
		}
		current.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		current.Description = normalizeOptional(req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return models.Property{}, models.ErrNegativePrice
		}
		current.Price = *req.Price
	}
	if req.Location != nil {
		current.Location = normalizeOptional(req.Location)
	}
	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude == nil || req.Longitude == nil {
			return models.Property{}, models.ErrIncompleteCoordinates
		}
		current.Latitude = req.Latitude
		current.Longitude = req.Longitude
	}
	if req.Status != nil {
		current.Status = *req.Status
	}
	if req.ContactName != nil {
		current.ContactName = normalizeOptional(req.ContactName)
	}
	if req.ContactNumber != nil {
		current.ContactNumber = normalizeOptional(req.ContactNumber)
	}
	if req.ContactEmail != nil {
		current.ContactEmail = normalizeOptional(req.ContactEmail)
	}

	updatedAt := time.Now()
	current.UpdatedAt = &updatedAt

	query := `
		UPDATE properties
		SET type = ?, title = ?, description = ?, price = ?, location = ?, latitude = ?, longitude = ?,
		    status = ?, contact_name = ?, contact_number = ?, contact_email = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		current.Type, current.Title, toNullString(current.Description), current.Price,
		toNullString(current.Location), toNullFloat(current.Latitude), toNullFloat(current.Longitude),
		current.Status, toNullString(current.ContactName), toNullString(current.ContactNumber),
		toNullString(current.ContactEmail), current.UpdatedAt, id,
	)
	if err != nil {
		return models.Property{}, err
	}
	if _, err := result.RowsAffected(); err != nil {
		return models.Property{}, err
	}
	return current, nil
}

// Delete removes a property together with its photos and favorites in one
// transaction, so no dangling references survive the property.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE property_id = ?`, id); err != nil {
		return fmt.Errorf("delete favorites for property: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM property_photos WHERE property_id = ?`, id); err != nil {
		return fmt.Errorf("delete photos for property: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrPropertyNotFound
	}

	return tx.Commit()
}

func (r *PropertyRepository) queryProperties(ctx context.Context, query string, args ...interface{}) ([]models.Property, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
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
		return nil, fmt.Errorf("property rows error: %w", err)
	}
	return properties, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (models.Property, error) {
	var (
		p                          models.Property
		description, location      sql.NullString
		latitude, longitude        sql.NullFloat64
		contactName, contactNumber sql.NullString
		contactEmail               sql.NullString
		updatedAt                  sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.UserID, &p.Type, &p.Title, &description, &p.Price,
		&location, &latitude, &longitude, &p.Status,
		&contactName, &contactNumber, &contactEmail,
		&p.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Property{}, err
	}

	p.Description = fromNullString(description)
	p.Location = fromNullString(location)
	p.ContactName = fromNullString(contactName)
	p.ContactNumber = fromNullString(contactNumber)
	p.ContactEmail = fromNullString(contactEmail)
	p.Latitude = fromNullFloat(latitude)
	p.Longitude = fromNullFloat(longitude)
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}

	// A single orphaned coordinate is useless for the map; drop it here so
	// consumers only ever see a complete pair or none.
	if p.Latitude == nil || p.Longitude == nil {
		p.Latitude = nil
		p.Longitude = nil
	}

	return p, nil
}
