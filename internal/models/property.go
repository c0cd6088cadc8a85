package models

import (
	"strings"
	"time"
)

// Property types. The mobile filter additionally knows the pseudo-type "all".
const (
	PropertyTypeRent     = "rent"
	PropertyTypeSale     = "sale"
	PropertyTypeBoarding = "boarding"
)

const (
	PropertyStatusAvailable   = "Available"
	PropertyStatusUnavailable = "Unavailable"
)

type Property struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	Price         float64    `json:"price"`
	Location      *string    `json:"location,omitempty"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	Status        string     `json:"status"`
	ContactName   *string    `json:"contact_name,omitempty"`
	ContactNumber *string    `json:"contact_number,omitempty"`
	ContactEmail  *string    `json:"contact_email,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// HasCoordinates reports whether the property carries a complete coordinate
// pair. A property with only one of the two is not mappable.
func (p Property) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

func IsValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeRent, PropertyTypeSale, PropertyTypeBoarding:
		return true
	}
	return false
}

type CreatePropertyRequest struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   *string  `json:"description,omitempty"`
	Price         float64  `json:"price"`
	Location      *string  `json:"location,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Status        string   `json:"status,omitempty"`
	ContactName   *string  `json:"contact_name,omitempty"`
	ContactNumber *string  `json:"contact_number,omitempty"`
	ContactEmail  *string  `json:"contact_email,omitempty"`
}

func (r CreatePropertyRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if !IsValidPropertyType(r.Type) {
		return ErrInvalidPropertyType
	}
	if r.Price < 0 {
		return ErrNegativePrice
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return ErrIncompleteCoordinates
	}
	return nil
}

// UpdatePropertyRequest carries a partial update; nil fields stay untouched.
type UpdatePropertyRequest struct {
	Type          *string  `json:"type,omitempty"`
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Status        *string  `json:"status,omitempty"`
	ContactName   *string  `json:"contact_name,omitempty"`
	ContactNumber *string  `json:"contact_number,omitempty"`
	ContactEmail  *string  `json:"contact_email,omitempty"`
}

// PropertySearchRequest is the server-side counterpart of the mobile filter
// state. Empty fields mean "filter not applied".
type PropertySearchRequest struct {
	Query    string   `json:"query"`
	Type     string   `json:"type"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

type PropertyListResponse struct {
	Properties []Property `json:"properties"`
}
