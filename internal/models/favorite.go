package models

import (
	"time"
)

// Favorite is membership in a per-user set, unique per (user_id, property_id).
// It is cascade-deleted together with the referenced property.
type Favorite struct {
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}
