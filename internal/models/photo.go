package models

import (
	"time"
)

type PropertyPhoto struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	PhotoURL   string    `json:"photo_url"`
	CreatedAt  time.Time `json:"created_at"`
}
