package repositories

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"hanapBack/internal/models"
)

const (
	propertyListKey = "properties:all"
	propertyListTTL = 30 * time.Second
)

// PropertyCache is a read-through cache over the full listing. Any redis
// failure falls back to the database path, it never blocks a read.
type PropertyCache struct {
	Client *redis.Client
}

func (c *PropertyCache) Get(ctx context.Context) ([]models.Property, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}

	data, err := c.Client.Get(ctx, propertyListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("property cache get: %v", err)
		}
		return nil, false
	}

	var properties []models.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		log.Printf("property cache decode: %v", err)
		return nil, false
	}
	return properties, true
}

func (c *PropertyCache) Set(ctx context.Context, properties []models.Property) {
	if c == nil || c.Client == nil {
		return
	}

	data, err := json.Marshal(properties)
	if err != nil {
		log.Printf("property cache encode: %v", err)
		return
	}
	if err := c.Client.Set(ctx, propertyListKey, data, propertyListTTL).Err(); err != nil {
		log.Printf("property cache set: %v", err)
	}
}

func (c *PropertyCache) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, propertyListKey).Err(); err != nil {
		log.Printf("property cache invalidate: %v", err)
	}
}
