// Package listing implements the one screen pattern shared by the home,
// search, map and my-properties views: a property source, a per-property photo
// URL cache and a subscription to the favorites reconciler. Screens differ
// only in the Source they are built with.
package listing

import (
	"context"
	"log"
	"sync"

	"hanapBack/internal/mobile/filter"
	"hanapBack/internal/mobile/reconciler"
	"hanapBack/internal/models"
)

// Source fetches the property list a screen displays.
type Source func(ctx context.Context) ([]models.Property, error)

// PhotoStore lists photo URLs for one property, creation order ascending.
type PhotoStore interface {
	ListForProperty(ctx context.Context, propertyID string) ([]string, error)
}

type Consumer struct {
	source Source
	photos PhotoStore
	recon  *reconciler.Reconciler
	logger *log.Logger

	mu         sync.Mutex
	closed     bool
	properties []models.Property
	photoCache map[string][]string
}

func NewConsumer(source Source, photos PhotoStore, recon *reconciler.Reconciler, logger *log.Logger) *Consumer {
	if logger == nil {
		logger = log.Default()
	}
	return &Consumer{
		source:     source,
		photos:     photos,
		recon:      recon,
		logger:     logger,
		photoCache: make(map[string][]string),
	}
}

// Load runs the mount / pull-to-refresh sequence: fetch the property list,
// then fetch photos for every property concurrently. One property's photo
// failure empties only that property's cache entry. The result is applied as
// a full replace, so overlapping refreshes cannot duplicate entries and the
// last one to complete defines the state. A source failure degrades to an
// empty list; browsing never hard-fails on a fetch.
func (c *Consumer) Load(ctx context.Context) {
	properties, err := c.source(ctx)
	if err != nil {
		c.logger.Printf("property fetch failed: %v", err)
		properties = nil
	}

	cache := make(map[string][]string, len(properties))
	var (
		wg      sync.WaitGroup
		cacheMu sync.Mutex
	)
	for _, p := range properties {
		wg.Add(1)
		go func(propertyID string) {
			defer wg.Done()
			urls, err := c.photos.ListForProperty(ctx, propertyID)
			if err != nil {
				c.logger.Printf("photo fetch failed for property %s: %v", propertyID, err)
				urls = nil
			}
			cacheMu.Lock()
			cache[propertyID] = urls
			cacheMu.Unlock()
		}(p.ID)
	}
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// unmounted while the fetch was in flight; drop the result
		return
	}
	c.properties = properties
	c.photoCache = cache
}

// Refresh is the pull-to-refresh entry point.
func (c *Consumer) Refresh(ctx context.Context) {
	c.Load(ctx)
}

// OnFocus resynchronizes only the favorited-id set, the cheap resync when the
// screen becomes visible again. The property list is not refetched.
func (c *Consumer) OnFocus(ctx context.Context) {
	c.recon.LoadFavoriteIDs(ctx)
}

// Close marks the screen unmounted; in-flight loads finishing afterwards are
// discarded.
func (c *Consumer) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Consumer) Properties() []models.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// Displayed applies the client-side filter to the owned list.
func (c *Consumer) Displayed(state filter.State) []models.Property {
	return filter.Apply(c.Properties(), state)
}

// Mappable returns only properties with a complete coordinate pair; the map
// view degrades gracefully for the rest.
func (c *Consumer) Mappable() []models.Property {
	all := c.Properties()
	out := make([]models.Property, 0, len(all))
	for _, p := range all {
		if p.HasCoordinates() {
			out = append(out, p)
		}
	}
	return out
}

func (c *Consumer) Photos(propertyID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	urls := c.photoCache[propertyID]
	out := make([]string, len(urls))
	copy(out, urls)
	return out
}

// IsFavorited reads the reconciler's set; the consumer holds no favorite
// state of its own.
func (c *Consumer) IsFavorited(propertyID string) bool {
	return c.recon.IsFavorited(propertyID)
}

// ToggleFavorite routes through the reconciler; the heart re-renders off the
// reconciler's set, never off a local copy.
func (c *Consumer) ToggleFavorite(ctx context.Context, propertyID string) (bool, error) {
	return c.recon.ToggleFavorite(ctx, propertyID)
}

// RemoveFavorite is the favorites screen's confirmed removal. On success the
// property's photo cache entry is dropped too, so no orphaned entry lingers.
func (c *Consumer) RemoveFavorite(ctx context.Context, propertyID string, confirm func() bool) (bool, error) {
	removed, err := c.recon.RemoveWithConfirmation(ctx, propertyID, confirm)
	if err != nil || !removed {
		return removed, err
	}

	c.mu.Lock()
	delete(c.photoCache, propertyID)
	c.mu.Unlock()
	return true, nil
}
