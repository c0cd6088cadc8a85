package listing

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"hanapBack/internal/mobile/filter"
	"hanapBack/internal/mobile/reconciler"
	"hanapBack/internal/models"
)

type fakePhotoStore struct {
	mu      sync.Mutex
	urls    map[string][]string
	failFor map[string]bool
	block   chan struct{}
}

func (f *fakePhotoStore) ListForProperty(_ context.Context, propertyID string) ([]string, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[propertyID] {
		return nil, errors.New("photo fetch failed")
	}
	return f.urls[propertyID], nil
}

type fakeFavStore struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func (f *fakeFavStore) Add(_ context.Context, _, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids == nil {
		f.ids = make(map[string]struct{})
	}
	f.ids[propertyID] = struct{}{}
	return nil
}

func (f *fakeFavStore) Remove(_ context.Context, _, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, propertyID)
	return nil
}

func (f *fakeFavStore) ListIDs(_ context.Context, _ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for id := range f.ids {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeFavStore) ListWithProperties(_ context.Context, _ string) ([]models.Property, error) {
	return nil, nil
}

type userSession struct{}

func (userSession) CurrentUserID(context.Context) (string, bool) { return "u1", true }

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func twoProperties() []models.Property {
	lat, lng := 10.3157, 123.8854
	return []models.Property{
		{ID: "p1", Title: "Sunset Condo", Type: models.PropertyTypeRent, Price: 15000, Latitude: &lat, Longitude: &lng},
		{ID: "p2", Title: "Ocean Villa", Type: models.PropertyTypeSale, Price: 5000000},
	}
}

func newTestConsumer(source Source, photos PhotoStore) (*Consumer, *reconciler.Reconciler) {
	rec := reconciler.New(&fakeFavStore{}, userSession{}, quietLogger())
	return NewConsumer(source, photos, rec, quietLogger()), rec
}

func staticSource(properties []models.Property) Source {
	return func(context.Context) ([]models.Property, error) {
		return properties, nil
	}
}

func TestLoadPopulatesListAndPhotoCache(t *testing.T) {
	photos := &fakePhotoStore{urls: map[string][]string{
		"p1": {"https://cdn/p1-a.jpg", "https://cdn/p1-b.jpg"},
		"p2": {"https://cdn/p2-a.jpg"},
	}}
	c, _ := newTestConsumer(staticSource(twoProperties()), photos)

	c.Load(context.Background())

	if got := c.Properties(); len(got) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(got))
	}
	if got := c.Photos("p1"); len(got) != 2 || got[0] != "https://cdn/p1-a.jpg" {
		t.Fatalf("unexpected p1 photos: %v", got)
	}
	if got := c.Photos("p2"); len(got) != 1 {
		t.Fatalf("unexpected p2 photos: %v", got)
	}
}

func TestLoadIsolatesPhotoFailurePerProperty(t *testing.T) {
	photos := &fakePhotoStore{
		urls:    map[string][]string{"p2": {"https://cdn/p2-a.jpg"}},
		failFor: map[string]bool{"p1": true},
	}
	c, _ := newTestConsumer(staticSource(twoProperties()), photos)

	c.Load(context.Background())

	if got := c.Photos("p1"); len(got) != 0 {
		t.Fatalf("failed fetch must yield empty entry, got %v", got)
	}
	if got := c.Photos("p2"); len(got) != 1 {
		t.Fatalf("sibling entry must be unaffected, got %v", got)
	}
	if got := c.Properties(); len(got) != 2 {
		t.Fatalf("property list must survive a photo failure, got %d", len(got))
	}
}

func TestLoadSourceFailureDegradesToEmpty(t *testing.T) {
	failing := func(context.Context) ([]models.Property, error) {
		return nil, errors.New("store down")
	}
	c, _ := newTestConsumer(failing, &fakePhotoStore{})

	c.Load(context.Background())

	if got := c.Properties(); len(got) != 0 {
		t.Fatalf("expected degraded empty list, got %v", got)
	}
}

func TestClosedConsumerDropsInFlightLoad(t *testing.T) {
	block := make(chan struct{})
	photos := &fakePhotoStore{
		urls:  map[string][]string{"p1": {"https://cdn/p1-a.jpg"}},
		block: block,
	}
	c, _ := newTestConsumer(staticSource(twoProperties()), photos)

	done := make(chan struct{})
	go func() {
		c.Load(context.Background())
		close(done)
	}()

	c.Close()
	close(block)
	<-done

	if got := c.Properties(); len(got) != 0 {
		t.Fatalf("unmounted consumer must not apply results, got %v", got)
	}
	if got := c.Photos("p1"); len(got) != 0 {
		t.Fatalf("unmounted consumer must not fill the cache, got %v", got)
	}
}

func TestOverlappingRefreshLastCompletionWins(t *testing.T) {
	var (
		mu      sync.Mutex
		current []models.Property
	)
	source := func(context.Context) ([]models.Property, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([]models.Property, len(current))
		copy(out, current)
		return out, nil
	}
	c, _ := newTestConsumer(source, &fakePhotoStore{})
	ctx := context.Background()

	mu.Lock()
	current = twoProperties()
	mu.Unlock()
	c.Load(ctx)

	mu.Lock()
	current = twoProperties()[:1]
	mu.Unlock()
	c.Refresh(ctx)

	got := c.Properties()
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("last completed refresh must define the state, got %v", got)
	}

	seen := make(map[string]bool)
	for _, p := range got {
		if seen[p.ID] {
			t.Fatalf("duplicate entry %s after overlapping refreshes", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestOnFocusResyncsFavoritesOnly(t *testing.T) {
	store := &fakeFavStore{ids: map[string]struct{}{"p2": {}}}
	rec := reconciler.New(store, userSession{}, quietLogger())

	calls := 0
	source := func(context.Context) ([]models.Property, error) {
		calls++
		return twoProperties(), nil
	}
	c := NewConsumer(source, &fakePhotoStore{}, rec, quietLogger())
	ctx := context.Background()

	c.Load(ctx)
	if calls != 1 {
		t.Fatalf("expected one source fetch, got %d", calls)
	}

	c.OnFocus(ctx)
	if calls != 1 {
		t.Fatal("focus resync must not refetch the property list")
	}
	if !c.IsFavorited("p2") {
		t.Fatal("focus resync did not pick up the remote favorite")
	}
}

func TestRemoveFavoriteDropsPhotoCacheEntry(t *testing.T) {
	photos := &fakePhotoStore{urls: map[string][]string{
		"p1": {"https://cdn/p1-a.jpg"},
		"p2": {"https://cdn/p2-a.jpg"},
	}}
	c, rec := newTestConsumer(staticSource(twoProperties()), photos)
	ctx := context.Background()

	c.Load(ctx)
	if _, err := rec.ToggleFavorite(ctx, "p1"); err != nil {
		t.Fatalf("setup toggle: %v", err)
	}

	removed, err := c.RemoveFavorite(ctx, "p1", func() bool { return true })
	if err != nil || !removed {
		t.Fatalf("expected confirmed removal, removed=%v err=%v", removed, err)
	}
	if got := c.Photos("p1"); len(got) != 0 {
		t.Fatalf("photo cache entry must be dropped, got %v", got)
	}
	if got := c.Photos("p2"); len(got) != 1 {
		t.Fatalf("sibling cache entry must survive, got %v", got)
	}
}

func TestRemoveFavoriteDeclinedKeepsCache(t *testing.T) {
	photos := &fakePhotoStore{urls: map[string][]string{"p1": {"https://cdn/p1-a.jpg"}}}
	c, rec := newTestConsumer(staticSource(twoProperties()), photos)
	ctx := context.Background()

	c.Load(ctx)
	if _, err := rec.ToggleFavorite(ctx, "p1"); err != nil {
		t.Fatalf("setup toggle: %v", err)
	}

	removed, err := c.RemoveFavorite(ctx, "p1", func() bool { return false })
	if err != nil || removed {
		t.Fatalf("declined confirmation must be a no-op, removed=%v err=%v", removed, err)
	}
	if got := c.Photos("p1"); len(got) != 1 {
		t.Fatalf("cache entry must survive a declined removal, got %v", got)
	}
}

func TestDisplayedAppliesFilter(t *testing.T) {
	c, _ := newTestConsumer(staticSource(twoProperties()), &fakePhotoStore{})
	c.Load(context.Background())

	state := filter.State{Query: "ocean", Type: filter.TypeAll}
	got := c.Displayed(state)
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("expected only Ocean Villa, got %v", got)
	}
}

func TestMappableRequiresCompleteCoordinatePair(t *testing.T) {
	c, _ := newTestConsumer(staticSource(twoProperties()), &fakePhotoStore{})
	c.Load(context.Background())

	got := c.Mappable()
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected only the property with both coordinates, got %v", got)
	}
}

func TestOwnPropertiesSourceWithoutUser(t *testing.T) {
	source := OwnProperties(nil, anonymousSession{})
	properties, err := source(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(properties) != 0 {
		t.Fatalf("expected empty list without a user, got %v", properties)
	}
}

type anonymousSession struct{}

func (anonymousSession) CurrentUserID(context.Context) (string, bool) { return "", false }
