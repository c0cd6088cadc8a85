package reconciler

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"hanapBack/internal/models"
)

type fakeStore struct {
	ids      map[string]map[string]struct{}
	byID     map[string]models.Property
	addErr   error
	delErr   error
	listErr  error
	joinErr  error
	addCalls int
	delCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ids:  make(map[string]map[string]struct{}),
		byID: make(map[string]models.Property),
	}
}

func (f *fakeStore) Add(_ context.Context, userID, propertyID string) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	if f.ids[userID] == nil {
		f.ids[userID] = make(map[string]struct{})
	}
	f.ids[userID][propertyID] = struct{}{}
	return nil
}

func (f *fakeStore) Remove(_ context.Context, userID, propertyID string) error {
	f.delCalls++
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.ids[userID], propertyID)
	return nil
}

func (f *fakeStore) ListIDs(_ context.Context, userID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []string
	for id := range f.ids[userID] {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeStore) ListWithProperties(_ context.Context, userID string) ([]models.Property, error) {
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	var out []models.Property
	for id := range f.ids[userID] {
		// deleted properties are dropped, as the store's join does
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type staticSession struct {
	userID string
	ok     bool
}

func (s staticSession) CurrentUserID(context.Context) (string, bool) {
	return s.userID, s.ok
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestToggleAddThenRemoveRestoresSet(t *testing.T) {
	store := newFakeStore()
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())
	ctx := context.Background()

	before := rec.IDs()

	favorited, err := rec.ToggleFavorite(ctx, "p1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !favorited || !rec.IsFavorited("p1") {
		t.Fatal("expected p1 favorited after add")
	}

	favorited, err = rec.ToggleFavorite(ctx, "p1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if favorited || rec.IsFavorited("p1") {
		t.Fatal("expected p1 not favorited after remove")
	}
	if len(rec.IDs()) != len(before) {
		t.Fatalf("set not restored: %v", rec.IDs())
	}
}

func TestToggleFailedRemoveLeavesSetIntact(t *testing.T) {
	store := newFakeStore()
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())
	ctx := context.Background()

	if _, err := rec.ToggleFavorite(ctx, "p1"); err != nil {
		t.Fatalf("setup toggle: %v", err)
	}

	store.delErr = errors.New("network down")
	favorited, err := rec.ToggleFavorite(ctx, "p1")
	if err == nil {
		t.Fatal("expected remove failure to surface")
	}
	if !favorited || !rec.IsFavorited("p1") {
		t.Fatal("failed remove must leave p1 in the local set")
	}
}

func TestToggleFailedAddLeavesSetIntact(t *testing.T) {
	store := newFakeStore()
	store.addErr = errors.New("server error")
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())

	favorited, err := rec.ToggleFavorite(context.Background(), "p1")
	if err == nil {
		t.Fatal("expected add failure to surface")
	}
	if favorited || rec.IsFavorited("p1") {
		t.Fatal("failed add must not appear in the local set")
	}
}

func TestToggleWithoutUserIsTypedFailure(t *testing.T) {
	store := newFakeStore()
	rec := New(store, staticSession{ok: false}, quietLogger())

	_, err := rec.ToggleFavorite(context.Background(), "p1")
	if !errors.Is(err, models.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if store.addCalls != 0 || store.delCalls != 0 {
		t.Fatal("no remote call may be issued without a user")
	}
}

func TestLoadFavoriteIDsReplacesWholeSet(t *testing.T) {
	store := newFakeStore()
	store.ids["u1"] = map[string]struct{}{"p1": {}, "p2": {}}
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())
	ctx := context.Background()

	got := rec.LoadFavoriteIDs(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 ids, got %v", got)
	}

	// another device removed p2; resync must drop it locally
	delete(store.ids["u1"], "p2")
	got = rec.LoadFavoriteIDs(ctx)
	if _, ok := got["p2"]; ok {
		t.Fatal("resync did not drop p2")
	}
	if _, ok := got["p1"]; !ok {
		t.Fatal("resync lost p1")
	}
}

func TestLoadFavoriteIDsDegradesToEmpty(t *testing.T) {
	store := newFakeStore()
	store.ids["u1"] = map[string]struct{}{"p1": {}}
	store.listErr = errors.New("store down")
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())

	got := rec.LoadFavoriteIDs(context.Background())
	if len(got) != 0 {
		t.Fatalf("expected empty set on store failure, got %v", got)
	}

	noUser := New(store, staticSession{ok: false}, quietLogger())
	if got := noUser.LoadFavoriteIDs(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty set without user, got %v", got)
	}
}

func TestLoadFavoritePropertiesSkipsDangling(t *testing.T) {
	store := newFakeStore()
	store.ids["u1"] = map[string]struct{}{"p1": {}, "gone": {}}
	store.byID["p1"] = models.Property{ID: "p1", Title: "Ocean Villa", Type: models.PropertyTypeSale, Price: 5000000}
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())

	got := rec.LoadFavoriteProperties(context.Background())
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected only the surviving property, got %v", got)
	}
}

func TestLoadFavoritePropertiesDegradesToEmpty(t *testing.T) {
	store := newFakeStore()
	store.joinErr = errors.New("store down")
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())

	if got := rec.LoadFavoriteProperties(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestRemoveWithConfirmationDeclined(t *testing.T) {
	store := newFakeStore()
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())
	ctx := context.Background()

	if _, err := rec.ToggleFavorite(ctx, "p1"); err != nil {
		t.Fatalf("setup toggle: %v", err)
	}

	removed, err := rec.RemoveWithConfirmation(ctx, "p1", func() bool { return false })
	if err != nil {
		t.Fatalf("declined confirmation must not error: %v", err)
	}
	if removed || !rec.IsFavorited("p1") {
		t.Fatal("declined confirmation must not remove")
	}
}

func TestRemoveWithConfirmationStrictRollbackOnFailure(t *testing.T) {
	store := newFakeStore()
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())
	ctx := context.Background()

	if _, err := rec.ToggleFavorite(ctx, "p1"); err != nil {
		t.Fatalf("setup toggle: %v", err)
	}

	store.delErr = errors.New("network down")
	removed, err := rec.RemoveWithConfirmation(ctx, "p1", func() bool { return true })
	if err == nil {
		t.Fatal("expected failure to surface")
	}
	if removed || !rec.IsFavorited("p1") {
		t.Fatal("failed remove must leave the favorite in place")
	}
}

func TestIDsReturnsSnapshot(t *testing.T) {
	store := newFakeStore()
	rec := New(store, staticSession{userID: "u1", ok: true}, quietLogger())
	ctx := context.Background()

	if _, err := rec.ToggleFavorite(ctx, "p1"); err != nil {
		t.Fatalf("setup toggle: %v", err)
	}

	snapshot := rec.IDs()
	delete(snapshot, "p1")
	if !rec.IsFavorited("p1") {
		t.Fatal("mutating the snapshot must not affect the reconciler")
	}
}
