// Package reconciler owns the local favorited-property-id set shared by every
// mounted listing screen. Screens read it; only the reconciler mutates it, and
// only after the remote store has confirmed the change.
package reconciler

import (
	"context"
	"log"
	"sync"

	"hanapBack/internal/models"
)

// Store is the remote favorites collaborator.
type Store interface {
	Add(ctx context.Context, userID, propertyID string) error
	Remove(ctx context.Context, userID, propertyID string) error
	ListIDs(ctx context.Context, userID string) ([]string, error)
	ListWithProperties(ctx context.Context, userID string) ([]models.Property, error)
}

// Session resolves the current user. The second return is false when nobody is
// authenticated.
type Session interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type Reconciler struct {
	store   Store
	session Session
	logger  *log.Logger

	mu  sync.Mutex
	ids map[string]struct{}
}

func New(store Store, session Session, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{
		store:   store,
		session: session,
		logger:  logger,
		ids:     make(map[string]struct{}),
	}
}

// LoadFavoriteIDs resynchronizes the whole set from the store. This is the
// resync point for mount and focus-regained; a missing user or a store failure
// degrades to an empty set so browsing keeps working.
func (r *Reconciler) LoadFavoriteIDs(ctx context.Context) map[string]struct{} {
	userID, ok := r.session.CurrentUserID(ctx)
	if !ok {
		r.replace(nil)
		return r.IDs()
	}

	ids, err := r.store.ListIDs(ctx, userID)
	if err != nil {
		r.logger.Printf("load favorite ids: %v", err)
		r.replace(nil)
		return r.IDs()
	}

	r.replace(ids)
	return r.IDs()
}

// ToggleFavorite flips membership for the property. The local set changes
// strictly after the remote call succeeds; a failed call leaves both sides as
// they were. Returns whether the property is favorited afterwards.
func (r *Reconciler) ToggleFavorite(ctx context.Context, propertyID string) (bool, error) {
	userID, ok := r.session.CurrentUserID(ctx)
	if !ok {
		return r.IsFavorited(propertyID), models.ErrNotAuthenticated
	}

	if r.IsFavorited(propertyID) {
		if err := r.store.Remove(ctx, userID, propertyID); err != nil {
			return true, err
		}
		r.mu.Lock()
		delete(r.ids, propertyID)
		r.mu.Unlock()
		return false, nil
	}

	if err := r.store.Add(ctx, userID, propertyID); err != nil {
		return false, err
	}
	r.mu.Lock()
	r.ids[propertyID] = struct{}{}
	r.mu.Unlock()
	return true, nil
}

// LoadFavoriteProperties fetches the full records for the favorited set. The
// store already drops favorites whose property was deleted; failures degrade
// to an empty list.
func (r *Reconciler) LoadFavoriteProperties(ctx context.Context) []models.Property {
	userID, ok := r.session.CurrentUserID(ctx)
	if !ok {
		return nil
	}

	properties, err := r.store.ListWithProperties(ctx, userID)
	if err != nil {
		r.logger.Printf("load favorite properties: %v", err)
		return nil
	}
	return properties
}

// RemoveWithConfirmation gates the destructive remove behind confirm. It
// returns whether the property was actually removed; a declined confirmation
// is not an error. A failed remote remove leaves the set untouched.
func (r *Reconciler) RemoveWithConfirmation(ctx context.Context, propertyID string, confirm func() bool) (bool, error) {
	if !r.IsFavorited(propertyID) {
		return false, nil
	}
	if confirm != nil && !confirm() {
		return false, nil
	}

	stillFavorited, err := r.ToggleFavorite(ctx, propertyID)
	if err != nil {
		return false, err
	}
	return !stillFavorited, nil
}

func (r *Reconciler) IsFavorited(propertyID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[propertyID]
	return ok
}

// IDs returns a snapshot copy; callers never see or touch the live set.
func (r *Reconciler) IDs() map[string]struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make(map[string]struct{}, len(r.ids))
	for id := range r.ids {
		snapshot[id] = struct{}{}
	}
	return snapshot
}

func (r *Reconciler) replace(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	r.mu.Lock()
	r.ids = next
	r.mu.Unlock()
}
