package listing

import (
	"context"

	"hanapBack/internal/mobile/reconciler"
	"hanapBack/internal/models"
)

// PropertyStore is the remote property collaborator the screen sources read
// from.
type PropertyStore interface {
	List(ctx context.Context) ([]models.Property, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Property, error)
}

// AllProperties backs the home, search and map screens.
func AllProperties(store PropertyStore) Source {
	return func(ctx context.Context) ([]models.Property, error) {
		return store.List(ctx)
	}
}

// OwnProperties backs the my-properties screen. Without a session user it
// yields an empty list rather than an error.
func OwnProperties(store PropertyStore, session reconciler.Session) Source {
	return func(ctx context.Context) ([]models.Property, error) {
		userID, ok := session.CurrentUserID(ctx)
		if !ok {
			return nil, nil
		}
		return store.ListByOwner(ctx, userID)
	}
}

// FavoriteProperties backs the favorites screen; the reconciler already
// degrades failures to an empty list and drops dangling references.
func FavoriteProperties(recon *reconciler.Reconciler) Source {
	return func(ctx context.Context) ([]models.Property, error) {
		return recon.LoadFavoriteProperties(ctx), nil
	}
}
