package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hanapBack/internal/models"
	"hanapBack/internal/services"
)

// FavoritesNotifier pushes a change event to the user's other connected
// devices so their screens resync on next focus.
type FavoritesNotifier interface {
	NotifyFavoritesChanged(userID string)
}

type FavoritesHandler struct {
	Service  *services.FavoritesService
	Notifier FavoritesNotifier
}

// The user id always comes from the session context, never from the request
// body or path.

func (h *FavoritesHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	propertyID := getParam(r, "property_id")
	if propertyID == "" {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}

	err := h.Service.Add(r.Context(), userID, propertyID)
	if errors.Is(err, models.ErrDuplicateFavorite) {
		http.Error(w, "Already in favorites", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "Failed to add to favorites", http.StatusInternalServerError)
		return
	}

	h.notify(userID)
	w.WriteHeader(http.StatusCreated)
}

func (h *FavoritesHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	propertyID := getParam(r, "property_id")
	if propertyID == "" {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}

	err := h.Service.Remove(r.Context(), userID, propertyID)
	if errors.Is(err, models.ErrNoRecord) {
		http.Error(w, "Not in favorites", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to remove from favorites", http.StatusInternalServerError)
		return
	}

	h.notify(userID)
	w.WriteHeader(http.StatusOK)
}

func (h *FavoritesHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	propertyID := getParam(r, "property_id")
	if propertyID == "" {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}

	liked, err := h.Service.Exists(r.Context(), userID, propertyID)
	if err != nil {
		// degrade a failed check to "not favorited"
		log.Printf("favorite check failed for user %s property %s: %v", userID, propertyID, err)
		liked = false
	}
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

func (h *FavoritesHandler) GetFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	ids, err := h.Service.ListIDs(r.Context(), userID)
	if err != nil {
		log.Printf("list favorite ids for user %s: %v", userID, err)
		ids = nil
	}
	if ids == nil {
		ids = []string{}
	}
	json.NewEncoder(w).Encode(map[string][]string{"property_ids": ids})
}

func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	properties, err := h.Service.ListWithProperties(r.Context(), userID)
	if err != nil {
		log.Printf("list favorites for user %s: %v", userID, err)
		properties = nil
	}
	json.NewEncoder(w).Encode(models.PropertyListResponse{Properties: emptyIfNil(properties)})
}

func (h *FavoritesHandler) notify(userID string) {
	if h.Notifier != nil {
		h.Notifier.NotifyFavoritesChanged(userID)
	}
}
