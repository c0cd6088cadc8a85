package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"hanapBack/internal/models"
	"hanapBack/internal/services"
)

type PhotoHandler struct {
	Service *services.PhotoService
}

func (h *PhotoHandler) GetPhotosForProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := getParam(r, "property_id")
	if propertyID == "" {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}

	photos, err := h.Service.ListRecordsForProperty(r.Context(), propertyID)
	if err != nil {
		// a photo read failure degrades to an empty gallery
		log.Printf("list photos for property %s: %v", propertyID, err)
		photos = nil
	}
	if photos == nil {
		photos = []models.PropertyPhoto{}
	}
	json.NewEncoder(w).Encode(photos)
}

// AddPhoto uploads one image file ("photo" form field) to media storage and
// links the returned URL to the property.
func (h *PhotoHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	propertyID := getParam(r, "property_id")
	if propertyID == "" {
		http.Error(w, "Invalid property_id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Missing photo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read photo file", http.StatusBadRequest)
		return
	}

	photo, err := h.Service.AddUploaded(r.Context(), propertyID, header.Filename, data)
	if err != nil {
		http.Error(w, "Failed to add photo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(photo)
}

func (h *PhotoHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := getParam(r, "id")
	if photoID == "" {
		http.Error(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	err := h.Service.Remove(r.Context(), photoID)
	if errors.Is(err, models.ErrPhotoNotFound) {
		http.Error(w, "Photo not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to remove photo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
