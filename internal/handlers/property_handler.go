package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"hanapBack/internal/mobile/filter"
	"hanapBack/internal/models"
	"hanapBack/internal/services"
)

type PropertyHandler struct {
	Service *services.PropertyService
}

// CreateProperty accepts a multipart form: a "property" JSON field plus any
// number of "photos" files. Photo upload failures do not fail the request;
// they are reported in failed_uploads.
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	var req models.CreatePropertyRequest
	if err := json.Unmarshal([]byte(r.FormValue("property")), &req); err != nil {
		http.Error(w, "Invalid property payload", http.StatusBadRequest)
		return
	}

	photos, err := collectPhotoUploads(r)
	if err != nil {
		http.Error(w, "Invalid photo upload", http.StatusBadRequest)
		return
	}

	result, err := h.Service.CreateWithPhotos(r.Context(), userID, req, photos)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create property", http.StatusInternalServerError)
		return
	}

	status := http.StatusCreated
	if len(result.FailedUploads) > 0 {
		// property exists but some photos did not make it
		status = http.StatusMultiStatus
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(result)
}

func (h *PropertyHandler) GetProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Service.List(r.Context())
	if err != nil {
		log.Printf("list properties: %v", err)
		properties = nil
	}
	json.NewEncoder(w).Encode(models.PropertyListResponse{Properties: emptyIfNil(properties)})
}

func (h *PropertyHandler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}

	property, err := h.Service.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrPropertyNotFound) {
		http.Error(w, "Property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to get property", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(property)
}

func (h *PropertyHandler) GetPropertiesByOwner(w http.ResponseWriter, r *http.Request) {
	userID := getParam(r, "user_id")
	if userID == "" {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}

	properties, err := h.Service.ListByOwner(r.Context(), userID)
	if err != nil {
		log.Printf("list properties by owner: %v", err)
		properties = nil
	}
	json.NewEncoder(w).Encode(models.PropertyListResponse{Properties: emptyIfNil(properties)})
}

// GetMyProperties lists the authenticated user's own listings.
func (h *PropertyHandler) GetMyProperties(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	properties, err := h.Service.ListByOwner(r.Context(), userID)
	if err != nil {
		log.Printf("list own properties: %v", err)
		properties = nil
	}
	json.NewEncoder(w).Encode(models.PropertyListResponse{Properties: emptyIfNil(properties)})
}

// SearchProperties runs the conjunctive search in the database.
func (h *PropertyHandler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	var req models.PropertySearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	properties, err := h.Service.Search(r.Context(), req)
	if err != nil {
		log.Printf("search properties: %v", err)
		properties = nil
	}
	json.NewEncoder(w).Encode(models.PropertyListResponse{Properties: emptyIfNil(properties)})
}

// FilterProperties applies the client-style filter state over the cached full
// listing. Screens use it interchangeably with SearchProperties; unparseable
// price strings mean the bound is simply off.
func (h *PropertyHandler) FilterProperties(w http.ResponseWriter, r *http.Request) {
	var state filter.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	properties, err := h.Service.List(r.Context())
	if err != nil {
		log.Printf("filter properties: %v", err)
		properties = nil
	}
	json.NewEncoder(w).Encode(models.PropertyListResponse{Properties: emptyIfNil(filter.Apply(properties, state))})
}

func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}

	var req models.UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	property, err := h.Service.Update(r.Context(), id, req)
	if errors.Is(err, models.ErrPropertyNotFound) {
		http.Error(w, "Property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to update property", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(property)
}

func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := getParam(r, "id")
	if id == "" {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}

	err := h.Service.Delete(r.Context(), id)
	if errors.Is(err, models.ErrPropertyNotFound) {
		http.Error(w, "Property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete property", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func collectPhotoUploads(r *http.Request) ([]services.PhotoUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var uploads []services.PhotoUpload
	for _, key := range []string{"photos", "photos[]"} {
		for _, header := range r.MultipartForm.File[key] {
			file, err := header.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, services.PhotoUpload{FileName: header.Filename, Data: data})
		}
	}
	return uploads, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrEmptyTitle) ||
		errors.Is(err, models.ErrInvalidPropertyType) ||
		errors.Is(err, models.ErrNegativePrice) ||
		errors.Is(err, models.ErrIncompleteCoordinates)
}

func emptyIfNil(properties []models.Property) []models.Property {
	if properties == nil {
		return []models.Property{}
	}
	return properties
}
