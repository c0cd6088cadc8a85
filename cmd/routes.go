package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Properties
	mux.Post("/property", authMiddleware.ThenFunc(app.propertyHandler.CreateProperty))
	mux.Get("/property/get", standardMiddleware.ThenFunc(app.propertyHandler.GetProperties))
	mux.Get("/property/mine", authMiddleware.ThenFunc(app.propertyHandler.GetMyProperties))
	mux.Get("/property/user/:user_id", standardMiddleware.ThenFunc(app.propertyHandler.GetPropertiesByOwner))
	mux.Post("/property/search", standardMiddleware.ThenFunc(app.propertyHandler.SearchProperties))
	mux.Post("/property/filtered", standardMiddleware.ThenFunc(app.propertyHandler.FilterProperties))
	mux.Get("/property/:id", standardMiddleware.ThenFunc(app.propertyHandler.GetPropertyByID))
	mux.Put("/property/:id", authMiddleware.ThenFunc(app.propertyHandler.UpdateProperty))
	mux.Del("/property/:id", authMiddleware.ThenFunc(app.propertyHandler.DeleteProperty))

	// Photos
	mux.Get("/photos/property/:property_id", standardMiddleware.ThenFunc(app.photoHandler.GetPhotosForProperty))
	mux.Post("/photos/property/:property_id", authMiddleware.ThenFunc(app.photoHandler.AddPhoto))
	mux.Del("/photos/:id", authMiddleware.ThenFunc(app.photoHandler.RemovePhoto))

	// Favorites
	mux.Post("/favorites/property/:property_id", authMiddleware.ThenFunc(app.favoritesHandler.AddToFavorites))
	mux.Del("/favorites/property/:property_id", authMiddleware.ThenFunc(app.favoritesHandler.RemoveFromFavorites))
	mux.Get("/favorites/check/:property_id", authMiddleware.ThenFunc(app.favoritesHandler.IsFavorite))
	mux.Get("/favorites/ids", authMiddleware.ThenFunc(app.favoritesHandler.GetFavoriteIDs))
	mux.Get("/favorites", authMiddleware.ThenFunc(app.favoritesHandler.GetFavorites))

	// Favorites sync
	mux.Get("/ws/favorites", authMiddleware.ThenFunc(app.FavoritesSyncHandler))

	return standardMiddleware.Then(mux)
}
