package main

import (
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"hanapBack/internal/config"
	"hanapBack/internal/handlers"
	"hanapBack/internal/repositories"
	"hanapBack/internal/services"
	"hanapBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokenManager *utils.Manager
	syncManager  *FavoritesSyncManager

	propertyHandler  *handlers.PropertyHandler
	photoHandler     *handlers.PhotoHandler
	favoritesHandler *handlers.FavoritesHandler
}

func initializeApp(cfg config.Config, db *sql.DB, redisClient *redis.Client, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		return nil, err
	}

	uploader, err := utils.NewS3Uploader(cfg)
	if err != nil {
		return nil, err
	}

	// Repositories
	propertyRepo := repositories.PropertyRepository{DB: db}
	photoRepo := repositories.PhotoRepository{DB: db}
	favoritesRepo := repositories.FavoritesRepository{DB: db}
	propertyCache := repositories.PropertyCache{Client: redisClient}

	// Services
	propertyService := &services.PropertyService{
		PropertyRepo: &propertyRepo,
		PhotoRepo:    &photoRepo,
		Cache:        &propertyCache,
		Uploader:     uploader,
	}
	photoService := &services.PhotoService{PhotoRepo: &photoRepo, Uploader: uploader}
	favoritesService := &services.FavoritesService{FavoritesRepo: &favoritesRepo}

	syncManager := NewFavoritesSyncManager(infoLog)

	// Handlers
	propertyHandler := &handlers.PropertyHandler{Service: propertyService}
	photoHandler := &handlers.PhotoHandler{Service: photoService}
	favoritesHandler := &handlers.FavoritesHandler{Service: favoritesService, Notifier: syncManager}

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		db:               db,
		tokenManager:     tokenManager,
		syncManager:      syncManager,
		propertyHandler:  propertyHandler,
		photoHandler:     photoHandler,
		favoritesHandler: favoritesHandler,
	}, nil
}
