package main

import (
	"log"

	api "vidtube-backend/cmd/api"
	authdomain "vidtube-backend/internal/auth/domain"
	authRepo "vidtube-backend/internal/auth/repository"
	authUsecase "vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
	"vidtube-backend/pkg/media"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize media storage
	storage, err := media.NewS3Storage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	// Initialize repository and use case (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, storage, cfg)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
