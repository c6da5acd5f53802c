package app

import (
	"context"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/handlers"
	"inkwell/internal/repository"
	"inkwell/internal/routes"
	"inkwell/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(context.Background(), cfg); err != nil {
		return nil, err
	}

	// repositories
	userRepo := repository.NewUserRepository(conn)
	postRepo := repository.NewPostRepository(conn)

	// services
	authService := services.NewAuthService(userRepo)
	resetTokens := services.NewResetTokenService(userRepo, cfg.JWTSecret, cfg.PasswordResetTTL())
	passwordService := services.NewPasswordService(userRepo, resetTokens, cfg.FrontendURL)
	postService := services.NewPostService(postRepo, userRepo)
	emailService := services.NewEmailService(cfg)
	pictureService := services.NewPictureService(cfg.UploadDir)

	// handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	accountHandler := handlers.NewAccountHandler(authService, pictureService)
	passwordHandler := handlers.NewPasswordHandler(passwordService)
	postHandler := handlers.NewPostHandler(postService)

	// email workers
	for i := 0; i < 3; i++ {
		services.StartEmailWorker(emailService)
	}

	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret, authHandler, accountHandler, passwordHandler, postHandler)

	return router, nil
}
