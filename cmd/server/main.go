package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/Giftmbatha/food-rescue/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	"github.com/Giftmbatha/food-rescue/internal/cache"
	"github.com/Giftmbatha/food-rescue/internal/config"
	"github.com/Giftmbatha/food-rescue/internal/db"
	"github.com/Giftmbatha/food-rescue/internal/handler"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/repository"
	"github.com/Giftmbatha/food-rescue/internal/router"
	"github.com/Giftmbatha/food-rescue/internal/service"
)

// @title Food Rescue API
// @version 1.0
// @description Surplus food listings, donor and NGO profiles, claims, and JWT authentication.
// @host localhost:8000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Claim{},
			&model.Listing{},
			&model.Profile{},
			&model.Account{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Account{},
		&model.Profile{},
		&model.Listing{},
		&model.Claim{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	claimRepo := repository.NewClaimRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(accountRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(profileRepo, cacheClient, cfg.ProfileCacheTTL)
	listingService := service.NewListingService(listingRepo, profileRepo)
	claimService := service.NewClaimService(claimRepo, listingRepo, profileRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	listingHandler := handler.NewListingHandler(listingService)
	claimHandler := handler.NewClaimHandler(claimService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		profileHandler,
		listingHandler,
		claimHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
