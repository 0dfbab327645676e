package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"puf-orgu/internal/config"
	custommiddleware "puf-orgu/internal/middleware"
	"puf-orgu/internal/repository"
	"puf-orgu/internal/service"
	"puf-orgu/internal/storage"
	"puf-orgu/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, store *storage.DiskStore) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Uploaded assets are served straight from the disk store
	fileServer := http.StripPrefix(cfg.Storage.BaseURL, http.FileServer(http.Dir(store.Dir())))
	router.Get(cfg.Storage.BaseURL+"/*", fileServer.ServeHTTP)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	assetService := service.NewAssetService(store, logger)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, assetService, logger)
	featuredService := service.NewFeaturedService(productRepo, logger)
	authService := service.NewAuthService(adminRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiry)*time.Minute)

	// Create auth middleware
	authMiddleware := custommiddleware.AdminAuthMiddleware(authService, logger)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, featuredService, logger)
	categoryHandler := transport.NewCategoryHandler(catalogService, logger)
	uploadHandler := transport.NewUploadHandler(assetService, logger)
	authHandler := transport.NewAuthHandler(authService, logger)

	// Register routes
	productHandler.RegisterRoutes(router, authMiddleware)
	categoryHandler.RegisterRoutes(router)
	uploadHandler.RegisterRoutes(router, authMiddleware)
	authHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
