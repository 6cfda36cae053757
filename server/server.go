package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EchoFM/config"
	"EchoFM/db"
	"EchoFM/logger"
	"EchoFM/repository"
	"EchoFM/storage"

	"github.com/gorilla/mux"
)

// Start initializes dependencies per configuration and runs the HTTP server
// until interrupted.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	if err := storage.InitMinio(cfg); err != nil {
		logger.Fatal("Failed to initialize MinIO", logger.ErrorField(err))
	}

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize catalog store", logger.ErrorField(err))
	}
	defer cleanup()

	if cfg.CacheEnabled {
		if err := db.ConnectRedis(cfg); err != nil {
			// Cache is additive; run without it rather than refuse to start.
			logger.Warn("Redis unavailable, caching disabled", logger.ErrorField(err))
		} else {
			defer db.CloseRedis()
			logger.Info("Successfully connected to Redis")
		}
	}

	uploader := storage.NewMinioUploader(cfg)
	apiHandler := NewAPIHandler(store, uploader, cfg)
	router := NewRouter(apiHandler)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting",
			logger.String("addr", cfg.ServerAddr),
			logger.String("storeBackend", cfg.StoreBackend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

// buildStore picks the catalog store backend from configuration. The
// in-memory store is the default; the MySQL variant connects, migrates the
// schema and reuses the same contract.
func buildStore(cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMySQL:
		if err := db.ConnectDB(cfg); err != nil {
			return nil, nil, err
		}
		if err := db.ConnectGormDB(cfg); err != nil {
			db.CloseDB()
			return nil, nil, err
		}
		if err := db.MigrateSchema(); err != nil {
			db.CloseGormDB()
			db.CloseDB()
			return nil, nil, err
		}
		cleanup := func() {
			db.CloseGormDB()
			db.CloseDB()
		}
		return repository.NewMySQLStore(db.DB), cleanup, nil
	default:
		// Process-local, nothing survives a restart.
		return repository.NewMemoryStore(), func() {}, nil
	}
}

// NewRouter wires all routes onto a gorilla/mux router with CORS handling.
func NewRouter(apiHandler *APIHandler) *mux.Router {
	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// User endpoints
	router.HandleFunc("/api/users/register", apiHandler.RegisterUserHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/users/{id}", apiHandler.GetUserHandler).Methods(http.MethodGet)

	// Track endpoints
	router.HandleFunc("/api/tracks", apiHandler.GetTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/upload", apiHandler.UploadTrackHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/tracks/{id}", apiHandler.GetTrackHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}/play", apiHandler.PlayTrackHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/upload/thumbnail", apiHandler.UploadThumbnailHandler).Methods(http.MethodPost)

	// Playlist endpoints
	router.HandleFunc("/api/playlists", apiHandler.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", apiHandler.CreatePlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", apiHandler.GetPlaylistHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}/tracks", apiHandler.GetPlaylistTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}/tracks", apiHandler.AddPlaylistTrackHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{playlistId}/tracks/{trackId}", apiHandler.RemovePlaylistTrackHandler).Methods(http.MethodDelete)

	// Stored media (uploaded audio and thumbnails) served out of MinIO
	router.PathPrefix(storage.MediaURLPrefix).HandlerFunc(apiHandler.MediaHandler).Methods(http.MethodGet)

	return router
}
