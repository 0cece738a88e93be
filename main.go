package main

import (
	"net/http"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/mics-123/merch-dashboard/src/config"
	"github.com/mics-123/merch-dashboard/src/database"
	"github.com/mics-123/merch-dashboard/src/handlers"
	"github.com/mics-123/merch-dashboard/src/logger"
	"github.com/mics-123/merch-dashboard/src/security"
	"github.com/mics-123/merch-dashboard/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Merch dashboard backend server starting...")

	if len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(config.Cfg.CacheExpiration, config.Cfg.CacheCleanupInterval)

	logger.L.Info("Initializing services and handlers...")
	store := database.NewSQLStore(database.DB)
	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)
	importService := services.NewImportService(store, config.Cfg.CSVChunkSizeBytes)
	reportService := services.NewReportService(store, reportCache)

	authHandler := handlers.NewAuthHandler(authService, config.Cfg.APIKey, config.Cfg.AccessTokenExpiry)
	uploadHandler := handlers.NewUploadHandler(importService, reportService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	logger.L.Info("Configuring routes...")
	apiRouter := http.NewServeMux()
	apiRouter.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	apiRouter.HandleFunc("POST /api/auth/token", authHandler.HandleIssueToken)
	apiRouter.Handle("POST /api/upload", authHandler.AuthMiddleware(uploadHandler.HandleUpload))
	apiRouter.Handle("GET /api/dashboard", authHandler.AuthMiddleware(dashboardHandler.HandleGetDashboard))

	handler := enableCORS(rateLimitMiddleware(apiRouter))

	addr := ":" + config.Cfg.Port
	logger.L.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.L.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
