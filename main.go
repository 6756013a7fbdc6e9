// Product Catalog API: a bilingual (English/Vietnamese) product catalog
// backend with JWT authentication, MongoDB persistence and a Redis response
// cache. This file bootstraps configuration, store connections, services,
// the HTTP router and middleware, and handles graceful shutdown.
//
// @title Product Catalog API
// @version 1.0
// @description Bilingual product catalog with authentication, search and likes.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/product-catalog-go/apperror"
	"github.com/user/product-catalog-go/auth"
	"github.com/user/product-catalog-go/cache"
	"github.com/user/product-catalog-go/config"
	"github.com/user/product-catalog-go/db"
	_ "github.com/user/product-catalog-go/docs" // generated swagger docs
	"github.com/user/product-catalog-go/language"
	"github.com/user/product-catalog-go/logging"
	"github.com/user/product-catalog-go/products"
)

func main() {
	// .env is optional; in production variables are set directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logging.Setup(&config.LogConfig{Level: "info"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.Setup(cfg.Log)

	ctx := context.Background()

	mongoClient, database, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// A dead cache backend degrades performance, not correctness, so the
	// server starts even when Redis is unreachable.
	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if redisClient == nil {
		log.Fatal().Err(err).Msg("invalid redis configuration")
	}
	if err != nil {
		log.Warn().Err(err).Msg("redis unreachable, continuing without warm cache")
	} else {
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to redis")
	}
	defer redisClient.Close()
	cacheService := cache.NewService(redisClient)

	validate := validator.New()

	userRepo := auth.NewUserRepository(database)
	authService := auth.NewService(userRepo, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService, validate)

	productRepo := products.NewRepository(database)
	productService := products.NewService(productRepo, cacheService, validate)
	productHandlers := products.NewHandlers(productService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(language.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that keeps error responses in the apperror JSON shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error().Interface("panic", rvr).Str("path", req.URL.Path).Msg("panic recovered")
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, req)
		})
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to Product Catalog API"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(authService))
			r.Get("/status", authHandlers.HandleStatus())
		})
	})

	r.Route("/products", func(r chi.Router) {
		productCache := cache.Middleware(cacheService, "products", cfg.Cache.ProductTTL)
		searchCache := cache.Middleware(cacheService, "products:search", cfg.Cache.ProductTTL)

		r.With(productCache).Get("/", productHandlers.HandleList())
		r.With(searchCache).Get("/search", productHandlers.HandleSearch())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(authService))
			r.Post("/", productHandlers.HandleCreate())
			r.Post("/{id}/like", productHandlers.HandleToggleLike())
		})
	})

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
