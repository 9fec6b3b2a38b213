package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/puntopos/puntopos-api/internal/config"
	"github.com/puntopos/puntopos-api/internal/domain/auth"
	"github.com/puntopos/puntopos-api/internal/domain/credit"
	"github.com/puntopos/puntopos-api/internal/domain/customer"
	"github.com/puntopos/puntopos-api/internal/domain/dashboard"
	"github.com/puntopos/puntopos-api/internal/domain/product"
	"github.com/puntopos/puntopos-api/internal/domain/sale"
	"github.com/puntopos/puntopos-api/internal/domain/store"
	"github.com/puntopos/puntopos-api/internal/domain/user"
	"github.com/puntopos/puntopos-api/internal/middleware"
	"github.com/puntopos/puntopos-api/internal/pkg/database"
	"github.com/puntopos/puntopos-api/internal/pkg/jwt"
	"github.com/puntopos/puntopos-api/internal/pkg/logger"
	pkgresponse "github.com/puntopos/puntopos-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting PuntoPOS API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	storeRepo := store.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	productRepo := product.NewRepository(db)
	saleRepo := sale.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, redis)
	saleService := sale.NewService(saleRepo, productRepo, customerRepo, storeRepo, cfg.DefaultTaxRate)
	creditService := credit.NewService(creditRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userRepo)
	storeHandler := store.NewHandler(storeRepo)
	customerHandler := customer.NewHandler(customerRepo)
	productHandler := product.NewHandler(productRepo)
	categoryHandler := product.NewCategoryHandler(db)
	supplierHandler := product.NewSupplierHandler(db)
	saleHandler := sale.NewHandler(saleService)
	creditHandler := credit.NewHandler(creditService)
	dashboardHandler := dashboard.NewHandler(dashboardRepo)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware, adminMiddleware))

		// Everything past auth requires a valid, active session
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Mount("/dashboard", dashboardHandler.Routes())
			r.Mount("/sales", saleHandler.Routes())
			r.Mount("/products", productHandler.Routes(adminMiddleware))
			r.Mount("/categories", categoryHandler.Routes())
			r.Mount("/suppliers", supplierHandler.Routes())
			r.Mount("/customers", customerHandler.Routes())
			r.Mount("/credits", creditHandler.Routes())
			r.Mount("/stores", storeHandler.Routes(adminMiddleware))

			r.With(adminMiddleware).Mount("/users", userHandler.Routes())
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
