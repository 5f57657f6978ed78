package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authhandler "github.com/mknoufi/stock-verify-backend/internal/auth/handler"
	"github.com/mknoufi/stock-verify-backend/internal/auth/jwt"
	authrepo "github.com/mknoufi/stock-verify-backend/internal/auth/repository"
	authservice "github.com/mknoufi/stock-verify-backend/internal/auth/service"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/events"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/handler"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/repository"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/service"
	"github.com/mknoufi/stock-verify-backend/pkg/config"
	"github.com/mknoufi/stock-verify-backend/pkg/database"
	"github.com/mknoufi/stock-verify-backend/pkg/httputil"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
	"github.com/mknoufi/stock-verify-backend/pkg/messaging"
)

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation("stockcount-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("stockcount-service", cfg.Server.Environment)
	log.Info().Msg("starting Stock Count Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Event publishers
	stockPublisher, err := events.NewStockCountEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create stock count event publisher")
	}

	authPublisher, err := messaging.NewPublisher(rmq, messaging.ExchangeAuthEvents, "stockcount-service", log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create auth event publisher")
	}

	// Repositories
	batchRepo := repository.NewBatchRepository(db)
	staffRepo := authrepo.NewStaffRepository(db)

	// Services
	jwtMgr := jwt.NewManager(&cfg.JWT)
	stockService := service.NewStockCountService(batchRepo, stockPublisher, log)
	authService := authservice.NewAuthService(staffRepo, jwtMgr, authPublisher, log)

	// Handlers
	batchHandler := handler.NewBatchHandler(stockService, log)
	conditionHandler := handler.NewConditionHandler(log)
	authHandler := authhandler.NewAuthHandler(authService, log)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "stockcount-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login/pin", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtMgr.Middleware())
				r.Post("/pin/change", authHandler.ChangePIN)
			})
		})

		r.Route("/stockcount", func(r chi.Router) {
			// Condition catalog (public, read-only)
			r.Route("/conditions", func(r chi.Router) {
				r.Get("/", conditionHandler.Options)
				r.Get("/{condition}/quick-actions", conditionHandler.QuickActions)
			})

			// Counting routes (authenticated)
			r.Group(func(r chi.Router) {
				r.Use(jwtMgr.Middleware())

				r.Route("/items/{itemCode}", func(r chi.Router) {
					r.Get("/summary", batchHandler.Summary)

					r.Route("/batches", func(r chi.Router) {
						r.Post("/", batchHandler.Record)
						r.Get("/", batchHandler.ListByItem)
						r.Post("/bulk", batchHandler.RecordMulti)
						r.Get("/{batchID}", batchHandler.Get)
						r.Put("/{batchID}/verify", batchHandler.Verify)
					})
				})

				r.Get("/batches/priority", batchHandler.ListPriority)
			})
		})
	})

	// Server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
