package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodorder-be/internal/address"
	"foodorder-be/internal/cart"
	"foodorder-be/internal/config"
	"foodorder-be/internal/db"
	"foodorder-be/internal/events"
	"foodorder-be/internal/location"
	"foodorder-be/internal/logger"
	"foodorder-be/internal/metrics"
	"foodorder-be/internal/middleware"
	"foodorder-be/internal/order"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownGrace = 10 * time.Second

// handlers groups everything the router mounts.
type handlers struct {
	cart     *cart.Handler
	location *location.Handler
	address  *address.Handler
	order    *order.Handler
}

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := db.InitDB(cfg)
	defer database.Close()

	persistence, closeStorage, err := buildCartPersistence(ctx, cfg, database)
	if err != nil {
		log.Fatal("cart storage unavailable", zap.String("backend", cfg.CartStorage), zap.Error(err))
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Warn("cart storage close failed", zap.Error(err))
		}
	}()

	store := cart.NewStore(ctx, persistence)

	publisher := buildPublisher(cfg)
	defer publisher.Close()

	h := handlers{
		cart:     cart.NewHandler(store),
		location: location.NewHandler(location.NewClient(cfg.ShippingBaseURL, cfg.ShippingToken, cfg.ShippingProvinceID)),
		address:  address.NewHandler(address.NewService(address.NewRepository(database))),
		order:    order.NewHandler(order.NewService(order.NewRepository(database), store, publisher)),
	}

	limiter := middleware.NewRateLimiter(ctx, cfg.InternalKey)
	router := setupRouter(h, limiter, []byte(cfg.JWTSecret))

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      middleware.CORS(cfg.CORSOrigins)(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", server.Addr), zap.String("cart_storage", cfg.CartStorage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}

func setupRouter(h handlers, limiter *middleware.RateLimiter, jwtSecret []byte) *mux.Router {
	r := mux.NewRouter()
	r.Use(
		logger.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		middleware.AuthMiddleware(jwtSecret),
	)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Location lookups are plain pass-through calls: no rate limiting.
	h.location.RegisterRoutes(api)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth)
	h.address.RegisterRoutes(protected)

	limited := protected.NewRoute().Subrouter()
	limited.Use(limiter.Middleware)
	admin := limited.PathPrefix("/admin").Subrouter()

	h.cart.RegisterRoutes(limited, admin)
	h.order.RegisterRoutes(limited)

	return r
}

func buildPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		logger.L().Info("AMQP_URL not set, order events disabled")
		return events.NopPublisher{}
	}

	p, err := events.NewRabbitPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.L().Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
		return events.NopPublisher{}
	}
	return p
}
