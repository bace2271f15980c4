package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"qual-store/api"
	"qual-store/api/handlers"
	"qual-store/api/middleware"
	"qual-store/internal/config"
	"qual-store/internal/database"
	"qual-store/internal/logger"
	"qual-store/internal/metrics"
	"qual-store/internal/repository"
	"qual-store/internal/services"
	"qual-store/internal/validation"
)

func main() {
	log, err := logger.New(os.Getenv("ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("Server exited", "error", err)
	}
	log.Info("Server shutdown complete")
}

func run(log *logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	perms, err := cfg.Permissions()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.AutoMigrateAll(db); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	v := validation.New()

	// Repositories
	orderRepo := repository.NewOrderRepo(db, log)
	orderItemRepo := repository.NewOrderItemRepo(db, log)
	productRepo := repository.NewProductRepo(db, log)
	userRepo := repository.NewUserRepo(db, log)

	// Services
	orderItemService := services.NewOrderItemService(db, log, orderItemRepo, productRepo, v, m)
	cartService := services.NewCartService(db, log, orderRepo, orderItemRepo, userRepo, orderItemService, v, cfg.DefaultDeliveryPrice, m)
	orderService := services.NewOrderService(db, log, orderRepo, orderItemRepo, userRepo, services.NewStatusMachine(perms), m)
	productService := services.NewProductService(log, productRepo, v)
	authService := services.NewAuthService(log, userRepo, v, cfg.JWTSecretKey, cfg.AccessTokenTTL)

	if err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Log:              log,
		Metrics:          m,
		CORSOrigins:      cfg.CORSOrigins,
		Production:       cfg.Production(),
		AuthMiddleware:   middleware.NewAuthMiddleware(log, authService),
		AuthHandler:      handlers.NewAuthHandler(authService),
		ProductHandler:   handlers.NewProductHandler(productService),
		OrderItemHandler: handlers.NewOrderItemHandler(orderItemService),
		CartHandler:      handlers.NewCartHandler(cartService),
		OrderHandler:     handlers.NewOrderHandler(orderService),
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", "addr", cfg.HTTPAddr, "env", cfg.Env, "db_driver", cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
