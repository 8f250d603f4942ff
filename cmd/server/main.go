package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/restohub/bistro_backend/internal/config"
	"github.com/restohub/bistro_backend/internal/es"
	"github.com/restohub/bistro_backend/internal/events"
	"github.com/restohub/bistro_backend/internal/httpserver"
	"github.com/restohub/bistro_backend/internal/logging"
	"github.com/restohub/bistro_backend/internal/mail"
	authmw "github.com/restohub/bistro_backend/internal/middleware/auth"
	"github.com/restohub/bistro_backend/internal/metrics"
	"github.com/restohub/bistro_backend/internal/payments"
	"github.com/restohub/bistro_backend/internal/repo"
	"github.com/restohub/bistro_backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "ACCESS_TOKEN_SECRET")
	config.MustNonEmpty(cfg.StripeSecretKey, "STRIPE_SECRET_KEY")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	store := &repo.GormRepo{DB: db}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	var notifier mail.Notifier
	if cfg.MailgunAPIKey != "" {
		notifier = mail.NewMailgunNotifier(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userSvc := &service.UserService{Store: store}
	paymentSvc := &service.PaymentService{
		Payments: store,
		Carts:    store,
		Gateway:  payments.NewStripeClient(cfg.StripeSecretKey),
		Notifier: notifier,
		Metrics:  collector,
	}
	if producer != nil {
		userSvc.Events = producer
		paymentSvc.Events = producer
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(logging.RequestLogger(logger))

	deps := httpserver.Deps{
		Guard:    authmw.NewGuard(cfg.JWTSecret, store),
		Auth:     &httpserver.AuthHTTP{Secret: cfg.JWTSecret},
		Users:    &httpserver.UserHTTP{Svc: userSvc},
		Menu:     &httpserver.MenuHTTP{Svc: &service.MenuService{Store: store}, ES: esClient, Index: "menu"},
		Reviews:  &httpserver.ReviewHTTP{Svc: &service.ReviewService{Store: store}},
		Carts:    &httpserver.CartHTTP{Svc: &service.CartService{Store: store}},
		Payments: &httpserver.PaymentHTTP{Svc: paymentSvc},
		Registry: registry,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
