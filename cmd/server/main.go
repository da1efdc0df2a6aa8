package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/techzone-py/techzone/internal/clients/carrier"
	"github.com/techzone-py/techzone/internal/clients/geocoder"
	"github.com/techzone-py/techzone/internal/clients/imagehost"
	"github.com/techzone-py/techzone/internal/clients/mailer"
	"github.com/techzone-py/techzone/internal/clients/payments"
	"github.com/techzone-py/techzone/internal/config"
	"github.com/techzone-py/techzone/internal/db"
	"github.com/techzone-py/techzone/internal/events"
	"github.com/techzone-py/techzone/internal/httpserver"
	"github.com/techzone-py/techzone/internal/jobs"
	"github.com/techzone-py/techzone/internal/middleware/authmw"
	"github.com/techzone-py/techzone/internal/middleware/loggingmw"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/internal/search"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/internal/shipping"
	"github.com/techzone-py/techzone/pkg/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	if cfg.StorageDriver == "postgres" {
		config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(ctx, cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		log.Error("database_open_failed", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Error("database_migrate_failed", "error", err)
		os.Exit(1)
	}
	store := repo.New(gdb)

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	index, err := search.New(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		log.Error("elasticsearch_connect_failed", "error", err)
		os.Exit(1)
	}
	if index == nil {
		log.Warn("elasticsearch_disabled", "reason", "ES_URL not set")
	}

	var mail mailer.Mailer
	if cfg.MailerURL != "" {
		mail = mailer.NewHTTPMailer(cfg.MailerURL, cfg.MailerKey, cfg.MailFrom)
	} else {
		if cfg.Production() {
			log.Error("mailer_not_configured", "env", "MAILER_URL")
			os.Exit(1)
		}
		mail = &mailer.NopMailer{Log: log}
	}

	var gateway payments.Gateway
	if cfg.StripeSecretKey != "" {
		gateway = payments.NewStripeGateway(cfg.StripeSecretKey)
	} else if cfg.Production() {
		log.Error("payment_gateway_not_configured", "env", "STRIPE_SECRET_KEY")
		os.Exit(1)
	}

	var shipper *carrier.Client
	if cfg.CarrierURL != "" {
		shipper = carrier.NewClient(cfg.CarrierURL, cfg.CarrierKey)
	}
	var locator *geocoder.Client
	if cfg.GeocoderURL != "" {
		locator = geocoder.NewClient(cfg.GeocoderURL)
	}
	var images *imagehost.Client
	if cfg.ImageHostURL != "" {
		images = imagehost.NewClient(cfg.ImageHostURL, cfg.ImageHostKey)
	}

	rates := shipping.NewResolver()

	authSvc := &service.AuthService{
		Repo:      store,
		Mailer:    mail,
		Producer:  producer,
		JWTSecret: cfg.JWTSecret,
	}
	catalogSvc := &service.CatalogService{Repo: store, Index: index, Producer: producer}
	checkoutSvc := &service.CheckoutService{
		Repo:       store,
		Rates:      rates,
		Gateway:    gateway,
		Producer:   producer,
		SuccessURL: cfg.CheckoutBaseURL + "/checkout/success",
		CancelURL:  cfg.CheckoutBaseURL + "/checkout/cancel",
	}
	orderSvc := &service.OrderService{Repo: store, Carrier: shipper, Geocoder: locator}
	contentSvc := &service.ContentService{Repo: store}
	adminSvc := &service.AdminService{Repo: store}

	secure := cfg.Production()
	httpserver.ConfigureOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL, cfg.SessionSecret, secure)

	var oauth *httpserver.OAuthHTTP
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		oauth = &httpserver.OAuthHTTP{Svc: authSvc, Secure: secure}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(loggingmw.RequestLogger(log))

	httpserver.Register(e, httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: authSvc, Secure: secure},
		OAuth:    oauth,
		Catalog:  &httpserver.CatalogHTTP{Svc: catalogSvc},
		Shipping: &httpserver.ShippingHTTP{Rates: rates},
		Checkout: &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		Orders:   &httpserver.OrderHTTP{Svc: orderSvc},
		Content:  &httpserver.ContentHTTP{Svc: contentSvc},
		Admin:    &httpserver.AdminHTTP{Svc: adminSvc, Images: images},
		AuthMW:   authmw.New(authSvc, cfg.JWTSecret, secure),
		Ready: func(c echo.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			return sqlDB.PingContext(pingCtx)
		},
	})

	scheduler := jobs.New(store, log)
	if err := scheduler.Start(); err != nil {
		log.Error("scheduler_start_failed", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		log.Info("server_starting", "addr", addr, "env", cfg.Env, "storage", cfg.StorageDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", "error", err)
	}
	log.Info("server_stopped")
}
