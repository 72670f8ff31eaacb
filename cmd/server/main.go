package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mkravtsov/fishshop/internal/auth"
	"github.com/mkravtsov/fishshop/internal/config"
	"github.com/mkravtsov/fishshop/internal/es"
	"github.com/mkravtsov/fishshop/internal/httpserver"
	"github.com/mkravtsov/fishshop/internal/mykafka"
	"github.com/mkravtsov/fishshop/internal/repo"
	"github.com/mkravtsov/fishshop/internal/service"
	"github.com/mkravtsov/fishshop/internal/session"
	pkgdb "github.com/mkravtsov/fishshop/pkg/db"
	"github.com/mkravtsov/fishshop/pkg/logging"
	loggingmw "github.com/mkravtsov/fishshop/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	store := &repo.GormRepo{DB: db}
	if err := store.Migrate(); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, []string{
			mykafka.TopicUserEvents,
			mykafka.TopicProductEvents,
			mykafka.TopicCartEvents,
		})
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		defer producer.Close()
	} else {
		logger.Warn("kafka disabled, KAFKA_BROKERS not set")
	}

	catalog := &service.CatalogService{
		Repo:     store,
		Producer: producer,
		ESIndex:  cfg.ESIndex,
	}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(&cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		catalog.ES = esClient
	} else {
		logger.Warn("search falls back to SQL, ES_URL not set")
	}

	sessions := &session.Manager{Repo: store}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	err = httpserver.Register(e, &httpserver.Deps{
		ShopHandler:    &httpserver.ShopHTTP{Svc: catalog},
		AdminHandler:   &httpserver.FishAdminHTTP{Svc: catalog, UploadDir: cfg.UploadDir},
		AccountHandler: &httpserver.AccountHTTP{Svc: &service.AccountService{Repo: store, Producer: producer}, Auth: &auth.Authenticator{Repo: store}},
		CartHandler:    &httpserver.CartHTTP{Lookup: store, Producer: producer},
		Sessions:       sessions,
		StaticDir:      cfg.StaticDir,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go sessions.PurgeLoop(logging.IntoContext(purgeCtx, logger), time.Hour)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("fishshop listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	stopPurge()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("fishshop stopped")
}
