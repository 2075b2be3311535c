package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wanderbook/backend/config"
	repository "github.com/wanderbook/backend/internal/database/postgres"
	redisdb "github.com/wanderbook/backend/internal/database/redis"
	"github.com/wanderbook/backend/internal/gateway"
	"github.com/wanderbook/backend/internal/service"
	"github.com/wanderbook/backend/internal/transport"
	"github.com/wanderbook/backend/pkg/kafka"
	"github.com/wanderbook/backend/pkg/postgres"
	"github.com/wanderbook/backend/pkg/redis"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize storage. The event store is an explicit dependency of the
	// command side; nothing holds it as a package global.
	eventStore := repository.NewEventStore(db)
	bookingRepo := repository.NewBookingRepository(db)
	tripRepo := repository.NewTripRepository(db)

	// Query-side offer cache
	var offerCache *redisdb.OfferCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		offerCache = redisdb.NewOfferCache(redisClient, cfg.Cache.OfferTTL)
		logrus.Info("Offer cache initialized")
	} else {
		logrus.Warn("Redis disabled, offer caching off")
	}

	// Booking notifications
	var notifier service.EventNotifier
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		notifier = service.NewProducerNotifier(producer)
		logrus.Info("Kafka notifier initialized")
	}

	// External aggregator collaborator
	travelGateway := gateway.NewMockGateway()
	if cfg.Gateway.Provider != "mock" {
		logrus.Warnf("Unknown gateway provider %q, falling back to mock", cfg.Gateway.Provider)
	}

	// Initialize services
	bookingCommands := service.NewBookingCommands(eventStore, bookingRepo, tripRepo, notifier)
	flightQueries := service.NewFlightQueries(travelGateway, bookingRepo, offerCache)
	tripQueries := service.NewTripQueries(tripRepo, bookingRepo)

	// Initialize handlers
	bookingHandler := transport.NewBookingHandler(bookingCommands)
	searchHandler := transport.NewSearchHandler(flightQueries)
	tripHandler := transport.NewTripHandler(tripQueries)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(bookingHandler, searchHandler, tripHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
