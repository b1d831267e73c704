package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"grandstay-backend/cache"
	"grandstay-backend/config"
	"grandstay-backend/controllers"
	"grandstay-backend/events"
	"grandstay-backend/routes"
	"grandstay-backend/services"

	"grandstay-backend/repository"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env not found, continuing with environment variables")
	}

	cfg := config.Load()

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	log.Info().Msg("database connected, migrations applied")

	// Redis and kafka are optional side channels; everything works without
	// them, just with no summary cache, no room holds, and no change events.
	var redisCache *cache.RedisCache
	var summaryCache services.SummaryCache
	var holdCache services.HoldCache
	if cfg.RedisAddr != "" {
		redisCache = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SummaryCacheTTL)
		summaryCache = redisCache
		holdCache = redisCache
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
	}

	var producer *events.Producer
	var publisher services.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
		publisher = producer
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaEventsTopic).Msg("event publishing enabled")
	}

	// Repositories
	roomRepo := repository.NewRoomRepository(db, log)
	bookingRepo := repository.NewBookingRepository(db, log)
	pricingRepo := repository.NewPricingRepository(db, log)
	inquiryRepo := repository.NewInquiryRepository(db, log)

	// Services
	availabilityService := services.NewAvailabilityService(roomRepo, bookingRepo, summaryCache, log)
	pricingService := services.NewPricingService(pricingRepo, cfg.DefaultNightlyRate, cfg.DefaultCurrency, log)
	bookingService := services.NewBookingService(
		bookingRepo, roomRepo, availabilityService, pricingService, log,
		services.WithInitialStatus(cfg.BookingInitialStatus),
		services.WithHoldCache(holdCache, cfg.RoomHoldTTL),
		services.WithEventPublisher(publisher),
	)
	roomService := services.NewRoomService(roomRepo, bookingRepo, holdCache, publisher, log)
	metricsService := services.NewMetricsService(bookingRepo, roomRepo, log)
	inquiryService := services.NewInquiryService(inquiryRepo, log)

	// Controllers
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	bookingController := controllers.NewBookingController(bookingService)
	roomController := controllers.NewRoomController(roomService)
	pricingController := controllers.NewPricingController(pricingService)
	metricsController := controllers.NewMetricsController(metricsService)
	inquiryController := controllers.NewInquiryController(inquiryService)

	router := routes.SetupRouter(
		availabilityController,
		bookingController,
		roomController,
		pricingController,
		metricsController,
		inquiryController,
		cfg.CORSOrigins,
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close event producer")
		}
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("server stopped gracefully")
}
