package main

import (
	"turfly/internal/bookings/handler"
	"turfly/internal/bookings/repository"
	"turfly/internal/bookings/service"
	"turfly/internal/bookings/validator"
	customerrepo "turfly/internal/customers/repository"
	venuerepo "turfly/internal/venues/repository"
	"turfly/pkg/app"
	"turfly/pkg/config"
	"turfly/pkg/kafka"
	kafka_config "turfly/pkg/kafka/config"
	kafkamw "turfly/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg, producer)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

// initProducer builds the booking event producer. A broken broker setup
// degrades to nil, which disables publishing rather than blocking writes.
func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()

	producer, err := kafka.NewProducer(kafkaCfg, kafka.TopicBookingEvents, kafka.TopicBookingEventsDLQ)
	if err != nil {
		cfg.Log.Warn("Kafka producer unavailable, booking events disabled", "error", err)
		return nil
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamw.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafkamw.MetricsProducerMiddleware())
	}

	cfg.Log.Info("Kafka producer initialized",
		"topic", kafka.TopicBookingEvents,
		"brokers", kafkaCfg.Brokers,
	)
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)

	// Events carry the customer phone and venue name so the notify worker
	// can compose messages without its own database access.
	customerRepo := customerrepo.NewMongoCustomerRepository(cfg)
	venueRepo := venuerepo.NewMongoVenueRepository(cfg)

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		publisher,
		customerRepo,
		venueRepo,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
