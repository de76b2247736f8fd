package main

import (
	"turfly/internal/bookings/repository"
	"turfly/internal/customers/handler"
	customerrepo "turfly/internal/customers/repository"
	"turfly/internal/customers/service"
	"turfly/internal/customers/validator"
	"turfly/pkg/app"
	"turfly/pkg/config"
)

const ServiceName = "customers"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Customers service")
	customerService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCustomerHandler(customerService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CustomerService {
	customerValidator := validator.NewCustomerValidator(cfg.Log)
	customerRepo := customerrepo.NewMongoCustomerRepository(cfg)

	// Referral qualification needs completed-booking counts, read directly
	// from the bookings collection.
	bookingRepo := repository.NewMongoBookingRepository(cfg)

	customerService := service.NewCustomerService(
		customerRepo,
		bookingRepo,
		customerValidator,
		cfg,
	)

	cfg.Log.Info("Customer service initialized", "database", cfg.MongoDatabaseName)
	return customerService
}
