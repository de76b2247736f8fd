package main

import (
	"turfly/internal/reports"
	"turfly/pkg/app"
	"turfly/pkg/config"
)

const ServiceName = "reports"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reports service")
	reportService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(reports.NewReportHandler(reportService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) reports.ReportService {
	reportRepo := reports.NewMongoReportRepository(cfg)
	reportService := reports.NewReportService(reportRepo, cfg)

	cfg.Log.Info("Report service initialized", "database", cfg.MongoDatabaseName)
	return reportService
}
