package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"turfly/pkg/client"
	"turfly/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultBookingDurationMin int
	SlotLockTTL               time.Duration

	PeakStartHour     int
	PeakEndHour       int
	DailySlotCapacity int
	NewCustomerRatio  float64
	DefaultSlotHour   int
	ReportTimeZone    string

	ReferralRewardPoints int

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultBookingDurationMin: getEnvNum(EnvDefaultBookingDurationMin, DefaultDefaultBookingDurationMin),
		SlotLockTTL:               getEnvDuration(EnvSlotLockTTL, DefaultSlotLockTTL),

		PeakStartHour:     getEnvNum(EnvPeakStartHour, DefaultPeakStartHour),
		PeakEndHour:       getEnvNum(EnvPeakEndHour, DefaultPeakEndHour),
		DailySlotCapacity: getEnvNum(EnvDailySlotCapacity, DefaultDailySlotCapacity),
		NewCustomerRatio:  getEnvFloat(EnvNewCustomerRatio, DefaultNewCustomerRatio),
		DefaultSlotHour:   getEnvNum(EnvDefaultSlotHour, DefaultDefaultSlotHour),
		ReportTimeZone:    getEnvStr(EnvReportTimeZone, DefaultReportTimeZone),

		ReferralRewardPoints: getEnvNum(EnvReferralRewardPoints, DefaultReferralRewardPoints),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.DefaultBookingDurationMin <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultBookingDurationMin must be positive, got: %d", cfg.DefaultBookingDurationMin))
	}
	if cfg.SlotLockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SlotLockTTL must be positive, got: %s", cfg.SlotLockTTL))
	}

	if cfg.PeakStartHour < 0 || cfg.PeakStartHour > 23 {
		errors = append(errors, fmt.Sprintf("PeakStartHour must be between 0 and 23, got: %d", cfg.PeakStartHour))
	}
	if cfg.PeakEndHour < 0 || cfg.PeakEndHour > 23 {
		errors = append(errors, fmt.Sprintf("PeakEndHour must be between 0 and 23, got: %d", cfg.PeakEndHour))
	}
	if cfg.PeakEndHour < cfg.PeakStartHour {
		errors = append(errors, fmt.Sprintf("PeakEndHour (%d) must be >= PeakStartHour (%d)", cfg.PeakEndHour, cfg.PeakStartHour))
	}
	if cfg.DailySlotCapacity <= 0 {
		errors = append(errors, fmt.Sprintf("DailySlotCapacity must be positive, got: %d", cfg.DailySlotCapacity))
	}
	if cfg.NewCustomerRatio < 0 || cfg.NewCustomerRatio > 1 {
		errors = append(errors, fmt.Sprintf("NewCustomerRatio must be between 0 and 1, got: %f", cfg.NewCustomerRatio))
	}
	if cfg.DefaultSlotHour < 0 || cfg.DefaultSlotHour > 23 {
		errors = append(errors, fmt.Sprintf("DefaultSlotHour must be between 0 and 23, got: %d", cfg.DefaultSlotHour))
	}
	if _, err := time.LoadLocation(cfg.ReportTimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("ReportTimeZone must be a valid IANA zone name, got: %s", cfg.ReportTimeZone))
	}
	if cfg.ReferralRewardPoints < 0 {
		errors = append(errors, fmt.Sprintf("ReferralRewardPoints cannot be negative, got: %d", cfg.ReferralRewardPoints))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_booking_duration_min", cfg.DefaultBookingDurationMin,
		"slot_lock_ttl", cfg.SlotLockTTL,
		"peak_start_hour", cfg.PeakStartHour,
		"peak_end_hour", cfg.PeakEndHour,
		"daily_slot_capacity", cfg.DailySlotCapacity,
		"new_customer_ratio", cfg.NewCustomerRatio,
		"default_slot_hour", cfg.DefaultSlotHour,
		"report_timezone", cfg.ReportTimeZone,
		"referral_reward_points", cfg.ReferralRewardPoints,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
