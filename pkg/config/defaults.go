package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "turfly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultDefaultBookingDurationMin = 60
	DefaultSlotLockTTL               = 10 * time.Second

	// Reporting heuristics. The peak window, the assumed daily slot capacity
	// and the 30/70 new/returning split are business guesses carried over from
	// the operators' spreadsheets, not measured values. Keep them overridable.
	DefaultPeakStartHour     = 17
	DefaultPeakEndHour       = 22
	DefaultDailySlotCapacity = 20
	DefaultNewCustomerRatio  = 0.3
	DefaultDefaultSlotHour   = 12
	DefaultReportTimeZone    = "UTC"

	DefaultReferralRewardPoints = 100
)

// Booking status values accepted by the write path. Aggregation additionally
// tolerates unknown statuses in legacy records.
const (
	Pending   = "pending"
	Confirmed = "confirmed"
	Completed = "completed"
	Cancelled = "cancelled"
)

// PaymentCash is the only payment method treated as cash revenue; every other
// value counts as digital.
const PaymentCash = "cash"
