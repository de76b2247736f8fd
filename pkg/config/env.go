package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultBookingDurationMin = "DEFAULT_BOOKING_DURATION_MIN"
	EnvSlotLockTTL               = "SLOT_LOCK_TTL"

	EnvPeakStartHour     = "PEAK_START_HOUR"
	EnvPeakEndHour       = "PEAK_END_HOUR"
	EnvDailySlotCapacity = "DAILY_SLOT_CAPACITY"
	EnvNewCustomerRatio  = "NEW_CUSTOMER_RATIO"
	EnvDefaultSlotHour   = "DEFAULT_SLOT_HOUR"
	EnvReportTimeZone    = "REPORT_TIMEZONE"

	EnvReferralRewardPoints = "REFERRAL_REWARD_POINTS"
)
