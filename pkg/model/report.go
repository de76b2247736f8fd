package model

// DailyReport summarizes one operating day across every venue an owner runs.
// All monetary values are whole currency units, matching the bookings
// collection.
type DailyReport struct {
	OwnerID            string        `json:"owner_id"`
	Date               string        `json:"date"`
	TimeZone           string        `json:"time_zone"`
	VenueCount         int           `json:"venue_count"`
	TotalBookings      int           `json:"total_bookings"`
	CompletedBookings  int           `json:"completed_bookings"`
	CancelledBookings  int           `json:"cancelled_bookings"`
	NoShowBookings     int           `json:"no_show_bookings"`
	TotalRevenue       int64         `json:"total_revenue"`
	CashRevenue        int64         `json:"cash_revenue"`
	DigitalRevenue     int64         `json:"digital_revenue"`
	PeakHourBookings   int           `json:"peak_hour_bookings"`
	OffPeakBookings    int           `json:"off_peak_bookings"`
	UtilizationPercent int           `json:"utilization_percent"`
	NewCustomers       int           `json:"new_customers"`
	ReturningCustomers int           `json:"returning_customers"`
	Bookings           []ReportEntry `json:"bookings"`
}

// ReportEntry is the per-booking line shown under a daily report, ordered by
// slot hour descending so the evening rush reads first.
type ReportEntry struct {
	BookingID     string `json:"booking_id"`
	VenueID       string `json:"venue_id"`
	VenueName     string `json:"venue_name"`
	SlotHour      int    `json:"slot_hour"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
}
