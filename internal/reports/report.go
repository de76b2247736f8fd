package reports

import (
	"math"
	"time"

	"turfly/pkg/config"
	"turfly/pkg/model"
)

// ReportConfig carries the heuristics used when aggregating a day. Values
// come from service configuration, not from stored data.
type ReportConfig struct {
	PeakStartHour     int
	PeakEndHour       int
	DailySlotCapacity int
	NewCustomerRatio  float64
	DefaultSlotHour   int
}

// ReportBooking is a booking normalized for aggregation. The repository
// builds it leniently from raw documents so one malformed booking cannot
// sink a whole report.
type ReportBooking struct {
	ID            string
	VenueID       string
	CustomerID    string
	EffectiveTime time.Time
	SlotHour      int
	Amount        int64
	PaymentMethod string
	Status        string
	NoShow        bool
}

// ResolveOwnedVenues maps venue ID to venue name for the given owner. An
// unknown owner yields an empty map; callers short-circuit on that.
func ResolveOwnedVenues(ownerID string, venues []*model.Venue) map[string]string {
	owned := make(map[string]string)
	for _, v := range venues {
		if v.OwnerID == ownerID {
			owned[v.ID] = v.Name
		}
	}
	return owned
}

// FilterByDay keeps bookings that belong to one of the owned venues and
// whose effective time falls inside the local day window [dayStart,
// dayEnd). Both bounds are expected to be midnights in the report's time
// zone. The membership check repeats the repository's venue filter so
// the function stands alone over an unfiltered slice.
func FilterByDay(bookings []ReportBooking, venues map[string]string, dayStart, dayEnd time.Time) []ReportBooking {
	out := make([]ReportBooking, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := venues[b.VenueID]; !ok {
			continue
		}
		if b.EffectiveTime.Before(dayStart) {
			continue
		}
		if !b.EffectiveTime.Before(dayEnd) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Aggregate folds one day's bookings into a DailyReport in a single pass.
// Counting rules:
//   - completed counts "completed" and "confirmed" statuses
//   - cash revenue is exactly the "cash" payment method, all else is digital
//   - peak hours span [PeakStartHour, PeakEndHour] inclusive
//   - utilization is capped at 100 percent
//   - new and returning customers are a fixed-ratio estimate over the
//     distinct customer count, not a measurement
func Aggregate(bookings []ReportBooking, venues map[string]string, cfg ReportConfig) *model.DailyReport {
	report := &model.DailyReport{
		VenueCount: len(venues),
		Bookings:   make([]model.ReportEntry, 0, len(bookings)),
	}

	distinctCustomers := make(map[string]struct{})

	for _, b := range bookings {
		report.TotalBookings++

		switch b.Status {
		case config.Completed, config.Confirmed:
			report.CompletedBookings++
		case config.Cancelled:
			report.CancelledBookings++
		}

		if b.NoShow {
			report.NoShowBookings++
		}

		report.TotalRevenue += b.Amount
		if b.PaymentMethod == config.PaymentCash {
			report.CashRevenue += b.Amount
		} else {
			report.DigitalRevenue += b.Amount
		}

		if b.SlotHour >= cfg.PeakStartHour && b.SlotHour <= cfg.PeakEndHour {
			report.PeakHourBookings++
		} else {
			report.OffPeakBookings++
		}

		if b.CustomerID != "" {
			distinctCustomers[b.CustomerID] = struct{}{}
		}

		report.Bookings = append(report.Bookings, model.ReportEntry{
			BookingID:     b.ID,
			VenueID:       b.VenueID,
			VenueName:     venues[b.VenueID],
			SlotHour:      b.SlotHour,
			Amount:        b.Amount,
			PaymentMethod: b.PaymentMethod,
			Status:        b.Status,
		})
	}

	report.UtilizationPercent = utilization(report.TotalBookings, cfg.DailySlotCapacity)

	// The 30/70 split is a declared estimate. There is no stored first-visit
	// marker to measure against, so the report approximates from the
	// distinct customer count.
	distinct := len(distinctCustomers)
	report.NewCustomers = int(math.Floor(float64(distinct) * cfg.NewCustomerRatio))
	report.ReturningCustomers = int(math.Ceil(float64(distinct) * (1 - cfg.NewCustomerRatio)))

	return report
}

// utilization is total bookings over the assumed daily slot capacity, as a
// rounded percentage capped at 100.
func utilization(total, slotCapacity int) int {
	if total <= 0 || slotCapacity <= 0 {
		return 0
	}
	pct := int(math.Round(float64(total) / float64(slotCapacity) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
