package reports

import (
	"reflect"
	"testing"
	"time"

	"turfly/pkg/model"
)

func testReportConfig() ReportConfig {
	return ReportConfig{
		PeakStartHour:     17,
		PeakEndHour:       22,
		DailySlotCapacity: 20,
		NewCustomerRatio:  0.3,
		DefaultSlotHour:   12,
	}
}

func TestResolveOwnedVenues(t *testing.T) {
	venues := []*model.Venue{
		{ID: "v1", OwnerID: "o1", Name: "Greenfield Arena"},
		{ID: "v2", OwnerID: "o1", Name: "Lakeside Turf"},
		{ID: "v3", OwnerID: "o2", Name: "Smash Court"},
	}

	owned := ResolveOwnedVenues("o1", venues)

	if len(owned) != 2 {
		t.Fatalf("expected 2 owned venues, got %d", len(owned))
	}
	if owned["v1"] != "Greenfield Arena" || owned["v2"] != "Lakeside Turf" {
		t.Errorf("unexpected venue mapping: %v", owned)
	}
	if _, ok := owned["v3"]; ok {
		t.Error("venue v3 belongs to a different owner and must not be resolved")
	}
}

func TestResolveOwnedVenues_UnknownOwner(t *testing.T) {
	venues := []*model.Venue{
		{ID: "v1", OwnerID: "o1", Name: "Greenfield Arena"},
	}

	owned := ResolveOwnedVenues("nobody", venues)
	if len(owned) != 0 {
		t.Errorf("expected empty set for unknown owner, got %v", owned)
	}
}

func TestAggregate_SingleDayScenario(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}
	bookings := []ReportBooking{
		{ID: "b1", VenueID: "v1", Amount: 1000, PaymentMethod: "cash", Status: "completed", SlotHour: 18},
		{ID: "b2", VenueID: "v1", Amount: 1500, PaymentMethod: "card", Status: "confirmed", SlotHour: 10},
		{ID: "b3", VenueID: "v1", Amount: 0, PaymentMethod: "cash", Status: "cancelled", SlotHour: 20},
	}

	report := Aggregate(bookings, venues, testReportConfig())

	if report.TotalRevenue != 2500 {
		t.Errorf("expected total revenue 2500, got %d", report.TotalRevenue)
	}
	if report.CashRevenue != 1000 {
		t.Errorf("expected cash revenue 1000, got %d", report.CashRevenue)
	}
	if report.DigitalRevenue != 1500 {
		t.Errorf("expected digital revenue 1500, got %d", report.DigitalRevenue)
	}
	if report.TotalBookings != 3 {
		t.Errorf("expected 3 total bookings, got %d", report.TotalBookings)
	}
	if report.CompletedBookings != 2 {
		t.Errorf("expected 2 completed bookings, got %d", report.CompletedBookings)
	}
	if report.CancelledBookings != 1 {
		t.Errorf("expected 1 cancelled booking, got %d", report.CancelledBookings)
	}
	if report.PeakHourBookings != 2 {
		t.Errorf("expected 2 peak bookings, got %d", report.PeakHourBookings)
	}
	if report.OffPeakBookings != 1 {
		t.Errorf("expected 1 off-peak booking, got %d", report.OffPeakBookings)
	}
	if report.UtilizationPercent != 15 {
		t.Errorf("expected utilization 15, got %d", report.UtilizationPercent)
	}
	if report.Bookings[0].VenueName != "Greenfield Arena" {
		t.Errorf("expected venue name resolved on entries, got %q", report.Bookings[0].VenueName)
	}
}

func TestAggregate_RevenueSplitInvariant(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}
	bookings := []ReportBooking{
		{ID: "b1", VenueID: "v1", Amount: 700, PaymentMethod: "cash", Status: "completed", SlotHour: 9},
		{ID: "b2", VenueID: "v1", Amount: 1200, PaymentMethod: "upi", Status: "completed", SlotHour: 11},
		{ID: "b3", VenueID: "v1", Amount: 450, PaymentMethod: "wallet", Status: "pending", SlotHour: 14},
		{ID: "b4", VenueID: "v1", Amount: 300, PaymentMethod: "", Status: "confirmed", SlotHour: 19},
		{ID: "b5", VenueID: "v1", Amount: 900, PaymentMethod: "cash", Status: "cancelled", SlotHour: 21},
	}

	report := Aggregate(bookings, venues, testReportConfig())

	if report.CashRevenue+report.DigitalRevenue != report.TotalRevenue {
		t.Errorf("cash (%d) + digital (%d) must equal total (%d)",
			report.CashRevenue, report.DigitalRevenue, report.TotalRevenue)
	}
	if report.CashRevenue != 1600 {
		t.Errorf("expected cash revenue 1600, got %d", report.CashRevenue)
	}
}

func TestAggregate_StatusPartition(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}
	bookings := []ReportBooking{
		{ID: "b1", VenueID: "v1", Status: "completed", SlotHour: 9},
		{ID: "b2", VenueID: "v1", Status: "confirmed", SlotHour: 10},
		{ID: "b3", VenueID: "v1", Status: "cancelled", SlotHour: 11},
		{ID: "b4", VenueID: "v1", Status: "pending", SlotHour: 12},
		{ID: "b5", VenueID: "v1", Status: "", SlotHour: 13},
	}

	report := Aggregate(bookings, venues, testReportConfig())

	if report.CompletedBookings != 2 {
		t.Errorf("expected 2 completed, got %d", report.CompletedBookings)
	}
	if report.CancelledBookings != 1 {
		t.Errorf("expected 1 cancelled, got %d", report.CancelledBookings)
	}
	if report.CompletedBookings+report.CancelledBookings > report.TotalBookings {
		t.Error("completed plus cancelled must never exceed total")
	}
}

func TestAggregate_PeakPartition(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}
	bookings := []ReportBooking{
		{ID: "b1", VenueID: "v1", SlotHour: 16},
		{ID: "b2", VenueID: "v1", SlotHour: 17},
		{ID: "b3", VenueID: "v1", SlotHour: 22},
		{ID: "b4", VenueID: "v1", SlotHour: 23},
	}

	report := Aggregate(bookings, venues, testReportConfig())

	if report.PeakHourBookings != 2 {
		t.Errorf("hours 17 and 22 are peak inclusive, expected 2, got %d", report.PeakHourBookings)
	}
	if report.OffPeakBookings != 2 {
		t.Errorf("hours 16 and 23 are off-peak, expected 2, got %d", report.OffPeakBookings)
	}
	if report.PeakHourBookings+report.OffPeakBookings != report.TotalBookings {
		t.Error("peak plus off-peak must equal total")
	}
}

func TestAggregate_UtilizationBounds(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}

	var overbooked []ReportBooking
	for i := 0; i < 50; i++ {
		overbooked = append(overbooked, ReportBooking{VenueID: "v1", SlotHour: 10})
	}

	report := Aggregate(overbooked, venues, testReportConfig())
	if report.UtilizationPercent != 100 {
		t.Errorf("utilization must cap at 100, got %d", report.UtilizationPercent)
	}

	empty := Aggregate(nil, venues, testReportConfig())
	if empty.UtilizationPercent != 0 {
		t.Errorf("empty day must report 0 utilization, got %d", empty.UtilizationPercent)
	}
}

func TestAggregate_CustomerEstimate(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}

	var bookings []ReportBooking
	customers := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10"}
	for _, c := range customers {
		bookings = append(bookings, ReportBooking{VenueID: "v1", CustomerID: c, SlotHour: 10})
	}
	// A repeat visit and a guest booking must not inflate the distinct count.
	bookings = append(bookings,
		ReportBooking{VenueID: "v1", CustomerID: "c1", SlotHour: 18},
		ReportBooking{VenueID: "v1", CustomerID: "", SlotHour: 19},
	)

	report := Aggregate(bookings, venues, testReportConfig())

	if report.NewCustomers != 3 {
		t.Errorf("expected 3 estimated new customers, got %d", report.NewCustomers)
	}
	if report.ReturningCustomers != 7 {
		t.Errorf("expected 7 estimated returning customers, got %d", report.ReturningCustomers)
	}
}

func TestAggregate_NoShowIndependentOfStatus(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}
	bookings := []ReportBooking{
		{ID: "b1", VenueID: "v1", Status: "completed", NoShow: true, SlotHour: 10},
		{ID: "b2", VenueID: "v1", Status: "cancelled", NoShow: true, SlotHour: 11},
	}

	report := Aggregate(bookings, venues, testReportConfig())

	if report.NoShowBookings != 2 {
		t.Errorf("no-show counts independently of status, expected 2, got %d", report.NoShowBookings)
	}
	if report.CompletedBookings != 1 {
		t.Errorf("a completed no-show still counts as completed, got %d", report.CompletedBookings)
	}
}

func TestAggregate_Idempotence(t *testing.T) {
	venues := map[string]string{"v1": "Greenfield Arena"}
	bookings := []ReportBooking{
		{ID: "b1", VenueID: "v1", CustomerID: "c1", Amount: 500, PaymentMethod: "cash", Status: "completed", SlotHour: 18},
		{ID: "b2", VenueID: "v1", CustomerID: "c2", Amount: 800, PaymentMethod: "upi", Status: "pending", SlotHour: 8},
	}

	first := Aggregate(bookings, venues, testReportConfig())
	second := Aggregate(bookings, venues, testReportConfig())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input must produce identical reports: %+v vs %+v", first, second)
	}
}

func TestFilterByDay_Boundaries(t *testing.T) {
	loc := time.UTC
	dayStart := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	venues := map[string]string{"v1": "Turf One"}
	bookings := []ReportBooking{
		{ID: "midnight", VenueID: "v1", EffectiveTime: dayStart},
		{ID: "last-ms", VenueID: "v1", EffectiveTime: time.Date(2024, 3, 10, 23, 59, 59, 999000000, loc)},
		{ID: "next-day", VenueID: "v1", EffectiveTime: dayEnd},
		{ID: "day-before", VenueID: "v1", EffectiveTime: dayStart.Add(-time.Second)},
	}

	filtered := FilterByDay(bookings, venues, dayStart, dayEnd)

	if len(filtered) != 2 {
		t.Fatalf("expected 2 bookings inside the day, got %d", len(filtered))
	}
	if filtered[0].ID != "midnight" || filtered[1].ID != "last-ms" {
		t.Errorf("unexpected filtered set: %+v", filtered)
	}
}

func TestFilterByDay_ForeignVenueExcluded(t *testing.T) {
	loc := time.UTC
	dayStart := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	venues := map[string]string{"v1": "Turf One"}
	bookings := []ReportBooking{
		{ID: "owned", VenueID: "v1", EffectiveTime: dayStart.Add(10 * time.Hour)},
		{ID: "foreign", VenueID: "v9", EffectiveTime: dayStart.Add(10 * time.Hour)},
	}

	filtered := FilterByDay(bookings, venues, dayStart, dayEnd)

	if len(filtered) != 1 {
		t.Fatalf("expected only owned-venue bookings, got %d", len(filtered))
	}
	if filtered[0].ID != "owned" {
		t.Errorf("expected the owned booking to survive, got %q", filtered[0].ID)
	}
}

func TestFilterByDay_Deterministic(t *testing.T) {
	loc := time.UTC
	dayStart := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	venues := map[string]string{"v1": "Turf One"}
	bookings := []ReportBooking{
		{ID: "a", VenueID: "v1", EffectiveTime: dayStart.Add(10 * time.Hour)},
		{ID: "b", VenueID: "v1", EffectiveTime: dayStart.Add(50 * time.Hour)},
	}

	first := FilterByDay(bookings, venues, dayStart, dayEnd)
	second := FilterByDay(bookings, venues, dayStart, dayEnd)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("filter must be a pure function: %+v vs %+v", first, second)
	}
}
