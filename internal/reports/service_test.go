package reports

import (
	"context"
	"testing"
	"time"

	"turfly/pkg/config"
	"turfly/pkg/logger"
	"turfly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

type mockReportRepository struct {
	findVenuesFunc   func(ctx context.Context, ownerID string) ([]*model.Venue, error)
	findBookingsFunc func(ctx context.Context, venueIDs []string) ([]bson.M, error)
	bookingsQueried  bool
}

func (m *mockReportRepository) FindVenuesByOwner(ctx context.Context, ownerID string) ([]*model.Venue, error) {
	if m.findVenuesFunc != nil {
		return m.findVenuesFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockReportRepository) FindRawBookings(ctx context.Context, venueIDs []string) ([]bson.M, error) {
	m.bookingsQueried = true
	if m.findBookingsFunc != nil {
		return m.findBookingsFunc(ctx, venueIDs)
	}
	return nil, nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		PeakStartHour:     17,
		PeakEndHour:       22,
		DailySlotCapacity: 20,
		NewCustomerRatio:  0.3,
		DefaultSlotHour:   12,
		ReportTimeZone:    "UTC",
	}
}

func newTestService(repo ReportRepository) *reportService {
	return &reportService{
		repo: repo,
		cfg:  newTestConfig(),
		now:  func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) },
	}
}

func TestDailyReport_EmptyVenueShortCircuit(t *testing.T) {
	repo := &mockReportRepository{
		findVenuesFunc: func(ctx context.Context, ownerID string) ([]*model.Venue, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo)

	report, err := svc.DailyReport(context.Background(), "o1", "2024-03-10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.bookingsQueried {
		t.Error("an owner without venues must not trigger a booking scan")
	}
	if report.TotalBookings != 0 || report.TotalRevenue != 0 || report.VenueCount != 0 {
		t.Errorf("expected all-zero report, got %+v", report)
	}
	if report.OwnerID != "o1" || report.Date != "2024-03-10" || report.TimeZone != "UTC" {
		t.Errorf("report must still carry identity fields, got %+v", report)
	}
}

func TestDailyReport_AggregatesAndSorts(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &mockReportRepository{
		findVenuesFunc: func(ctx context.Context, ownerID string) ([]*model.Venue, error) {
			return []*model.Venue{
				{ID: "v1", OwnerID: "o1", Name: "Greenfield Arena"},
			}, nil
		},
		findBookingsFunc: func(ctx context.Context, venueIDs []string) ([]bson.M, error) {
			return []bson.M{
				{"_id": "b1", "venue_id": "v1", "date": day.Add(10 * time.Hour), "time_slot": "10:00", "amount": int64(1500), "payment_method": "card", "status": "confirmed"},
				{"_id": "b2", "venue_id": "v1", "date": "2024-03-10", "time_slot": "18:00", "amount": int64(1000), "payment_method": "cash", "status": "completed"},
				// Different day, must be filtered out.
				{"_id": "b3", "venue_id": "v1", "date": day.AddDate(0, 0, 2), "time_slot": "09:00", "amount": int64(9999), "payment_method": "cash", "status": "completed"},
			}, nil
		},
	}
	svc := newTestService(repo)

	report, err := svc.DailyReport(context.Background(), "o1", "2024-03-10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalBookings != 2 {
		t.Fatalf("expected 2 bookings on the day, got %d", report.TotalBookings)
	}
	if report.TotalRevenue != 2500 || report.CashRevenue != 1000 || report.DigitalRevenue != 1500 {
		t.Errorf("unexpected revenue split: %+v", report)
	}
	if len(report.Bookings) != 2 {
		t.Fatalf("expected 2 report entries, got %d", len(report.Bookings))
	}
	if report.Bookings[0].SlotHour != 18 || report.Bookings[1].SlotHour != 10 {
		t.Errorf("entries must be sorted latest slot first, got %+v", report.Bookings)
	}
	if report.Bookings[0].VenueName != "Greenfield Arena" {
		t.Errorf("expected venue name on entry, got %q", report.Bookings[0].VenueName)
	}
}

func TestDailyReport_LocalDayWindow(t *testing.T) {
	repo := &mockReportRepository{
		findVenuesFunc: func(ctx context.Context, ownerID string) ([]*model.Venue, error) {
			return []*model.Venue{{ID: "v1", OwnerID: "o1", Name: "Night Arena"}}, nil
		},
		findBookingsFunc: func(ctx context.Context, venueIDs []string) ([]bson.M, error) {
			return []bson.M{
				// 17:30 UTC is 23:00 in Kolkata, still March 10 there.
				{"_id": "b1", "venue_id": "v1", "date": time.Date(2024, 3, 10, 17, 30, 0, 0, time.UTC), "time_slot": "23:00", "status": "completed"},
				// 18:30 UTC is already March 11 in Kolkata.
				{"_id": "b2", "venue_id": "v1", "date": time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC), "time_slot": "00:00", "status": "completed"},
			}, nil
		},
	}
	svc := newTestService(repo)

	report, err := svc.DailyReport(context.Background(), "o1", "2024-03-10", "Asia/Kolkata")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalBookings != 1 {
		t.Errorf("expected only the 23:00 IST booking inside the local day, got %d", report.TotalBookings)
	}
	if report.TimeZone != "Asia/Kolkata" {
		t.Errorf("expected report zone Asia/Kolkata, got %s", report.TimeZone)
	}
}

func TestDailyReport_InputValidation(t *testing.T) {
	svc := newTestService(&mockReportRepository{})

	tests := []struct {
		name     string
		ownerID  string
		date     string
		timeZone string
	}{
		{name: "empty owner", ownerID: "", date: "2024-03-10"},
		{name: "bad date", ownerID: "o1", date: "10-03-2024"},
		{name: "unknown zone", ownerID: "o1", date: "2024-03-10", timeZone: "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DailyReport(context.Background(), tt.ownerID, tt.date, tt.timeZone)
			if err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
