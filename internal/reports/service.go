package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"turfly/pkg/config"
	apperrors "turfly/pkg/errors"
	"turfly/pkg/model"
)

type ReportService interface {
	DailyReport(ctx context.Context, ownerID string, date string, timeZone string) (*model.DailyReport, error)
}

type reportService struct {
	repo ReportRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewReportService(repo ReportRepository, cfg *config.Config) ReportService {
	return &reportService{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// DailyReport builds the operations summary for one owner and one calendar
// date. The date is interpreted in the requested time zone, falling back
// to the configured report zone when none is given.
func (s *reportService) DailyReport(ctx context.Context, ownerID string, date string, timeZone string) (*model.DailyReport, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	if timeZone == "" {
		timeZone = s.cfg.ReportTimeZone
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown time zone: %s", timeZone))
	}

	dayStart, err := time.ParseInLocation(dateOnlyLayout, date, loc)
	if err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	venues, err := s.repo.FindVenuesByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to load venues for report",
			"owner_id", ownerID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load venues for report", err)
	}

	owned := ResolveOwnedVenues(ownerID, venues)
	if len(owned) == 0 {
		// No owned venues means no booking scan at all. A zeroed report
		// distinguishes "owner has no venues" from a database problem.
		report := Aggregate(nil, owned, s.reportConfig())
		s.stamp(report, ownerID, date, loc)
		return report, nil
	}

	venueIDs := make([]string, 0, len(owned))
	for id := range owned {
		venueIDs = append(venueIDs, id)
	}

	raw, err := s.repo.FindRawBookings(ctx, venueIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for report",
			"owner_id", ownerID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load bookings for report", err)
	}

	now := s.now()
	normalized := make([]ReportBooking, 0, len(raw))
	for _, doc := range raw {
		normalized = append(normalized, normalizeBooking(doc, loc, s.cfg.DefaultSlotHour, now))
	}

	filtered := FilterByDay(normalized, owned, dayStart, dayEnd)
	report := Aggregate(filtered, owned, s.reportConfig())
	s.stamp(report, ownerID, date, loc)

	// Latest slot first, so the evening rush reads at the top. Presentation
	// order only; the aggregate totals do not depend on it.
	sort.SliceStable(report.Bookings, func(i, j int) bool {
		return report.Bookings[i].SlotHour > report.Bookings[j].SlotHour
	})

	s.cfg.Log.Info("Daily report generated",
		"owner_id", ownerID,
		"date", date,
		"time_zone", loc.String(),
		"venue_count", report.VenueCount,
		"total_bookings", report.TotalBookings,
		"total_revenue", report.TotalRevenue,
	)

	return report, nil
}

func (s *reportService) stamp(report *model.DailyReport, ownerID string, date string, loc *time.Location) {
	report.OwnerID = ownerID
	report.Date = date
	report.TimeZone = loc.String()
}

func (s *reportService) reportConfig() ReportConfig {
	return ReportConfig{
		PeakStartHour:     s.cfg.PeakStartHour,
		PeakEndHour:       s.cfg.PeakEndHour,
		DailySlotCapacity: s.cfg.DailySlotCapacity,
		NewCustomerRatio:  s.cfg.NewCustomerRatio,
		DefaultSlotHour:   s.cfg.DefaultSlotHour,
	}
}
