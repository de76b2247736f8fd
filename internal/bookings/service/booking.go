package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "turfly/internal/bookings/errors"
	"turfly/internal/bookings/repository"
	"turfly/internal/bookings/validator"
	"turfly/pkg/config"
	apperrors "turfly/pkg/errors"
	"turfly/pkg/kafka"
	"turfly/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// EventPublisher publishes booking lifecycle events. Satisfied by
// kafka.Producer; nil disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// CustomerDirectory resolves the customer a booking belongs to, so events
// carry the phone number downstream consumers notify on. Backed by the
// customers repository.
type CustomerDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Customer, error)
}

// VenueDirectory resolves venue display names for events. Backed by the
// venues repository.
type VenueDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Venue, error)
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) error
	Delete(ctx context.Context, id string) error
	SearchByVenue(ctx context.Context, venueID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher EventPublisher
	customers CustomerDirectory
	venues    VenueDirectory
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	customers CustomerDirectory,
	venues VenueDirectory,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		customers: customers,
		venues:    venues,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	// Advisory lock so two requests cannot race for the same slot.
	lockID, err := s.acquireSlotLock(ctx, booking.VenueID, booking.Date, booking.TimeSlot)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifySlotFree(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.publishEvent(ctx, kafka.EventBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"venue_id", booking.VenueID,
		"date", booking.Date,
		"time_slot", booking.TimeSlot,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		return apperrors.Internal("Failed to check booking existence", err)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}
	merged := s.mergeBookingUpdates(existing, updates)
	if err := s.validate(merged); err != nil {
		return err
	}

	slotChanged := !merged.Date.Equal(existing.Date) || merged.TimeSlot != existing.TimeSlot

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if slotChanged {
			if err := s.verifySlotFree(sessCtx, merged); err != nil {
				return err
			}
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return err
	}

	if merged.Status != existing.Status {
		s.publishEvent(ctx, statusEventType(merged.Status), merged)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

func (s *bookingService) SearchByVenue(ctx context.Context, venueID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error) {
	if venueID == "" {
		return nil, 0, apperrors.InvalidInput("Venue ID is required")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByVenueAndDate(ctx, venueID, from, to)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by search",
				"venue_id", venueID,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindByVenueAndDate(ctx, venueID, from, to, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search bookings",
				"venue_id", venueID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search bookings", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Booking search completed",
		"venue_id", venueID,
		"count", len(bookings),
		"total_count", count,
	)
	return bookings, count, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = config.Pending
	}
	if b.DurationMin == 0 {
		b.DurationMin = s.cfg.DefaultBookingDurationMin
	}
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.Date != nil {
		merged.Date = *updates.Date
	}
	if updates.TimeSlot != "" {
		merged.TimeSlot = updates.TimeSlot
	}
	if updates.DurationMin != nil {
		merged.DurationMin = *updates.DurationMin
	}
	if updates.Amount != nil {
		merged.Amount = *updates.Amount
	}
	if updates.PaymentMethod != "" {
		merged.PaymentMethod = updates.PaymentMethod
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.NoShow != nil {
		merged.NoShow = *updates.NoShow
	}

	return &merged
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifySlotFree rejects a booking when another active booking already holds
// the same venue, date and time slot. Cancelled bookings do not block a slot.
func (s *bookingService) verifySlotFree(ctx context.Context, booking *model.Booking) error {
	dayStart := time.Date(booking.Date.Year(), booking.Date.Month(), booking.Date.Day(), 0, 0, 0, 0, booking.Date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	const maxSlotCheck = 100
	existing, err := s.repo.FindByVenueAndDate(ctx, booking.VenueID, &dayStart, &dayEnd, maxSlotCheck, 0)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		if b.Status == config.Cancelled {
			continue
		}
		if b.TimeSlot == booking.TimeSlot {
			return apperrors.Conflict(fmt.Sprintf(
				"Time slot %s on %s is already booked",
				booking.TimeSlot,
				dayStart.Format("2006-01-02"),
			))
		}
	}
	return nil
}

// acquireSlotLock creates an advisory lock keyed by the slot coordinates.
// Returns a conflict error if another request holds the lock.
func (s *bookingService) acquireSlotLock(ctx context.Context, venueID string, date time.Time, timeSlot string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%s_%s", venueID, date.Format("2006-01-02"), timeSlot)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publishEvent emits a lifecycle event. The booking write has already
// committed, so publish failures are logged and swallowed.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	phone, venueName := s.eventContacts(ctx, booking)

	event := kafka.BookingEvent{
		BookingID:     booking.ID,
		VenueID:       booking.VenueID,
		VenueName:     venueName,
		CustomerID:    booking.CustomerID,
		CustomerPhone: phone,
		Date:          booking.Date,
		TimeSlot:      booking.TimeSlot,
		DurationMin:   booking.DurationMin,
		Amount:        booking.Amount,
		Status:        booking.Status,
		OccurredAt:    time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSchemaVersion(kafka.SchemaVersionV1).
		WithSource("bookings").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"booking_id", booking.ID,
			"event_type", eventType,
			"error", err,
		)
	}
}

// eventContacts resolves the customer phone and venue name stamped onto
// the event. Lookup failures degrade to empty fields; the event still
// goes out with the ids.
func (s *bookingService) eventContacts(ctx context.Context, booking *model.Booking) (string, string) {
	var phone, venueName string

	if s.customers != nil && booking.CustomerID != "" {
		customer, err := s.customers.FindByID(ctx, booking.CustomerID)
		if err != nil {
			s.cfg.Log.Warn("Could not resolve customer for booking event",
				"booking_id", booking.ID,
				"customer_id", booking.CustomerID,
				"error", err,
			)
		} else if customer != nil {
			phone = customer.Phone
		}
	}

	if s.venues != nil && booking.VenueID != "" {
		venue, err := s.venues.FindByID(ctx, booking.VenueID)
		if err != nil {
			s.cfg.Log.Warn("Could not resolve venue for booking event",
				"booking_id", booking.ID,
				"venue_id", booking.VenueID,
				"error", err,
			)
		} else if venue != nil {
			venueName = venue.Name
		}
	}

	return phone, venueName
}

func statusEventType(status string) string {
	switch status {
	case config.Confirmed:
		return kafka.EventBookingConfirmed
	case config.Completed:
		return kafka.EventBookingCompleted
	case config.Cancelled:
		return kafka.EventBookingCancelled
	default:
		return kafka.EventBookingCreated
	}
}
