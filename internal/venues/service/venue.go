package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	venueserrors "turfly/internal/venues/errors"
	"turfly/internal/venues/repository"
	"turfly/internal/venues/validator"
	"turfly/pkg/config"
	apperrors "turfly/pkg/errors"
	"turfly/pkg/model"
	"turfly/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type VenueService interface {
	Create(ctx context.Context, venue *model.Venue) error
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, int64, error)
	Update(ctx context.Context, id string, updates *model.VenueUpdate) error
	Delete(ctx context.Context, id string) error

	GetByOwner(ctx context.Context, ownerID string) ([]*model.Venue, error)
	Search(ctx context.Context, city string, sport string, limit int, offset int64) ([]*model.Venue, int64, error)
}

type venueService struct {
	repo      repository.VenueRepository
	validator *validator.VenueValidator
	cfg       *config.Config
}

func NewVenueService(
	repo repository.VenueRepository,
	validator *validator.VenueValidator,
	cfg *config.Config,
) VenueService {
	return &venueService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *venueService) Create(ctx context.Context, venue *model.Venue) error {
	s.sanitize(venue)
	s.applyDefaults(venue)

	if err := s.validator.Validate(venue); err != nil {
		s.cfg.Log.Warn("Venue validation failed",
			"name", venue.Name,
			"owner_id", venue.OwnerID,
			"error", err,
		)
		return apperrors.Validation("Venue validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByOwner(sessCtx, venue.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}

		for _, existingVenue := range existing {
			if s.isDuplicate(venue, existingVenue) {
				return apperrors.Conflict(fmt.Sprintf(
					"Venue with the same name and address already exists (id: %s)",
					existingVenue.ID,
				))
			}
		}

		if err := s.repo.Create(sessCtx, venue); err != nil {
			return fmt.Errorf("failed to create venue: %w", err)
		}

		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to create venue",
			"name", venue.Name,
			"owner_id", venue.OwnerID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Venue created successfully",
		"id", venue.ID,
		"name", venue.Name,
		"owner_id", venue.OwnerID,
		"sport", venue.Sport,
		"city", venue.City,
	)

	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Venue ID cannot be empty")
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Venue", id)
		}
		if errors.Is(err, venueserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid venue ID format")
		}
		s.cfg.Log.Error("Failed to get venue by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve venue", err)
	}

	return venue, nil
}

func (s *venueService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, int64, error) {
	var count int64
	var venues []*model.Venue
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count venues", "error", err)
			errCount = apperrors.Internal("Failed to count venues", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		venues, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list venues",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve venues", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return venues, count, nil
}

func (s *venueService) Update(ctx context.Context, id string, updates *model.VenueUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Venue ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Venue", id)
		}
		if errors.Is(err, venueserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid venue ID format")
		}
		return apperrors.Internal("Failed to check venue existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeVenueUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Venue validation failed",
			"id", id,
			"name", merged.Name,
			"error", err,
		)
		return apperrors.Validation("Venue validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update venue",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update venue", err)
	}
	s.cfg.Log.Info("Venue updated successfully",
		"id", id,
		"name", merged.Name,
	)

	return nil
}

func (s *venueService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Venue ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, venueserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Venue", id)
		}
		if errors.Is(err, venueserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid venue ID format")
		}
		s.cfg.Log.Error("Failed to delete venue",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete venue", err)
	}

	s.cfg.Log.Info("Venue deleted successfully", "id", id)

	return nil
}

// GetByOwner resolves the venues an owner runs. An owner without venues gets
// an empty slice, not an error.
func (s *venueService) GetByOwner(ctx context.Context, ownerID string) ([]*model.Venue, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	venues, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to get venues by owner",
			"owner_id", ownerID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve venues by owner", err)
	}

	return venues, nil
}

func (s *venueService) Search(ctx context.Context, city string, sport string, limit int, offset int64) ([]*model.Venue, int64, error) {
	if city == "" && sport == "" {
		return nil, 0, apperrors.InvalidInput("At least one search criterion (city or sport) must be provided")
	}

	city = sanitizer.SanitizeCityOrSport(city)
	sport = sanitizer.SanitizeCityOrSport(sport)

	var count int64
	var venues []*model.Venue
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByCityAndSport(ctx, city, sport)
		if err != nil {
			s.cfg.Log.Error("Failed to count venues by search",
				"city", city,
				"sport", sport,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count venues", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		venues, err = s.repo.FindByCityAndSport(ctx, city, sport, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search venues",
				"city", city,
				"sport", sport,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search venues", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Venue search completed",
		"city", city,
		"sport", sport,
		"results_count", len(venues),
	)

	return venues, count, nil
}

func (s *venueService) sanitize(venue *model.Venue) {
	venue.Name = sanitizer.SanitizeNameOrAddress(venue.Name)
	venue.Address = sanitizer.SanitizeNameOrAddress(venue.Address)
	venue.City = sanitizer.SanitizeCityOrSport(venue.City)
	venue.Sport = sanitizer.SanitizeCityOrSport(venue.Sport)
	venue.PricePerHour = sanitizer.ClampAmount(venue.PricePerHour)
}

func (s *venueService) sanitizeUpdate(updates *model.VenueUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.SanitizeNameOrAddress(updates.Name)
	}
	if updates.Address != "" {
		updates.Address = sanitizer.SanitizeNameOrAddress(updates.Address)
	}
	if updates.City != "" {
		updates.City = sanitizer.SanitizeCityOrSport(updates.City)
	}
	if updates.Sport != "" {
		updates.Sport = sanitizer.SanitizeCityOrSport(updates.Sport)
	}
	if updates.PricePerHour != nil {
		clamped := sanitizer.ClampAmount(*updates.PricePerHour)
		updates.PricePerHour = &clamped
	}
}

func (s *venueService) applyDefaults(venue *model.Venue) {
	if venue.TimeZone == "" {
		venue.TimeZone = s.cfg.ReportTimeZone
	}
}

func (s *venueService) mergeVenueUpdates(existing *model.Venue, updates *model.VenueUpdate) *model.Venue {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Sport != "" {
		merged.Sport = updates.Sport
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Address != "" {
		merged.Address = updates.Address
	}
	if updates.PricePerHour != nil {
		merged.PricePerHour = *updates.PricePerHour
	}
	if updates.OpenTime != "" {
		merged.OpenTime = updates.OpenTime
	}
	if updates.CloseTime != "" {
		merged.CloseTime = updates.CloseTime
	}
	if updates.TimeZone != nil {
		merged.TimeZone = *updates.TimeZone
	}

	merged.ID = existing.ID
	merged.OwnerID = existing.OwnerID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}

func (s *venueService) isDuplicate(newVenue, existingVenue *model.Venue) bool {
	return newVenue.Name == existingVenue.Name &&
		newVenue.Address == existingVenue.Address &&
		newVenue.City == existingVenue.City
}
