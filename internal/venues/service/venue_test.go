package service

import (
	"context"
	"errors"
	"testing"

	"turfly/internal/venues/validator"
	"turfly/pkg/config"
	mongotx "turfly/pkg/db/mongo"
	apperrors "turfly/pkg/errors"
	"turfly/pkg/logger"
	"turfly/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const testOwnerID = "507f1f77bcf86cd799439011"

type mockVenueRepository struct {
	findByOwnerFunc func(ctx context.Context, ownerID string) ([]*model.Venue, error)
	created         *model.Venue
}

func (m *mockVenueRepository) Create(ctx context.Context, venue *model.Venue) error {
	m.created = venue
	return nil
}

func (m *mockVenueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	return nil, nil
}

func (m *mockVenueRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, error) {
	return nil, nil
}

func (m *mockVenueRepository) Update(ctx context.Context, id string, venue *model.Venue) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockVenueRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockVenueRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Venue, error) {
	if m.findByOwnerFunc != nil {
		return m.findByOwnerFunc(ctx, ownerID)
	}
	return []*model.Venue{}, nil
}

func (m *mockVenueRepository) FindByCityAndSport(ctx context.Context, city string, sport string, limit int, offset int64) ([]*model.Venue, error) {
	return nil, nil
}

func (m *mockVenueRepository) CountByCityAndSport(ctx context.Context, city string, sport string) (int64, error) {
	return 0, nil
}

func (m *mockVenueRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockVenueRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	sessCtx := mongo.NewSessionContext(ctx, nil)
	return fn(sessCtx)
}

func newTestService(repo *mockVenueRepository) VenueService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReportTimeZone: "UTC",
	}
	return NewVenueService(repo, validator.NewVenueValidator(cfg.Log), cfg)
}

func validVenue() *model.Venue {
	return &model.Venue{
		OwnerID:      testOwnerID,
		Name:         "Greenfield Arena",
		Sport:        "football",
		City:         "Mumbai",
		Address:      "Plot 12, Sector 9",
		PricePerHour: 1500,
		OpenTime:     "06:00",
		CloseTime:    "23:00",
	}
}

func TestCreate_SanitizesAndDefaults(t *testing.T) {
	repo := &mockVenueRepository{}
	svc := newTestService(repo)

	venue := validVenue()
	if err := svc.Create(context.Background(), venue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if venue.Name != "greenfield_arena" {
		t.Errorf("expected sanitized name, got %q", venue.Name)
	}
	if venue.City != "mumbai" {
		t.Errorf("expected sanitized city, got %q", venue.City)
	}
	if venue.TimeZone != "UTC" {
		t.Errorf("expected defaulted time zone, got %q", venue.TimeZone)
	}
	if repo.created == nil {
		t.Error("expected venue to be persisted")
	}
}

func TestCreate_DuplicateVenueRejected(t *testing.T) {
	repo := &mockVenueRepository{
		findByOwnerFunc: func(ctx context.Context, ownerID string) ([]*model.Venue, error) {
			return []*model.Venue{
				{
					ID:      "507f1f77bcf86cd799439099",
					OwnerID: ownerID,
					Name:    "greenfield_arena",
					Address: "plot_12_sector_9",
					City:    "mumbai",
				},
			}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), validVenue())
	if err == nil {
		t.Fatal("expected conflict for duplicate venue")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
	if repo.created != nil {
		t.Error("duplicate venue must not be persisted")
	}
}

func TestGetByOwner_EmptyIsNotAnError(t *testing.T) {
	svc := newTestService(&mockVenueRepository{})

	venues, err := svc.GetByOwner(context.Background(), testOwnerID)
	if err != nil {
		t.Fatalf("an owner without venues is a valid state, got %v", err)
	}
	if len(venues) != 0 {
		t.Errorf("expected empty slice, got %v", venues)
	}
}

func TestSearch_RequiresCriterion(t *testing.T) {
	svc := newTestService(&mockVenueRepository{})

	_, _, err := svc.Search(context.Background(), "", "", 10, 0)
	if err == nil {
		t.Fatal("expected error when neither city nor sport is given")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}
