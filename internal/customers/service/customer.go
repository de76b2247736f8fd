package service

import (
	"context"
	"errors"
	"sync"

	customerserrors "turfly/internal/customers/errors"
	"turfly/internal/customers/repository"
	"turfly/internal/customers/validator"
	"turfly/pkg/config"
	apperrors "turfly/pkg/errors"
	"turfly/pkg/model"
	"turfly/pkg/sanitizer"

	"github.com/google/uuid"
)

// CompletedBookingCounter reports how many completed bookings a customer
// has. Backed by the bookings repository.
type CompletedBookingCounter interface {
	CountByCustomerAndStatus(ctx context.Context, customerID string, status string) (int64, error)
}

type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*model.Customer, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error)
	Update(ctx context.Context, id string, updates *model.CustomerUpdate) error
	Delete(ctx context.Context, id string) error

	ReferralSummary(ctx context.Context, customerID string) (*model.ReferralSummary, error)
}

type customerService struct {
	repo           repository.CustomerRepository
	bookingCounter CompletedBookingCounter
	validator      *validator.CustomerValidator
	cfg            *config.Config
}

func NewCustomerService(
	repo repository.CustomerRepository,
	bookingCounter CompletedBookingCounter,
	validator *validator.CustomerValidator,
	cfg *config.Config,
) CustomerService {
	return &customerService{
		repo:           repo,
		bookingCounter: bookingCounter,
		validator:      validator,
		cfg:            cfg,
	}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer) error {
	s.sanitize(customer)
	s.applyDefaults(customer)

	if err := s.validator.Validate(customer); err != nil {
		s.cfg.Log.Warn("Customer validation failed",
			"name", customer.Name,
			"error", err,
		)
		return apperrors.Validation("Customer validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if customer.ReferredBy != "" {
		if _, err := s.repo.FindByID(ctx, customer.ReferredBy); err != nil {
			if errors.Is(err, customerserrors.ErrNotFound) || errors.Is(err, customerserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Referrer does not exist")
			}
			return apperrors.Internal("Failed to verify referrer", err)
		}
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, customerserrors.ErrDuplicatePhone) {
			return apperrors.Conflict("A customer with this phone number already exists")
		}
		s.cfg.Log.Error("Failed to create customer",
			"name", customer.Name,
			"error", err,
		)
		return apperrors.Internal("Failed to create customer", err)
	}

	s.cfg.Log.Info("Customer created successfully",
		"id", customer.ID,
		"name", customer.Name,
		"referred_by", customer.ReferredBy,
	)

	return nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Customer", id)
		}
		if errors.Is(err, customerserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid customer ID format")
		}
		s.cfg.Log.Error("Failed to get customer by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve customer", err)
	}

	return customer, nil
}

func (s *customerService) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	if phone == "" {
		return nil, apperrors.InvalidInput("Phone number cannot be empty")
	}

	phone = sanitizer.SanitizePhone(phone)

	customer, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Customer not found for phone")
		}
		s.cfg.Log.Error("Failed to get customer by phone", "error", err)
		return nil, apperrors.Internal("Failed to retrieve customer by phone", err)
	}

	return customer, nil
}

func (s *customerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error) {
	var count int64
	var customers []*model.Customer
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count customers", "error", err)
			errCount = apperrors.Internal("Failed to count customers", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		customers, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list customers",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve customers", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return customers, count, nil
}

func (s *customerService) Update(ctx context.Context, id string, updates *model.CustomerUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Customer ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Customer", id)
		}
		if errors.Is(err, customerserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid customer ID format")
		}
		return apperrors.Internal("Failed to check customer existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Customer update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = sanitizer.SanitizeNameOrAddress(updates.Name)
	}
	if updates.Phone != "" {
		merged.Phone = sanitizer.SanitizePhone(updates.Phone)
	}

	if _, err := s.repo.Update(ctx, id, &merged); err != nil {
		s.cfg.Log.Error("Failed to update customer", "id", id, "error", err)
		return apperrors.Internal("Failed to update customer", err)
	}

	s.cfg.Log.Info("Customer updated successfully", "id", id)
	return nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Customer ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Customer", id)
		}
		if errors.Is(err, customerserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid customer ID format")
		}
		s.cfg.Log.Error("Failed to delete customer", "id", id, "error", err)
		return apperrors.Internal("Failed to delete customer", err)
	}

	s.cfg.Log.Info("Customer deleted successfully", "id", id)
	return nil
}

// ReferralSummary computes reward state for a customer. A referral counts as
// qualified once the referred customer completes at least one booking.
func (s *customerService) ReferralSummary(ctx context.Context, customerID string) (*model.ReferralSummary, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	if _, err := s.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	referred, err := s.repo.FindByReferrer(ctx, customerID)
	if err != nil {
		s.cfg.Log.Error("Failed to load referred customers",
			"customer_id", customerID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to compute referral summary", err)
	}

	qualified := 0
	for _, c := range referred {
		completed, err := s.bookingCounter.CountByCustomerAndStatus(ctx, c.ID, config.Completed)
		if err != nil {
			s.cfg.Log.Error("Failed to count completed bookings for referral",
				"customer_id", customerID,
				"referred_id", c.ID,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to compute referral summary", err)
		}
		if completed > 0 {
			qualified++
		}
	}

	summary := &model.ReferralSummary{
		CustomerID:         customerID,
		ReferredCount:      len(referred),
		QualifiedReferrals: qualified,
		RewardPoints:       qualified * s.cfg.ReferralRewardPoints,
		Tier:               referralTier(qualified),
	}

	s.cfg.Log.Debug("Referral summary computed",
		"customer_id", customerID,
		"referred", summary.ReferredCount,
		"qualified", summary.QualifiedReferrals,
	)

	return summary, nil
}

func (s *customerService) sanitize(customer *model.Customer) {
	customer.Name = sanitizer.SanitizeNameOrAddress(customer.Name)
	customer.Phone = sanitizer.SanitizePhone(customer.Phone)
}

func (s *customerService) applyDefaults(customer *model.Customer) {
	if customer.ReferralCode == "" {
		customer.ReferralCode = uuid.New().String()
	}
}

func referralTier(qualified int) string {
	switch {
	case qualified >= 10:
		return "gold"
	case qualified >= 3:
		return "silver"
	default:
		return "bronze"
	}
}
