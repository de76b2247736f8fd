package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	customerserrors "turfly/internal/customers/errors"
	"turfly/internal/customers/validator"
	"turfly/pkg/config"
	mongotx "turfly/pkg/db/mongo"
	apperrors "turfly/pkg/errors"
	"turfly/pkg/logger"
	"turfly/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testCustomerID = "507f1f77bcf86cd799439011"
	testReferrerID = "507f1f77bcf86cd799439022"
)

type mockCustomerRepository struct {
	createFunc         func(ctx context.Context, customer *model.Customer) error
	findByIDFunc       func(ctx context.Context, id string) (*model.Customer, error)
	findByReferrerFunc func(ctx context.Context, referrerID string) ([]*model.Customer, error)
	created            *model.Customer
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, customer)
	}
	m.created = customer
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Customer{ID: id, Name: "existing", Phone: "+919876543210"}, nil
}

func (m *mockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	return nil, customerserrors.ErrNotFound
}

func (m *mockCustomerRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, id string, customer *model.Customer) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockCustomerRepository) FindByReferrer(ctx context.Context, referrerID string) ([]*model.Customer, error) {
	if m.findByReferrerFunc != nil {
		return m.findByReferrerFunc(ctx, referrerID)
	}
	return nil, nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockCustomerRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	sessCtx := mongo.NewSessionContext(ctx, nil)
	return fn(sessCtx)
}

// mockBookingCounter maps customer id to completed booking count.
type mockBookingCounter struct {
	completed map[string]int64
}

func (m *mockBookingCounter) CountByCustomerAndStatus(ctx context.Context, customerID string, status string) (int64, error) {
	return m.completed[customerID], nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReferralRewardPoints: 100,
	}
}

func newTestService(repo *mockCustomerRepository, counter *mockBookingCounter) CustomerService {
	cfg := newTestConfig()
	if counter == nil {
		counter = &mockBookingCounter{}
	}
	return NewCustomerService(repo, counter, validator.NewCustomerValidator(cfg.Log), cfg)
}

func TestCreate_GeneratesReferralCode(t *testing.T) {
	repo := &mockCustomerRepository{}
	svc := newTestService(repo, nil)

	customer := &model.Customer{Name: "Ravi Sharma", Phone: "+919876543210"}
	if err := svc.Create(context.Background(), customer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected customer to be persisted")
	}
	if len(customer.ReferralCode) != 36 {
		t.Errorf("expected generated referral code, got %q", customer.ReferralCode)
	}
}

func TestCreate_DuplicatePhone(t *testing.T) {
	repo := &mockCustomerRepository{
		createFunc: func(ctx context.Context, customer *model.Customer) error {
			return customerserrors.ErrDuplicatePhone
		},
	}
	svc := newTestService(repo, nil)

	err := svc.Create(context.Background(), &model.Customer{Name: "Ravi Sharma", Phone: "+919876543210"})
	if err == nil {
		t.Fatal("expected conflict for duplicate phone")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestCreate_ReferrerMustExist(t *testing.T) {
	repo := &mockCustomerRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Customer, error) {
			return nil, customerserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, nil)

	err := svc.Create(context.Background(), &model.Customer{
		Name:       "Ravi Sharma",
		Phone:      "+919876543210",
		ReferredBy: testReferrerID,
	})
	if err == nil {
		t.Fatal("expected rejection for unknown referrer")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestReferralSummary_QualifiedCounting(t *testing.T) {
	referred := []*model.Customer{
		{ID: "r1", Name: "a", Phone: "+919000000001"},
		{ID: "r2", Name: "b", Phone: "+919000000002"},
		{ID: "r3", Name: "c", Phone: "+919000000003"},
	}
	repo := &mockCustomerRepository{
		findByReferrerFunc: func(ctx context.Context, referrerID string) ([]*model.Customer, error) {
			return referred, nil
		},
	}
	// Only r1 and r3 ever completed a booking; r2 signed up and vanished.
	counter := &mockBookingCounter{completed: map[string]int64{"r1": 2, "r3": 1}}
	svc := newTestService(repo, counter)

	summary, err := svc.ReferralSummary(context.Background(), testCustomerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ReferredCount != 3 {
		t.Errorf("expected 3 referred, got %d", summary.ReferredCount)
	}
	if summary.QualifiedReferrals != 2 {
		t.Errorf("expected 2 qualified, got %d", summary.QualifiedReferrals)
	}
	if summary.RewardPoints != 200 {
		t.Errorf("expected 200 reward points, got %d", summary.RewardPoints)
	}
	if summary.Tier != "bronze" {
		t.Errorf("expected bronze tier at 2 qualified, got %s", summary.Tier)
	}
}

func TestReferralSummary_NoReferrals(t *testing.T) {
	repo := &mockCustomerRepository{}
	svc := newTestService(repo, nil)

	summary, err := svc.ReferralSummary(context.Background(), testCustomerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ReferredCount != 0 || summary.QualifiedReferrals != 0 || summary.RewardPoints != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
	if summary.Tier != "bronze" {
		t.Errorf("new customers start at bronze, got %s", summary.Tier)
	}
}

func TestReferralTier(t *testing.T) {
	tests := []struct {
		qualified int
		want      string
	}{
		{0, "bronze"},
		{2, "bronze"},
		{3, "silver"},
		{9, "silver"},
		{10, "gold"},
		{25, "gold"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("qualified_%d", tt.qualified), func(t *testing.T) {
			if got := referralTier(tt.qualified); got != tt.want {
				t.Errorf("referralTier(%d) = %s, want %s", tt.qualified, got, tt.want)
			}
		})
	}
}
