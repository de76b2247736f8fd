package validator

import (
	"strings"
	"testing"

	"turfly/pkg/logger"
	"turfly/pkg/model"
)

func testValidator() *CustomerValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewCustomerValidator(log)
}

func TestValidate_ValidCustomer(t *testing.T) {
	customer := &model.Customer{
		Name:         "Ravi Sharma",
		Phone:        "+919876543210",
		ReferralCode: "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
	}

	if err := testValidator().Validate(customer); err != nil {
		t.Errorf("expected valid customer, got %v", err)
	}
}

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "e164 india", phone: "+919876543210", wantErr: false},
		{name: "e164 us", phone: "+14155550123", wantErr: false},
		{name: "missing plus", phone: "919876543210", wantErr: true},
		{name: "with spaces", phone: "+91 98765 43210", wantErr: true},
		{name: "empty", phone: "", wantErr: true},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := &model.Customer{Name: "Ravi Sharma", Phone: tt.phone}

			err := v.Validate(customer)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for phone %q", tt.phone)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for phone %q: %v", tt.phone, err)
			}
		})
	}
}

func TestValidate_SelfReferralRejected(t *testing.T) {
	customer := &model.Customer{
		ID:         "507f1f77bcf86cd799439011",
		Name:       "Ravi Sharma",
		Phone:      "+919876543210",
		ReferredBy: "507f1f77bcf86cd799439011",
	}

	err := testValidator().Validate(customer)
	if err == nil {
		t.Fatal("expected self-referral to be rejected")
	}
	if !strings.Contains(err.Error(), "refer themselves") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidate_BadReferralCode(t *testing.T) {
	customer := &model.Customer{
		Name:         "Ravi Sharma",
		Phone:        "+919876543210",
		ReferralCode: "FRIEND50",
	}

	if err := testValidator().Validate(customer); err == nil {
		t.Error("expected error for non-UUID referral code")
	}
}
