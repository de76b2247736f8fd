package validator

import (
	"testing"
	"time"

	"turfly/pkg/logger"
	"turfly/pkg/model"
)

func testValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		VenueID:       "507f1f77bcf86cd799439011",
		CustomerID:    "507f1f77bcf86cd799439022",
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "18:00",
		DurationMin:   60,
		Amount:        1200,
		PaymentMethod: "upi",
		Status:        "pending",
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	if err := testValidator().Validate(validBooking()); err != nil {
		t.Errorf("expected valid booking, got %v", err)
	}
}

func TestValidate_TimeSlot(t *testing.T) {
	tests := []struct {
		name    string
		slot    string
		wantErr bool
	}{
		{name: "evening", slot: "18:00", wantErr: false},
		{name: "midnight", slot: "00:00", wantErr: false},
		{name: "no padding", slot: "8:00", wantErr: true},
		{name: "out of range", slot: "24:30", wantErr: true},
		{name: "free text", slot: "evening", wantErr: true},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			booking.TimeSlot = tt.slot

			err := v.Validate(booking)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for slot %q", tt.slot)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for slot %q: %v", tt.slot, err)
			}
		})
	}
}

func TestValidate_CancelledNoShowIsContradictory(t *testing.T) {
	booking := validBooking()
	booking.Status = "cancelled"
	booking.NoShow = true

	if err := testValidator().Validate(booking); err == nil {
		t.Error("a cancelled booking cannot also be a no-show")
	}
}

func TestValidate_PaymentMethod(t *testing.T) {
	booking := validBooking()
	booking.PaymentMethod = "cheque"

	if err := testValidator().Validate(booking); err == nil {
		t.Error("expected error for unsupported payment method")
	}
}

func TestValidateUpdate_DurationBounds(t *testing.T) {
	v := testValidator()

	short := 10
	if err := v.ValidateUpdate(&model.BookingUpdate{DurationMin: &short}); err == nil {
		t.Error("expected error for a 10 minute booking")
	}

	ok := 90
	if err := v.ValidateUpdate(&model.BookingUpdate{DurationMin: &ok}); err != nil {
		t.Errorf("unexpected error for 90 minutes: %v", err)
	}
}
