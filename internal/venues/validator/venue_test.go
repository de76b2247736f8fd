package validator

import (
	"strings"
	"testing"

	"turfly/pkg/logger"
	"turfly/pkg/model"
)

func testValidator() *VenueValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewVenueValidator(log)
}

func validVenue() *model.Venue {
	return &model.Venue{
		OwnerID:      "507f1f77bcf86cd799439011",
		Name:         "greenfield_arena",
		Sport:        "football",
		City:         "mumbai",
		Address:      "plot_12_sector_9",
		PricePerHour: 1500,
		OpenTime:     "06:00",
		CloseTime:    "23:00",
		TimeZone:     "Asia/Kolkata",
	}
}

func TestValidate_ValidVenue(t *testing.T) {
	if err := testValidator().Validate(validVenue()); err != nil {
		t.Errorf("expected valid venue, got %v", err)
	}
}

func TestValidate_ClockTimes(t *testing.T) {
	tests := []struct {
		name    string
		open    string
		close   string
		wantErr bool
	}{
		{name: "zero padded", open: "06:00", close: "22:00", wantErr: false},
		{name: "late close", open: "09:30", close: "23:59", wantErr: false},
		{name: "missing padding", open: "6:00", close: "22:00", wantErr: true},
		{name: "hour out of range", open: "24:00", close: "23:00", wantErr: true},
		{name: "minute out of range", open: "06:60", close: "22:00", wantErr: true},
		{name: "not a time", open: "morning", close: "22:00", wantErr: true},
		{name: "close before open", open: "22:00", close: "06:00", wantErr: true},
		{name: "close equals open", open: "10:00", close: "10:00", wantErr: true},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venue := validVenue()
			venue.OpenTime = tt.open
			venue.CloseTime = tt.close

			err := v.Validate(venue)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for open=%s close=%s", tt.open, tt.close)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for open=%s close=%s: %v", tt.open, tt.close, err)
			}
		})
	}
}

func TestValidate_UnknownSport(t *testing.T) {
	venue := validVenue()
	venue.Sport = "quidditch"

	err := testValidator().Validate(venue)
	if err == nil {
		t.Fatal("expected error for unsupported sport")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("expected translated oneof message, got %v", err)
	}
}

func TestValidate_BadTimeZone(t *testing.T) {
	venue := validVenue()
	venue.TimeZone = "Not/AZone"

	if err := testValidator().Validate(venue); err == nil {
		t.Error("expected error for unknown time zone")
	}
}

func TestValidateUpdate_PartialFields(t *testing.T) {
	v := testValidator()

	if err := v.ValidateUpdate(&model.VenueUpdate{City: "pune"}); err != nil {
		t.Errorf("single-field update must validate, got %v", err)
	}

	err := v.ValidateUpdate(&model.VenueUpdate{OpenTime: "22:00", CloseTime: "06:00"})
	if err == nil {
		t.Error("expected error when update inverts opening hours")
	}
}
