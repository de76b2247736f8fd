package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"turfly/pkg/logger"
	"turfly/pkg/model"

	"github.com/go-playground/validator/v10"
)

var clockTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type VenueValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewVenueValidator(log *logger.Logger) *VenueValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", ValidateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}

	log.Info("Venue validator initialized successfully")

	return &VenueValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateClockTime accepts 24-hour HH:MM strings.
func ValidateClockTime(fl validator.FieldLevel) bool {
	return clockTimeRegex.MatchString(fl.Field().String())
}

func (v *VenueValidator) Validate(venue *model.Venue) error {
	if err := v.validate.Struct(venue); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.validateOpeningHours(venue)
}

func (v *VenueValidator) ValidateUpdate(update *model.VenueUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.OpenTime != "" && update.CloseTime != "" {
		if !clockBefore(update.OpenTime, update.CloseTime) {
			return ValidationErrors{
				ValidationError{
					Field:   "CloseTime",
					Message: "close_time must be after open_time",
				},
			}
		}
	}

	return nil
}

func (v *VenueValidator) validateOpeningHours(venue *model.Venue) error {
	if !clockBefore(venue.OpenTime, venue.CloseTime) {
		return ValidationErrors{
			ValidationError{
				Field:   "CloseTime",
				Message: "close_time must be after open_time",
			},
		}
	}

	return nil
}

// clockBefore compares two HH:MM strings lexicographically, which is correct
// for zero-padded 24-hour times.
func clockBefore(a, b string) bool {
	return a < b
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "clock_time":
			message = fmt.Sprintf("%s must be a 24-hour HH:MM time", err.Field())
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA time zone", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
