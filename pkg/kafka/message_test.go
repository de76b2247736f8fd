package kafka

import (
	"errors"
	"testing"
	"time"
)

func TestMessageBuilder_Headers(t *testing.T) {
	event := BookingEvent{
		BookingID: "b1",
		VenueID:   "v1",
		TimeSlot:  "18:00",
		Status:    "pending",
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	msg := NewMessage().
		WithKey("b1").
		WithValue(event).
		WithEventType(EventBookingCreated).
		WithSchemaVersion(SchemaVersionV1).
		WithSource("bookings").
		Build()

	if msg.Key != "b1" {
		t.Errorf("expected key b1, got %q", msg.Key)
	}
	if msg.GetEventType() != EventBookingCreated {
		t.Errorf("expected event type %s, got %s", EventBookingCreated, msg.GetEventType())
	}
	if msg.GetEventID() == "" {
		t.Error("builder must assign an event id when none is given")
	}
	if msg.Headers[HeaderSchemaVersion] != SchemaVersionV1 {
		t.Errorf("expected schema version header, got %v", msg.Headers)
	}

	var decoded BookingEvent
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.BookingID != "b1" || decoded.TimeSlot != "18:00" {
		t.Errorf("unexpected decoded event: %+v", decoded)
	}
}

func TestMessage_RetryCount(t *testing.T) {
	msg := NewMessage().WithKey("b1").WithRawValue([]byte("{}")).Build()

	if got := msg.GetRetryCount(); got != 0 {
		t.Errorf("expected zero retries on a fresh message, got %d", got)
	}

	// Counts past nine must survive the header round trip.
	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Errorf("expected 12 retries, got %d", got)
	}
}

func TestShouldRetry(t *testing.T) {
	transient := errors.New("dial tcp: i/o timeout")
	if !ShouldRetry(transient, 0, 3) {
		t.Error("network timeouts are transient and must be retried")
	}
	if ShouldRetry(transient, 3, 3) {
		t.Error("an exhausted retry budget must stop retries")
	}

	permanent := errors.New("deserialization failed")
	if ShouldRetry(permanent, 0, 3) {
		t.Error("permanent failures go to the DLQ, not back into the loop")
	}
}
