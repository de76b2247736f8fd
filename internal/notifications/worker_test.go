package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"turfly/pkg/kafka"
	"turfly/pkg/logger"
)

type mockNotifier struct {
	sendFunc func(ctx context.Context, n Notification) error
	sent     []Notification
}

func (m *mockNotifier) Send(ctx context.Context, n Notification) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, n)
	}
	m.sent = append(m.sent, n)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func eventMessage(t *testing.T, eventType string, event kafka.BookingEvent) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return kafka.Message{
		Key:   event.BookingID,
		Value: payload,
		Headers: map[string]string{
			kafka.HeaderEventID:   "evt-1",
			kafka.HeaderEventType: eventType,
		},
	}
}

func sampleEvent() kafka.BookingEvent {
	return kafka.BookingEvent{
		BookingID:     "b1",
		VenueID:       "v1",
		VenueName:     "Greenfield Arena",
		CustomerPhone: "+919876543210",
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "18:00",
		Amount:        1200,
		Status:        "confirmed",
	}
}

func TestHandle_ConfirmedEvent(t *testing.T) {
	notifier := &mockNotifier{}
	worker := NewWorker(notifier, testLogger())

	msg := eventMessage(t, kafka.EventBookingConfirmed, sampleEvent())
	if err := worker.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.Recipient != "+919876543210" {
		t.Errorf("expected customer phone recipient, got %q", n.Recipient)
	}
	if n.Subject != "Booking confirmed" {
		t.Errorf("unexpected subject: %q", n.Subject)
	}
	if !strings.Contains(n.Body, "Greenfield Arena") || !strings.Contains(n.Body, "18:00") {
		t.Errorf("body must name venue and slot, got %q", n.Body)
	}
	if n.EventID != "evt-1" {
		t.Errorf("expected event id carried through, got %q", n.EventID)
	}
}

func TestHandle_EventTypeContent(t *testing.T) {
	tests := []struct {
		eventType string
		subject   string
	}{
		{kafka.EventBookingCreated, "Booking received"},
		{kafka.EventBookingConfirmed, "Booking confirmed"},
		{kafka.EventBookingCompleted, "Thanks for playing"},
		{kafka.EventBookingCancelled, "Booking cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			notifier := &mockNotifier{}
			worker := NewWorker(notifier, testLogger())

			msg := eventMessage(t, tt.eventType, sampleEvent())
			if err := worker.Handle(context.Background(), msg); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(notifier.sent) != 1 || notifier.sent[0].Subject != tt.subject {
				t.Errorf("expected subject %q, got %+v", tt.subject, notifier.sent)
			}
		})
	}
}

func TestHandle_SkipsUnknownEventType(t *testing.T) {
	notifier := &mockNotifier{}
	worker := NewWorker(notifier, testLogger())

	msg := eventMessage(t, "booking.migrated", sampleEvent())
	if err := worker.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown event types must be acknowledged, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Error("no notification may be sent for unknown event types")
	}
}

func TestHandle_SkipsEventWithoutPhone(t *testing.T) {
	notifier := &mockNotifier{}
	worker := NewWorker(notifier, testLogger())

	event := sampleEvent()
	event.CustomerPhone = ""
	msg := eventMessage(t, kafka.EventBookingCreated, event)

	if err := worker.Handle(context.Background(), msg); err != nil {
		t.Fatalf("guest bookings must be acknowledged, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Error("no notification may be sent without a recipient")
	}
}

func TestHandle_UndecodablePayloadIsDropped(t *testing.T) {
	notifier := &mockNotifier{}
	worker := NewWorker(notifier, testLogger())

	msg := kafka.Message{
		Key:     "b1",
		Value:   []byte("not json"),
		Headers: map[string]string{kafka.HeaderEventType: kafka.EventBookingCreated},
	}

	if err := worker.Handle(context.Background(), msg); err != nil {
		t.Fatalf("junk payloads must not enter the retry path, got %v", err)
	}
}

func TestHandle_NotifierFailurePropagates(t *testing.T) {
	notifier := &mockNotifier{
		sendFunc: func(ctx context.Context, n Notification) error {
			return errors.New("gateway unreachable")
		},
	}
	worker := NewWorker(notifier, testLogger())

	msg := eventMessage(t, kafka.EventBookingCreated, sampleEvent())
	if err := worker.Handle(context.Background(), msg); err == nil {
		t.Fatal("delivery failures must propagate for retry handling")
	}
}
