package kafka

import "time"

// Topics shared by producers and consumers.
const (
	TopicBookingEvents    = "turfly.booking.events"
	TopicBookingEventsDLQ = "turfly.booking.events.dlq"
)

// Event types carried in the event-type header.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
)

// SchemaVersionV1 is the current booking event payload version.
const SchemaVersionV1 = "v1"

// BookingEvent is the payload published on every booking lifecycle change.
// Consumers key notifications off EventType and the customer phone.
type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	VenueID       string    `json:"venue_id"`
	VenueName     string    `json:"venue_name,omitempty"`
	CustomerID    string    `json:"customer_id,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Date          time.Time `json:"date"`
	TimeSlot      string    `json:"time_slot"`
	DurationMin   int       `json:"duration_min"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
