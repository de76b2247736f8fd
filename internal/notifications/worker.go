package notifications

import (
	"context"
	"fmt"

	"turfly/pkg/kafka"
	"turfly/pkg/logger"
)

// ConsumerGroupID identifies the notification worker's offset group.
const ConsumerGroupID = "turfly-notify"

// Worker turns booking lifecycle events into customer notifications. It
// is wired to a kafka consumer via Handle.
type Worker struct {
	notifier Notifier
	log      *logger.Logger
}

func NewWorker(notifier Notifier, log *logger.Logger) *Worker {
	return &Worker{
		notifier: notifier,
		log:      log,
	}
}

// Handle processes one booking event message. Unknown event types and
// events without a reachable customer are acknowledged without action;
// only notifier failures propagate, so delivery problems hit the retry
// and DLQ path while junk messages do not.
func (w *Worker) Handle(ctx context.Context, msg kafka.Message) error {
	var event kafka.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		w.log.Warn("Dropping undecodable booking event",
			"event_id", msg.GetEventID(),
			"topic", msg.Topic,
			"error", err,
		)
		return nil
	}

	if event.CustomerPhone == "" {
		w.log.Debug("Skipping event without customer phone",
			"event_id", msg.GetEventID(),
			"booking_id", event.BookingID,
		)
		return nil
	}

	notification, ok := w.compose(msg.GetEventType(), event)
	if !ok {
		w.log.Debug("Skipping unhandled event type",
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
		)
		return nil
	}
	notification.EventID = msg.GetEventID()

	if err := w.notifier.Send(ctx, notification); err != nil {
		return fmt.Errorf("failed to send notification for booking [%s]: %w", event.BookingID, err)
	}

	return nil
}

func (w *Worker) compose(eventType string, event kafka.BookingEvent) (Notification, bool) {
	venue := event.VenueName
	if venue == "" {
		venue = "the venue"
	}
	slot := fmt.Sprintf("%s at %s", event.Date.Format("Mon, 02 Jan 2006"), event.TimeSlot)

	n := Notification{Recipient: event.CustomerPhone}

	switch eventType {
	case kafka.EventBookingCreated:
		n.Subject = "Booking received"
		n.Body = fmt.Sprintf("Your booking at %s for %s is awaiting confirmation.", venue, slot)
	case kafka.EventBookingConfirmed:
		n.Subject = "Booking confirmed"
		n.Body = fmt.Sprintf("Your booking at %s for %s is confirmed. Amount due: %d.", venue, slot, event.Amount)
	case kafka.EventBookingCompleted:
		n.Subject = "Thanks for playing"
		n.Body = fmt.Sprintf("Hope you enjoyed your game at %s. See you again soon.", venue)
	case kafka.EventBookingCancelled:
		n.Subject = "Booking cancelled"
		n.Body = fmt.Sprintf("Your booking at %s for %s has been cancelled.", venue, slot)
	default:
		return Notification{}, false
	}

	return n, true
}
