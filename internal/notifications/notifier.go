package notifications

import (
	"context"

	"turfly/pkg/logger"
)

// Notification is one outbound customer message, channel-agnostic.
type Notification struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	EventID   string `json:"event_id"`
}

// Notifier delivers a notification over some channel. Implementations
// decide transport; the worker decides content.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the structured log instead of an
// external channel. It is the default sink until an SMS or push gateway
// is wired in.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, notification Notification) error {
	n.log.Info("Notification dispatched",
		"recipient", notification.Recipient,
		"subject", notification.Subject,
		"body", notification.Body,
		"event_id", notification.EventID,
	)
	return nil
}
