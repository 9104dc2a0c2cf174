package notifications

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/kafka"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

// Sender delivers one notification over its channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes notifications to the log instead of an external provider.
// It stands in wherever SMS/email credentials are not configured.
type LogSender struct {
	Logg *logger.Logger
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	fields := map[string]any{
		"channel":   string(msg.Channel),
		"recipient": msg.Recipient,
	}
	if msg.Subject != "" {
		fields["subject"] = msg.Subject
	}
	s.Logg.Info(s.Logg.WithFields(ctx, fields), "notification dispatched")
	return nil
}

// NewBookingEventHandler returns the consumer-side handler that turns booking
// events into customer and agent notifications.
//
// Malformed payloads are logged and committed so they do not wedge the
// partition; delivery failures are returned for redelivery.
func NewBookingEventHandler(sender Sender, logg *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		event, err := DecodeBookingEvent(msg.Value)
		if err != nil {
			logg.Error(logg.WithField(ctx, "kafka_key", msg.Key), "dropping undecodable booking event", err)
			return nil
		}

		ctx = logg.WithFields(ctx, map[string]any{
			"event_type": event.Type.String(),
			"booking_id": event.BookingID,
		})

		for _, out := range BuildMessages(event) {
			if err := sender.Send(ctx, out); err != nil {
				logg.Error(ctx, "notification delivery failed", err)
				return err
			}
		}

		logg.Info(ctx, "booking event processed")
		return nil
	}
}
