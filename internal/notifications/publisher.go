package notifications

import (
	"context"
	"strconv"

	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/kafka"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

// Publisher emits booking events for asynchronous delivery.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

type messageWriter interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	writer messageWriter
	logg   *logger.Logger
}

// NewKafkaPublisher wraps a kafka producer as a booking event publisher.
func NewKafkaPublisher(writer messageWriter, logg *logger.Logger) (Publisher, error) {
	if writer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "kafka writer required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &kafkaPublisher{writer: writer, logg: logg}, nil
}

func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	payload, err := EncodeBookingEvent(event)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encode booking event")
	}

	msg := kafka.Message{
		Key:   strconv.FormatInt(event.BookingID, 10),
		Value: payload,
		Headers: map[string]string{
			"event_type": event.Type.String(),
		},
	}
	if err := p.writer.Publish(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish booking event")
	}

	p.logg.Info(p.logg.WithFields(ctx, map[string]any{
		"event_type": event.Type.String(),
		"booking_id": event.BookingID,
	}), "booking event published")
	return nil
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	return nil
}
