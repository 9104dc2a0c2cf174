package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// BookingEvent is the payload published to the booking events topic whenever
// a booking is created, updated, assigned, or deleted.
type BookingEvent struct {
	Type          enums.BookingEventType `json:"type"`
	BookingID     int64                  `json:"bookingId"`
	CustomerName  string                 `json:"customer_name"`
	CustomerEmail *string                `json:"customer_email,omitempty"`
	CustomerPhone *string                `json:"customer_phone,omitempty"`
	AgentName     *string                `json:"agent_name,omitempty"`
	AgentEmail    *string                `json:"agent_email,omitempty"`
	AgentPhone    *string                `json:"agent_phone,omitempty"`
	BookingDate   string                 `json:"booking_date"`
	BookingTime   string                 `json:"booking_time"`
	Status        enums.BookingStatus    `json:"status"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

// EncodeBookingEvent serializes an event for the wire.
func EncodeBookingEvent(event BookingEvent) ([]byte, error) {
	if !event.Type.IsValid() {
		return nil, fmt.Errorf("invalid booking event type %q", event.Type)
	}
	if event.BookingID <= 0 {
		return nil, fmt.Errorf("booking id required")
	}
	return json.Marshal(event)
}

// DecodeBookingEvent parses a wire payload back into an event.
func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decoding booking event: %w", err)
	}
	if !event.Type.IsValid() {
		return BookingEvent{}, fmt.Errorf("invalid booking event type %q", event.Type)
	}
	return event, nil
}
