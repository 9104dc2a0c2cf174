package enums

import "fmt"

// BookingEventType labels the booking lifecycle events published to the
// notification topic.
type BookingEventType string

const (
	BookingEventCreated  BookingEventType = "booking_created"
	BookingEventUpdated  BookingEventType = "booking_updated"
	BookingEventAssigned BookingEventType = "booking_assigned"
	BookingEventDeleted  BookingEventType = "booking_deleted"
)

var validBookingEventTypes = []BookingEventType{
	BookingEventCreated,
	BookingEventUpdated,
	BookingEventAssigned,
	BookingEventDeleted,
}

// String implements fmt.Stringer.
func (b BookingEventType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingEventType.
func (b BookingEventType) IsValid() bool {
	for _, candidate := range validBookingEventTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBookingEventType converts raw input into a BookingEventType.
func ParseBookingEventType(value string) (BookingEventType, error) {
	for _, candidate := range validBookingEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking event type %q", value)
}
