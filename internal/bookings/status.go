package bookings

import (
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// statusSuccessor maps each lifecycle status to its single legal next status.
// Completed has no successor.
var statusSuccessor = map[enums.BookingStatus]enums.BookingStatus{
	enums.BookingStatusScheduled: enums.BookingStatusEnroute,
	enums.BookingStatusEnroute:   enums.BookingStatusOnSite,
	enums.BookingStatusOnSite:    enums.BookingStatusCompleted,
}

// NextStatus returns the only status the booking may advance to, and false
// when the current status is terminal.
func NextStatus(current enums.BookingStatus) (enums.BookingStatus, bool) {
	next, ok := statusSuccessor[current]
	return next, ok
}

// CanTransition reports whether from may advance directly to to.
func CanTransition(from, to enums.BookingStatus) bool {
	next, ok := statusSuccessor[from]
	return ok && next == to
}

// ValidateTransition rejects any status change that is not the single
// forward step allowed from the current status. No skipping, no backward
// moves, no leaving the terminal status.
func ValidateTransition(from, to enums.BookingStatus) error {
	if !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid booking status").
			WithDetails(map[string]any{"status": to.String()})
	}
	if from == to {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
			WithDetails(map[string]any{"from": from.String(), "to": to.String()})
	}
	if !CanTransition(from, to) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
			WithDetails(map[string]any{"from": from.String(), "to": to.String()})
	}
	return nil
}
