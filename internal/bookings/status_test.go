package bookings

import (
	"testing"

	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		current enums.BookingStatus
		next    enums.BookingStatus
		ok      bool
	}{
		{enums.BookingStatusScheduled, enums.BookingStatusEnroute, true},
		{enums.BookingStatusEnroute, enums.BookingStatusOnSite, true},
		{enums.BookingStatusOnSite, enums.BookingStatusCompleted, true},
		{enums.BookingStatusCompleted, "", false},
	}
	for _, tc := range cases {
		next, ok := NextStatus(tc.current)
		if ok != tc.ok || next != tc.next {
			t.Errorf("NextStatus(%s) = (%s, %v), want (%s, %v)", tc.current, next, ok, tc.next, tc.ok)
		}
	}
}

func TestValidateTransition_AllowsOnlySingleForwardStep(t *testing.T) {
	statuses := []enums.BookingStatus{
		enums.BookingStatusScheduled,
		enums.BookingStatusEnroute,
		enums.BookingStatusOnSite,
		enums.BookingStatusCompleted,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			err := ValidateTransition(from, to)
			legal := CanTransition(from, to)
			if legal && err != nil {
				t.Errorf("ValidateTransition(%s, %s) = %v, want nil", from, to, err)
			}
			if !legal {
				appErr := pkgerrors.As(err)
				if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
					t.Errorf("ValidateTransition(%s, %s) = %v, want state conflict", from, to, err)
				}
			}
		}
	}
}

func TestValidateTransition_RejectsUnknownStatus(t *testing.T) {
	err := ValidateTransition(enums.BookingStatusScheduled, enums.BookingStatus("in-progress"))
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestValidateTransition_TerminalHasNoExit(t *testing.T) {
	for _, to := range []enums.BookingStatus{
		enums.BookingStatusScheduled,
		enums.BookingStatusEnroute,
		enums.BookingStatusOnSite,
	} {
		err := ValidateTransition(enums.BookingStatusCompleted, to)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
			t.Errorf("expected state conflict leaving completed for %s, got %v", to, err)
		}
	}
}
