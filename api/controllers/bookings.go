package controllers

import (
	"net/http"

	"github.com/fieldline/fieldline-backend/api/middleware"
	"github.com/fieldline/fieldline-backend/api/responses"
	"github.com/fieldline/fieldline-backend/api/validators"
	"github.com/fieldline/fieldline-backend/internal/bookings"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

// ListBookings returns the role-scoped booking queue. Admins may narrow to a
// region with ?region_id=.
func ListBookings(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regionID, err := validators.ParseQueryInt64(r, "region_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.List(r.Context(), bookings.ListInput{
			RegionID:  regionID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// ListAgentBookings returns one agent's bookings. Agents may only read their
// own queue.
func ListAgentBookings(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := validators.ParseIDParam(r, "agentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.ListForAgent(r.Context(), bookings.ListForAgentInput{
			AgentID:   agentID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// GetBooking returns a single booking.
func GetBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := validators.ParseIDParam(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), bookings.GetInput{
			BookingID: bookingID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type createBookingRequest struct {
	Location bookings.LocationInput `json:"location" validate:"required"`
	Customer bookings.CustomerInput `json:"customer" validate:"required"`
	Booking  bookings.BookingInput  `json:"booking" validate:"required"`
}

// CreateBooking creates a booking from the console.
func CreateBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), bookings.CreateInput{
			Location:  payload.Location,
			Customer:  payload.Customer,
			Booking:   payload.Booking,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

type callCenterBookingRequest struct {
	Location        bookings.LocationInput        `json:"location" validate:"required"`
	Customer        bookings.CustomerInput        `json:"customer" validate:"required"`
	Booking         bookings.BookingInput         `json:"booking" validate:"required"`
	CallCenterAgent bookings.CallCenterAgentInput `json:"call_center_agent" validate:"required"`
}

type callCenterBookingResponse struct {
	Booking *bookings.BookingView `json:"booking"`
	Warning string                `json:"warning,omitempty"`
}

// CreateCallCenterBooking is the API-key authenticated intake path. Bookings
// land unassigned; region choice is mandatory.
func CreateCallCenterBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload callCenterBookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateCallCenter(r.Context(), bookings.CallCenterCreateInput{
			Location:        payload.Location,
			Customer:        payload.Customer,
			Booking:         payload.Booking,
			CallCenterAgent: payload.CallCenterAgent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, callCenterBookingResponse{
			Booking: result.Booking,
			Warning: result.Warning,
		})
	}
}

type updateBookingRequest struct {
	BookingDate  *string `json:"booking_date"`
	BookingTime  *string `json:"booking_time"`
	Status       *string `json:"status"`
	RegionID     *int64  `json:"region_id"`
	AgentID      *int64  `json:"agentId"`
	AssignToSelf *bool   `json:"assign_to_self"`
	Unassign     *bool   `json:"unassign"`
}

func (p updateBookingRequest) hasScheduleChange() bool {
	return p.BookingDate != nil || p.BookingTime != nil || p.Status != nil || p.RegionID != nil
}

func (p updateBookingRequest) assignmentTarget() (bookings.AssignmentTarget, bool) {
	switch {
	case p.AssignToSelf != nil && *p.AssignToSelf:
		return bookings.TargetSelf, true
	case p.Unassign != nil && *p.Unassign:
		return bookings.TargetUnassigned, true
	case p.AgentID != nil:
		return bookings.TargetAgent, true
	}
	return "", false
}

// UpdateBooking is the PUT surface the console uses for both reschedules and
// assignment changes. Scheduling fields apply first, then the assignment, so
// a combined payload behaves like the two calls in sequence: a failed
// assignment does not roll back an applied schedule change, the error only
// reports the assignment step.
func UpdateBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := validators.ParseIDParam(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, hasAssignment := payload.assignmentTarget()
		if !payload.hasScheduleChange() && !hasAssignment {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided"))
			return
		}

		actorID := middleware.UserIDFromContext(r.Context())
		actorRole := middleware.RoleFromContext(r.Context())

		var view *bookings.BookingView
		if payload.hasScheduleChange() {
			var status *enums.BookingStatus
			if payload.Status != nil {
				parsed, err := enums.ParseBookingStatus(*payload.Status)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking status").
						WithDetails(map[string]any{"status": *payload.Status}))
					return
				}
				status = &parsed
			}

			view, err = svc.Update(r.Context(), bookings.UpdateInput{
				BookingID:   bookingID,
				BookingDate: payload.BookingDate,
				BookingTime: payload.BookingTime,
				Status:      status,
				RegionID:    payload.RegionID,
				RegionSet:   payload.RegionID != nil,
				ActorID:     actorID,
				ActorRole:   actorRole,
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if hasAssignment {
			view, err = svc.Assign(r.Context(), bookings.AssignInput{
				BookingID: bookingID,
				Target:    target,
				AgentID:   payload.AgentID,
				ActorID:   actorID,
				ActorRole: actorRole,
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, view)
	}
}

// DeleteBooking removes a booking.
func DeleteBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := validators.ParseIDParam(r, "bookingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Delete(r.Context(), bookings.DeleteInput{
			BookingID: bookingID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}
