package controllers

import (
	"net/http"

	"github.com/fieldline/fieldline-backend/api/middleware"
	"github.com/fieldline/fieldline-backend/api/responses"
	"github.com/fieldline/fieldline-backend/api/validators"
	"github.com/fieldline/fieldline-backend/internal/timesheets"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

// SubmitTimesheet accepts an agent's weekly availability.
func SubmitTimesheet(svc timesheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload timesheets.SubmitInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ActorID = middleware.UserIDFromContext(r.Context())
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// CurrentTimesheet returns the target-week timesheet, or null when none
// has been submitted yet.
func CurrentTimesheet(svc timesheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID, err := validators.ParseQueryInt64(r, "agent_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Current(r.Context(), timesheets.CurrentInput{
			AgentID:   agentID,
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

// ListPendingTimesheets returns timesheets awaiting review, scoped to the
// dispatcher's team.
func ListPendingTimesheets(svc timesheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListPending(r.Context(), timesheets.ListPendingInput{
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

// ReviewTimesheet approves or rejects a pending timesheet.
func ReviewTimesheet(svc timesheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timesheetID, err := validators.ParseIDParam(r, "timesheetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload timesheets.ReviewInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.TimesheetID = timesheetID
		payload.ActorID = middleware.UserIDFromContext(r.Context())
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.Review(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// RequestTimeOff files an agent time-off request.
func RequestTimeOff(svc timesheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload timesheets.TimeOffInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ActorID = middleware.UserIDFromContext(r.Context())
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.RequestTimeOff(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// ListTimeOff returns time-off requests scoped by role.
func ListTimeOff(svc timesheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListTimeOff(r.Context(), timesheets.ListTimeOffInput{
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

// ReviewTimeOff approves or rejects a pending time-off request.
func ReviewTimeOff(svc timesheets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := validators.ParseIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload timesheets.ReviewTimeOffInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.RequestID = requestID
		payload.ActorID = middleware.UserIDFromContext(r.Context())
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.ReviewTimeOff(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
