package controllers

import (
	"net/http"
	"strings"

	"github.com/fieldline/fieldline-backend/api/middleware"
	"github.com/fieldline/fieldline-backend/api/responses"
	"github.com/fieldline/fieldline-backend/api/validators"
	"github.com/fieldline/fieldline-backend/internal/dispositions"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// SaveDisposition records the outcome of a completed booking, once.
func SaveDisposition(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dispositions.SaveInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ActorID = middleware.UserIDFromContext(r.Context())
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.Save(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// ListDispositions returns recorded dispositions, optionally for one booking.
func ListDispositions(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, err := validators.ParseQueryInt64(r, "booking_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.List(r.Context(), dispositions.ListInput{
			BookingID: bookingID,
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

// GetDisposition returns one recorded disposition.
func GetDisposition(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dispositionID, err := validators.ParseIDParam(r, "dispositionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), dispositions.GetInput{
			DispositionID: dispositionID,
			ActorID:       middleware.UserIDFromContext(r.Context()),
			ActorRole:     middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteDisposition unlinks and removes a recorded disposition.
func DeleteDisposition(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dispositionID, err := validators.ParseIDParam(r, "dispositionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Delete(r.Context(), dispositions.DeleteInput{
			DispositionID: dispositionID,
			ActorRole:     middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}

// ListDispositionTypes returns the catalog.
func ListDispositionTypes(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.ListTypes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// CreateDispositionType adds a catalog entry (admin only).
func CreateDispositionType(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dispositions.CreateTypeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.CreateType(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// UpdateDispositionType rewrites a catalog entry description (admin only).
func UpdateDispositionType(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dispositions.UpdateTypeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.TypeCode = strings.TrimSpace(chi.URLParam(r, "typeCode"))
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.UpdateType(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteDispositionType removes an unused catalog entry (admin only).
func DeleteDispositionType(svc dispositions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message, err := svc.DeleteType(r.Context(), dispositions.DeleteTypeInput{
			TypeCode:  strings.TrimSpace(chi.URLParam(r, "typeCode")),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}
