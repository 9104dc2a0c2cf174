package controllers

import (
	"net/http"

	"github.com/fieldline/fieldline-backend/api/middleware"
	"github.com/fieldline/fieldline-backend/api/responses"
	"github.com/fieldline/fieldline-backend/api/validators"
	"github.com/fieldline/fieldline-backend/internal/regions"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

// ListRegions returns every region, name-sorted.
func ListRegions(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// CreateRegion adds a region (admin only).
func CreateRegion(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload regions.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// UpdateRegion renames a region (admin only).
func UpdateRegion(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regionID, err := validators.ParseIDParam(r, "regionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload regions.UpdateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.RegionID = regionID
		payload.ActorRole = middleware.RoleFromContext(r.Context())

		view, err := svc.Update(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteRegion removes an unreferenced region (admin only).
func DeleteRegion(svc regions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regionID, err := validators.ParseIDParam(r, "regionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Delete(r.Context(), regions.DeleteInput{
			RegionID:  regionID,
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}
