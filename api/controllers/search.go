package controllers

import (
	"net/http"

	"github.com/fieldline/fieldline-backend/api/responses"
	"github.com/fieldline/fieldline-backend/api/validators"
	"github.com/fieldline/fieldline-backend/internal/search"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

// SearchAgents runs the availability search. The response is a bare array,
// not the usual envelope; the console's sync layer normalizes both shapes.
func SearchAgents(svc search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latitude, err := validators.ParseQueryFloat(r, "latitude")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		longitude, err := validators.ParseQueryFloat(r, "longitude")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bookingDate, err := validators.RequireQuery(r, "booking_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bookingTime, err := validators.RequireQuery(r, "booking_time")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		candidates, err := svc.Search(r.Context(), search.Query{
			Latitude:    latitude,
			Longitude:   longitude,
			BookingDate: bookingDate,
			BookingTime: bookingTime,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteBare(w, http.StatusOK, candidates)
	}
}
