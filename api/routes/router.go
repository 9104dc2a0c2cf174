package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fieldline/fieldline-backend/api/controllers"
	"github.com/fieldline/fieldline-backend/api/middleware"
	"github.com/fieldline/fieldline-backend/internal/agents"
	"github.com/fieldline/fieldline-backend/internal/auth"
	"github.com/fieldline/fieldline-backend/internal/bookings"
	"github.com/fieldline/fieldline-backend/internal/dispositions"
	"github.com/fieldline/fieldline-backend/internal/regions"
	"github.com/fieldline/fieldline-backend/internal/search"
	"github.com/fieldline/fieldline-backend/internal/timesheets"
	"github.com/fieldline/fieldline-backend/pkg/auth/session"
	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/db"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"github.com/fieldline/fieldline-backend/pkg/redis"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Auth         auth.Service
	Bookings     bookings.Service
	Search       search.Service
	Dispositions dispositions.Service
	Regions      regions.Service
	Agents       agents.Service
	Timesheets   timesheets.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	limiter middleware.RateLimiterStore,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	refreshPolicy := middleware.NewAuthRateLimitPolicy(
		"refresh",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, cfg.JWT, logg))

		r.With(middleware.AuthRateLimit(refreshPolicy, limiter, logg)).
			Post("/refresh", controllers.AuthRefresh(svcs.Auth, cfg.JWT, logg))

		r.With(middleware.RequireAPIKey(cfg.CallCenter.APIKey, logg)).
			Post("/call-center/booking", controllers.CreateCallCenterBooking(svcs.Bookings, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))

			r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
			r.Get("/verify", controllers.AuthVerify(svcs.Auth, logg))

			r.Get("/search", controllers.SearchAgents(svcs.Search, logg))

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", controllers.ListBookings(svcs.Bookings, logg))
				r.Post("/", controllers.CreateBooking(svcs.Bookings, logg))
				r.Get("/{bookingId}", controllers.GetBooking(svcs.Bookings, logg))
				r.Put("/{bookingId}", controllers.UpdateBooking(svcs.Bookings, logg))
				r.Delete("/{bookingId}", controllers.DeleteBooking(svcs.Bookings, logg))
			})

			r.Route("/agents", func(r chi.Router) {
				r.Get("/", controllers.ListAgents(svcs.Agents, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin)).
					Post("/", controllers.CreateAgent(svcs.Agents, logg))
				r.Get("/{agentId}", controllers.GetAgent(svcs.Agents, logg))
				r.Get("/{agentId}/bookings", controllers.ListAgentBookings(svcs.Bookings, logg))
			})

			r.Route("/dispatchers", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
				r.Get("/", controllers.ListDispatchers(svcs.Agents, logg))
				r.Post("/", controllers.CreateDispatcher(svcs.Agents, logg))
			})

			r.Route("/regions", func(r chi.Router) {
				r.Get("/", controllers.ListRegions(svcs.Regions, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
					r.Post("/", controllers.CreateRegion(svcs.Regions, logg))
					r.Put("/{regionId}", controllers.UpdateRegion(svcs.Regions, logg))
					r.Delete("/{regionId}", controllers.DeleteRegion(svcs.Regions, logg))
				})
			})

			r.Post("/disposition", controllers.SaveDisposition(svcs.Dispositions, logg))
			r.Route("/dispositions", func(r chi.Router) {
				r.Get("/", controllers.ListDispositions(svcs.Dispositions, logg))
				r.Get("/{dispositionId}", controllers.GetDisposition(svcs.Dispositions, logg))
				r.Delete("/{dispositionId}", controllers.DeleteDisposition(svcs.Dispositions, logg))
			})

			r.Route("/disposition-types", func(r chi.Router) {
				r.Get("/", controllers.ListDispositionTypes(svcs.Dispositions, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
					r.Post("/", controllers.CreateDispositionType(svcs.Dispositions, logg))
					r.Put("/{typeCode}", controllers.UpdateDispositionType(svcs.Dispositions, logg))
					r.Delete("/{typeCode}", controllers.DeleteDispositionType(svcs.Dispositions, logg))
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", controllers.SubmitTimesheet(svcs.Timesheets, logg))
				r.Get("/current", controllers.CurrentTimesheet(svcs.Timesheets, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleDispatcher))
					r.Get("/pending", controllers.ListPendingTimesheets(svcs.Timesheets, logg))
					r.Post("/{timesheetId}/review", controllers.ReviewTimesheet(svcs.Timesheets, logg))
				})
			})

			r.Route("/time-off", func(r chi.Router) {
				r.Get("/", controllers.ListTimeOff(svcs.Timesheets, logg))
				r.Post("/", controllers.RequestTimeOff(svcs.Timesheets, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleDispatcher)).
					Post("/{requestId}/review", controllers.ReviewTimeOff(svcs.Timesheets, logg))
			})
		})
	})

	return r
}
