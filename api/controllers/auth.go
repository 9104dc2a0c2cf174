package controllers

import (
	"net/http"

	"github.com/fieldline/fieldline-backend/api/middleware"
	"github.com/fieldline/fieldline-backend/api/responses"
	"github.com/fieldline/fieldline-backend/api/validators"
	"github.com/fieldline/fieldline-backend/internal/auth"
	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

type loginResponseBody struct {
	ID   int64      `json:"id"`
	Role enums.Role `json:"role"`
	Name string     `json:"name"`
}

// AuthLogin wires the login endpoint into the HTTP layer. The access token
// travels back as an HTTP-only cookie; the body carries the identity only.
func AuthLogin(svc auth.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookies(w, jwtCfg, result)
		responses.WriteSuccess(w, loginResponseBody{
			ID:   result.UserID,
			Role: result.Role,
			Name: result.Name,
		})
	}
}

// AuthRefresh rotates the refresh session and reissues both cookies. The
// access cookie may be expired here; only its signature and jti matter.
func AuthRefresh(svc auth.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessToken := cookieValue(r, jwtCfg.CookieName)
		refreshToken := cookieValue(r, refreshCookieName(jwtCfg))
		result, err := svc.Refresh(r.Context(), accessToken, refreshToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookies(w, jwtCfg, result)
		responses.WriteSuccess(w, loginResponseBody{
			ID:   result.UserID,
			Role: result.Role,
			Name: result.Name,
		})
	}
}

// AuthLogout revokes the Redis session and clears the cookie.
func AuthLogout(svc auth.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := svc.Logout(r.Context(), middleware.AccessIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, sessionCookie(jwtCfg, jwtCfg.CookieName, "", -1))
		http.SetCookie(w, sessionCookie(jwtCfg, refreshCookieName(jwtCfg), "", -1))
		responses.WriteSuccess(w, map[string]string{"message": "Logged out successfully"})
	}
}

// AuthVerify confirms the session is still valid and returns the caller's
// identity. The polling console hits this to detect expired sessions.
func AuthVerify(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		identity, err := svc.Verify(r.Context(), middleware.RoleFromContext(r.Context()), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, identity)
	}
}

func setSessionCookies(w http.ResponseWriter, cfg config.JWTConfig, result *auth.LoginResponse) {
	http.SetCookie(w, sessionCookie(cfg, cfg.CookieName, result.AccessToken, cfg.ExpirationMinutes*60))
	http.SetCookie(w, sessionCookie(cfg, refreshCookieName(cfg), result.RefreshToken, int(cfg.RefreshTokenTTL().Seconds())))
}

func refreshCookieName(cfg config.JWTConfig) string {
	return cfg.CookieName + "_refresh"
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func sessionCookie(cfg config.JWTConfig, name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
