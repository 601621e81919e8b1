package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secure_law_firm_go/config"
	"secure_law_firm_go/db"
	"secure_law_firm_go/models"
	"secure_law_firm_go/services"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "law_firm_session"
	// ContextKeyWorker is the context key for the authenticated worker
	ContextKeyWorker = "worker"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth is middleware that requires an authenticated session
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				// Invalid or expired session, clear the cookie
				ClearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set(ContextKeyWorker, &session.Worker)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequirePermission is middleware that gates a route on the capability
// table. Out-of-scope callers get 403, regardless of whether the target
// record exists.
func RequirePermission(perm models.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			worker := GetCurrentWorker(c)
			if worker == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if !worker.Can(perm) {
				return echo.NewHTTPError(http.StatusForbidden, "permission denied")
			}

			return next(c)
		}
	}
}

// GetCurrentWorker retrieves the authenticated worker from context
func GetCurrentWorker(c echo.Context) *models.Worker {
	worker, ok := c.Get(ContextKeyWorker).(*models.Worker)
	if !ok {
		return nil
	}
	return worker
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c echo.Context) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
