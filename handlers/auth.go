package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"secure_law_firm_go/config"
	"secure_law_firm_go/db"
	"secure_law_firm_go/middleware"
	"secure_law_firm_go/services"
)

// LoginRequest is the login form payload
type LoginRequest struct {
	Email         string `json:"email" form:"email"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"two_factor_code" form:"two_factor_code"`
}

// LoginHandler handles the login submission: password plus TOTP code.
// A bad password and a bad code produce the same response.
func LoginHandler(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	req.Email = strings.TrimSpace(req.Email)

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	worker, err := services.Authenticate(db.DB, req.Email, req.Password, req.TwoFactorCode)
	if err != nil {
		return serviceError(err)
	}

	session, err := services.CreateSession(db.DB, worker.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	cfg := c.Get("config").(*config.Config)
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(services.DefaultSessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, worker)
}

// LogoutHandler deletes the session and clears the cookie
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}

	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// MeHandler returns the authenticated worker
func MeHandler(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)
	if worker == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, worker)
}

// TwoFAQRHandler renders the authenticated worker's TOTP enrollment URI
// as a scannable PNG. The secret never leaves the server in any other
// form.
func TwoFAQRHandler(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)
	if worker == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	cfg := c.Get("config").(*config.Config)
	uri := services.BuildEnrollmentURI(cfg.TOTPIssuer, worker.Email, worker.TwoFASecret)

	png, err := services.EnrollmentQRPNG(uri)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render QR code")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
