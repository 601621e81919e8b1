package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"secure_law_firm_go/services"
)

// serviceError maps service-layer errors onto HTTP responses. Unknown
// errors are logged and hidden behind a generic 500.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, "permission denied")
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.Is(err, services.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusConflict, services.ErrDuplicateIdentity.Error())
	case errors.Is(err, services.ErrArchivalFailed):
		log.Printf("[ERROR] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "case archival failed")
	default:
		log.Printf("[ERROR] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
