package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"secure_law_firm_go/config"
	"secure_law_firm_go/db"
	"secure_law_firm_go/models"
	"secure_law_firm_go/services"
)

// CreateWorkerRequest is the payload for creating a worker account
type CreateWorkerRequest struct {
	Name           string `json:"name" form:"name"`
	SecondName     string `json:"second_name" form:"second_name"`
	LastName       string `json:"last_name" form:"last_name"`
	SecondLastName string `json:"second_last_name" form:"second_last_name"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	CURP           string `json:"curp" form:"curp"`
	Role           string `json:"role" form:"role"`
	Password       string `json:"password" form:"password"`
}

// CreateWorkerResponse returns the stored worker plus the one-time
// enrollment URI for the admin to hand over
type CreateWorkerResponse struct {
	Worker        *models.Worker `json:"worker"`
	EnrollmentURI string         `json:"enrollment_uri"`
}

// CreateWorkerHandler creates a worker account (admin only; the route
// is gated by RequirePermission)
func CreateWorkerHandler(c echo.Context) error {
	var req CreateWorkerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.LastName == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, last name, email, phone and password are required")
	}
	if len(req.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters long")
	}
	if !models.IsValidRole(models.Role(req.Role)) {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be admin, lawyer or assistant")
	}

	cfg := c.Get("config").(*config.Config)

	result, err := services.CreateWorker(db.DB, cfg.TOTPIssuer, services.CreateWorkerInput{
		Name:           req.Name,
		SecondName:     req.SecondName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		Email:          req.Email,
		Phone:          req.Phone,
		CURP:           req.CURP,
		Role:           models.Role(req.Role),
		Password:       req.Password,
	})
	if err != nil {
		return serviceError(err)
	}

	services.SendWorkerWelcomeEmail(cfg, result.Worker)

	return c.JSON(http.StatusCreated, CreateWorkerResponse{
		Worker:        result.Worker,
		EnrollmentURI: result.EnrollmentURI,
	})
}
