package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"secure_law_firm_go/models"
)

func createWorkerPayload(email, phone, role string) *strings.Reader {
	payload, _ := json.Marshal(map[string]string{
		"name":      "Jane",
		"last_name": "Doe",
		"email":     email,
		"phone":     phone,
		"role":      role,
		"password":  "VerySecret123!",
	})
	return strings.NewReader(string(payload))
}

func TestCreateWorkerHandler(t *testing.T) {
	testDB := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/workers", createWorkerPayload("jane@firm.test", "5551234567", "lawyer"))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	assert.NoError(t, CreateWorkerHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateWorkerResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane@firm.test", resp.Worker.Email)
	assert.Equal(t, models.RoleLawyer, resp.Worker.Role)
	assert.True(t, strings.HasPrefix(resp.EnrollmentURI, "otpauth://totp/"))

	// The secret and hash stay out of the response body
	assert.NotContains(t, rec.Body.String(), "hashed_password")
	assert.NotContains(t, rec.Body.String(), "two_fa_secret")

	var stored models.Worker
	assert.NoError(t, testDB.First(&stored, "email = ?", "jane@firm.test").Error)
	assert.True(t, stored.TwoFAEnabled)
	assert.NotEmpty(t, stored.TwoFASecret)
}

func TestCreateWorkerHandlerValidation(t *testing.T) {
	setupTestDB(t)

	// Unknown role
	_, c, _ := setupEcho(http.MethodPost, "/api/workers", createWorkerPayload("jane@firm.test", "5551234567", "superuser"))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := CreateWorkerHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	// Short password
	payload := `{"name":"Jane","last_name":"Doe","email":"jane@firm.test","phone":"5551234567","role":"lawyer","password":"short"}`
	_, c, _ = setupEcho(http.MethodPost, "/api/workers", strings.NewReader(payload))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err = CreateWorkerHandler(c)
	httpErr, ok = err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateWorkerHandlerDuplicate(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/workers", createWorkerPayload("jane@firm.test", "5551234567", "lawyer"))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	assert.NoError(t, CreateWorkerHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Same email, different phone
	_, c, _ = setupEcho(http.MethodPost, "/api/workers", createWorkerPayload("jane@firm.test", "5557654321", "lawyer"))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := CreateWorkerHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}
