package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"secure_law_firm_go/middleware"
	"secure_law_firm_go/services"
)

// CaseHandler serves the case endpoints over the injected services
type CaseHandler struct {
	db       *gorm.DB
	intake   *services.CaseIntake
	archiver *services.CaseArchiver
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(db *gorm.DB, intake *services.CaseIntake, archiver *services.CaseArchiver) *CaseHandler {
	return &CaseHandler{
		db:       db,
		intake:   intake,
		archiver: archiver,
	}
}

// ListCases returns every case visible to the caller
func (h *CaseHandler) ListCases(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)

	cases, err := services.ListCases(h.db, worker)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, cases)
}

// GetCase returns a single case
func (h *CaseHandler) GetCase(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)

	kase, err := services.GetCase(h.db, c.Param("id"), worker)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, kase)
}

// CreateCase runs the intake flow: client-or-create, optional file
// upload, document record, case insert
func (h *CaseHandler) CreateCase(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)

	input := services.CaseIntakeInput{
		ClientName:           strings.TrimSpace(c.FormValue("client_name")),
		ClientSecondName:     strings.TrimSpace(c.FormValue("client_second_name")),
		ClientLastName:       strings.TrimSpace(c.FormValue("client_last_name")),
		ClientSecondLastName: strings.TrimSpace(c.FormValue("client_second_last_name")),
		ClientEmail:          strings.TrimSpace(c.FormValue("client_email")),
		ClientPhone:          strings.TrimSpace(c.FormValue("client_phone")),
		ClientAddress:        strings.TrimSpace(c.FormValue("client_address")),
		CaseTitle:            strings.TrimSpace(c.FormValue("case_title")),
		CaseDescription:      c.FormValue("case_description"),
		CaseStatus:           c.FormValue("case_status"),
		CaseType:             c.FormValue("case_type"),
		CourtDate:            c.FormValue("court_date"),
		JudgeName:            strings.TrimSpace(c.FormValue("judge_name")),
		DocumentTitle:        strings.TrimSpace(c.FormValue("document_title")),
		DocumentDescription:  c.FormValue("document_description"),
	}
	if tags := c.FormValue("document_tags"); tags != "" {
		input.DocumentTags = splitTags(tags)
	}

	if input.ClientEmail == "" || input.CaseTitle == "" || input.CaseType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "client email, case title and case type are required")
	}

	// The file is optional
	if file, err := c.FormFile("file"); err == nil {
		input.File = file
	}

	kase, err := h.intake.AddCase(c.Request().Context(), input, worker)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, kase)
}

// UpdateCase applies an edit to a case
func (h *CaseHandler) UpdateCase(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)

	var update services.CaseUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	kase, err := services.UpdateCase(h.db, c.Param("id"), update, worker)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, kase)
}

// DeleteCase runs the archival workflow
func (h *CaseHandler) DeleteCase(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)

	if err := h.archiver.DeleteCase(c.Request().Context(), c.Param("id"), worker); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// splitTags parses a comma-separated tag list
func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
