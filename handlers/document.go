package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"secure_law_firm_go/middleware"
	"secure_law_firm_go/services"
)

// DocumentHandler serves the case document endpoints
type DocumentHandler struct {
	docs *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// ListCaseDocuments returns the documents of a case
func (h *DocumentHandler) ListCaseDocuments(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)

	docs, err := h.docs.ListCaseDocuments(c.Request().Context(), c.Param("id"), worker)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

// UploadCaseDocument attaches an uploaded file to a case
func (h *DocumentHandler) UploadCaseDocument(c echo.Context) error {
	worker := middleware.GetCurrentWorker(c)

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	input := services.DocumentUploadInput{
		DocumentTitle:       strings.TrimSpace(c.FormValue("document_title")),
		DocumentDescription: c.FormValue("document_description"),
		File:                file,
	}
	if tags := c.FormValue("document_tags"); tags != "" {
		input.DocumentTags = splitTags(tags)
	}

	doc, err := h.docs.UploadCaseDocument(c.Request().Context(), c.Param("id"), input, worker)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, doc)
}
