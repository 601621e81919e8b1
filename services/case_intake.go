package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secure_law_firm_go/docstore"
	"secure_law_firm_go/models"
)

// ErrDuplicateIdentity signals a unique-constraint violation on email,
// phone or company id.
var ErrDuplicateIdentity = errors.New("email or phone number already exists")

// CaseIntake creates cases together with their client and optional
// initial document. The case uuid is reserved up front so the document
// metadata is written with its final case id instead of being patched
// after the relational insert.
type CaseIntake struct {
	db      *gorm.DB
	docs    docstore.Store
	storage StorageProvider
}

// NewCaseIntake creates a new intake service over the given stores
func NewCaseIntake(db *gorm.DB, docs docstore.Store, storage StorageProvider) *CaseIntake {
	return &CaseIntake{
		db:      db,
		docs:    docs,
		storage: storage,
	}
}

// CaseIntakeInput is the validated form input for a new case
type CaseIntakeInput struct {
	ClientName           string
	ClientSecondName     string
	ClientLastName       string
	ClientSecondLastName string
	ClientEmail          string
	ClientPhone          string
	ClientAddress        string

	CaseTitle       string
	CaseDescription string
	CaseStatus      string
	CaseType        string
	CourtDate       string
	JudgeName       string

	DocumentTitle       string
	DocumentDescription string
	DocumentTags        []string
	File                *multipart.FileHeader
}

// AddCase looks up the client by email (creating them if absent),
// uploads the optional file to blob storage, writes the document
// metadata record and inserts the case row. Document-store failures are
// logged, not fatal: metadata can be reconciled later, the case cannot.
func (s *CaseIntake) AddCase(ctx context.Context, input CaseIntakeInput, requester *models.Worker) (*models.Case, error) {
	if !requester.Can(models.PermissionCreateCase) {
		return nil, ErrPermissionDenied
	}

	client, err := s.findOrCreateClient(input)
	if err != nil {
		return nil, err
	}

	courtDate, err := parseCourtDate(input.CourtDate)
	if err != nil {
		return nil, err
	}

	status := input.CaseStatus
	if status == "" {
		status = models.CaseStatusOpen
	}
	if !models.IsValidCaseStatus(status) {
		return nil, fmt.Errorf("invalid case status %q", status)
	}

	// Reserve the case id so the document record references it directly
	caseID := uuid.New().String()

	if input.File != nil {
		s.storeInitialDocument(ctx, caseID, client.ID, input, requester)
	}

	kase := &models.Case{
		ID:              caseID,
		ClientID:        client.ID,
		WorkerID:        requester.ID,
		CaseTitle:       input.CaseTitle,
		CaseDescription: input.CaseDescription,
		CaseStatus:      status,
		CaseType:        input.CaseType,
		CourtDate:       courtDate,
		JudgeName:       input.JudgeName,
	}
	if err := s.db.Create(kase).Error; err != nil {
		if input.File != nil {
			log.Printf("[WARNING] Case %s insert failed after document upload; orphaned metadata may need reconciliation", caseID)
		}
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	return kase, nil
}

// findOrCreateClient looks the client up by email and creates them on
// first contact. A unique-constraint race on creation surfaces as
// ErrDuplicateIdentity.
func (s *CaseIntake) findOrCreateClient(input CaseIntakeInput) (*models.Client, error) {
	var client models.Client
	err := s.db.Where("email = ?", input.ClientEmail).First(&client).Error
	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}

	client = models.Client{
		Name:           input.ClientName,
		SecondName:     input.ClientSecondName,
		LastName:       input.ClientLastName,
		SecondLastName: input.ClientSecondLastName,
		Email:          input.ClientEmail,
		Phone:          input.ClientPhone,
		Address:        input.ClientAddress,
	}
	if err := s.db.Create(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

// storeInitialDocument uploads the intake file and records its
// metadata. Failures leave the case creation untouched.
func (s *CaseIntake) storeInitialDocument(ctx context.Context, caseID, clientID string, input CaseIntakeInput, requester *models.Worker) {
	key := GenerateDocumentKey(input.File.Filename)
	result, err := s.storage.Upload(ctx, input.File, key)
	if err != nil {
		log.Printf("[WARNING] Failed to upload intake file for case %s: %v", caseID, err)
		return
	}

	title := input.DocumentTitle
	if title == "" {
		title = input.File.Filename
	}

	now := time.Now()
	doc := &models.Document{
		ID:                  uuid.New().String(),
		CaseID:              caseID,
		ClientID:            clientID,
		WorkerID:            requester.ID,
		DocumentTitle:       title,
		DocumentDescription: input.DocumentDescription,
		FileURL:             result.URL,
		FileKey:             result.Key,
		FileType:            result.MimeType,
		UploadedBy:          requester.ID,
		UploadedAt:          now,
		LastModified:        now,
		DocumentTags:        input.DocumentTags,
	}
	if err := s.docs.InsertDocument(ctx, doc); err != nil {
		log.Printf("[WARNING] Failed to record document metadata for case %s: %v", caseID, err)
	}
}

// parseCourtDate parses an optional YYYY-MM-DD court date
func parseCourtDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid court date %q: expected YYYY-MM-DD", value)
	}
	return &parsed, nil
}
