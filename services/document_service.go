package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secure_law_firm_go/docstore"
	"secure_law_firm_go/models"
)

// DocumentService uploads files for existing cases and reads back their
// metadata. Like the intake flow, the blob goes to object storage and
// the metadata to the document store, with no shared transaction.
type DocumentService struct {
	db      *gorm.DB
	docs    docstore.Store
	storage StorageProvider
}

// NewDocumentService creates a new document service over the given stores
func NewDocumentService(db *gorm.DB, docs docstore.Store, storage StorageProvider) *DocumentService {
	return &DocumentService{
		db:      db,
		docs:    docs,
		storage: storage,
	}
}

// DocumentUploadInput is the validated input for a document upload
type DocumentUploadInput struct {
	DocumentTitle       string
	DocumentDescription string
	DocumentTags        []string
	File                *multipart.FileHeader
}

// UploadCaseDocument attaches a file to an existing case. The uploader
// must be allowed to upload and to see the case.
func (s *DocumentService) UploadCaseDocument(ctx context.Context, caseID string, input DocumentUploadInput, requester *models.Worker) (*models.Document, error) {
	if !requester.Can(models.PermissionUploadDocument) {
		return nil, ErrPermissionDenied
	}

	kase, err := GetCase(s.db, caseID, requester)
	if err != nil {
		return nil, err
	}

	key := GenerateDocumentKey(input.File.Filename)
	result, err := s.storage.Upload(ctx, input.File, key)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	title := input.DocumentTitle
	if title == "" {
		title = input.File.Filename
	}

	now := time.Now()
	doc := &models.Document{
		ID:                  uuid.New().String(),
		CaseID:              kase.ID,
		ClientID:            kase.ClientID,
		WorkerID:            kase.WorkerID,
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
		return nil, fmt.Errorf("failed to record document metadata: %w", err)
	}

	return doc, nil
}

// ListCaseDocuments returns the documents of a case the worker may see
func (s *DocumentService) ListCaseDocuments(ctx context.Context, caseID string, requester *models.Worker) ([]models.Document, error) {
	if !requester.Can(models.PermissionViewDocuments) {
		return nil, ErrPermissionDenied
	}

	if _, err := GetCase(s.db, caseID, requester); err != nil {
		return nil, err
	}

	docs, err := s.docs.DocumentsByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}
