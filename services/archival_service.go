package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"secure_law_firm_go/docstore"
	"secure_law_firm_go/models"
)

// ErrArchivalFailed wraps any relational-store failure inside the
// case-deletion workflow. The transaction is rolled back and no live
// record is lost when it is returned.
var ErrArchivalFailed = errors.New("case archival failed")

// CaseArchiver runs the case deletion/archival workflow across the
// relational store, the document store and blob storage. The relational
// transaction is the authoritative "done" signal; document and blob
// deletions are best-effort side effects performed before the commit,
// so a crash in between can leave orphaned document records. That gap
// is accepted and surfaced through log lines for manual reconciliation.
type CaseArchiver struct {
	db      *gorm.DB
	docs    docstore.Store
	storage StorageProvider
}

// NewCaseArchiver creates a new archiver over the given stores
func NewCaseArchiver(db *gorm.DB, docs docstore.Store, storage StorageProvider) *CaseArchiver {
	return &CaseArchiver{
		db:      db,
		docs:    docs,
		storage: storage,
	}
}

// DeleteCase archives and deletes a case:
//
//  1. Snapshot the case into case_history.
//  2. If this was the client's last active case, snapshot the client
//     into client_history (keeping only the newest snapshot) and remove
//     the client row.
//  3. Delete every document referencing the case from blob storage and
//     the document store; failures here are logged, never fatal.
//  4. Delete the case row and commit.
//
// Only admins may delete cases. Deleting an absent case returns
// ErrNotFound, not ErrArchivalFailed.
func (a *CaseArchiver) DeleteCase(ctx context.Context, caseID string, requester *models.Worker) error {
	if !requester.Can(models.PermissionDeleteCase) {
		return ErrPermissionDenied
	}

	var kase models.Case
	if err := a.db.First(&kase, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrArchivalFailed, err)
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		// The history snapshot must land before anything is deleted
		if err := tx.Create(models.NewCaseHistory(&kase)).Error; err != nil {
			return fmt.Errorf("failed to archive case %s: %w", kase.ID, err)
		}

		if err := a.archiveClientIfOrphaned(tx, &kase); err != nil {
			return err
		}

		// Best-effort cleanup of documents and blobs. Runs before the
		// commit and never aborts the deletion.
		a.cleanupCaseDocuments(ctx, kase.ID)

		if err := tx.Delete(&kase).Error; err != nil {
			return fmt.Errorf("failed to delete case %s: %w", kase.ID, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArchivalFailed, err)
	}

	log.Printf("Case %s deleted by worker %s (%s)", kase.ID, requester.ID, requester.Role)
	return nil
}

// archiveClientIfOrphaned snapshots and removes the client when the
// case being deleted is their last one. Older client_history rows for
// the client are dropped after the fresh snapshot is inserted, so at
// most one snapshot is retained per client.
func (a *CaseArchiver) archiveClientIfOrphaned(tx *gorm.DB, kase *models.Case) error {
	var remaining int64
	if err := tx.Model(&models.Case{}).
		Where("client_id = ? AND id <> ?", kase.ClientID, kase.ID).
		Count(&remaining).Error; err != nil {
		return fmt.Errorf("failed to count client cases: %w", err)
	}
	if remaining > 0 {
		return nil
	}

	var client models.Client
	if err := tx.First(&client, "id = ?", kase.ClientID).Error; err != nil {
		return fmt.Errorf("failed to fetch client %s: %w", kase.ClientID, err)
	}

	snapshot := models.NewClientHistory(&client)
	if err := tx.Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to archive client %s: %w", client.ID, err)
	}

	if err := tx.Where("client_id = ? AND id <> ?", client.ID, snapshot.ID).
		Delete(&models.ClientHistory{}).Error; err != nil {
		return fmt.Errorf("failed to collapse client history for %s: %w", client.ID, err)
	}

	if err := tx.Delete(&client).Error; err != nil {
		return fmt.Errorf("failed to delete client %s: %w", client.ID, err)
	}

	log.Printf("Client %s archived with their last case %s", client.ID, kase.ID)
	return nil
}

// cleanupCaseDocuments deletes the blobs and metadata of every document
// referencing the case. All failures are logged and swallowed: the
// document store shares no transaction with the relational store, and a
// stray blob or record is preferable to a failed deletion.
func (a *CaseArchiver) cleanupCaseDocuments(ctx context.Context, caseID string) {
	docs, err := a.docs.DocumentsByCase(ctx, caseID)
	if err != nil {
		log.Printf("[WARNING] Failed to list documents for case %s: %v", caseID, err)
		return
	}

	for _, doc := range docs {
		if doc.FileKey != "" {
			if err := a.storage.Delete(ctx, doc.FileKey); err != nil {
				log.Printf("[WARNING] Failed to delete blob %s for document %s: %v", doc.FileKey, doc.ID, err)
			}
		}
		if err := a.docs.DeleteDocument(ctx, doc.ID); err != nil {
			log.Printf("[WARNING] Failed to delete document record %s for case %s: %v", doc.ID, caseID, err)
		}
	}
}
