package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"secure_law_firm_go/models"
)

func newTestDocument(caseID string) *models.Document {
	now := time.Now()
	return &models.Document{
		ID:            uuid.New().String(),
		CaseID:        caseID,
		ClientID:      uuid.New().String(),
		WorkerID:      uuid.New().String(),
		DocumentTitle: "Exhibit A",
		FileURL:       "https://example.test/documents/exhibit-a.pdf",
		FileKey:       "documents/exhibit-a.pdf",
		FileType:      "application/pdf",
		UploadedAt:    now,
		LastModified:  now,
	}
}

func TestMemoryStoreInsertAndFetch(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc := newTestDocument("case-1")
	assert.NoError(t, store.InsertDocument(ctx, doc))

	found, err := store.DocumentByID(ctx, doc.ID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, doc.DocumentTitle, found.DocumentTitle)

	// Absent documents return nil without an error
	missing, err := store.DocumentByID(ctx, "no-such-id")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStoreDocumentsByCase(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.InsertDocument(ctx, newTestDocument("case-1")))
	assert.NoError(t, store.InsertDocument(ctx, newTestDocument("case-1")))
	assert.NoError(t, store.InsertDocument(ctx, newTestDocument("case-2")))

	docs, err := store.DocumentsByCase(ctx, "case-1")
	assert.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = store.DocumentsByCase(ctx, "case-3")
	assert.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc := newTestDocument("case-1")
	assert.NoError(t, store.InsertDocument(ctx, doc))

	assert.NoError(t, store.DeleteDocument(ctx, doc.ID))
	found, err := store.DocumentByID(ctx, doc.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	// Deleting again is a no-op
	assert.NoError(t, store.DeleteDocument(ctx, doc.ID))
}
