package docstore

import (
	"context"
	"sync"

	"secure_law_firm_go/models"
)

// MemoryStore is an in-memory Store used in tests and when no MongoDB
// URI is configured, mirroring the local-filesystem fallback of the
// blob storage layer.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]models.Document
}

// NewMemoryStore creates an empty in-memory document store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]models.Document)}
}

// InsertDocument stores a new document metadata record
func (s *MemoryStore) InsertDocument(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = *doc
	return nil
}

// DocumentByID fetches a single document metadata record
func (s *MemoryStore) DocumentByID(ctx context.Context, id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// DocumentsByCase lists all documents referencing the given case id
func (s *MemoryStore) DocumentsByCase(ctx context.Context, caseID string) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []models.Document
	for _, doc := range s.docs {
		if doc.CaseID == caseID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// DeleteDocument removes a document metadata record if present
func (s *MemoryStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
