// Package docstore holds document metadata in a schema-less store, one
// record per uploaded file. The store shares no transaction with the
// relational database: callers treat writes and deletes as best-effort
// side effects ordered around the relational commit.
package docstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"secure_law_firm_go/models"
)

const documentsCollection = "documents"

// Store defines the operations the rest of the app needs from the
// document store. Deletes are idempotent: removing an absent record is
// not an error.
type Store interface {
	InsertDocument(ctx context.Context, doc *models.Document) error
	DocumentByID(ctx context.Context, id string) (*models.Document, error)
	DocumentsByCase(ctx context.Context, caseID string) ([]models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// MongoStore is the MongoDB-backed document store
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it before returning
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("document store ping failed: %w", err)
	}

	log.Printf("Document store connection established (MongoDB - database: %s)", database)
	return &MongoStore{
		client: client,
		col:    client.Database(database).Collection(documentsCollection),
	}, nil
}

// InsertDocument stores a new document metadata record
func (s *MongoStore) InsertDocument(ctx context.Context, doc *models.Document) error {
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
	}
	return nil
}

// DocumentByID fetches a single document metadata record
func (s *MongoStore) DocumentByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch document %s: %w", id, err)
	}
	return &doc, nil
}

// DocumentsByCase lists all documents referencing the given case id
func (s *MongoStore) DocumentsByCase(ctx context.Context, caseID string) ([]models.Document, error) {
	cur, err := s.col.Find(ctx, bson.M{"case_id": caseID})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for case %s: %w", caseID, err)
	}
	defer cur.Close(ctx)

	var docs []models.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents for case %s: %w", caseID, err)
	}
	return docs, nil
}

// DeleteDocument removes a document metadata record. Deleting an absent
// record succeeds.
func (s *MongoStore) DeleteDocument(ctx context.Context, id string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}

// Close disconnects the MongoDB client
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
