package models

import (
	"time"
)

// Document is the metadata record for an uploaded file, stored in the
// schema-less document store. FileURL points at the blob in object
// storage; FileKey is the storage path used for deletion. A document is
// linked to a relational case by CaseID and is removed when that case
// is deleted.
type Document struct {
	ID                  string    `bson:"_id" json:"id"`
	CaseID              string    `bson:"case_id" json:"case_id"`
	ClientID            string    `bson:"client_id" json:"client_id"`
	WorkerID            string    `bson:"worker_id" json:"worker_id"`
	DocumentTitle       string    `bson:"document_title" json:"document_title"`
	DocumentDescription string    `bson:"document_description" json:"document_description,omitempty"`
	FileURL             string    `bson:"file_url" json:"file_url"`
	FileKey             string    `bson:"file_key" json:"-"`
	FileType            string    `bson:"file_type" json:"file_type,omitempty"`
	UploadedBy          string    `bson:"uploaded_by" json:"uploaded_by"`
	UploadedAt          time.Time `bson:"uploaded_at" json:"uploaded_at"`
	LastModified        time.Time `bson:"last_modified" json:"last_modified"`
	DocumentTags        []string  `bson:"document_tags" json:"document_tags,omitempty"`
}
