package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"secure_law_firm_go/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.Worker{},
		&models.Client{},
		&models.Case{},
		&models.CaseHistory{},
		&models.ClientHistory{},
		&models.Session{},
	)
	assert.NoError(t, err)

	return db
}

func seedWorker(t *testing.T, db *gorm.DB, role models.Role) *models.Worker {
	suffix := uuid.New().String()[:8]
	curp := "CURP" + suffix
	worker := &models.Worker{
		Name:           "Test",
		LastName:       "Worker",
		Email:          fmt.Sprintf("%s_%s@firm.test", role, suffix),
		Phone:          suffix,
		CURP:           &curp,
		Role:           role,
		CompanyID:      "LR-" + suffix,
		HashedPassword: "not-a-real-hash",
		TwoFAEnabled:   false,
	}
	assert.NoError(t, db.Create(worker).Error)
	return worker
}

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	suffix := uuid.New().String()[:8]
	client := &models.Client{
		Name:     "Client",
		LastName: "Seeded",
		Email:    fmt.Sprintf("client_%s@mail.test", suffix),
		Phone:    "55" + suffix,
	}
	assert.NoError(t, db.Create(client).Error)
	return client
}

func seedCase(t *testing.T, db *gorm.DB, client *models.Client, worker *models.Worker) *models.Case {
	kase := &models.Case{
		ClientID:   client.ID,
		WorkerID:   worker.ID,
		CaseTitle:  "Seeded Case",
		CaseStatus: models.CaseStatusOpen,
		CaseType:   "civil",
	}
	assert.NoError(t, db.Create(kase).Error)
	return kase
}

func createMockFileHeader(filename string, content []byte, contentType string) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(10 * 1024 * 1024)
	return form.File["file"][0]
}

// failingStorage rejects every operation, standing in for an
// unreachable object store.
type failingStorage struct{}

func (failingStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	return nil, errors.New("storage unavailable")
}

func (failingStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	return nil, errors.New("storage unavailable")
}

func (failingStorage) Delete(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}

func (failingStorage) GetPublicURL(key string) string {
	return ""
}

func (failingStorage) IsConfigured() bool {
	return false
}
