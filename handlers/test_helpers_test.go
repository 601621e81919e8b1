package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"secure_law_firm_go/config"
	"secure_law_firm_go/db"
	"secure_law_firm_go/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared-memory name so parallel tests stay isolated
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Worker{},
		&models.Client{},
		&models.Case{},
		&models.CaseHistory{},
		&models.ClientHistory{},
		&models.Session{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		AppURL:        "http://localhost:8080",
		TOTPIssuer:    "SecureLawFirm",
		EmailTestMode: true,
	})

	return e, c, rec
}

func seedWorker(t *testing.T, testDB *gorm.DB, role models.Role) *models.Worker {
	suffix := uuid.New().String()[:8]
	worker := &models.Worker{
		Name:           "Test",
		LastName:       "Worker",
		Email:          string(role) + "_" + suffix + "@firm.test",
		Phone:          suffix,
		Role:           role,
		CompanyID:      "LR-" + suffix,
		HashedPassword: "not-a-real-hash",
	}
	assert.NoError(t, testDB.Create(worker).Error)
	return worker
}

func seedClient(t *testing.T, testDB *gorm.DB) *models.Client {
	suffix := uuid.New().String()[:8]
	client := &models.Client{
		Name:     "Client",
		LastName: "Seeded",
		Email:    "client_" + suffix + "@mail.test",
		Phone:    "55" + suffix,
	}
	assert.NoError(t, testDB.Create(client).Error)
	return client
}

func seedCase(t *testing.T, testDB *gorm.DB, client *models.Client, worker *models.Worker) *models.Case {
	kase := &models.Case{
		ClientID:   client.ID,
		WorkerID:   worker.ID,
		CaseTitle:  "Seeded Case",
		CaseStatus: models.CaseStatusOpen,
		CaseType:   "civil",
	}
	assert.NoError(t, testDB.Create(kase).Error)
	return kase
}
