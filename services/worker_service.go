package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"secure_law_firm_go/models"
)

// CreateWorkerInput is the validated input for a new worker account
type CreateWorkerInput struct {
	Name           string
	SecondName     string
	LastName       string
	SecondLastName string
	Email          string
	Phone          string
	CURP           string
	Role           models.Role
	Password       string
}

// CreateWorkerResult pairs the stored worker with the one-time
// enrollment URI. The URI is the only chance to hand the TOTP secret to
// an authenticator app; the secret itself is never rotated.
type CreateWorkerResult struct {
	Worker        *models.Worker
	EnrollmentURI string
}

// CreateWorker creates a worker account with a hashed password, a fresh
// TOTP secret and a sequential LR-NNN company id. Unique-constraint
// violations on email, phone or company id surface as
// ErrDuplicateIdentity.
func CreateWorker(db *gorm.DB, issuer string, input CreateWorkerInput) (*CreateWorkerResult, error) {
	if !models.IsValidRole(input.Role) {
		return nil, fmt.Errorf("invalid role %q", input.Role)
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	secret, enrollmentURI, err := GenerateTOTPSecret(issuer, input.Email)
	if err != nil {
		return nil, err
	}

	companyID, err := GenerateCompanyID(db)
	if err != nil {
		return nil, err
	}

	// An empty CURP stays NULL so it never collides in the unique index
	var curp *string
	if input.CURP != "" {
		curp = &input.CURP
	}

	worker := &models.Worker{
		Name:           input.Name,
		SecondName:     input.SecondName,
		LastName:       input.LastName,
		SecondLastName: input.SecondLastName,
		Email:          input.Email,
		Phone:          input.Phone,
		CURP:           curp,
		Role:           input.Role,
		CompanyID:      companyID,
		HashedPassword: hashedPassword,
		TwoFASecret:    secret,
		TwoFAEnabled:   true,
	}

	if err := db.Create(worker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return &CreateWorkerResult{
		Worker:        worker,
		EnrollmentURI: enrollmentURI,
	}, nil
}

// GenerateCompanyID generates an employee id in the format LR-NNN
func GenerateCompanyID(db *gorm.DB) (string, error) {
	var count int64
	if err := db.Model(&models.Worker{}).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count workers: %w", err)
	}
	return fmt.Sprintf("LR-%03d", count+1), nil
}

// GetWorkerByEmail fetches a worker by email
func GetWorkerByEmail(db *gorm.DB, email string) (*models.Worker, error) {
	var worker models.Worker
	if err := db.Where("email = ?", email).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}
	return &worker, nil
}
