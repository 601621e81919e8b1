package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"secure_law_firm_go/models"
)

var (
	// ErrPermissionDenied means the operation is outside the caller's
	// scope. It is deliberately distinct from ErrNotFound so callers
	// cannot probe for record existence.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("record not found")
)

// ScopedCaseQuery returns a query limited to the cases the worker may
// see. Admins see everything; lawyers see cases assigned to them;
// assistants see cases of clients reachable through their own worker id.
func ScopedCaseQuery(db *gorm.DB, worker *models.Worker) *gorm.DB {
	switch worker.Role {
	case models.RoleAdmin:
		return db.Model(&models.Case{})
	case models.RoleLawyer:
		return db.Model(&models.Case{}).Where("worker_id = ?", worker.ID)
	case models.RoleAssistant:
		return db.Model(&models.Case{}).Where("client_id IN (?)",
			db.Model(&models.Case{}).Select("client_id").Where("worker_id = ?", worker.ID))
	default:
		// Unknown role matches nothing
		return db.Model(&models.Case{}).Where("1 = 0")
	}
}

// GetCase fetches a case the worker is allowed to see. Permission is
// checked before existence so an out-of-scope caller always gets
// ErrPermissionDenied.
func GetCase(db *gorm.DB, caseID string, worker *models.Worker) (*models.Case, error) {
	if !worker.Can(models.PermissionViewCase) {
		return nil, ErrPermissionDenied
	}

	var kase models.Case
	if err := db.Preload("Client").Preload("Worker").First(&kase, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	if !CanAccessCase(db, &kase, worker) {
		return nil, ErrPermissionDenied
	}

	return &kase, nil
}

// ListCases returns every case visible to the worker
func ListCases(db *gorm.DB, worker *models.Worker) ([]models.Case, error) {
	if !worker.Can(models.PermissionViewCase) {
		return nil, ErrPermissionDenied
	}

	var cases []models.Case
	if err := ScopedCaseQuery(db, worker).
		Preload("Client").
		Order("created_at DESC").
		Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// CanAccessCase reports whether the worker may view the given case
func CanAccessCase(db *gorm.DB, kase *models.Case, worker *models.Worker) bool {
	switch worker.Role {
	case models.RoleAdmin:
		return true
	case models.RoleLawyer:
		return kase.WorkerID == worker.ID
	case models.RoleAssistant:
		var count int64
		if err := db.Model(&models.Case{}).
			Where("client_id = ? AND worker_id = ?", kase.ClientID, worker.ID).
			Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	}
	return false
}

// CanModifyCase reports whether the worker may edit the given case
func CanModifyCase(kase *models.Case, worker *models.Worker) bool {
	if !worker.Can(models.PermissionEditCase) {
		return false
	}
	return worker.Role == models.RoleAdmin || kase.WorkerID == worker.ID
}

// CaseUpdate carries the editable case fields
type CaseUpdate struct {
	CaseTitle       *string `json:"case_title"`
	CaseDescription *string `json:"case_description"`
	CaseStatus      *string `json:"case_status"`
	CourtDate       *string `json:"court_date"`
	JudgeName       *string `json:"judge_name"`
}

// UpdateCase applies an edit to a case the worker may modify
func UpdateCase(db *gorm.DB, caseID string, update CaseUpdate, worker *models.Worker) (*models.Case, error) {
	if !worker.Can(models.PermissionEditCase) {
		return nil, ErrPermissionDenied
	}

	var kase models.Case
	if err := db.First(&kase, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	if !CanModifyCase(&kase, worker) {
		return nil, ErrPermissionDenied
	}

	if update.CaseTitle != nil {
		kase.CaseTitle = *update.CaseTitle
	}
	if update.CaseDescription != nil {
		kase.CaseDescription = *update.CaseDescription
	}
	if update.CaseStatus != nil {
		if !models.IsValidCaseStatus(*update.CaseStatus) {
			return nil, fmt.Errorf("invalid case status %q", *update.CaseStatus)
		}
		kase.CaseStatus = *update.CaseStatus
	}
	if update.JudgeName != nil {
		kase.JudgeName = *update.JudgeName
	}
	if update.CourtDate != nil {
		courtDate, err := parseCourtDate(*update.CourtDate)
		if err != nil {
			return nil, err
		}
		kase.CourtDate = courtDate
	}

	if err := db.Save(&kase).Error; err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}
	return &kase, nil
}
