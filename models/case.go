package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOpen   = "OPEN"
	CaseStatusOnHold = "ON_HOLD"
	CaseStatusClosed = "CLOSED"
)

// Case represents a legal case. It belongs to exactly one client and
// one worker (the assigned lawyer).
type Case struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	WorkerID string `gorm:"type:uuid;not null;index" json:"worker_id"`
	Worker   Worker `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`

	CaseTitle       string     `gorm:"not null" json:"case_title"`
	CaseDescription string     `gorm:"type:text" json:"case_description"`
	CaseStatus      string     `gorm:"not null;default:OPEN" json:"case_status"`
	CaseType        string     `gorm:"not null" json:"case_type"`
	CourtDate       *time.Time `json:"court_date,omitempty"`
	JudgeName       string     `json:"judge_name,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	switch status {
	case CaseStatusOpen, CaseStatusOnHold, CaseStatusClosed:
		return true
	}
	return false
}
