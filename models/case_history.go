package models

import (
	"time"
)

// CaseHistory is a denormalized snapshot of a case taken at deletion
// time. Rows are append-only and never mutated once written.
type CaseHistory struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ArchivedAt time.Time `gorm:"autoCreateTime" json:"archived_at"`

	CaseID   string `gorm:"type:uuid;not null;index" json:"case_id"`
	ClientID string `gorm:"type:uuid;not null" json:"client_id"`
	WorkerID string `gorm:"type:uuid;not null" json:"worker_id"`

	CaseTitle       string     `gorm:"not null" json:"case_title"`
	CaseDescription string     `gorm:"type:text" json:"case_description"`
	CaseStatus      string     `json:"case_status"`
	CaseType        string     `json:"case_type"`
	CourtDate       *time.Time `json:"court_date,omitempty"`
	JudgeName       string     `json:"judge_name,omitempty"`
}

// NewCaseHistory snapshots the case's current field values
func NewCaseHistory(c *Case) *CaseHistory {
	return &CaseHistory{
		CaseID:          c.ID,
		ClientID:        c.ClientID,
		WorkerID:        c.WorkerID,
		CaseTitle:       c.CaseTitle,
		CaseDescription: c.CaseDescription,
		CaseStatus:      c.CaseStatus,
		CaseType:        c.CaseType,
		CourtDate:       c.CourtDate,
		JudgeName:       c.JudgeName,
	}
}

// TableName specifies the table name for CaseHistory model
func (CaseHistory) TableName() string {
	return "case_history"
}
