package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Worker roles. The set is closed; anything else is rejected at creation.
const (
	RoleAdmin     Role = "admin"
	RoleLawyer    Role = "lawyer"
	RoleAssistant Role = "assistant"
)

type Role string

// IsValidRole checks if the role is one of the known worker roles
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleLawyer, RoleAssistant:
		return true
	}
	return false
}

// Worker represents a law-firm employee. Workers are never hard-deleted.
type Worker struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name           string `gorm:"not null" json:"name"`
	SecondName     string `json:"second_name,omitempty"`
	LastName       string `gorm:"not null" json:"last_name"`
	SecondLastName string `json:"second_last_name,omitempty"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string `gorm:"uniqueIndex;not null" json:"phone"`
	// CURP is optional; nil keeps absent values out of the unique index
	CURP           *string `gorm:"uniqueIndex" json:"curp,omitempty"`
	Role           Role   `gorm:"not null" json:"role"`
	CompanyID      string `gorm:"uniqueIndex;not null" json:"company_id"`
	HashedPassword string `gorm:"not null" json:"-"`

	// The TOTP secret is generated once at creation and never rotated.
	TwoFASecret  string `json:"-"`
	TwoFAEnabled bool   `gorm:"not null;default:false" json:"two_fa_enabled"`
}

// BeforeCreate hook to generate UUID
func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// FullName returns the worker's display name
func (w *Worker) FullName() string {
	name := w.Name
	if w.SecondName != "" {
		name += " " + w.SecondName
	}
	name += " " + w.LastName
	if w.SecondLastName != "" {
		name += " " + w.SecondLastName
	}
	return name
}

// TableName specifies the table name for Worker model
func (Worker) TableName() string {
	return "workers"
}
