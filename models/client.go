package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a person the firm represents. Clients are created on the
// first case that references a new email and archived to ClientHistory
// when their last active case is deleted.
type Client struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name           string `gorm:"not null" json:"name"`
	SecondName     string `json:"second_name,omitempty"`
	LastName       string `gorm:"not null" json:"last_name"`
	SecondLastName string `json:"second_last_name,omitempty"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string `gorm:"uniqueIndex;not null" json:"phone"`
	Address        string `gorm:"type:text" json:"address,omitempty"`
	CURP           string `json:"curp,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}
