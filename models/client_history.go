package models

import (
	"time"
)

// ClientHistory is a denormalized snapshot of a client taken when their
// last active case is deleted. At most the newest snapshot per client is
// retained: the archival workflow removes older rows after inserting a
// fresh one.
type ClientHistory struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ArchivedAt time.Time `gorm:"autoCreateTime" json:"archived_at"`

	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`

	Name           string `gorm:"not null" json:"name"`
	SecondName     string `json:"second_name,omitempty"`
	LastName       string `gorm:"not null" json:"last_name"`
	SecondLastName string `json:"second_last_name,omitempty"`
	Email          string `gorm:"not null" json:"email"`
	Phone          string `gorm:"not null" json:"phone"`
	Address        string `gorm:"type:text" json:"address,omitempty"`
	CURP           string `json:"curp,omitempty"`
}

// NewClientHistory snapshots the client's current field values
func NewClientHistory(c *Client) *ClientHistory {
	return &ClientHistory{
		ClientID:       c.ID,
		Name:           c.Name,
		SecondName:     c.SecondName,
		LastName:       c.LastName,
		SecondLastName: c.SecondLastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		CURP:           c.CURP,
	}
}

// TableName specifies the table name for ClientHistory model
func (ClientHistory) TableName() string {
	return "client_history"
}
