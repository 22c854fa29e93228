package models

import "time"

// Base holds the columns shared by every table.
type Base struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the generated primary key, zero before insert.
func (b Base) GetID() uint64 {
	return b.ID
}
