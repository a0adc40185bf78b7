package models

import "time"

// Profile holds the free-form details attached to exactly one user. It is
// created in the same transaction as its user, never independently.
type Profile struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	UserID       uint        `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio          string      `gorm:"size:1000" json:"bio"`
	Twitter      *string     `gorm:"size:255" json:"twitter,omitempty"`
	ProfessionID *uint       `gorm:"index" json:"profession_id,omitempty"`
	Profession   *Profession `gorm:"foreignKey:ProfessionID" json:"profession,omitempty"`
}
