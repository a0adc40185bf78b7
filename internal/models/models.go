package models

import (
	"time"

	"gorm.io/gorm"
)

// Skill is a tag users attach to themselves. Membership lives in the
// skill_user join table: (user_id, skill_id) pairs, no extra attributes.
type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// Profession is an optional profile reference. Soft-deleted professions are
// not valid targets for new or updated profiles.
type Profession struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Title     string         `gorm:"size:100;not null" json:"title"`
}

// Team groups users. Read-only here: the directory only searches on its name.
type Team struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}
