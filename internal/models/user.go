package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Assignable roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Roles lists the assignable roles.
func Roles() []string { return []string{RoleUser, RoleAdmin} }

// User is a directory member. Email uniqueness is only enforced among live
// rows (partial index), so a soft-deleted user's email can be reused.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	FirstName string         `gorm:"size:255;not null" json:"first_name"`
	LastName  string         `gorm:"size:255;not null" json:"last_name"`
	Email     string         `gorm:"size:255;not null;index:idx_users_live_email,unique,where:deleted_at IS NULL" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	Role      string         `gorm:"size:20;not null" json:"role"`
	Active    bool           `gorm:"not null" json:"active"`
	TeamID    *uint          `gorm:"index" json:"team_id,omitempty"`
	Team      *Team          `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Profile   *Profile       `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Skills    []Skill        `gorm:"many2many:skill_user;" json:"skills,omitempty"`
}

// Name returns the display name: first and last name joined by a single
// space, or whichever one is present.
func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Trashed reports whether the user is soft-deleted.
func (u User) Trashed() bool { return u.DeletedAt.Valid }
