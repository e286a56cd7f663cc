package model

import (
	"time"

	"gorm.io/gorm"
)

// User authenticates by email; there is no username.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Password  string         `json:"-" gorm:"not null"` // bcrypt hash
	Phone     *string        `json:"phone,omitempty"`
	City      *string        `json:"city,omitempty"`
	Roles     []Role         `json:"roles,omitempty" gorm:"many2many:user_roles"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Role is a named permission group ("teacher", "student"). Membership is
// assigned administratively; the service only reads it.
type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `json:"name" gorm:"not null;uniqueIndex"`
}

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)
