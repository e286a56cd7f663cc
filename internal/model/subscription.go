package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription is unique per (user, course); the activator toggles
// IsSubscribed rather than inserting duplicates.
type Subscription struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
	CourseID     uint           `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	Course       Course         `json:"-" gorm:"foreignKey:CourseID"`
	IsSubscribed bool           `json:"is_subscribed" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
