package model

import (
	"time"

	"gorm.io/gorm"
)

type Material struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Course      Course         `json:"-" gorm:"foreignKey:CourseID"`
	VideoURL    *string        `json:"video_url,omitempty"`
	OwnerID     *uint          `json:"owner_id,omitempty" gorm:"index"`
	Owner       *User          `json:"-" gorm:"foreignKey:OwnerID"`
	Tests       []Test         `json:"tests,omitempty" gorm:"foreignKey:MaterialID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
