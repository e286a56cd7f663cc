package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Preview     *string        `json:"preview,omitempty"`
	OwnerID     *uint          `json:"owner_id,omitempty" gorm:"index"`
	Owner       *User          `json:"-" gorm:"foreignKey:OwnerID"`
	Price       float64        `json:"price" gorm:"not null"`
	Materials   []Material     `json:"materials,omitempty" gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
