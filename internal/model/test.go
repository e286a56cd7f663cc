package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Question      string         `json:"question" gorm:"not null"`
	MaterialID    uint           `json:"material_id" gorm:"not null;index"`
	Material      Material       `json:"-" gorm:"foreignKey:MaterialID"`
	OwnerID       *uint          `json:"owner_id,omitempty" gorm:"index"`
	AnswerOptions []AnswerOption `json:"answer_options,omitempty" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
