package model

import (
	"time"

	"gorm.io/gorm"
)

type AnswerOption struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	TestID     uint           `json:"test_id" gorm:"not null;index"`
	AnswerText string         `json:"answer_text" gorm:"not null"`
	IsCorrect  bool           `json:"is_correct" gorm:"default:false"`
	OwnerID    *uint          `json:"owner_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
