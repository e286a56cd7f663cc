package model

import (
	"time"

	"gorm.io/gorm"
)

// StudentAnswer records one submission for one test. A student may submit
// the same test multiple times; each submission is graded and stored
// independently.
type StudentAnswer struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	StudentID      uint           `json:"student_id" gorm:"not null;index"`
	Student        User           `json:"-" gorm:"foreignKey:StudentID"`
	TestID         uint           `json:"test_id" gorm:"not null;index"`
	Test           Test           `json:"-" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SelectedAnswer string         `json:"selected_answer" gorm:"not null"`
	IsCorrect      bool           `json:"is_correct" gorm:"default:false"`
	SubmittedAt    time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
