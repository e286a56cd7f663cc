package model

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses mirror the provider's payment-intent statuses.
// "succeeded" and "failed" are terminal.
const (
	PaymentStatusCreated   = "created"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

type Payment struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	User           User           `json:"-" gorm:"foreignKey:UserID"`
	CourseID       uint           `json:"course_id" gorm:"not null;index"`
	Course         Course         `json:"-" gorm:"foreignKey:CourseID"`
	Amount         float64        `json:"amount"`
	PaymentSession string         `json:"payment_session,omitempty"`
	PaymentLink    string         `json:"payment_link,omitempty"`
	PaymentStatus  string         `json:"payment_status" gorm:"default:'created'"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
