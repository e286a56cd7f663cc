package dto

import "time"

type ErrorResponse struct {
	Message string      `json:"message"`
	Details []string    `json:"details,omitempty"`
	Fields  []FieldInfo `json:"fields,omitempty"`
}

type FieldInfo struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type TokenResponseDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserResponseDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	City      *string   `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CourseResponseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Preview     *string   `json:"preview,omitempty"`
	OwnerID     *uint     `json:"owner_id,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type MaterialResponseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CourseID    uint      `json:"course_id"`
	VideoURL    *string   `json:"video_url,omitempty"`
	OwnerID     *uint     `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AnswerOptionResponseDTO deliberately omits the correctness flag; clients
// only ever see option text.
type AnswerOptionResponseDTO struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answer_text"`
}

type TestResponseDTO struct {
	ID            uint                      `json:"id"`
	Question      string                    `json:"question"`
	MaterialID    uint                      `json:"material_id"`
	AnswerOptions []AnswerOptionResponseDTO `json:"answer_options"`
}

type StudentAnswerResponseDTO struct {
	ID             uint      `json:"id"`
	StudentID      uint      `json:"student_id"`
	TestID         uint      `json:"test_id"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type PaymentResponseDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	CourseID       uint      `json:"course_id"`
	Amount         float64   `json:"amount"`
	PaymentSession string    `json:"payment_session,omitempty"`
	PaymentLink    string    `json:"payment_link,omitempty"`
	PaymentStatus  string    `json:"payment_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type PaymentStatusResponseDTO struct {
	Status         string  `json:"status"`
	AmountReceived float64 `json:"amount_received"`
	Currency       string  `json:"currency"`
}

type SubscriptionStatusResponseDTO struct {
	SubscriptionStatus string `json:"subscription_status"`
}
