package dto

type RegisterDTO struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CourseDTO struct {
	Title       string  `json:"title" binding:"required,max=150"`
	Description string  `json:"description" binding:"max=500"`
	Preview     *string `json:"preview,omitempty"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type MaterialDTO struct {
	Title       string  `json:"title" binding:"required,max=150"`
	Description string  `json:"description" binding:"max=1000,noextlinks"`
	CourseID    uint    `json:"course_id" binding:"required"`
	VideoURL    *string `json:"video_url,omitempty" binding:"omitempty,url,noextlinks"`
}

type AnswerOptionDTO struct {
	AnswerText string `json:"answer_text" binding:"required,max=255"`
	IsCorrect  bool   `json:"is_correct"`
}

type TestDTO struct {
	Question      string            `json:"question" binding:"required,max=255"`
	MaterialID    uint              `json:"material_id" binding:"required"`
	AnswerOptions []AnswerOptionDTO `json:"answer_options" binding:"required,min=1,dive"`
}

type StudentAnswerSubmitDTO struct {
	TestID         uint   `json:"test_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required,max=255"`
}

// StudentAnswerBatchDTO submits several answers in one call; the batch is
// persisted all-or-nothing.
type StudentAnswerBatchDTO struct {
	Answers []StudentAnswerSubmitDTO `json:"answers" binding:"required,min=1,dive"`
}

// StudentAnswerUpdateDTO replaces the answer text; the stored correctness
// flag is recomputed, never taken from the client.
type StudentAnswerUpdateDTO struct {
	SelectedAnswer string `json:"selected_answer" binding:"required,max=255"`
}

type PaymentCreateDTO struct {
	CourseID uint `json:"course_id" binding:"required"`
}
