package repository

import (
	"github.com/learnora/backend/internal/model"
	"gorm.io/gorm"
)

type StudentAnswerRepository interface {
	Create(answer *model.StudentAnswer) error
	// CreateAll persists a batch atomically; either every answer is stored
	// or none is.
	CreateAll(answers []model.StudentAnswer) error
	FindByID(id uint) (*model.StudentAnswer, error)
	// FindAll lists every answer, optionally narrowed to the tests of one
	// material.
	FindAll(materialID *uint) ([]model.StudentAnswer, error)
	// FindByStudent lists one student's answers, optionally narrowed to the
	// tests of one material.
	FindByStudent(studentID uint, materialID *uint) ([]model.StudentAnswer, error)
	Update(answer *model.StudentAnswer) error
	Delete(id uint) error
}

type studentAnswerRepository struct {
	db *gorm.DB
}

func NewStudentAnswerRepository(db *gorm.DB) StudentAnswerRepository {
	return &studentAnswerRepository{db: db}
}

func (r *studentAnswerRepository) Create(answer *model.StudentAnswer) error {
	return r.db.Create(answer).Error
}

func (r *studentAnswerRepository) CreateAll(answers []model.StudentAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&answers).Error
	})
}

func (r *studentAnswerRepository) FindByID(id uint) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	if err := r.db.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *studentAnswerRepository) FindAll(materialID *uint) ([]model.StudentAnswer, error) {
	query := r.db.Model(&model.StudentAnswer{})
	if materialID != nil {
		query = query.
			Joins("JOIN tests ON tests.id = student_answers.test_id AND tests.deleted_at IS NULL").
			Where("tests.material_id = ?", *materialID)
	}

	var answers []model.StudentAnswer
	if err := query.Order("student_answers.submitted_at desc").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *studentAnswerRepository) FindByStudent(studentID uint, materialID *uint) ([]model.StudentAnswer, error) {
	query := r.db.Model(&model.StudentAnswer{}).Where("student_answers.student_id = ?", studentID)
	if materialID != nil {
		query = query.
			Joins("JOIN tests ON tests.id = student_answers.test_id AND tests.deleted_at IS NULL").
			Where("tests.material_id = ?", *materialID)
	}

	var answers []model.StudentAnswer
	if err := query.Order("student_answers.submitted_at desc").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *studentAnswerRepository) Update(answer *model.StudentAnswer) error {
	return r.db.Save(answer).Error
}

func (r *studentAnswerRepository) Delete(id uint) error {
	return r.db.Delete(&model.StudentAnswer{}, id).Error
}
