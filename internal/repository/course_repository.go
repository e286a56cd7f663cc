package repository

import (
	"github.com/learnora/backend/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindAll() ([]model.Course, error)
	Update(course *model.Course) error
	Delete(id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

// Delete removes the whole containment tree rooted at the course. The
// models use soft deletes, so the cascade is walked explicitly inside one
// transaction instead of leaning on the DB-level constraints.
func (r *courseRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var materialIDs []uint
		if err := tx.Model(&model.Material{}).Where("course_id = ?", id).Pluck("id", &materialIDs).Error; err != nil {
			return err
		}
		if len(materialIDs) > 0 {
			if err := deleteMaterialTrees(tx, materialIDs); err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}

// deleteMaterialTrees soft-deletes materials and everything beneath them.
func deleteMaterialTrees(tx *gorm.DB, materialIDs []uint) error {
	var testIDs []uint
	if err := tx.Model(&model.Test{}).Where("material_id IN ?", materialIDs).Pluck("id", &testIDs).Error; err != nil {
		return err
	}
	if len(testIDs) > 0 {
		if err := deleteTestTrees(tx, testIDs); err != nil {
			return err
		}
	}
	return tx.Delete(&model.Material{}, materialIDs).Error
}

func deleteTestTrees(tx *gorm.DB, testIDs []uint) error {
	if err := tx.Where("test_id IN ?", testIDs).Delete(&model.AnswerOption{}).Error; err != nil {
		return err
	}
	if err := tx.Where("test_id IN ?", testIDs).Delete(&model.StudentAnswer{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Test{}, testIDs).Error
}
