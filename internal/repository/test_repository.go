package repository

import (
	"github.com/learnora/backend/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithOptions(id uint) (*model.Test, error)
	// FindVisibleForStudent lists tests on materials of courses the student
	// is subscribed to. The optional material filter is applied on top of
	// the visibility condition, never instead of it.
	FindVisibleForStudent(userID uint, materialID *uint) ([]model.Test, error)
	// FindOwnedByTeacher lists tests on materials the teacher authored.
	FindOwnedByTeacher(userID uint, materialID *uint) ([]model.Test, error)
	// FindCorrectOption returns the flagged-correct option with the lowest
	// identifier, so grading stays deterministic when more than one option
	// carries the flag.
	FindCorrectOption(testID uint) (*model.AnswerOption, error)
	Update(test *model.Test) error
	// ReplaceOptions swaps a test's answer options atomically.
	ReplaceOptions(testID uint, options []model.AnswerOption) error
	Delete(id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// Create with associations persists nested answer options as well.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithOptions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("AnswerOptions", func(db *gorm.DB) *gorm.DB {
		return db.Order("answer_options.id ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindVisibleForStudent(userID uint, materialID *uint) ([]model.Test, error) {
	subscribed := r.db.Model(&model.Subscription{}).
		Select("course_id").
		Where("user_id = ? AND is_subscribed = ?", userID, true)

	query := r.db.
		Joins("JOIN materials ON materials.id = tests.material_id AND materials.deleted_at IS NULL").
		Where("materials.course_id IN (?)", subscribed)
	if materialID != nil {
		query = query.Where("tests.material_id = ?", *materialID)
	}

	var tests []model.Test
	if err := query.Preload("AnswerOptions").Order("tests.id ASC").Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *testRepository) FindOwnedByTeacher(userID uint, materialID *uint) ([]model.Test, error) {
	query := r.db.
		Joins("JOIN materials ON materials.id = tests.material_id AND materials.deleted_at IS NULL").
		Where("materials.owner_id = ?", userID)
	if materialID != nil {
		query = query.Where("tests.material_id = ?", *materialID)
	}

	var tests []model.Test
	if err := query.Preload("AnswerOptions").Order("tests.id ASC").Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *testRepository) FindCorrectOption(testID uint) (*model.AnswerOption, error) {
	var option model.AnswerOption
	err := r.db.
		Where("test_id = ? AND is_correct = ?", testID, true).
		Order("id ASC").
		First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Save(test).Error
}

func (r *testRepository) ReplaceOptions(testID uint, options []model.AnswerOption) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].TestID = testID
		}
		return tx.Create(&options).Error
	})
}

func (r *testRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteTestTrees(tx, []uint{id})
	})
}
