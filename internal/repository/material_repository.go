package repository

import (
	"github.com/learnora/backend/internal/model"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(material *model.Material) error
	FindByID(id uint) (*model.Material, error)
	// FindVisible returns materials of courses the user holds an active
	// subscription for, plus materials the user authored.
	FindVisible(userID uint) ([]model.Material, error)
	Update(material *model.Material) error
	Delete(id uint) error
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(material *model.Material) error {
	return r.db.Create(material).Error
}

func (r *materialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	if err := r.db.First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindVisible(userID uint) ([]model.Material, error) {
	subscribed := r.db.Model(&model.Subscription{}).
		Select("course_id").
		Where("user_id = ? AND is_subscribed = ?", userID, true)

	var materials []model.Material
	err := r.db.
		Where("course_id IN (?) OR owner_id = ?", subscribed, userID).
		Order("created_at desc").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) Update(material *model.Material) error {
	return r.db.Save(material).Error
}

func (r *materialRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteMaterialTrees(tx, []uint{id})
	})
}
