package repository

import (
	"github.com/learnora/backend/internal/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByID(id uint) (*model.Payment, error)
	FindAllByUser(userID uint) ([]model.Payment, error)
	Update(payment *model.Payment) error
	// UpdateStatus writes only the provider-reported status field.
	UpdateStatus(id uint, status string) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindAllByUser(userID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Payment{}).Where("id = ?", id).
		Update("payment_status", status).Error
}
