package repository

import (
	"errors"

	"github.com/learnora/backend/internal/model"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	FindByUserAndCourse(userID, courseID uint) (*model.Subscription, error)
	Create(sub *model.Subscription) error
	Update(sub *model.Subscription) error
	// Activate performs the check-then-create/update upsert for the
	// (user, course) pair inside one transaction, so the unique constraint
	// is never violated and the operation stays idempotent.
	Activate(userID, courseID uint) error
	// SubscriberEmails returns the addresses of every active subscriber of
	// a course.
	SubscriberEmails(courseID uint) ([]string, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) FindByUserAndCourse(userID, courseID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Update(sub *model.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *subscriptionRepository) Activate(userID, courseID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var sub model.Subscription
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&sub).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub = model.Subscription{UserID: userID, CourseID: courseID, IsSubscribed: true}
			return tx.Create(&sub).Error
		case err != nil:
			return err
		}
		if sub.IsSubscribed {
			return nil
		}
		sub.IsSubscribed = true
		return tx.Save(&sub).Error
	})
}

func (r *subscriptionRepository) SubscriberEmails(courseID uint) ([]string, error) {
	var emails []string
	err := r.db.Model(&model.Subscription{}).
		Joins("JOIN users ON users.id = subscriptions.user_id AND users.deleted_at IS NULL").
		Where("subscriptions.course_id = ? AND subscriptions.is_subscribed = ?", courseID, true).
		Pluck("users.email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
